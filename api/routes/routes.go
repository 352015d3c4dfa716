package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prizeroom/doorprize-backend/internal/config"
	"github.com/prizeroom/doorprize-backend/internal/handlers"
	"github.com/prizeroom/doorprize-backend/internal/middleware"
)

// HandlerDependencies bundles the handlers wired into the router
type HandlerDependencies struct {
	AuthHandler       *handlers.AuthHandler
	SessionHandler    *handlers.SessionHandler
	ContestantHandler *handlers.ContestantHandler
	PrizeHandler      *handlers.PrizeHandler
	DrawHandler       *handlers.DrawHandler
	ReportHandler     *handlers.ReportHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
		}

		// Presentation screens poll results without authentication
		public.GET("/sessions/:id/results", deps.SessionHandler.GetSessionResults)
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		sessions := protected.Group("/sessions")
		{
			sessions.GET("", deps.SessionHandler.GetSessions)
			sessions.POST("", deps.SessionHandler.CreateSession)
			sessions.GET("/:id", deps.SessionHandler.GetSessionByID)
			sessions.DELETE("/:id", deps.SessionHandler.DeleteSession)

			sessions.GET("/:id/contestants", deps.ContestantHandler.GetContestants)
			sessions.POST("/:id/contestants", deps.ContestantHandler.AddContestant)
			sessions.POST("/:id/contestants/import", deps.ContestantHandler.ImportContestants)
			sessions.GET("/:id/contestants/eligible", deps.ContestantHandler.GetEligibleContestants)
			sessions.GET("/:id/contestants/eligible/count", deps.ContestantHandler.GetEligibleCount)

			sessions.GET("/:id/prizes", deps.PrizeHandler.GetPrizes)
			sessions.POST("/:id/prizes", deps.PrizeHandler.CreatePrize)

			sessions.GET("/:id/draws", deps.DrawHandler.GetSessionDraws)
			sessions.POST("/:id/draws", deps.DrawHandler.RunDraw)

			sessions.GET("/:id/report.csv", deps.ReportHandler.GetWinnersCSV)
			sessions.GET("/:id/report", deps.ReportHandler.GetWinnersText)
		}

		draws := protected.Group("/draws")
		{
			draws.GET("/:id/winners", deps.DrawHandler.GetDrawWinners)
		}
	}

	return router
}
