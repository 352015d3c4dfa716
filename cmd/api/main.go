package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prizeroom/doorprize-backend/api/routes"
	"github.com/prizeroom/doorprize-backend/internal/config"
	"github.com/prizeroom/doorprize-backend/internal/handlers"
	"github.com/prizeroom/doorprize-backend/internal/repositories/mongodb"
	"github.com/prizeroom/doorprize-backend/internal/services"
	"github.com/prizeroom/doorprize-backend/pkg/jwt"
	mongoclient "github.com/prizeroom/doorprize-backend/pkg/mongodb"
	"golang.org/x/exp/slog"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	client, err := mongoclient.NewClient(cfg.MongoDB.URI)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			slog.Error("Failed to disconnect from MongoDB", "error", err)
		}
	}()

	db := client.Database(cfg.MongoDB.Database)

	// Initialize repositories
	sessionRepo := mongodb.NewSessionRepository(db)
	contestantRepo := mongodb.NewContestantRepository(db)
	prizeRepo := mongodb.NewPrizeRepository(db)
	drawRepo := mongodb.NewDrawRepository(db)
	winnerRepo := mongodb.NewWinnerRepository(db)
	organizerRepo := mongodb.NewOrganizerRepository(db)

	// The winners index enforces at-most-one-win per contestant; draws that
	// would violate it are rejected at commit time.
	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelIndexes()
	if err := winnerRepo.EnsureIndexes(indexCtx); err != nil {
		slog.Error("Failed to create winner indexes", "error", err)
		os.Exit(1)
	}
	if err := contestantRepo.EnsureIndexes(indexCtx); err != nil {
		slog.Error("Failed to create contestant indexes", "error", err)
		os.Exit(1)
	}
	if err := organizerRepo.EnsureIndexes(indexCtx); err != nil {
		slog.Error("Failed to create organizer indexes", "error", err)
		os.Exit(1)
	}

	// Initialize services
	tokenService := jwt.NewTokenService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiresIn)*time.Second)
	sessionService := services.NewSessionService(sessionRepo, contestantRepo, prizeRepo, drawRepo, winnerRepo, client)
	contestantService := services.NewContestantService(sessionRepo, contestantRepo)
	prizeService := services.NewPrizeService(sessionRepo, prizeRepo, contestantRepo, winnerRepo)
	drawService := services.NewDrawService(sessionRepo, prizeRepo, contestantRepo, drawRepo, winnerRepo, client)
	reportService := services.NewReportService(sessionService, winnerRepo)
	authService := services.NewAuthService(organizerRepo, tokenService)

	// Initialize handlers
	deps := routes.HandlerDependencies{
		AuthHandler:       handlers.NewAuthHandler(authService),
		SessionHandler:    handlers.NewSessionHandler(sessionService),
		ContestantHandler: handlers.NewContestantHandler(contestantService),
		PrizeHandler:      handlers.NewPrizeHandler(prizeService),
		DrawHandler:       handlers.NewDrawHandler(drawService),
		ReportHandler:     handlers.NewReportHandler(reportService),
	}

	router := routes.SetupRouter(cfg, deps)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		slog.Info("Starting server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	slog.Info("Server exited")
}
