package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prizeroom/doorprize-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PrizeHandler handles prize-related HTTP requests
type PrizeHandler struct {
	prizeService services.PrizeService
}

// NewPrizeHandler creates a new PrizeHandler
func NewPrizeHandler(prizeService services.PrizeService) *PrizeHandler {
	return &PrizeHandler{
		prizeService: prizeService,
	}
}

// CreatePrizeRequest is the payload for POST /sessions/:id/prizes
type CreatePrizeRequest struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

// CreatePrize handles POST /sessions/:id/prizes
func (h *PrizeHandler) CreatePrize(c *gin.Context) {
	sessionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	var request CreatePrizeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	prize, err := h.prizeService.CreatePrize(c.Request.Context(), sessionID, request.Name, request.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, prize)
}

// GetPrizes handles GET /sessions/:id/prizes
func (h *PrizeHandler) GetPrizes(c *gin.Context) {
	sessionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	prizes, err := h.prizeService.GetPrizes(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prizes)
}
