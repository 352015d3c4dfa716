package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prizeroom/doorprize-backend/internal/models"
	"github.com/prizeroom/doorprize-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DrawHandler handles draw-related HTTP requests
type DrawHandler struct {
	drawService services.DrawService
}

// NewDrawHandler creates a new DrawHandler
func NewDrawHandler(drawService services.DrawService) *DrawHandler {
	return &DrawHandler{
		drawService: drawService,
	}
}

// RunDraw handles POST /sessions/:id/draws. A malformed body (including a
// non-integer quantity) is rejected here before the service touches the
// store. A 409 means a concurrent draw consumed a selected contestant; the
// caller should refresh eligibility and resubmit.
func (h *DrawHandler) RunDraw(c *gin.Context) {
	sessionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	var request models.DrawRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	prizeID, err := primitive.ObjectIDFromHex(request.PrizeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prize ID format"})
		return
	}

	result, err := h.drawService.RunDraw(c.Request.Context(), sessionID, prizeID, request.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetSessionDraws handles GET /sessions/:id/draws
func (h *DrawHandler) GetSessionDraws(c *gin.Context) {
	sessionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	draws, err := h.drawService.GetSessionDraws(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draws)
}

// GetDrawWinners handles GET /draws/:id/winners
func (h *DrawHandler) GetDrawWinners(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	winners, err := h.drawService.GetDrawWinners(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, winners)
}
