package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prizeroom/doorprize-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContestantHandler handles contestant-related HTTP requests
type ContestantHandler struct {
	contestantService services.ContestantService
}

// NewContestantHandler creates a new ContestantHandler
func NewContestantHandler(contestantService services.ContestantService) *ContestantHandler {
	return &ContestantHandler{
		contestantService: contestantService,
	}
}

// AddContestantRequest is the payload for POST /sessions/:id/contestants
type AddContestantRequest struct {
	Name string `json:"name" binding:"required"`
}

// AddContestant handles POST /sessions/:id/contestants
func (h *ContestantHandler) AddContestant(c *gin.Context) {
	sessionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	var request AddContestantRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	contestant, err := h.contestantService.AddContestant(c.Request.Context(), sessionID, request.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contestant)
}

// ImportContestants handles POST /sessions/:id/contestants/import. Accepts a
// multipart upload with a "file" field holding the CSV.
func (h *ContestantHandler) ImportContestants(c *gin.Context) {
	sessionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing CSV file upload: " + err.Error()})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open upload: " + err.Error()})
		return
	}
	defer file.Close()

	result, err := h.contestantService.ImportCSV(c.Request.Context(), sessionID, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetContestants handles GET /sessions/:id/contestants
func (h *ContestantHandler) GetContestants(c *gin.Context) {
	sessionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	contestants, err := h.contestantService.GetContestants(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contestants)
}

// GetEligibleContestants handles GET /sessions/:id/contestants/eligible
func (h *ContestantHandler) GetEligibleContestants(c *gin.Context) {
	sessionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	contestants, err := h.contestantService.GetEligibleContestants(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contestants)
}

// GetEligibleCount handles GET /sessions/:id/contestants/eligible/count
func (h *ContestantHandler) GetEligibleCount(c *gin.Context) {
	sessionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	count, err := h.contestantService.CountEligible(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"eligible": count})
}
