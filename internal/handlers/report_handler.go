package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prizeroom/doorprize-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReportHandler handles winner report downloads
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// GetWinnersCSV handles GET /sessions/:id/report.csv
func (h *ReportHandler) GetWinnersCSV(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	data, err := h.reportService.WinnersCSV(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="winners.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// GetWinnersText handles GET /sessions/:id/report
func (h *ReportHandler) GetWinnersText(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	text, err := h.reportService.WinnersText(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.String(http.StatusOK, text)
}
