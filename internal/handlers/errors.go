package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prizeroom/doorprize-backend/internal/models"
)

// respondError maps domain errors to HTTP statuses: not-found to 404,
// invalid-argument to 400, conflicts to 409, anything else to 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrSessionNotFound),
		errors.Is(err, models.ErrPrizeNotFound),
		errors.Is(err, models.ErrDrawNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidQuantity),
		errors.Is(err, models.ErrQuantityExceedsEligible),
		errors.Is(err, models.ErrEmptySessionName),
		errors.Is(err, models.ErrEmptyContestantName),
		errors.Is(err, models.ErrEmptyPrizeName):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrContestantAlreadyWon),
		errors.Is(err, models.ErrDuplicateContestant),
		errors.Is(err, models.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
