package handlers

import (
	"errors"
	"log"
	"net/http"
	"tripscout/services"

	"github.com/gin-gonic/gin"
)

type EnrichResponse struct {
	Success bool           `json:"success"`
	Source  string         `json:"source"`
	Plan    *services.Plan `json:"plan"`
	Message string         `json:"message"`
}

// EnrichTripHandler runs one enrichment pass for a trip. Safe to repeat: a
// re-run replaces the previous plan.
func EnrichTripHandler(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing trip ID"})
		return
	}

	result, err := services.GetEnricher().EnrichTrip(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTripNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		case errors.Is(err, services.ErrNotConfigured):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "OpenRouter API key not configured"})
		default:
			log.Printf("❌ Enrichment failed for trip %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Trip enrichment failed"})
		}
		return
	}

	message := "Trip enriched successfully"
	if result.Source == services.SourceFallback {
		message = "Trip enriched with fallback data"
	}

	c.JSON(http.StatusOK, EnrichResponse{
		Success: true,
		Source:  result.Source,
		Plan:    result.Plan,
		Message: message,
	})
}
