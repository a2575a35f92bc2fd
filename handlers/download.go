package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"tripscout/database"
	"tripscout/services"

	"github.com/gin-gonic/gin"
)

// DownloadPlanHandler renders the enriched plan as a PDF. The document is
// generated on demand from the persisted plan, so a re-enriched trip always
// downloads its current plan.
func DownloadPlanHandler(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing trip ID"})
		return
	}

	trip, err := database.GetTrip(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		return
	}

	if trip.EnrichedAt == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Trip has not been enriched yet"})
		return
	}

	plan := &services.Plan{
		DistanceKM:        trip.DistanceKM,
		EstimatePerPerson: trip.EstimatePerPerson,
		EstimateTotal:     trip.EstimateTotal,
	}
	if len(trip.Hotels) > 0 {
		if err := json.Unmarshal(trip.Hotels, &plan.Hotels); err != nil {
			log.Printf("❌ Corrupt hotels payload for trip %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Stored plan is unreadable"})
			return
		}
	}
	if len(trip.Itinerary) > 0 {
		if err := json.Unmarshal(trip.Itinerary, &plan.Itinerary); err != nil {
			log.Printf("❌ Corrupt itinerary payload for trip %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Stored plan is unreadable"})
			return
		}
	}

	var estimates services.TravelEstimates
	if len(trip.TravelEstimates) > 0 {
		if err := json.Unmarshal(trip.TravelEstimates, &estimates); err != nil {
			log.Printf("❌ Corrupt travel estimates for trip %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Stored plan is unreadable"})
			return
		}
	}
	plan.EstimateBreakdown = estimates.Breakdown

	pdfBytes, err := services.GeneratePlanPDF(services.PlanPDFData{
		FromPlace:     trip.FromPlace,
		ToPlace:       trip.ToPlace,
		StartDate:     trip.StartDate,
		EndDate:       trip.EndDate,
		TravelMode:    trip.TravelMode,
		BudgetSegment: trip.BudgetSegment,
		Persons:       trip.Persons,
		Days:          services.TripDurationDays(trip.StartDate, trip.EndDate),
		Plan:          plan,
		Source:        estimates.Source,
		EnrichedAt:    *trip.EnrichedAt,
	})
	if err != nil {
		log.Printf("❌ PDF generation failed for trip %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=tripscout-plan.pdf")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func HealthHandler(c *gin.Context) {
	db := database.DB
	dbStatus := "ok"
	if db == nil {
		dbStatus = "not initialized"
	} else if err := db.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
	}

	aiStatus := "ok"
	if !services.GetAIClient().Configured() {
		aiStatus = "not configured"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  "TripScout API",
		"database": dbStatus,
		"ai":       aiStatus,
	})
}
