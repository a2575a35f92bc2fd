package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"
	"tripscout/database"
	"tripscout/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreateTripRequest struct {
	FromPlace     string `json:"from_place" binding:"required"`
	ToPlace       string `json:"to_place" binding:"required"`
	StartDate     string `json:"start_date" binding:"required"`
	EndDate       string `json:"end_date" binding:"required"`
	TravelMode    string `json:"travel_mode" binding:"required"`
	BudgetSegment string `json:"budget_segment" binding:"required"`
	Persons       int    `json:"persons"`
}

var validTravelModes = map[string]bool{
	"flight": true, "train": true, "car": true, "bus": true, "ship": true, "bike": true,
}

var validBudgetSegments = map[string]bool{
	"Low": true, "Medium": true, "Premium": true,
}

func CreateTripHandler(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	req.FromPlace = strings.TrimSpace(req.FromPlace)
	req.ToPlace = strings.TrimSpace(req.ToPlace)

	if !validTravelModes[req.TravelMode] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid travel mode. Use one of: flight, train, car, bus, ship, bike"})
		return
	}
	if !validBudgetSegments[req.BudgetSegment] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid budget segment. Use one of: Low, Medium, Premium"})
		return
	}
	if req.Persons <= 0 {
		req.Persons = 1
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date format. Use YYYY-MM-DD"})
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date format. Use YYYY-MM-DD"})
		return
	}
	// Same-day trips are allowed; they count as one travel day.
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "End date must not be before start date"})
		return
	}

	trip := &database.Trip{
		ID:            uuid.New().String(),
		FromPlace:     req.FromPlace,
		ToPlace:       req.ToPlace,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		TravelMode:    req.TravelMode,
		BudgetSegment: req.BudgetSegment,
		Persons:       req.Persons,
	}

	if err := database.SaveTrip(trip); err != nil {
		log.Printf("❌ Failed to save trip: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save trip"})
		return
	}

	// Enrichment is best-effort and must never block or fail trip creation.
	go func(tripID string) {
		if _, err := services.GetEnricher().EnrichTrip(context.Background(), tripID); err != nil {
			log.Printf("⚠️  Background enrichment for trip %s failed: %v", tripID, err)
		}
	}(trip.ID)

	c.JSON(http.StatusCreated, trip)
}

func GetTripHandler(c *gin.Context) {
	trip, err := database.GetTrip(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		return
	}
	c.JSON(http.StatusOK, trip)
}

func ListTripsHandler(c *gin.Context) {
	trips, err := database.ListTrips(50)
	if err != nil {
		log.Printf("❌ Failed to list trips: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list trips"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}
