package services

import (
	"fmt"
	"hash/fnv"
	"net/url"
	"strings"
)

// Cost policy for synthesized plans, in INR.
const (
	nightlyRateLow     = 1500.0
	nightlyRateMedium  = 3000.0
	nightlyRatePremium = 5000.0

	// Destination hotels price above the baseline; fixed product policy.
	destinationRateFactor = 1.2

	travelCost     = 2000.0
	foodCostPerDay = 1500.0
	otherCosts     = 1000.0
)

func nightlyRate(budgetSegment string) float64 {
	switch budgetSegment {
	case "Low":
		return nightlyRateLow
	case "Premium":
		return nightlyRatePremium
	default:
		return nightlyRateMedium
	}
}

// SynthesizePlan derives a complete plan from the trip inputs alone: no
// network, no failure modes, and the same inputs always produce the same
// plan. It backs every enrichment run whose generated path fails.
func SynthesizePlan(fromPlace, toPlace, budgetSegment string, days, persons int) *Plan {
	if days < 1 {
		days = 1
	}
	if persons < 1 {
		persons = 1
	}

	rate := nightlyRate(budgetSegment)

	hotels := []HotelOption{
		{
			Name:          cityName(fromPlace) + " Comfort Inn",
			Address:       fromPlace,
			PricePerNight: rate,
			MapLink:       hotelsMapLink(fromPlace),
		},
		{
			Name:          cityName(toPlace) + " Grand Hotel",
			Address:       toPlace,
			PricePerNight: rate * destinationRateFactor,
			MapLink:       hotelsMapLink(toPlace),
		},
	}

	itinerary := make([]ItineraryDay, 0, days)
	for day := 1; day <= days; day++ {
		itinerary = append(itinerary, placeholderDay(toPlace, day))
	}

	breakdown := CostBreakdown{
		HotelsAvg: rate * float64(days),
		Travel:    travelCost,
		Food:      foodCostPerDay * float64(days),
		Others:    otherCosts,
	}
	total := breakdown.HotelsAvg + breakdown.Travel + breakdown.Food + breakdown.Others

	return &Plan{
		DistanceKM:        estimateDistanceKM(fromPlace, toPlace),
		Hotels:            hotels,
		Itinerary:         itinerary,
		EstimateBreakdown: breakdown,
		EstimatePerPerson: total / float64(persons),
		EstimateTotal:     total,
	}
}

func placeholderDay(toPlace string, day int) ItineraryDay {
	return ItineraryDay{
		Day: day,
		Places: []PlaceVisit{
			{
				Name:        fmt.Sprintf("Day %d Main Attraction", day),
				Time:        "10:00 AM",
				MapLink:     "https://maps.google.com/?q=attractions+" + url.QueryEscape(toPlace),
				Description: "Explore local attractions and cultural sites",
				Food:        "Local cuisine restaurants nearby",
			},
		},
	}
}

func hotelsMapLink(place string) string {
	return "https://maps.google.com/?q=hotels+" + url.QueryEscape(place)
}

// cityName takes the city part of a "City, State" place descriptor.
func cityName(place string) string {
	return strings.TrimSpace(strings.SplitN(place, ",", 2)[0])
}

// estimateDistanceKM maps a route to a stable figure in [200, 1200) km.
// A hash keeps synthesized plans reproducible for the same route.
func estimateDistanceKM(fromPlace, toPlace string) float64 {
	h := fnv.New32a()
	h.Write([]byte(fromPlace + "|" + toPlace))
	return float64(200 + h.Sum32()%1000)
}
