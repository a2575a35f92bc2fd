package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlanPlainJSON(t *testing.T) {
	plan, err := ParsePlan(`{"distance_km": 420, "estimate_total": 15000}`)
	require.NoError(t, err)
	assert.Equal(t, 420.0, plan.DistanceKM)
	assert.Equal(t, 15000.0, plan.EstimateTotal)
}

func TestParsePlanStripsCodeFences(t *testing.T) {
	raw := "```json\n{\"distance_km\": 350, \"hotels\": [{\"name\": \"Hotel A\", \"price_per_night\": 2500}]}\n```"
	plan, err := ParsePlan(raw)
	require.NoError(t, err)
	assert.Equal(t, 350.0, plan.DistanceKM)
	require.Len(t, plan.Hotels, 1)
	assert.Equal(t, "Hotel A", plan.Hotels[0].Name)
}

func TestParsePlanPartialFieldsCoerceToZero(t *testing.T) {
	plan, err := ParsePlan(`{"itinerary": [{"day": 1, "places": []}]}`)
	require.NoError(t, err)
	assert.Zero(t, plan.DistanceKM)
	assert.Zero(t, plan.EstimatePerPerson)
	assert.Nil(t, plan.Hotels)
	require.Len(t, plan.Itinerary, 1)
}

func TestParsePlanRejectsNonJSON(t *testing.T) {
	_, err := ParsePlan("Sure! Here is your travel plan: Day 1 visit the beach...")
	assert.Error(t, err)
}

func TestParsePlanRejectsEmpty(t *testing.T) {
	_, err := ParsePlan("```json\n```")
	assert.Error(t, err)
}
