package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	system, user := BuildPrompt("Mumbai, Maharashtra", "Goa", "2024-02-01", "2024-02-03",
		"train", "Medium", 2, 3)

	assert.Contains(t, system, "ONLY valid JSON")
	assert.Contains(t, system, `"price_per_night"`)
	assert.Contains(t, system, `"estimate_breakdown"`)

	assert.Contains(t, user, "Mumbai, Maharashtra")
	assert.Contains(t, user, "Goa")
	assert.Contains(t, user, "3 days")
	assert.Contains(t, user, "3-day itinerary")
	assert.Contains(t, user, "2 person(s)")
	assert.Contains(t, user, "Medium")
	assert.Contains(t, user, "train")
	assert.Contains(t, user, "INR")
}

func TestBuildPromptIsPure(t *testing.T) {
	s1, u1 := BuildPrompt("Delhi", "Agra", "2024-05-01", "2024-05-02", "car", "Low", 1, 2)
	s2, u2 := BuildPrompt("Delhi", "Agra", "2024-05-01", "2024-05-02", "car", "Low", 1, 2)
	assert.Equal(t, s1, s2)
	assert.Equal(t, u1, u2)
}
