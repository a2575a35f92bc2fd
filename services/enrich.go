package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"tripscout/database"
)

// Provenance values persisted with every plan.
const (
	SourceGenerated = "generated"
	SourceFallback  = "fallback"
)

var ErrTripNotFound = errors.New("trip not found")

// TripStore is the persistence collaborator; database.Store implements it.
type TripStore interface {
	GetTrip(id string) (*database.Trip, error)
	UpdateTripEnrichment(id string, e database.Enrichment) error
}

// PlanGenerator is the generation collaborator; *AIClient implements it.
type PlanGenerator interface {
	Invoke(ctx context.Context, system, user string) (string, error)
	Configured() bool
}

type RunState string

const (
	StateLoading    RunState = "loading"
	StateBuilding   RunState = "building"
	StateInvoking   RunState = "invoking"
	StateValidating RunState = "validating"
	StatePersisting RunState = "persisting"
	StateDone       RunState = "done"
)

type Enricher struct {
	Store TripStore
	AI    PlanGenerator
}

var enricher *Enricher

func InitEnricher(store TripStore, ai PlanGenerator) {
	enricher = &Enricher{Store: store, AI: ai}
}

func GetEnricher() *Enricher {
	return enricher
}

type EnrichmentResult struct {
	TripID string `json:"trip_id"`
	Source string `json:"source"`
	Plan   *Plan  `json:"plan"`

	// States records the path the run took, in order.
	States []RunState `json:"-"`
}

// EnrichTrip runs one enrichment pass for a trip: build the prompt, invoke the
// generation backend, validate its output, and persist the plan. Any failure
// at the invoke or validate step drops to the synthesizer, so the only errors
// it returns are a missing trip, a missing API credential, and a failed write.
// The run is idempotent — repeating it replaces the previous plan wholesale.
func (e *Enricher) EnrichTrip(ctx context.Context, tripID string) (*EnrichmentResult, error) {
	var states []RunState
	step := func(s RunState) {
		states = append(states, s)
		log.Printf("🔹 Enrich %s: %s", tripID, s)
	}

	step(StateLoading)
	trip, err := e.Store.GetTrip(tripID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTripNotFound
		}
		return nil, fmt.Errorf("load trip: %w", err)
	}

	// A missing credential means the service cannot work at all; that is a
	// deployment problem, not a data problem, so it never falls back.
	if !e.AI.Configured() {
		return nil, ErrNotConfigured
	}

	days := TripDurationDays(trip.StartDate, trip.EndDate)

	step(StateBuilding)
	system, user := BuildPrompt(trip.FromPlace, trip.ToPlace, trip.StartDate, trip.EndDate,
		trip.TravelMode, trip.BudgetSegment, trip.Persons, days)

	source := SourceGenerated
	var plan *Plan

	step(StateInvoking)
	raw, err := e.AI.Invoke(ctx, system, user)
	if err != nil {
		log.Printf("⚠️  Generation failed for trip %s: %v — using fallback plan", tripID, err)
		source = SourceFallback
		plan = SynthesizePlan(trip.FromPlace, trip.ToPlace, trip.BudgetSegment, days, trip.Persons)
	} else {
		step(StateValidating)
		plan, err = ParsePlan(raw)
		if err != nil {
			log.Printf("⚠️  Unusable model output for trip %s: %v — using fallback plan", tripID, err)
			source = SourceFallback
			plan = SynthesizePlan(trip.FromPlace, trip.ToPlace, trip.BudgetSegment, days, trip.Persons)
		}
	}

	step(StatePersisting)
	NormalizePlan(plan, trip.ToPlace, days)

	estimates := TravelEstimates{
		Mode:      trip.TravelMode,
		Source:    source,
		Breakdown: plan.EstimateBreakdown,
	}

	hotelsJSON, err := json.Marshal(plan.Hotels)
	if err != nil {
		return nil, fmt.Errorf("marshal hotels: %w", err)
	}
	itineraryJSON, err := json.Marshal(plan.Itinerary)
	if err != nil {
		return nil, fmt.Errorf("marshal itinerary: %w", err)
	}
	estimatesJSON, err := json.Marshal(estimates)
	if err != nil {
		return nil, fmt.Errorf("marshal travel estimates: %w", err)
	}

	if err := e.Store.UpdateTripEnrichment(tripID, database.Enrichment{
		DistanceKM:        plan.DistanceKM,
		EstimatePerPerson: plan.EstimatePerPerson,
		EstimateTotal:     plan.EstimateTotal,
		Hotels:            hotelsJSON,
		Itinerary:         itineraryJSON,
		TravelEstimates:   estimatesJSON,
		EnrichedAt:        time.Now().UTC(),
	}); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTripNotFound
		}
		return nil, fmt.Errorf("persist enrichment: %w", err)
	}

	step(StateDone)
	log.Printf("✅ Trip %s enriched (source: %s, %d days)", tripID, source, days)

	return &EnrichmentResult{
		TripID: tripID,
		Source: source,
		Plan:   plan,
		States: states,
	}, nil
}

// TripDurationDays computes the inclusive day count of a trip: both the start
// and end dates count as travel days, so a same-day trip lasts 1 day and
// 2024-01-10..2024-01-12 lasts 3. Itinerary generation depends on this
// convention; do not "fix" it to a nights count.
func TripDurationDays(startDate, endDate string) int {
	start, err1 := time.Parse("2006-01-02", startDate)
	end, err2 := time.Parse("2006-01-02", endDate)
	if err1 != nil || err2 != nil {
		return 1
	}

	days := int(math.Ceil(end.Sub(start).Hours()/24)) + 1
	if days < 1 {
		return 1
	}
	return days
}
