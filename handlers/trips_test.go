package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"tripscout/database"
	"tripscout/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	trip   *database.Trip
	getErr error
}

func (s *stubStore) GetTrip(id string) (*database.Trip, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.trip, nil
}

func (s *stubStore) UpdateTripEnrichment(id string, e database.Enrichment) error {
	return nil
}

type stubGenerator struct {
	text string
	err  error
}

func (g *stubGenerator) Invoke(ctx context.Context, system, user string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.text, nil
}

func (g *stubGenerator) Configured() bool { return true }

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api")
	api.POST("/trips", CreateTripHandler)
	api.POST("/trips/:id/enrich", EnrichTripHandler)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateTripRejectsUnknownTravelMode(t *testing.T) {
	r := newTestRouter()
	w := postJSON(t, r, "/api/trips", `{
		"from_place": "Mumbai", "to_place": "Goa",
		"start_date": "2024-02-01", "end_date": "2024-02-03",
		"travel_mode": "teleport", "budget_segment": "Medium"
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "travel mode")
}

func TestCreateTripRejectsUnknownBudgetSegment(t *testing.T) {
	r := newTestRouter()
	w := postJSON(t, r, "/api/trips", `{
		"from_place": "Mumbai", "to_place": "Goa",
		"start_date": "2024-02-01", "end_date": "2024-02-03",
		"travel_mode": "train", "budget_segment": "Ultra"
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "budget segment")
}

func TestCreateTripRejectsEndBeforeStart(t *testing.T) {
	r := newTestRouter()
	w := postJSON(t, r, "/api/trips", `{
		"from_place": "Mumbai", "to_place": "Goa",
		"start_date": "2024-02-03", "end_date": "2024-02-01",
		"travel_mode": "train", "budget_segment": "Medium"
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTripRejectsMissingFields(t *testing.T) {
	r := newTestRouter()
	w := postJSON(t, r, "/api/trips", `{"from_place": "Mumbai"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEnrichTripHandlerNotFound(t *testing.T) {
	services.InitEnricher(&stubStore{getErr: sql.ErrNoRows}, &stubGenerator{})
	r := newTestRouter()

	w := postJSON(t, r, "/api/trips/ghost/enrich", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEnrichTripHandlerFallback(t *testing.T) {
	trip := &database.Trip{
		ID: "trip-1", FromPlace: "Mumbai, Maharashtra", ToPlace: "Goa",
		StartDate: "2024-02-01", EndDate: "2024-02-03",
		TravelMode: "train", BudgetSegment: "Medium", Persons: 2,
	}
	services.InitEnricher(&stubStore{trip: trip}, &stubGenerator{err: services.ErrModelsExhausted})
	r := newTestRouter()

	w := postJSON(t, r, "/api/trips/trip-1/enrich", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp EnrichResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, services.SourceFallback, resp.Source)
	require.NotNil(t, resp.Plan)
	assert.Len(t, resp.Plan.Itinerary, 3)
}

func TestEnrichTripHandlerGenerated(t *testing.T) {
	trip := &database.Trip{
		ID: "trip-1", FromPlace: "Delhi", ToPlace: "Agra",
		StartDate: "2024-05-01", EndDate: "2024-05-02",
		TravelMode: "car", BudgetSegment: "Low", Persons: 1,
	}
	services.InitEnricher(&stubStore{trip: trip}, &stubGenerator{text: `{"distance_km": 230}`})
	r := newTestRouter()

	w := postJSON(t, r, "/api/trips/trip-1/enrich", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp EnrichResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, services.SourceGenerated, resp.Source)
	assert.Equal(t, 230.0, resp.Plan.DistanceKM)
}
