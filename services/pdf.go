package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

type PlanPDFData struct {
	FromPlace     string
	ToPlace       string
	StartDate     string
	EndDate       string
	TravelMode    string
	BudgetSegment string
	Persons       int
	Days          int
	Plan          *Plan
	Source        string // "generated" or "fallback"
	EnrichedAt    time.Time
}

// GeneratePlanPDF renders the enriched plan as a printable document and
// returns raw bytes (no filesystem needed).
func GeneratePlanPDF(data PlanPDFData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "TripScout", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "Your Travel Plan", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	// ── Disclaimer ───────────────────────────────────────────
	pdf.SetFillColor(255, 248, 225)
	pdf.SetDrawColor(212, 168, 67)
	pdf.SetTextColor(130, 90, 20)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetLineWidth(0.4)
	y := pdf.GetY()
	pdf.Rect(20, y, 170, 12, "FD")
	pdf.SetXY(23, y+2)
	disclaimer := "This is NOT a booking confirmation. Prices are estimates and subject to change. Please verify with providers before booking."
	if data.Source == SourceFallback {
		disclaimer = "ESTIMATED PLAN - generated offline from your trip details. This is NOT a booking confirmation. Verify all prices before booking."
	}
	pdf.MultiCell(164, 4, disclaimer, "", "C", false)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Ln(6)

	// ── Section Helpers ──────────────────────────────────────
	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, value, "", 1, "L", false, 0, "")
	}

	// ── Trip Overview ─────────────────────────────────────────
	sectionHeader("Trip Overview")
	row("Route", fmt.Sprintf("%s -> %s", data.FromPlace, data.ToPlace))
	row("Dates", fmt.Sprintf("%s to %s (%d days)", fmtDateReadable(data.StartDate), fmtDateReadable(data.EndDate), data.Days))
	row("Travelers", fmt.Sprintf("%d person(s)", data.Persons))
	row("Travel mode", data.TravelMode)
	row("Budget style", data.BudgetSegment)
	if data.Plan.DistanceKM > 0 {
		row("Distance", fmt.Sprintf("%.0f km", data.Plan.DistanceKM))
	}
	pdf.Ln(4)

	// ── Hotels ────────────────────────────────────────────────
	if len(data.Plan.Hotels) > 0 {
		sectionHeader("Hotel Options")
		for _, h := range data.Plan.Hotels {
			row(h.Name, fmt.Sprintf("INR %.0f/night - %s", h.PricePerNight, h.Address))
		}
		pdf.Ln(4)
	}

	// ── Itinerary ─────────────────────────────────────────────
	sectionHeader("Day-by-Day Itinerary")
	for _, day := range data.Plan.Itinerary {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(13, 24, 37)
		pdf.CellFormat(170, 7, fmt.Sprintf("Day %d", day.Day), "", 1, "L", false, 0, "")
		pdf.SetTextColor(40, 40, 40)
		for _, place := range day.Places {
			pdf.SetFont("Helvetica", "B", 9)
			pdf.CellFormat(170, 5, fmt.Sprintf("  %s - %s", place.Time, place.Name), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 9)
			if place.Description != "" {
				pdf.MultiCell(164, 4, "    "+place.Description, "", "L", false)
			}
			if place.Food != "" {
				pdf.MultiCell(164, 4, "    Food: "+place.Food, "", "L", false)
			}
		}
		pdf.Ln(1)
	}
	pdf.Ln(3)

	// ── Cost Estimate ─────────────────────────────────────────
	sectionHeader("Cost Estimate")
	b := data.Plan.EstimateBreakdown
	row("Hotels", fmt.Sprintf("INR %.0f", b.HotelsAvg))
	row("Travel", fmt.Sprintf("INR %.0f", b.Travel))
	row("Food", fmt.Sprintf("INR %.0f", b.Food))
	row("Others", fmt.Sprintf("INR %.0f", b.Others))
	row("Per person", fmt.Sprintf("INR %.0f", data.Plan.EstimatePerPerson))

	pdf.SetFillColor(212, 168, 67)
	pdf.SetTextColor(13, 24, 37)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(55, 9, "TOTAL ESTIMATE", "", 0, "L", true, 0, "")
	pdf.CellFormat(115, 9, fmt.Sprintf("INR %.0f", data.Plan.EstimateTotal), "", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	// ── Footer ────────────────────────────────────────────────
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8,
		fmt.Sprintf("Generated by TripScout on %s - Not a booking confirmation - Prices subject to change",
			data.EnrichedAt.Format("02 Jan 2006")),
		"", 0, "C", false, 0, "")

	// ── Write to buffer ───────────────────────────────────────
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func fmtDateReadable(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02 Jan 2006")
}
