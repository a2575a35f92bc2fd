package services

// Plan is the structured travel plan produced by the generation model or the
// synthesizer. Field names match the JSON contract given to the model, so a
// conforming response unmarshals directly into it; absent numeric fields land
// on their zero values and absent lists stay nil until normalization.
type Plan struct {
	DistanceKM        float64        `json:"distance_km"`
	Hotels            []HotelOption  `json:"hotels"`
	Itinerary         []ItineraryDay `json:"itinerary"`
	EstimateBreakdown CostBreakdown  `json:"estimate_breakdown"`
	EstimatePerPerson float64        `json:"estimate_per_person"`
	EstimateTotal     float64        `json:"estimate_total"`
}

type HotelOption struct {
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	PricePerNight float64 `json:"price_per_night"`
	MapLink       string  `json:"map_link"`
}

type ItineraryDay struct {
	Day    int          `json:"day"`
	Places []PlaceVisit `json:"places"`
}

type PlaceVisit struct {
	Name        string `json:"name"`
	Time        string `json:"time"`
	MapLink     string `json:"map_link"`
	Description string `json:"description"`
	Food        string `json:"food,omitempty"`
}

type CostBreakdown struct {
	HotelsAvg float64 `json:"hotels_avg"`
	Travel    float64 `json:"travel"`
	Food      float64 `json:"food"`
	Others    float64 `json:"others"`
}

// TravelEstimates is the provenance-tagged cost summary persisted with a trip.
type TravelEstimates struct {
	Mode      string        `json:"mode"`
	Source    string        `json:"source"`
	Breakdown CostBreakdown `json:"breakdown"`
}

const maxHotelOptions = 3

// NormalizePlan fixes up a plan in place so it satisfies the persistence
// contract regardless of what the upstream produced: at most three hotels, an
// itinerary of exactly `days` entries numbered 1..days, empty lists instead of
// nil, and no negative money or distance values. Short itineraries are padded
// with placeholder days for the destination.
func NormalizePlan(p *Plan, toPlace string, days int) {
	if days < 1 {
		days = 1
	}

	if p.Hotels == nil {
		p.Hotels = []HotelOption{}
	}
	if len(p.Hotels) > maxHotelOptions {
		p.Hotels = p.Hotels[:maxHotelOptions]
	}
	for i := range p.Hotels {
		if p.Hotels[i].PricePerNight < 0 {
			p.Hotels[i].PricePerNight = 0
		}
	}

	if p.Itinerary == nil {
		p.Itinerary = []ItineraryDay{}
	}
	if len(p.Itinerary) > days {
		p.Itinerary = p.Itinerary[:days]
	}
	for len(p.Itinerary) < days {
		p.Itinerary = append(p.Itinerary, placeholderDay(toPlace, len(p.Itinerary)+1))
	}
	for i := range p.Itinerary {
		p.Itinerary[i].Day = i + 1
		if p.Itinerary[i].Places == nil {
			p.Itinerary[i].Places = []PlaceVisit{}
		}
	}

	if p.DistanceKM < 0 {
		p.DistanceKM = 0
	}
	if p.EstimatePerPerson < 0 {
		p.EstimatePerPerson = 0
	}
	if p.EstimateTotal < 0 {
		p.EstimateTotal = 0
	}
	if p.EstimateBreakdown.HotelsAvg < 0 {
		p.EstimateBreakdown.HotelsAvg = 0
	}
	if p.EstimateBreakdown.Travel < 0 {
		p.EstimateBreakdown.Travel = 0
	}
	if p.EstimateBreakdown.Food < 0 {
		p.EstimateBreakdown.Food = 0
	}
	if p.EstimateBreakdown.Others < 0 {
		p.EstimateBreakdown.Others = 0
	}
}
