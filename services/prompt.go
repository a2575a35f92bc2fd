package services

import "fmt"

// System instruction sent with every generation request. The worked example
// doubles as the output schema: field names and nesting here are exactly what
// ParsePlan expects back.
const planSchemaInstruction = `You are a travel planning AI that returns structured JSON ONLY.
IMPORTANT: Return ONLY valid JSON, no additional text or markdown.

Example format:
{
  "distance_km": 350,
  "hotels": [
    {
      "name": "Hotel Example",
      "address": "123 Main Street, City, State",
      "price_per_night": 2500,
      "map_link": "https://maps.google.com/?q=Hotel+Example+City"
    }
  ],
  "itinerary": [
    {
      "day": 1,
      "places": [
        {
          "name": "Famous Temple",
          "time": "09:00 AM",
          "map_link": "https://maps.google.com/?q=Famous+Temple+City",
          "description": "Ancient temple with beautiful architecture",
          "food": "Local street food nearby"
        }
      ]
    }
  ],
  "estimate_breakdown": {
    "hotels_avg": 2000,
    "travel": 5000,
    "food": 3000,
    "others": 2000
  },
  "estimate_per_person": 12000,
  "estimate_total": 12000
}`

// BuildPrompt turns a trip's fields into the system instruction and user
// brief for the generation backend. Pure function of its inputs.
func BuildPrompt(fromPlace, toPlace, startDate, endDate, travelMode, budgetSegment string, persons, days int) (system, user string) {
	user = fmt.Sprintf(`
Create a detailed travel plan for a trip in India with these details:
- From: %s
- To: %s
- Duration: %d days (%s to %s)
- Travelers: %d person(s)
- Budget level: %s
- Travel mode: %s

Please provide realistic information for:
1. Distance in kilometers between the cities
2. 2-3 hotel suggestions with realistic prices in INR per night
3. A %d-day itinerary with places to visit each day
4. Cost breakdown and total estimates in INR

Return ONLY valid JSON in the exact format specified, no additional text.
`, fromPlace, toPlace, days, startDate, endDate, persons, budgetSegment, travelMode, days)

	return planSchemaInstruction, user
}
