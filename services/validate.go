package services

import (
	"encoding/json"
	"fmt"
	"strings"
)

var fenceStripper = strings.NewReplacer("```json", "", "```", "")

// ParsePlan parses the raw model output into a Plan. Models wrap their JSON in
// markdown code fences often enough that those are stripped first. The only
// hard failure is text that is not JSON at all — missing fields are left to
// NormalizePlan to coerce, because a partial-but-parseable plan is worth more
// than no plan.
func ParsePlan(raw string) (*Plan, error) {
	cleaned := strings.TrimSpace(fenceStripper.Replace(raw))
	if cleaned == "" {
		return nil, fmt.Errorf("model response is empty after cleanup")
	}

	var p Plan
	if err := json.Unmarshal([]byte(cleaned), &p); err != nil {
		return nil, fmt.Errorf("model response is not valid JSON: %w", err)
	}
	return &p, nil
}
