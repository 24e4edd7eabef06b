// Package plan locates and decodes the marker-delimited meal-plan
// payload the model embeds in its replies.
package plan

import (
	"encoding/json"
	"strings"

	"github.com/nutriplan/nutriplan-api/internal/domain"
)

// Markers delimiting the JSON payload inside a model reply. These are
// part of the prompt contract and must match the prompt text exactly.
const (
	StartMarker = "%%%MEALPLAN_START%%%"
	EndMarker   = "%%%MEALPLAN_END%%%"
)

// Extract scans raw model output for the first start marker and the
// first end marker after it (the shortest enclosed span).
//
// When a delimited block is found, Extract returns the trimmed interior
// bytes, the surrounding text with the block and markers removed and
// whitespace trimmed, and true. Otherwise it returns nil, the input
// unchanged, and false. A start marker with no later end marker counts
// as not found.
func Extract(raw string) (payload []byte, cleaned string, found bool) {
	start := strings.Index(raw, StartMarker)
	if start < 0 {
		return nil, raw, false
	}

	rest := raw[start+len(StartMarker):]
	end := strings.Index(rest, EndMarker)
	if end < 0 {
		return nil, raw, false
	}

	payload = []byte(strings.TrimSpace(rest[:end]))
	cleaned = strings.TrimSpace(raw[:start] + rest[end+len(EndMarker):])
	return payload, cleaned, true
}

// DecodeMealPlan parses a full plan payload: profile, days,
// recommendations, shopping list.
func DecodeMealPlan(payload []byte) (*domain.MealPlan, error) {
	var p domain.MealPlan
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DecodeWeek parses a continuation payload: days and shopping list only.
// Missing lists decode to empty slices rather than nil so the response
// always carries both keys.
func DecodeWeek(payload []byte) (*domain.WeekSlice, error) {
	var w domain.WeekSlice
	if err := json.Unmarshal(payload, &w); err != nil {
		return nil, err
	}
	if w.Days == nil {
		w.Days = []domain.DayPlan{}
	}
	if w.ShoppingList == nil {
		w.ShoppingList = []string{}
	}
	return &w, nil
}
