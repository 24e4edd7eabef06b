package plan

import (
	"strings"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantFound   bool
		wantPayload string
		wantCleaned string
	}{
		{
			name:        "payload between surrounding text",
			raw:         "Here is your plan!\n%%%MEALPLAN_START%%%\n{\"days\":[]}\n%%%MEALPLAN_END%%%\nEnjoy your week.",
			wantFound:   true,
			wantPayload: `{"days":[]}`,
			wantCleaned: "Here is your plan!\n\nEnjoy your week.",
		},
		{
			name:        "payload only",
			raw:         "%%%MEALPLAN_START%%% {\"a\":1} %%%MEALPLAN_END%%%",
			wantFound:   true,
			wantPayload: `{"a":1}`,
			wantCleaned: "",
		},
		{
			name:        "no markers",
			raw:         "Tell me your age and weight first.",
			wantFound:   false,
			wantCleaned: "Tell me your age and weight first.",
		},
		{
			name:        "start marker without end marker",
			raw:         "Intro %%%MEALPLAN_START%%% {\"days\":[]}",
			wantFound:   false,
			wantCleaned: "Intro %%%MEALPLAN_START%%% {\"days\":[]}",
		},
		{
			name:        "end marker before start marker",
			raw:         "%%%MEALPLAN_END%%% text %%%MEALPLAN_START%%%",
			wantFound:   false,
			wantCleaned: "%%%MEALPLAN_END%%% text %%%MEALPLAN_START%%%",
		},
		{
			name:        "first enclosed span wins",
			raw:         "%%%MEALPLAN_START%%%one%%%MEALPLAN_END%%% mid %%%MEALPLAN_START%%%two%%%MEALPLAN_END%%%",
			wantFound:   true,
			wantPayload: "one",
			wantCleaned: "mid %%%MEALPLAN_START%%%two%%%MEALPLAN_END%%%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, cleaned, found := Extract(tt.raw)

			if found != tt.wantFound {
				t.Fatalf("found = %v, want %v", found, tt.wantFound)
			}
			if cleaned != tt.wantCleaned {
				t.Errorf("cleaned = %q, want %q", cleaned, tt.wantCleaned)
			}
			if tt.wantFound && string(payload) != tt.wantPayload {
				t.Errorf("payload = %q, want %q", payload, tt.wantPayload)
			}
			if !tt.wantFound && payload != nil {
				t.Errorf("payload = %q, want nil", payload)
			}
		})
	}
}

func TestExtractCleanedHasNoMarkers(t *testing.T) {
	raw := "  Before.\n%%%MEALPLAN_START%%%{\"x\":true}%%%MEALPLAN_END%%%\nAfter.  "

	_, cleaned, found := Extract(raw)
	if !found {
		t.Fatal("expected payload to be found")
	}
	if strings.Contains(cleaned, StartMarker) || strings.Contains(cleaned, EndMarker) {
		t.Errorf("cleaned text still contains a marker: %q", cleaned)
	}
	if cleaned != strings.TrimSpace(cleaned) {
		t.Errorf("cleaned text not trimmed: %q", cleaned)
	}
}

func TestDecodeMealPlan(t *testing.T) {
	payload := []byte(`{
		"profile": {"bmr": 1500, "tdee": 2100, "targetCalories": 1600, "protein": 120, "carbs": 160, "fat": 53, "fiber": 30, "goal": "weight_loss", "warnings": ["high LDL"]},
		"days": [{"day": 1, "dayName": "Monday"}],
		"recommendations": ["drink water"],
		"shoppingList": ["oats", "eggs"]
	}`)

	p, err := DecodeMealPlan(payload)
	if err != nil {
		t.Fatalf("DecodeMealPlan failed: %v", err)
	}

	if p.Profile.TargetCalories != 1600 {
		t.Errorf("targetCalories = %v, want 1600", p.Profile.TargetCalories)
	}
	if p.Profile.Goal != "weight_loss" {
		t.Errorf("goal = %q, want weight_loss", p.Profile.Goal)
	}
	if len(p.Days) != 1 || p.Days[0].DayName != "Monday" {
		t.Errorf("unexpected days: %+v", p.Days)
	}
	if len(p.ShoppingList) != 2 {
		t.Errorf("shoppingList = %v", p.ShoppingList)
	}
}

func TestDecodeMealPlanInvalidJSON(t *testing.T) {
	if _, err := DecodeMealPlan([]byte(`{"profile": `)); err == nil {
		t.Fatal("expected error for truncated JSON")
	}
}

func TestDecodeWeek(t *testing.T) {
	payload := []byte(`{"days": [{"day": 8, "dayName": "Monday"}], "shoppingList": ["rice"]}`)

	w, err := DecodeWeek(payload)
	if err != nil {
		t.Fatalf("DecodeWeek failed: %v", err)
	}
	if len(w.Days) != 1 || w.Days[0].Day != 8 {
		t.Errorf("unexpected days: %+v", w.Days)
	}
	if len(w.ShoppingList) != 1 || w.ShoppingList[0] != "rice" {
		t.Errorf("unexpected shoppingList: %v", w.ShoppingList)
	}
}

func TestDecodeWeekMissingListsAreEmptyNotNil(t *testing.T) {
	w, err := DecodeWeek([]byte(`{}`))
	if err != nil {
		t.Fatalf("DecodeWeek failed: %v", err)
	}
	if w.Days == nil || w.ShoppingList == nil {
		t.Errorf("expected empty slices, got days=%v shoppingList=%v", w.Days, w.ShoppingList)
	}
	if len(w.Days) != 0 || len(w.ShoppingList) != 0 {
		t.Errorf("expected empty slices, got days=%v shoppingList=%v", w.Days, w.ShoppingList)
	}
}
