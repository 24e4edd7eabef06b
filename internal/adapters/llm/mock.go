package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/nutriplan/nutriplan-api/internal/domain"
)

// MockClient is a deterministic stand-in for the Gemini client, useful
// for local development and tests without an API key.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

// Chat echoes the user message back in a canned assistant voice. It
// never emits a meal-plan block.
func (m *MockClient) Chat(ctx context.Context, history []domain.Turn, message string) (string, error) {
	if message == GreetingRequest {
		return "Hello! I'm NutriPlan. What is your nutrition goal?", nil
	}
	return fmt.Sprintf("Noted: %q. Tell me more about your goals, weight, height and activity level.", message), nil
}

// Generate answers a week continuation prompt with a minimal but valid
// marker-delimited payload: seven placeholder days and a short shopping
// list. Day numbering follows the range requested in the prompt.
func (m *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	start := weekStartDay(prompt)

	week := domain.WeekSlice{
		ShoppingList: []string{"oats", "chicken breast", "spinach"},
	}

	names := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	for i := 0; i < 7; i++ {
		week.Days = append(week.Days, domain.DayPlan{
			Day:     start + i,
			DayName: names[i],
		})
	}

	payload, err := json.Marshal(week)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("%%%MEALPLAN_START%%%\n")
	b.Write(payload)
	b.WriteString("\n%%%MEALPLAN_END%%%")
	return b.String(), nil
}

// weekStartDay pulls the first day number out of a "(Days N-M)" range in
// the prompt. Prompts without one get 8, a first continuation.
func weekStartDay(prompt string) int {
	const markerText = "(Days "
	i := strings.Index(prompt, markerText)
	if i < 0 {
		return 8
	}
	rest := prompt[i+len(markerText):]
	dash := strings.IndexByte(rest, '-')
	if dash < 0 {
		return 8
	}
	start, err := strconv.Atoi(rest[:dash])
	if err != nil || start < 1 {
		return 8
	}
	return start
}
