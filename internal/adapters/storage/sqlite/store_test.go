package sqlite

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/nutriplan/nutriplan-api/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(filepath.Join(t.TempDir(), "nutriplan.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleHistory() []domain.Turn {
	return []domain.Turn{
		{Role: domain.RoleUser, Text: "System Instructions: be helpful"},
		{Role: domain.RoleModel, Text: "Understood."},
		{Role: domain.RoleUser, Text: "I want to lose weight"},
		{Role: domain.RoleModel, Text: "Let's talk goals."},
	}
}

func TestGetAbsentSession(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Get("missing"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	s := newTestStore(t)

	want := sampleHistory()
	if err := s.Put("s1", want); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := s.Get("s1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("len(history) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("history[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestPutReplacesHistory(t *testing.T) {
	s := newTestStore(t)

	if err := s.Put("s1", sampleHistory()); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	shorter := []domain.Turn{{Role: domain.RoleUser, Text: "fresh start"}}
	if err := s.Put("s1", shorter); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	got, err := s.Get("s1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got) != 1 || got[0].Text != "fresh start" {
		t.Errorf("history = %+v, want the replacement only", got)
	}
}

func TestDeleteSession(t *testing.T) {
	s := newTestStore(t)

	if err := s.Put("s1", sampleHistory()); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := s.Delete("s1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get("s1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound after delete", err)
	}

	// Deleting an absent session is not an error.
	if err := s.Delete("never-existed"); err != nil {
		t.Errorf("deleting absent session: %v", err)
	}
}

func TestHistoriesAreIsolatedPerSession(t *testing.T) {
	s := newTestStore(t)

	if err := s.Put("s1", sampleHistory()); err != nil {
		t.Fatalf("Put s1 failed: %v", err)
	}
	other := []domain.Turn{{Role: domain.RoleUser, Text: "different session"}}
	if err := s.Put("s2", other); err != nil {
		t.Fatalf("Put s2 failed: %v", err)
	}
	if err := s.Delete("s1"); err != nil {
		t.Fatalf("Delete s1 failed: %v", err)
	}

	got, err := s.Get("s2")
	if err != nil {
		t.Fatalf("Get s2 failed: %v", err)
	}
	if len(got) != 1 || got[0].Text != "different session" {
		t.Errorf("s2 history = %+v, want untouched", got)
	}
}

func TestPlanRoundTripAndUpsert(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.GetPlan("s1"); !errors.Is(err, domain.ErrPlanNotFound) {
		t.Fatalf("err = %v, want ErrPlanNotFound before any plan", err)
	}

	first := &domain.MealPlan{
		Profile:      domain.Profile{TargetCalories: 1600, Goal: "weight_loss"},
		Days:         make([]domain.DayPlan, 7),
		ShoppingList: []string{"rice", "oats"},
	}
	if err := s.PutPlan("s1", first); err != nil {
		t.Fatalf("PutPlan failed: %v", err)
	}

	got, err := s.GetPlan("s1")
	if err != nil {
		t.Fatalf("GetPlan failed: %v", err)
	}
	if got.Profile.TargetCalories != 1600 || len(got.Days) != 7 {
		t.Errorf("stored plan = %+v, want the original", got)
	}

	// A second PutPlan for the same session replaces, not duplicates.
	second := &domain.MealPlan{
		Profile:      domain.Profile{TargetCalories: 2000, Goal: "maintenance"},
		Days:         make([]domain.DayPlan, 14),
		ShoppingList: []string{"salmon"},
	}
	if err := s.PutPlan("s1", second); err != nil {
		t.Fatalf("second PutPlan failed: %v", err)
	}

	got, err = s.GetPlan("s1")
	if err != nil {
		t.Fatalf("GetPlan after replace failed: %v", err)
	}
	if got.Profile.TargetCalories != 2000 || len(got.Days) != 14 {
		t.Errorf("plan after replace = %+v, want the replacement", got)
	}
	if len(got.ShoppingList) != 1 || got.ShoppingList[0] != "salmon" {
		t.Errorf("shoppingList = %v, want [salmon]", got.ShoppingList)
	}
}

func TestDeletePlan(t *testing.T) {
	s := newTestStore(t)

	if err := s.PutPlan("s1", &domain.MealPlan{Days: make([]domain.DayPlan, 7)}); err != nil {
		t.Fatalf("PutPlan failed: %v", err)
	}
	if err := s.DeletePlan("s1"); err != nil {
		t.Fatalf("DeletePlan failed: %v", err)
	}
	if _, err := s.GetPlan("s1"); !errors.Is(err, domain.ErrPlanNotFound) {
		t.Errorf("err = %v, want ErrPlanNotFound after delete", err)
	}

	if err := s.DeletePlan("never-existed"); err != nil {
		t.Errorf("deleting absent plan: %v", err)
	}
}

func TestDataSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nutriplan.db")

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if err := s.Put("s1", sampleHistory()); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := s.PutPlan("s1", &domain.MealPlan{Days: make([]domain.DayPlan, 7)}); err != nil {
		t.Fatalf("PutPlan failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	t.Cleanup(func() { reopened.Close() })

	history, err := reopened.Get("s1")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if len(history) != len(sampleHistory()) {
		t.Errorf("len(history) = %d after reopen, want %d", len(history), len(sampleHistory()))
	}

	plan, err := reopened.GetPlan("s1")
	if err != nil {
		t.Fatalf("GetPlan after reopen failed: %v", err)
	}
	if len(plan.Days) != 7 {
		t.Errorf("len(plan.Days) = %d after reopen, want 7", len(plan.Days))
	}
}

func TestLockSessionSerializes(t *testing.T) {
	s := newTestStore(t)

	release := s.LockSession("s1")

	acquired := make(chan struct{})
	go func() {
		r := s.LockSession("s1")
		close(acquired)
		r()
	}()

	select {
	case <-acquired:
		t.Fatal("second LockSession succeeded while the first was held")
	default:
	}

	release()
	<-acquired

	// Different sessions never contend.
	var wg sync.WaitGroup
	for _, id := range []domain.SessionID{"a", "b", "c"} {
		wg.Add(1)
		go func(id domain.SessionID) {
			defer wg.Done()
			r := s.LockSession(id)
			r()
		}(id)
	}
	wg.Wait()
}
