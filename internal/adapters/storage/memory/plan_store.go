package memory

import (
	"sync"

	"github.com/nutriplan/nutriplan-api/internal/domain"
)

// Compile-time interface check.
var _ domain.PlanStore = (*PlanStore)(nil)

// PlanStore keeps the captured meal plan per session.
type PlanStore struct {
	mu    sync.RWMutex
	plans map[domain.SessionID]*domain.MealPlan
}

func NewPlanStore() *PlanStore {
	return &PlanStore{
		plans: make(map[domain.SessionID]*domain.MealPlan),
	}
}

func (s *PlanStore) GetPlan(id domain.SessionID) (*domain.MealPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.plans[id]
	if !ok {
		return nil, domain.ErrPlanNotFound
	}

	out := *p
	return &out, nil
}

func (s *PlanStore) PutPlan(id domain.SessionID, plan *domain.MealPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *plan
	s.plans[id] = &stored
	return nil
}

func (s *PlanStore) DeletePlan(id domain.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.plans, id)
	return nil
}
