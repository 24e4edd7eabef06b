// Package weekplan implements the stateless week continuation: one
// self-contained generation request per extra week, no history replay.
package weekplan

import (
	"context"
	"errors"
	"fmt"

	"github.com/nutriplan/nutriplan-api/internal/adapters/llm"
	"github.com/nutriplan/nutriplan-api/internal/domain"
	"github.com/nutriplan/nutriplan-api/internal/observability"
	"github.com/nutriplan/nutriplan-api/internal/plan"
)

type Service struct {
	model domain.ModelClient
	plans domain.PlanStore
	locks domain.SessionLocker
}

func NewService(model domain.ModelClient, plans domain.PlanStore, locks domain.SessionLocker) *Service {
	return &Service{
		model: model,
		plans: plans,
		locks: locks,
	}
}

type GenerateWeekInput struct {
	// Profile is caller-supplied ground truth, computed by the model in
	// an earlier conversation and never recomputed here.
	Profile domain.Profile

	// CurrentWeek is the number of weeks already generated. Values
	// below 1 are treated as 1, so the first continuation always
	// requests days 8 through 14.
	CurrentWeek int

	// Preferences is optional free text forwarded into the prompt.
	Preferences string

	// SessionID, when set, names a session whose stored plan the new
	// week is merged into. The response still carries only the
	// incremental slice.
	SessionID domain.SessionID
}

// GenerateWeek requests seven more days for an existing plan. Unlike the
// chat path there is no textual fallback here: a reply without a
// parseable payload is an error.
func (s *Service) GenerateWeek(ctx context.Context, in GenerateWeekInput) (*domain.WeekSlice, error) {
	currentWeek := in.CurrentWeek
	if currentWeek < 1 {
		currentWeek = 1
	}

	log := observability.LoggerFromContext(ctx).With("current_week", currentWeek)

	prompt := llm.BuildWeekPrompt(in.Profile, currentWeek, in.Preferences)

	raw, err := s.model.Generate(ctx, prompt)
	if err != nil {
		log.Error("week generation failed", "error", err)
		return nil, err
	}

	payload, _, found := plan.Extract(raw)
	if !found {
		log.Error("week generation reply carried no plan payload")
		return nil, domain.ErrNoPlanPayload
	}

	week, err := plan.DecodeWeek(payload)
	if err != nil {
		log.Error("failed to parse week payload", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrNoPlanPayload, err)
	}

	if in.SessionID != "" {
		if err := s.mergeIntoStored(in.SessionID, week); err != nil {
			log.Error("failed to merge week into stored plan", "error", err)
			return nil, err
		}
	}

	log.Info("week generated", "days", len(week.Days))
	return week, nil
}

// mergeIntoStored folds the slice into the session's stored plan, if
// one exists. A session without a plan is left alone. The session lock
// is held across the read-merge-write cycle so a chat exchange
// capturing a plan and a merge can never interleave.
func (s *Service) mergeIntoStored(id domain.SessionID, week *domain.WeekSlice) error {
	release := s.locks.LockSession(id)
	defer release()

	stored, err := s.plans.GetPlan(id)
	if errors.Is(err, domain.ErrPlanNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	stored.MergeWeek(*week)
	return s.plans.PutPlan(id, stored)
}
