// Package conversation implements the chat exchange cycle: seed, send,
// extract, commit.
package conversation

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
	convs domain.ConversationStore
	plans domain.PlanStore

	// maxHistoryTurns caps stored history length. 0 means unbounded.
	// Trimming preserves the seed pair and drops the oldest exchanges.
	maxHistoryTurns int
}

type Option func(*Service)

// WithMaxHistoryTurns caps how many turns a session keeps. Values below
// the seed pair plus one exchange are raised to that minimum.
func WithMaxHistoryTurns(n int) Option {
	return func(s *Service) {
		if n > 0 && n < domain.SeedTurnCount+2 {
			n = domain.SeedTurnCount + 2
		}
		s.maxHistoryTurns = n
	}
}

func NewService(model domain.ModelClient, convs domain.ConversationStore, plans domain.PlanStore, opts ...Option) *Service {
	s := &Service{
		model: model,
		convs: convs,
		plans: plans,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Start seeds a session and elicits the opening greeting. Starting an
// existing session resets it: prior history and any captured plan are
// discarded and the session is reseeded.
func (s *Service) Start(ctx context.Context, id domain.SessionID) (string, error) {
	log := observability.LoggerFromContext(ctx).With("session_id", id)

	release := s.convs.LockSession(id)
	defer release()

	seed := llm.SeedTurns()

	reply, err := s.model.Chat(ctx, seed, llm.GreetingRequest)
	if err != nil {
		log.Error("greeting request failed", "error", err)
		return "", err
	}

	history := append(seed,
		domain.Turn{Role: domain.RoleUser, Text: llm.GreetingRequest},
		domain.Turn{Role: domain.RoleModel, Text: reply},
	)
	if err := s.convs.Put(id, history); err != nil {
		log.Error("failed to store seeded history", "error", err)
		return "", err
	}
	if err := s.plans.DeletePlan(id); err != nil {
		log.Error("failed to drop previous plan", "error", err)
		return "", err
	}

	log.Info("session started")
	return reply, nil
}

type ChatOutput struct {
	Message  string
	MealPlan *domain.MealPlan
}

// Chat appends one exchange to a session. A session that was never
// started is seeded on the fly. Turns are committed only after the
// model call succeeds, so an upstream failure leaves history untouched.
//
// When the reply carries a delimited plan payload, the payload is
// parsed, stored, and returned alongside the reply text with the block
// stripped. A payload that fails to parse degrades silently: the raw
// reply is delivered and no plan is produced.
func (s *Service) Chat(ctx context.Context, id domain.SessionID, message string) (*ChatOutput, error) {
	log := observability.LoggerFromContext(ctx).With("session_id", id)

	release := s.convs.LockSession(id)
	defer release()

	history, err := s.convs.Get(id)
	if errors.Is(err, domain.ErrSessionNotFound) {
		history = llm.SeedTurns()
	} else if err != nil {
		log.Error("failed to load history", "error", err)
		return nil, err
	}

	reply, err := s.model.Chat(ctx, history, message)
	if err != nil {
		log.Error("model call failed", "error", err)
		return nil, err
	}

	out := &ChatOutput{Message: reply}

	if payload, cleaned, found := plan.Extract(reply); found {
		mealPlan, derr := plan.DecodeMealPlan(payload)
		if derr != nil {
			// Delimited block with broken JSON: keep the textual reply,
			// markers and all, and carry on without a plan.
			log.Warn("failed to parse meal plan payload", "error", derr)
		} else {
			if err := s.plans.PutPlan(id, mealPlan); err != nil {
				log.Error("failed to store meal plan", "error", err)
				return nil, err
			}
			out.Message = cleaned
			out.MealPlan = mealPlan
			log.Info("meal plan captured", "days", len(mealPlan.Days))
		}
	}

	// The stored model turn keeps the raw reply, payload included, so
	// the model sees its own plan in later context.
	history = append(history,
		domain.Turn{Role: domain.RoleUser, Text: message},
		domain.Turn{Role: domain.RoleModel, Text: reply},
	)
	if err := s.convs.Put(id, s.capHistory(history)); err != nil {
		log.Error("failed to store history", "error", err)
		return nil, err
	}

	log.Info("chat exchange completed", "history_len", len(history))
	return out, nil
}

// Clear removes a session's history and plan. Clearing an absent
// session is a no-op, so Clear is idempotent.
func (s *Service) Clear(ctx context.Context, id domain.SessionID) error {
	log := observability.LoggerFromContext(ctx).With("session_id", id)

	release := s.convs.LockSession(id)
	defer release()

	if err := s.convs.Delete(id); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	if err := s.plans.DeletePlan(id); err != nil {
		return fmt.Errorf("clearing plan: %w", err)
	}

	log.Info("session cleared")
	return nil
}

// Plan returns the meal plan captured for a session, or
// domain.ErrPlanNotFound.
func (s *Service) Plan(ctx context.Context, id domain.SessionID) (*domain.MealPlan, error) {
	return s.plans.GetPlan(id)
}

func (s *Service) capHistory(history []domain.Turn) []domain.Turn {
	if s.maxHistoryTurns <= 0 || len(history) <= s.maxHistoryTurns {
		return history
	}

	drop := len(history) - s.maxHistoryTurns
	if drop%2 == 1 {
		// Drop whole exchanges so roles keep alternating.
		drop++
	}
	if drop > len(history)-domain.SeedTurnCount {
		drop = len(history) - domain.SeedTurnCount
	}

	out := make([]domain.Turn, 0, len(history)-drop)
	out = append(out, history[:domain.SeedTurnCount]...)
	out = append(out, history[domain.SeedTurnCount+drop:]...)
	return out
}
