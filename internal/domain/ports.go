package domain

import "context"

// ModelClient defines how the application talks to the hosted model.
type ModelClient interface {
	// Chat replays the accumulated history and submits one new user
	// message, returning the model's raw reply text.
	Chat(ctx context.Context, history []Turn, message string) (string, error)

	// Generate submits a single self-contained prompt with no prior
	// history, returning the raw reply text. Used by week continuation.
	Generate(ctx context.Context, prompt string) (string, error)
}

// SessionLocker hands out per-session mutexes. Any read-modify-write
// cycle touching a session's state must run under its lock, whichever
// service performs it.
type SessionLocker interface {
	// LockSession acquires a per-session mutex and returns its release
	// function. At most one holder per session id at a time.
	LockSession(id SessionID) (release func())
}

// ConversationStore keeps per-session message history.
//
// Get/Put/Delete are individually atomic. Callers that need a whole
// read-call-write exchange to be exclusive for a session must hold the
// session lock from LockSession across it.
type ConversationStore interface {
	SessionLocker

	// Get returns the history for a session, or ErrSessionNotFound.
	Get(id SessionID) ([]Turn, error)

	// Put replaces the stored history for a session.
	Put(id SessionID, history []Turn) error

	// Delete removes a session's history. Deleting an absent session is
	// not an error.
	Delete(id SessionID) error
}

// PlanStore keeps the meal plan captured for a session, if any.
type PlanStore interface {
	// GetPlan returns the stored plan, or ErrPlanNotFound.
	GetPlan(id SessionID) (*MealPlan, error)

	// PutPlan stores or replaces the plan for a session.
	PutPlan(id SessionID, plan *MealPlan) error

	// DeletePlan removes a session's plan. Absent is not an error.
	DeletePlan(id SessionID) error
}
