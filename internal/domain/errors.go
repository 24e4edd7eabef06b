package domain

import "errors"

var (
	// ErrSessionNotFound is returned when no history exists for a session id.
	ErrSessionNotFound = errors.New("session not found")

	// ErrPlanNotFound is returned when a session has no captured meal plan.
	ErrPlanNotFound = errors.New("meal plan not found")

	// ErrNoPlanPayload is returned when a generation response that must
	// carry a marker-delimited plan payload carries none, or carries one
	// that is not valid JSON.
	ErrNoPlanPayload = errors.New("no meal plan payload in model response")
)
