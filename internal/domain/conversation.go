package domain

// Turn is a single message in a session's history.
//
// A seeded history always begins with two fixed turns: the full system
// instructions sent as a user turn, and a short model acknowledgment.
// This simulates a system prompt on a model API that has no dedicated
// system-role channel.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// SeedTurnCount is the number of fixed turns at the head of every
// seeded history. Trimming policies must never drop them.
const SeedTurnCount = 2
