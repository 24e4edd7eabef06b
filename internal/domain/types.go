package domain

// SessionID identifies a client-scoped conversation. It is opaque and
// client-generated; the server never mints one.
type SessionID string

// Role is the speaker of a turn, using the model API's role names.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)
