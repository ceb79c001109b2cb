// Package state provides a lightweight per-user session manager for Telegram
// conversation flows. It is intentionally domain-agnostic so the conversation
// machine can store its own draft data under temp keys.
package state

// State identifies a finite-state-machine step used in conversations.
type State string

const (
	// StateIdle indicates there is no active conversation step for the user.
	StateIdle State = "idle"
)

// Session stores the conversation state and temporary data for a single user.
// Sessions are keyed strictly by requester identity and never shared.
type Session struct {
	State    State
	TempData map[string]interface{}
}

// Manager orchestrates user sessions and FSM state transitions.
type Manager interface {
	SetState(userID int64, st State)
	GetState(userID int64) State
	// InProgress reports whether the user currently has an active state.
	InProgress(userID int64) bool

	SetTemp(userID int64, key string, value interface{})
	GetTemp(userID int64, key string) (interface{}, bool)
	ClearTemp(userID int64, key string)

	// Clear removes the entire session for a user.
	Clear(userID int64)
}
