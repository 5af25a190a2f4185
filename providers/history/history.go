package history

import (
	"context"
	"time"
)

// TurnRole identifies who produced a turn.
type TurnRole string

const (
	RoleUser      TurnRole = "user"
	RoleAssistant TurnRole = "assistant"
)

// Turn is one recorded exchange unit in a thread. Immutable once appended.
type Turn struct {
	Role      TurnRole  `json:"role"`
	Content   string    `json:"content"`
	Provider  string    `json:"provider,omitempty"` // Provider that produced an assistant turn
	Mode      string    `json:"mode,omitempty"`     // Orchestration mode used for the cycle
	Timestamp time.Time `json:"timestamp"`
}

// Store is the conversation-history contract. Threads are named, ordered,
// append-only logs of turns with bounded retention: once a thread exceeds the
// implementation's cap, the oldest turns are evicted first, synchronously
// within Append, so the bound holds after any call returns.
//
// Reading a thread that does not exist returns an empty slice, not an error;
// threads are created implicitly on first append. Implementations must
// serialize concurrent appends to the same thread; appends to different
// threads are independent.
type Store interface {
	// Append adds a turn to the end of the named thread, evicting the oldest
	// turns when the retention cap is exceeded.
	Append(ctx context.Context, thread string, turn Turn) error

	// Read returns all turns of the named thread in append order.
	Read(ctx context.Context, thread string) ([]Turn, error)

	// LastTurns returns up to n of the most recent turns in append order.
	LastTurns(ctx context.Context, thread string, n int) ([]Turn, error)
}
