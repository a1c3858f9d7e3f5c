package ports

import (
	"context"

	"myvote/internal/core/domain"
)

// SessionListener observes auth-state changes for a user. A nil session
// means signed out.
type SessionListener func(telegramID int64, session *domain.Session)

// FlowStore is the volatile per-user store behind the state machine. It is
// also the process-wide observable session holder: screens subscribe to
// auth-state changes instead of installing ad hoc listeners.
type FlowStore interface {
	// Get returns the flow session for a Telegram user, or nil when the user
	// has never been seen.
	Get(ctx context.Context, telegramID int64) (*domain.FlowSession, error)

	// GetOrCreate returns the existing flow session or creates a fresh one.
	GetOrCreate(ctx context.Context, telegramID, chatID int64) (*domain.FlowSession, error)

	// Update persists the mutated flow session.
	Update(ctx context.Context, flow *domain.FlowSession) error

	// SetSession attaches (or, with nil, clears) the provider session and
	// notifies subscribers.
	SetSession(ctx context.Context, telegramID int64, session *domain.Session) error

	// Subscribe registers a listener for auth-state changes; the returned
	// id is passed to Unsubscribe.
	Subscribe(listener SessionListener) int
	Unsubscribe(id int)
}
