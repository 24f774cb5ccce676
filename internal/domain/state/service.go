package state

import "context"

// Store holds the live AppState and serializes every mutation.
type Store interface {
	// Snapshot returns a deep copy of the current state
	Snapshot() AppState

	// Update runs fn on a copy, persists the result and swaps it in. If fn or
	// the write fails the live state is unchanged.
	Update(ctx context.Context, fn func(*AppState) error) (AppState, error)

	SaveSession(ctx context.Context, session Session) error
	LoadSession(ctx context.Context) (Session, error)
	ClearSession(ctx context.Context) error
}
