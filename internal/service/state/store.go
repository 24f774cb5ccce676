package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/geoattend/geoattend-backend-go/internal/domain/state"
)

type StoreImpl struct {
	mu      sync.RWMutex
	current state.AppState
	repo    state.DocumentRepository
}

// Open loads the persisted document, writing seed() as the initial document
// when none exists. A document that cannot be decoded is reported rather
// than overwritten.
func Open(ctx context.Context, repo state.DocumentRepository, seed func() (state.AppState, error)) (*StoreImpl, error) {
	s := &StoreImpl{repo: repo}

	raw, err := repo.Get(ctx, state.StateKey)
	switch {
	case err == nil:
		var loaded state.AppState
		if err := json.Unmarshal(raw, &loaded); err != nil {
			return nil, fmt.Errorf("%w: %v", state.ErrCorruptDocument, err)
		}
		loaded.Normalize()
		s.current = loaded
		slog.Info("Loaded application state", "employees", len(loaded.Employees), "leaves", len(loaded.Leaves))

	case errors.Is(err, state.ErrDocumentNotFound):
		initial, err := seed()
		if err != nil {
			return nil, fmt.Errorf("seed state: %w", err)
		}
		initial.Normalize()
		if err := s.persist(ctx, initial); err != nil {
			return nil, err
		}
		s.current = initial
		slog.Info("Seeded application state", "employees", len(initial.Employees))

	default:
		return nil, fmt.Errorf("load state: %w", err)
	}

	return s, nil
}

// Snapshot implements state.Store.
func (s *StoreImpl) Snapshot() state.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Update implements state.Store.
func (s *StoreImpl) Update(ctx context.Context, fn func(*state.AppState) error) (state.AppState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.Clone()
	if err := fn(&next); err != nil {
		return state.AppState{}, err
	}
	next.Normalize()

	if err := s.persist(ctx, next); err != nil {
		return state.AppState{}, err
	}

	s.current = next
	return next.Clone(), nil
}

func (s *StoreImpl) persist(ctx context.Context, st state.AppState) error {
	doc, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := s.repo.Put(ctx, state.StateKey, doc); err != nil {
		slog.Error("Failed to persist application state", "error", err)
		return fmt.Errorf("persist state: %w", err)
	}
	return nil
}

// SaveSession implements state.Store.
func (s *StoreImpl) SaveSession(ctx context.Context, session state.Session) error {
	doc, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.repo.Put(ctx, state.SessionKey, doc); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// LoadSession implements state.Store.
func (s *StoreImpl) LoadSession(ctx context.Context) (state.Session, error) {
	raw, err := s.repo.Get(ctx, state.SessionKey)
	if err != nil {
		if errors.Is(err, state.ErrDocumentNotFound) {
			return state.Session{}, state.ErrNoSession
		}
		return state.Session{}, fmt.Errorf("load session: %w", err)
	}

	var session state.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return state.Session{}, fmt.Errorf("%w: %v", state.ErrCorruptDocument, err)
	}
	return session, nil
}

// ClearSession implements state.Store.
func (s *StoreImpl) ClearSession(ctx context.Context) error {
	if err := s.repo.Delete(ctx, state.SessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
