// Package session holds the current identity and publishes its changes.
//
// State is the single writer of "current identity"; repositories only read
// it. Transitions are serialized behind one mutex so observers always see
// them in the order they were applied.
package session

import (
	"context"
	"sync"

	"github.com/lycilph/firenotes/internal/claims"
	"github.com/lycilph/firenotes/internal/credstore"
	"github.com/lycilph/firenotes/internal/model"
)

// Observer receives every session transition, synchronously, in order.
// Observers must not call back into State.
type Observer func(model.Session)

// State is the session holder. The zero value is unusable; use New.
// A fresh State starts Anonymous, before any stored token is consulted.
type State struct {
	mu      sync.Mutex
	current model.Session
	subs    []Observer
}

// New constructs an anonymous session state.
func New() *State { return &State{} }

// Current returns the active session. Always available, never blocks on IO.
func (s *State) Current() model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Subscribe registers an observer for subsequent transitions.
func (s *State) Subscribe(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// ApplyToken decodes token and publishes the Authenticated session.
// A decode failure publishes Anonymous instead and returns the decode
// error; an unauthenticated state is always the safe default.
func (s *State) ApplyToken(token string) error {
	c, err := claims.Parse(token)
	if err != nil {
		s.transition(model.Anonymous)
		return err
	}
	s.transition(model.Session{Authenticated: true, Claims: c})
	return nil
}

// Clear publishes the Anonymous session.
func (s *State) Clear() { s.transition(model.Anonymous) }

// Resolve reads the stored token and applies it. Empty, missing, or failing
// lookups all resolve to Anonymous; errors are swallowed because a missing
// identity must never crash the caller.
func (s *State) Resolve(ctx context.Context, store credstore.Store) {
	token, err := store.Get(ctx, credstore.KeyAuthToken)
	if err != nil || token == "" {
		s.Clear()
		return
	}
	_ = s.ApplyToken(token)
}

func (s *State) transition(next model.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = next
	for _, fn := range s.subs {
		fn(next)
	}
}
