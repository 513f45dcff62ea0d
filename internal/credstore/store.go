// Package credstore persists opaque credential strings for the client.
package credstore

import (
	"context"
	"sync"
)

// Well-known keys. KeyAuthToken holds the bearer token attached to every
// document-store request.
const (
	KeyAuthToken    = "authToken"
	KeyRefreshToken = "refreshToken"
)

// Store is an opaque key-value store for credential material.
type Store interface {
	// Get returns the stored value for key, or "" when absent.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes the value under key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// Memory is an in-process Store, used in tests and embedding scenarios.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory { return &Memory{values: map[string]string{}} }

// Get returns the stored value, "" when absent.
func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

// Set stores value under key.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Remove deletes the value under key.
func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
