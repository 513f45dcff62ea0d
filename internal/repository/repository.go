// Package repository defines data-access interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/lycilph/firenotes/internal/model"
)

// NoteRepository provides per-user access to stored notes.
type NoteRepository interface {
	// ListNotes returns the current user's notes in store order. An
	// anonymous session yields an empty list without a network call.
	ListNotes(ctx context.Context) ([]model.Note, error)

	// AddNote creates a note owned by the current user; the note's UserID
	// is overwritten with the session subject, never trusted from input.
	// A no-op when anonymous.
	AddNote(ctx context.Context, note model.Note) error

	// DeleteNote removes a note by id. Ownership is enforced by the
	// server's own access rules, not checked locally.
	DeleteNote(ctx context.Context, id string) error
}

// CounterRepository tracks the per-user profile counter.
type CounterRepository interface {
	// GetUserCount returns the stored counter; 0 means a new user.
	GetUserCount(ctx context.Context) (int64, error)

	// SetUserCount overwrites only the counter field of the user profile.
	SetUserCount(ctx context.Context, count int64) error
}
