// Package firestore implements the repositories over the document store's
// REST surface, scoping every operation to the current session subject.
package firestore

import (
	"context"

	fs "github.com/lycilph/firenotes/internal/firestore"
	"github.com/lycilph/firenotes/internal/model"
	"github.com/lycilph/firenotes/internal/session"
)

const (
	notesCollection = "notes"
	fieldText       = "text"
	fieldUserID     = "userId"
)

// NoteRepo implements repository.NoteRepository against the notes collection.
type NoteRepo struct {
	client  *fs.Client
	session *session.State
}

// NewNoteRepo constructs a note repository. It reads the session state but
// never mutates it.
func NewNoteRepo(client *fs.Client, state *session.State) *NoteRepo {
	return &NoteRepo{client: client, session: state}
}

// ListNotes queries the notes collection filtered to the current subject.
// Anonymous sessions get an empty list without touching the network.
func (r *NoteRepo) ListNotes(ctx context.Context) ([]model.Note, error) {
	subject := r.session.Current().Subject()
	if subject == "" {
		return []model.Note{}, nil
	}

	results, err := r.client.RunQuery(ctx, fs.StructuredQuery{
		Collection: notesCollection,
		FieldPath:  fieldUserID,
		Value:      fs.String(subject),
	})
	if err != nil {
		return nil, err
	}

	notes := make([]model.Note, 0, len(results))
	for _, res := range results {
		if res.Document == nil {
			// no-match marker
			continue
		}
		notes = append(notes, model.Note{
			ID:     res.Document.ID(),
			Text:   res.Document.Fields[fieldText].Str(),
			UserID: res.Document.Fields[fieldUserID].Str(),
		})
	}
	return notes, nil
}

// AddNote creates the note under the current subject. The caller-supplied
// UserID is always overwritten. A no-op when anonymous.
func (r *NoteRepo) AddNote(ctx context.Context, note model.Note) error {
	subject := r.session.Current().Subject()
	if subject == "" {
		return nil
	}
	note.UserID = subject

	_, err := r.client.CreateDocument(ctx, notesCollection, map[string]fs.Value{
		fieldText:   fs.String(note.Text),
		fieldUserID: fs.String(note.UserID),
	})
	return err
}

// DeleteNote deletes notes/{id}. The server's access rule rejecting
// foreign deletes is the sole enforcement; no local ownership check.
func (r *NoteRepo) DeleteNote(ctx context.Context, id string) error {
	return r.client.DeleteDocument(ctx, notesCollection, id)
}
