package firestore

import (
	"context"

	fs "github.com/lycilph/firenotes/internal/firestore"
	"github.com/lycilph/firenotes/internal/session"
)

const (
	profilesCollection = "userProfiles"
	fieldCount         = "count"

	// The special identity field, queried with a reference value to fetch
	// one document by name through runQuery.
	fieldDocumentName = "__name__"
)

// CounterRepo implements repository.CounterRepository against the
// userProfiles collection; the subject id names the profile document.
type CounterRepo struct {
	client  *fs.Client
	session *session.State
}

// NewCounterRepo constructs a counter repository.
func NewCounterRepo(client *fs.Client, state *session.State) *CounterRepo {
	return &CounterRepo{client: client, session: state}
}

// GetUserCount fetches userProfiles/{subject} via runQuery. A missing
// document means a new user, not an error, and yields 0; so does a
// malformed counter value.
func (r *CounterRepo) GetUserCount(ctx context.Context) (int64, error) {
	subject := r.session.Current().Subject()
	if subject == "" {
		return 0, nil
	}

	results, err := r.client.RunQuery(ctx, fs.StructuredQuery{
		Collection: profilesCollection,
		FieldPath:  fieldDocumentName,
		Value:      fs.Reference(r.client.DocumentPath(profilesCollection, subject)),
		Limit:      1,
	})
	if err != nil {
		return 0, err
	}
	for _, res := range results {
		if res.Document == nil {
			continue
		}
		return res.Document.Fields[fieldCount].Int(), nil
	}
	return 0, nil
}

// SetUserCount patches only the count field of userProfiles/{subject},
// leaving other fields untouched. A no-op when anonymous.
func (r *CounterRepo) SetUserCount(ctx context.Context, count int64) error {
	subject := r.session.Current().Subject()
	if subject == "" {
		return nil
	}
	return r.client.PatchDocument(ctx, profilesCollection, subject,
		map[string]fs.Value{fieldCount: fs.Integer(count)},
		[]string{fieldCount},
	)
}
