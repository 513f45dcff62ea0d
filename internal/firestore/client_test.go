package firestore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lycilph/firenotes/internal/errs"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.Client(), srv.URL, "p1", "test-key", nil)
}

const docsPrefix = "/v1/projects/p1/databases/(default)/documents"

func TestRunQuery(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, docsPrefix+":runQuery", r.URL.Path)
		require.Equal(t, "test-key", r.URL.Query().Get("key"))

		_, _ = w.Write([]byte(`[
			{"document":{"name":"` + docsPrefix[4:] + `/notes/abc","fields":{"text":{"stringValue":"hi"}}}},
			{"readTime":"2026-01-01T00:00:00Z"}
		]`))
	})

	res, err := c.RunQuery(context.Background(), StructuredQuery{Collection: "notes", FieldPath: "userId", Value: String("u1")})
	require.NoError(t, err)
	require.Len(t, res, 2)
	require.NotNil(t, res[0].Document)
	require.Equal(t, "abc", res[0].Document.ID())
	require.Equal(t, "hi", res[0].Document.Fields["text"].Str())
	require.Nil(t, res[1].Document, "no-match marker carries no document")
}

func TestCreateDocument(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, docsPrefix+"/notes", r.URL.Path)

		var doc Document
		require.NoError(t, json.NewDecoder(r.Body).Decode(&doc))
		require.Equal(t, "hi", doc.Fields["text"].Str())

		_ = json.NewEncoder(w).Encode(Document{Name: "projects/p1/databases/(default)/documents/notes/new1", Fields: doc.Fields})
	})

	doc, err := c.CreateDocument(context.Background(), "notes", map[string]Value{"text": String("hi")})
	require.NoError(t, err)
	require.Equal(t, "new1", doc.ID())
}

func TestCreateDocument_WriteFailed(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"status":"PERMISSION_DENIED"}}`))
	})

	_, err := c.CreateDocument(context.Background(), "notes", map[string]Value{"text": String("x")})
	require.ErrorIs(t, err, errs.ErrWriteFailed)
	require.Contains(t, err.Error(), "PERMISSION_DENIED")
}

func TestDeleteDocument(t *testing.T) {
	t.Parallel()

	var deleted string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		deleted = r.URL.Path
		_, _ = w.Write([]byte(`{}`))
	})

	require.NoError(t, c.DeleteDocument(context.Background(), "notes", "abc"))
	require.Equal(t, docsPrefix+"/notes/abc", deleted)
}

func TestDeleteDocument_ServerRejects(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	err := c.DeleteDocument(context.Background(), "notes", "not-mine")
	require.ErrorIs(t, err, errs.ErrWriteFailed)
}

func TestPatchDocument_MethodOverrideAndMask(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "PATCH", r.Header.Get("X-HTTP-Method-Override"))
		require.Equal(t, docsPrefix+"/userProfiles/u1", r.URL.Path)
		require.Equal(t, []string{"count"}, r.URL.Query()["updateMask.fieldPaths"])
		require.Equal(t, "test-key", r.URL.Query().Get("key"))

		var doc Document
		require.NoError(t, json.NewDecoder(r.Body).Decode(&doc))
		require.Equal(t, int64(5), doc.Fields["count"].Int())
		_, _ = w.Write([]byte(`{}`))
	})

	err := c.PatchDocument(context.Background(), "userProfiles", "u1",
		map[string]Value{"count": Integer(5)}, []string{"count"})
	require.NoError(t, err)
}

func TestPatchDocument_WriteFailed(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	err := c.PatchDocument(context.Background(), "userProfiles", "u1",
		map[string]Value{"count": Integer(1)}, []string{"count"})
	require.ErrorIs(t, err, errs.ErrWriteFailed)
}

func TestNetworkFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(nil, url, "p1", "k", nil)
	_, err := c.RunQuery(context.Background(), StructuredQuery{Collection: "notes"})
	require.ErrorIs(t, err, errs.ErrNetwork)
}

func TestDocumentPath(t *testing.T) {
	t.Parallel()

	c := NewClient(nil, "", "p1", "k", nil)
	require.Equal(t, "projects/p1/databases/(default)/documents/userProfiles/u1",
		c.DocumentPath("userProfiles", "u1"))
}
