package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lycilph/firenotes/internal/credstore"
)

type errStore struct{}

func (errStore) Get(context.Context, string) (string, error) { return "", errors.New("boom") }
func (errStore) Set(context.Context, string, string) error   { return nil }
func (errStore) Remove(context.Context, string) error        { return nil }

func recordServer(t *testing.T) (*httptest.Server, *http.Header) {
	t.Helper()
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestBearer_AttachesStoredToken(t *testing.T) {
	t.Parallel()
	srv, got := recordServer(t)

	store := credstore.NewMemory()
	_ = store.Set(context.Background(), credstore.KeyAuthToken, "tok-123")
	cli := &http.Client{Transport: NewBearer(store, nil, nil)}

	resp, err := cli.Get(srv.URL + "/x")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()

	if h := got.Get("Authorization"); h != "Bearer tok-123" {
		t.Fatalf("authorization: got %q", h)
	}
	if got.Get("X-Request-Id") == "" {
		t.Fatalf("missing request id")
	}
}

func TestBearer_NoTokenSendsUnauthenticated(t *testing.T) {
	t.Parallel()
	srv, got := recordServer(t)

	cli := &http.Client{Transport: NewBearer(credstore.NewMemory(), nil, nil)}
	resp, err := cli.Get(srv.URL + "/x")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()

	if h := got.Get("Authorization"); h != "" {
		t.Fatalf("want no authorization header, got %q", h)
	}
}

func TestBearer_StoreFailureTreatedAsAbsent(t *testing.T) {
	t.Parallel()
	srv, got := recordServer(t)

	cli := &http.Client{Transport: NewBearer(errStore{}, nil, nil)}
	resp, err := cli.Get(srv.URL + "/x")
	if err != nil {
		t.Fatalf("request must still go out: %v", err)
	}
	resp.Body.Close()

	if h := got.Get("Authorization"); h != "" {
		t.Fatalf("want no authorization header, got %q", h)
	}
}

func TestBearer_DoesNotMutateOriginalRequest(t *testing.T) {
	t.Parallel()
	srv, _ := recordServer(t)

	store := credstore.NewMemory()
	_ = store.Set(context.Background(), credstore.KeyAuthToken, "tok")
	cli := &http.Client{Transport: NewBearer(store, nil, nil)}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/x", nil)
	resp, err := cli.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	resp.Body.Close()

	if h := req.Header.Get("Authorization"); h != "" {
		t.Fatalf("original request mutated: %q", h)
	}
}
