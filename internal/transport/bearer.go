// Package transport provides the request pipeline in front of the
// document-store client.
package transport

import (
	"net/http"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/lycilph/firenotes/internal/credstore"
)

// Bearer is an http.RoundTripper that attaches the stored token as a
// bearer credential on every outgoing request. When no token is stored the
// request is sent unauthenticated and the server's authorization error is
// the caller's to handle; no pre-validation happens here.
type Bearer struct {
	store credstore.Store
	base  http.RoundTripper
	log   *zap.Logger
}

// NewBearer wraps base (http.DefaultTransport when nil) with token
// attachment and request logging.
func NewBearer(store credstore.Store, base http.RoundTripper, log *zap.Logger) *Bearer {
	if base == nil {
		base = http.DefaultTransport
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Bearer{store: store, base: base, log: log}
}

// RoundTrip reads the stored token and forwards the request. A store
// failure is treated as an absent token. The request is cloned; the only
// side effects are the store read and the outgoing headers.
func (b *Bearer) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	if token, err := b.store.Get(req.Context(), credstore.KeyAuthToken); err == nil && token != "" {
		out.Header.Set("Authorization", "Bearer "+token)
	}
	if id, err := uuid.NewV4(); err == nil {
		out.Header.Set("X-Request-Id", id.String())
	}

	start := time.Now()
	resp, err := b.base.RoundTrip(out)
	// no payloads and no query string (it carries the api key) in logs
	if err != nil {
		b.log.Debug("http",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Error(err),
			zap.Duration("dur", time.Since(start)),
		)
		return nil, err
	}
	b.log.Debug("http",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("dur", time.Since(start)),
	)
	return resp, nil
}
