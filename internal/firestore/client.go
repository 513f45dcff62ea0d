package firestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lycilph/firenotes/internal/errs"
)

// DefaultBaseURL is the hosted document-store endpoint.
const DefaultBaseURL = "https://firestore.googleapis.com"

// Client issues REST calls against one project's default database. The
// supplied http.Client is expected to carry the bearer-attaching transport;
// this client only shapes requests and responses.
type Client struct {
	http    *http.Client
	baseURL string
	project string
	apiKey  string
	log     *zap.Logger
}

// NewClient constructs a document-store client. baseURL "" selects the
// hosted endpoint; httpClient nil selects http.DefaultClient.
func NewClient(httpClient *http.Client, baseURL, projectID, apiKey string, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		project: projectID,
		apiKey:  apiKey,
		log:     log,
	}
}

// DocumentPath returns the full resource path of a document, as used by
// reference values and document names.
func (c *Client) DocumentPath(collection, id string) string {
	return fmt.Sprintf("projects/%s/databases/(default)/documents/%s/%s", c.project, collection, id)
}

func (c *Client) documentsURL() string {
	return fmt.Sprintf("%s/v1/projects/%s/databases/(default)/documents", c.baseURL, c.project)
}

// RunQuery executes a structured query and returns the raw result
// elements; elements without a document are no-match markers.
func (c *Client) RunQuery(ctx context.Context, q StructuredQuery) ([]QueryResult, error) {
	u := c.documentsURL() + ":runQuery?key=" + url.QueryEscape(c.apiKey)
	status, body, err := c.do(ctx, http.MethodPost, u, q.body(), nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, fmt.Errorf("runQuery %s: status %d: %s", q.Collection, status, body)
	}
	var out []QueryResult
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("runQuery %s: decode: %w", q.Collection, err)
	}
	return out, nil
}

// CreateDocument creates a document with a store-assigned id.
func (c *Client) CreateDocument(ctx context.Context, collection string, fields map[string]Value) (Document, error) {
	u := fmt.Sprintf("%s/%s?key=%s", c.documentsURL(), collection, url.QueryEscape(c.apiKey))
	status, body, err := c.do(ctx, http.MethodPost, u, Document{Fields: fields}, nil)
	if err != nil {
		return Document{}, err
	}
	if status < 200 || status > 299 {
		return Document{}, fmt.Errorf("%w: create %s: status %d: %s", errs.ErrWriteFailed, collection, status, body)
	}
	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return Document{}, fmt.Errorf("create %s: decode: %w", collection, err)
	}
	return doc, nil
}

// DeleteDocument deletes a document by id. Ownership is not checked here;
// the store's own access rules reject foreign deletes.
func (c *Client) DeleteDocument(ctx context.Context, collection, id string) error {
	u := fmt.Sprintf("%s/%s/%s?key=%s", c.documentsURL(), collection, id, url.QueryEscape(c.apiKey))
	status, body, err := c.do(ctx, http.MethodDelete, u, nil, nil)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("%w: delete %s/%s: status %d: %s", errs.ErrWriteFailed, collection, id, status, body)
	}
	return nil
}

// PatchDocument updates only the masked fields of a document. The store's
// partial-update verb is not expressible over this transport path, so the
// request goes out as POST with a method-override header.
func (c *Client) PatchDocument(ctx context.Context, collection, id string, fields map[string]Value, mask []string) error {
	v := url.Values{}
	v.Set("key", c.apiKey)
	for _, m := range mask {
		v.Add("updateMask.fieldPaths", m)
	}
	u := fmt.Sprintf("%s/%s/%s?%s", c.documentsURL(), collection, id, v.Encode())
	hdr := http.Header{"X-HTTP-Method-Override": []string{"PATCH"}}
	status, body, err := c.do(ctx, http.MethodPost, u, Document{Fields: fields}, hdr)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("%w: patch %s/%s: status %d: %s", errs.ErrWriteFailed, collection, id, status, body)
	}
	return nil
}

// do sends one request and returns status plus the raw response body.
// Transport-level failures wrap errs.ErrNetwork.
func (c *Client) do(ctx context.Context, method, u string, in any, hdr http.Header) (int, []byte, error) {
	var rd io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, nil, err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return 0, nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range hdr {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %s %s: %v", errs.ErrNetwork, method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: read response: %v", errs.ErrNetwork, err)
	}
	c.log.Debug("firestore",
		zap.String("method", method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("dur", time.Since(start)),
	)
	return resp.StatusCode, body, nil
}
