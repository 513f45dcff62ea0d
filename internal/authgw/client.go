// Package authgw is the REST client for the hosted identity endpoints:
// account operations on the identity toolkit and refresh exchange on the
// secure-token endpoint.
package authgw

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
	"github.com/lycilph/firenotes/internal/model"
)

// Hosted endpoints; overridable for tests.
const (
	DefaultIdentityURL = "https://identitytoolkit.googleapis.com"
	DefaultTokenURL    = "https://securetoken.googleapis.com"
)

// Client performs single request/response exchanges against the identity
// service. No operation retries; retry policy belongs to the caller.
// Credentials are never logged.
type Client struct {
	http        *http.Client
	identityURL string
	tokenURL    string
	apiKey      string
	log         *zap.Logger
}

// NewClient constructs an identity client. Empty URLs select the hosted
// endpoints; a nil httpClient selects http.DefaultClient.
func NewClient(httpClient *http.Client, identityURL, tokenURL, apiKey string, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if identityURL == "" {
		identityURL = DefaultIdentityURL
	}
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		http:        httpClient,
		identityURL: strings.TrimSuffix(identityURL, "/"),
		tokenURL:    strings.TrimSuffix(tokenURL, "/"),
		apiKey:      apiKey,
		log:         log,
	}
}

type credentialsRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type authResponse struct {
	Kind         string `json:"kind"`
	IDToken      string `json:"idToken"`
	Email        string `json:"email"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
	LocalID      string `json:"localId"`
}

func (r authResponse) toResult() model.AuthResult {
	return model.AuthResult{
		IDToken:      r.IDToken,
		RefreshToken: r.RefreshToken,
		UserID:       r.LocalID,
		Email:        r.Email,
		ExpiresIn:    r.ExpiresIn,
	}
}

type refreshRequest struct {
	GrantType    string `json:"grant_type"`
	RefreshToken string `json:"refresh_token"`
}

// The token exchange names its response fields differently from sign-in.
// That is a fixed external contract; the mapping stays explicit.
type refreshResponse struct {
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    string `json:"expires_in"`
	UserID       string `json:"user_id"`
	ProjectID    string `json:"project_id"`
	TokenType    string `json:"token_type"`
}

// SignIn exchanges email/password for tokens.
func (c *Client) SignIn(ctx context.Context, email, password string) (model.AuthResult, error) {
	return c.credentialCall(ctx, "signInWithPassword", email, password)
}

// SignUp registers a new account and returns its first tokens.
func (c *Client) SignUp(ctx context.Context, email, password string) (model.AuthResult, error) {
	return c.credentialCall(ctx, "signUp", email, password)
}

func (c *Client) credentialCall(ctx context.Context, op, email, password string) (model.AuthResult, error) {
	var out authResponse
	err := c.postIdentity(ctx, op, credentialsRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}, &out)
	if err != nil {
		return model.AuthResult{}, err
	}
	return out.toResult(), nil
}

// SendVerificationEmail asks the identity service to mail an out-of-band
// verification code. Fire-and-forget: the response body is not consumed.
func (c *Client) SendVerificationEmail(ctx context.Context, idToken string) error {
	return c.postIdentity(ctx, "sendOobCode", map[string]string{
		"requestType": "VERIFY_EMAIL",
		"idToken":     idToken,
	}, nil)
}

// ConfirmVerification redeems an out-of-band code. Fire-and-forget.
func (c *Client) ConfirmVerification(ctx context.Context, oobCode string) error {
	return c.postIdentity(ctx, "update", map[string]string{"oobCode": oobCode}, nil)
}

// UpdateProfile sets the display name and returns a fresh auth result
// whose id token reflects it.
func (c *Client) UpdateProfile(ctx context.Context, idToken, displayName string) (model.AuthResult, error) {
	req := struct {
		IDToken           string `json:"idToken"`
		DisplayName       string `json:"displayName"`
		ReturnSecureToken bool   `json:"returnSecureToken"`
	}{IDToken: idToken, DisplayName: displayName, ReturnSecureToken: true}

	var out authResponse
	if err := c.postIdentity(ctx, "update", req, &out); err != nil {
		return model.AuthResult{}, err
	}
	return out.toResult(), nil
}

// RefreshToken exchanges a refresh token at the token-exchange endpoint
// and maps the snake_case response onto AuthResult.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (model.AuthResult, error) {
	u := fmt.Sprintf("%s/v1/token?key=%s", c.tokenURL, url.QueryEscape(c.apiKey))
	status, body, err := c.post(ctx, "token", u, refreshRequest{
		GrantType:    "refresh_token",
		RefreshToken: refreshToken,
	})
	if err != nil {
		return model.AuthResult{}, err
	}
	if status < 200 || status > 299 {
		return model.AuthResult{}, fmt.Errorf("%w: status %d: %s", errs.ErrRefreshFailed, status, body)
	}
	var out refreshResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return model.AuthResult{}, fmt.Errorf("token exchange: decode: %w", err)
	}
	return model.AuthResult{
		IDToken:      out.IDToken,
		RefreshToken: out.RefreshToken,
		UserID:       out.UserID,
		ExpiresIn:    out.ExpiresIn,
	}, nil
}

// postIdentity posts one accounts operation and surfaces non-2xx responses
// as ErrAuthRejected carrying the server's error body.
func (c *Client) postIdentity(ctx context.Context, op string, in, out any) error {
	u := fmt.Sprintf("%s/v1/accounts:%s?key=%s", c.identityURL, op, url.QueryEscape(c.apiKey))
	status, body, err := c.post(ctx, op, u, in)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("%w: %s: status %d: %s", errs.ErrAuthRejected, op, status, body)
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("%s: decode: %w", op, err)
		}
	}
	return nil
}

func (c *Client) post(ctx context.Context, op, u string, in any) (int, []byte, error) {
	b, err := json.Marshal(in)
	if err != nil {
		return 0, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(b))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %s: %v", errs.ErrNetwork, op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %s: read response: %v", errs.ErrNetwork, op, err)
	}
	// op/status/duration only; request payloads carry credentials
	c.log.Debug("identity",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("dur", time.Since(start)),
	)
	return resp.StatusCode, body, nil
}
