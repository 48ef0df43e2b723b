package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// ErrInvalidCredentials is returned when the identity provider rejects an
// email/password pair.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Session is the identity returned after a successful sign-up or sign-in.
type Session struct {
	UserID  string `json:"userId"`
	Email   string `json:"email"`
	IDToken string `json:"idToken"`
}

// Client is a thin client for the hosted identity provider. Account
// storage, password hashing and token issuance all live upstream; this
// client only speaks the provider's request/response contract.
type Client struct {
	endpoint string
	apiKey   string
	http     *retryablehttp.Client
	log      *slog.Logger
}

type credentialsRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type identityResponse struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
	IDToken string `json:"idToken"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewClient creates an identity client for the given provider endpoint.
func NewClient(endpoint, apiKey string, log *slog.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.RetryMax = 2
	rc.HTTPClient.Timeout = 10 * time.Second
	rc.Logger = nil

	return &Client{endpoint: endpoint, apiKey: apiKey, http: rc, log: log}
}

// SignUp registers a new account with the identity provider.
func (c *Client) SignUp(ctx context.Context, email, password string) (Session, error) {
	return c.credentialCall(ctx, "accounts:signUp", email, password)
}

// SignIn authenticates an existing account.
func (c *Client) SignIn(ctx context.Context, email, password string) (Session, error) {
	return c.credentialCall(ctx, "accounts:signInWithPassword", email, password)
}

func (c *Client) credentialCall(ctx context.Context, action, email, password string) (Session, error) {
	payload, err := json.Marshal(credentialsRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return Session{}, fmt.Errorf("failed to encode credentials: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v1/%s?key=%s", c.endpoint, action, url.QueryEscape(c.apiKey))
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return Session{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Session{}, fmt.Errorf("failed to reach identity provider: %w", err)
	}
	defer resp.Body.Close()

	var identity identityResponse
	if err = json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return Session{}, fmt.Errorf("failed to decode identity response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if identity.Error != nil {
			c.log.DebugContext(ctx, "Identity provider rejected credentials",
				"action", action, "code", identity.Error.Message)
			return Session{}, fmt.Errorf("%w: %s", ErrInvalidCredentials, identity.Error.Message)
		}
		return Session{}, fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	return Session{UserID: identity.LocalID, Email: identity.Email, IDToken: identity.IDToken}, nil
}
