package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/lexirealty/homestead/internal/models"
)

// ErrRelayRejected is returned when the email endpoint answers with
// success=false and no further detail.
var ErrRelayRejected = errors.New("email endpoint rejected the message")

// Mailer relays contact-form submissions to the transactional email
// endpoint. The endpoint is an opaque external collaborator; the mailer
// only speaks its request/response contract.
type Mailer struct {
	endpoint string
	http     *retryablehttp.Client
	log      *slog.Logger
}

// relayResponse is the JSON response from the email endpoint.
type relayResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// New creates a Mailer for the given endpoint URL.
func New(endpoint string, log *slog.Logger) *Mailer {
	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = 10 * time.Second
	rc.Logger = nil

	return &Mailer{endpoint: endpoint, http: rc, log: log}
}

// Send posts the contact message to the email endpoint and reports
// whether it was accepted.
func (m *Mailer) Send(ctx context.Context, msg models.ContactMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode contact message: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach email endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("email endpoint returned status %d", resp.StatusCode)
	}

	var relay relayResponse
	if err = json.NewDecoder(resp.Body).Decode(&relay); err != nil {
		return fmt.Errorf("failed to decode email endpoint response: %w", err)
	}

	if !relay.Success {
		if relay.Error != "" {
			return fmt.Errorf("%w: %s", ErrRelayRejected, relay.Error)
		}
		return ErrRelayRejected
	}

	m.log.DebugContext(ctx, "Contact message relayed", "from", msg.Email)

	return nil
}
