// Package mailer implements the notification client port against an HTTP
// mail relay. The relay accepts JSON send requests and fans the message out
// to the listed recipients.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

const defaultTimeout = 30 * time.Second

// sendRequest is the relay's wire format for an outbound message.
type sendRequest struct {
	Recipients []string `json:"recipients"`
	Subject    string   `json:"subject"`
	Body       string   `json:"body"`
}

// HTTPNotificationClient delivers notifications through an HTTP mail relay.
type HTTPNotificationClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPNotificationClient creates a notification client for the relay at
// endpoint. The API key is optional; when set it is sent as a bearer token.
func NewHTTPNotificationClient(endpoint, apiKey string, logger *slog.Logger) *HTTPNotificationClient {
	return &HTTPNotificationClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// Send posts the message to the relay. Messages without recipients are
// dropped silently so callers can pass audience lists straight through.
func (c *HTTPNotificationClient) Send(ctx context.Context, recipients []string, subject, body string) error {
	if len(recipients) == 0 {
		return nil
	}

	payload, err := json.Marshal(sendRequest{
		Recipients: recipients,
		Subject:    subject,
		Body:       body,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "send notification")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("mail relay returned status %d", resp.StatusCode)
	}

	c.logger.Debug("notification sent",
		slog.Int("recipients", len(recipients)),
		slog.String("subject", subject))

	return nil
}
