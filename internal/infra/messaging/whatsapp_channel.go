package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// whatsappChannel delivers texts through an HTTP WhatsApp gateway.
// Every send is bounded by the configured timeout so a gateway outage
// cannot stall the caller.
type whatsappChannel struct {
	apiURL  string
	apiKey  string
	client  *http.Client
	logger  *slog.Logger
	timeout time.Duration
}

// NewWhatsAppChannel creates a channel backed by an HTTP WhatsApp gateway.
func NewWhatsAppChannel(apiURL, apiKey string, timeout time.Duration, logger *slog.Logger) *whatsappChannel {
	return &whatsappChannel{
		apiURL:  apiURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
		timeout: timeout,
	}
}

type whatsappPayload struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// Send posts one text message to the gateway. A non-2xx response is an error.
func (c *whatsappChannel) Send(ctx context.Context, phoneNumber string, text string) error {
	body, err := json.Marshal(whatsappPayload{To: phoneNumber, Body: text})
	if err != nil {
		return errors.Wrap(err, "failed to encode whatsapp payload")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "failed to build whatsapp request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to send whatsapp message")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// Drain a little of the body for diagnostics without trusting its size.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("WhatsApp gateway rejected message",
			slog.Int("status", resp.StatusCode),
			slog.String("response", string(snippet)),
		)

		return errors.Errorf("whatsapp gateway returned status %d", resp.StatusCode)
	}

	return nil
}
