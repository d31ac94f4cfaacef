// Package notify implements the outbound SMS webhook transport.
//
// Each surviving alert candidate becomes one HTTP POST to the configured
// webhook, whose far side forwards the message text to SMS. The payload is
// a small JSON object carrying the rendered message and the destination
// phone number. A 2xx response is success; anything else, including
// network failure, is a per-candidate send_* error that the coordinator
// recovers from without aborting the remaining candidates.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"stormwatch/internal/config"
	"stormwatch/internal/external"
	"stormwatch/internal/types"
)

// maxResponseBodyRead limits how much of a response body we read for
// error messages and provider message ID extraction.
const maxResponseBodyRead = 4096

// Compile-time assertion that WebhookTransport implements types.Transport.
var _ types.Transport = (*WebhookTransport)(nil)

// smsPayload is the JSON body posted to the webhook.
type smsPayload struct {
	Message string `json:"message"`
	Phone   string `json:"phone"`
}

// WebhookTransport delivers rendered alert messages to the SMS webhook.
type WebhookTransport struct {
	client *external.BaseClient
	cfg    config.WebhookConfig
	logger types.Logger
}

// NewWebhookTransport creates the transport. The breaker is owned by the
// transport so consecutive webhook failures within a cycle (or across
// loop-mode ticks) trip the circuit instead of stalling on each candidate.
func NewWebhookTransport(httpClient *http.Client, cfg config.WebhookConfig, logger types.Logger) *WebhookTransport {
	base := external.NewBaseClient(
		httpClient,
		"sms-webhook",
		external.RetryPolicy{
			MaxRetries: 1,
			MinWait:    500 * time.Millisecond,
			MaxWait:    5 * time.Second,
		},
		cfg.UserAgent,
		external.ErrorCodes{
			Unavailable: types.ErrCodeSendUnavailable,
			RateLimited: types.ErrCodeSendUnavailable,
		},
	)

	return &WebhookTransport{
		client: base,
		cfg:    cfg,
		logger: logger,
	}
}

// Deliver posts one message to the webhook. The message is truncated to
// the SMS length limit before sending. A nil error means the far side
// acknowledged with a 2xx status.
func (t *WebhookTransport) Deliver(ctx context.Context, message string) (*types.DeliveryResult, error) {
	body, err := json.Marshal(smsPayload{
		Message: truncateSMS(message, t.cfg.MaxSMSLength),
		Phone:   t.cfg.PhoneNumber.Unmask(),
	})
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeSendFailed,
			"failed to encode webhook payload", err)
	}

	ctx, cancel := context.WithTimeout(ctx, t.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.cfg.URL.Unmask(), bytes.NewReader(body))
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeSendFailed,
			"failed to build webhook request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyRead))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, types.NewAppError(types.ErrCodeSendBadStatus,
			fmt.Sprintf("webhook returned %d: %s", resp.StatusCode, truncateBody(respBody)), nil)
	}

	result := &types.DeliveryResult{
		ProviderMessageID: extractProviderMessageID(resp),
		StatusCode:        resp.StatusCode,
	}

	t.logger.Info("alert delivered",
		"status", resp.StatusCode,
		"provider_message_id", result.ProviderMessageID,
	)
	return result, nil
}

// truncateSMS clamps a message to the SMS character budget, marking the
// cut with an ellipsis.
func truncateSMS(message string, limit int) string {
	if len(message) <= limit {
		return message
	}
	return message[:limit-3] + "..."
}

// truncateBody clamps a response body for inclusion in error messages.
func truncateBody(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}

// extractProviderMessageID finds a provider-assigned reference in the
// response headers, falling back to a synthetic ID.
// Go's http.Header.Get is case-insensitive, so "X-Request-Id" matches
// "X-Request-ID" as well.
func extractProviderMessageID(resp *http.Response) string {
	if reqID := resp.Header.Get("X-Request-Id"); reqID != "" {
		return reqID
	}
	return fmt.Sprintf("sms-%d-%d-%s",
		resp.StatusCode,
		time.Now().Unix(),
		uuid.New().String()[:8],
	)
}
