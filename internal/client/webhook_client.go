package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"kanban-board-api/internal/events"
	"kanban-board-api/internal/metrics"
)

const webhookQueueSize = 128

// WebhookClient forwards change events to an HTTP endpoint.
// It implements events.Publisher; delivery happens on the goroutine started by Run.
type WebhookClient struct {
	url        string
	secret     string
	httpClient *http.Client
	queue      chan events.Event
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewWebhookClient creates a webhook client posting to url
func NewWebhookClient(url, secret string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) *WebhookClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &WebhookClient{
		url:    url,
		secret: secret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		queue:   make(chan events.Event, webhookQueueSize),
		logger:  logger,
		metrics: m,
	}
}

// Publish queues the event without blocking; it is dropped when the queue is full
func (c *WebhookClient) Publish(event events.Event) {
	select {
	case c.queue <- event:
	default:
		c.logger.Warn("Webhook queue full, dropping event",
			zap.String("type", event.Type),
			zap.String("project_id", event.ProjectID),
		)
	}
}

// Run delivers queued events until ctx is done
func (c *WebhookClient) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-c.queue:
			if err := c.Send(ctx, event); err != nil {
				c.logger.Warn("Failed to deliver webhook", zap.String("type", event.Type), zap.Error(err))
			}
		}
	}
}

// Send posts one event and returns an error for transport failures and non-2xx answers
func (c *WebhookClient) Send(ctx context.Context, event events.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.secret != "" {
		req.Header.Set("X-Webhook-Secret", c.secret)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	if c.metrics != nil {
		c.metrics.RecordExternalAPICall(c.url, http.MethodPost, status, duration, err)
	}

	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	c.logger.Debug("Webhook delivered",
		zap.String("type", event.Type),
		zap.String("project_id", event.ProjectID),
		zap.Duration("duration", duration),
	)
	return nil
}

var _ events.Publisher = (*WebhookClient)(nil)
