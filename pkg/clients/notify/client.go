package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/shopdesk/internal/domain/models"
)

// Client exposes the alerting operations used by the application.
type Client interface {
	SendLowStockAlert(ctx context.Context, alert models.LowStockAlert) error
}

// WebhookClient is a resty-backed implementation of Client posting alerts to
// a configurable HTTP endpoint.
type WebhookClient struct {
	httpClient *resty.Client
	webhookURL string
}

// NewWebhookClient builds an alert client for the provided webhook URL.
func NewWebhookClient(webhookURL string) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second)

	return &WebhookClient{
		httpClient: restyClient,
		webhookURL: webhookURL,
	}
}

// webhookError represents an error payload returned by the alert endpoint.
type webhookError struct {
	Error string `json:"error"`
}

// SendLowStockAlert posts the alert as JSON and fails on any non-2xx status.
func (c *WebhookClient) SendLowStockAlert(ctx context.Context, alert models.LowStockAlert) error {
	apiErr := new(webhookError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(alert).
		SetError(apiErr).
		Post(c.webhookURL)
	if err != nil {
		return fmt.Errorf("send low stock alert: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Error
		if message == "" {
			message = resp.Status()
		}
		return fmt.Errorf("alert webhook error: code=%d, message=%s", resp.StatusCode(), message)
	}

	return nil
}
