// Package webhook pushes daily-report payloads to a configured HTTP endpoint.
package webhook

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/agridesk/farmbook/internal/config"
	"github.com/agridesk/farmbook/internal/domain/models"
)

// Client exposes the outbound report push used by the scheduler.
type Client interface {
	PushDailyReport(ctx context.Context, report models.DailyReport) error
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook client from the provided configuration values.
func NewClient(cfg config.WebhookConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)

	return &APIClient{
		httpClient: restyClient,
		url:        cfg.URL,
	}
}

// apiError captures whatever error body the receiving endpoint returns.
type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// PushDailyReport POSTs the report as JSON to the configured URL.
func (c *APIClient) PushDailyReport(ctx context.Context, report models.DailyReport) error {
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(report).
		SetError(apiErr).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("push daily report: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Message
		if message == "" {
			message = apiErr.Error
		}
		return fmt.Errorf("webhook rejected daily report: status=%d, message=%s", resp.StatusCode(), message)
	}

	return nil
}
