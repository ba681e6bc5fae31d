// Package notify pushes daily roll-up summaries to an external webhook so
// farm owners can receive them in chat tools or dashboards.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/farmtrack/internal/config"
	"github.com/mamadbah2/farmtrack/internal/domain/models"
)

// Client exposes the report delivery operation.
type Client interface {
	SendDailyReport(ctx context.Context, report models.DailyReport) error
}

// WebhookClient is a resty-backed implementation of Client.
type WebhookClient struct {
	httpClient *resty.Client
	webhookURL string
}

// NewClient builds a webhook client using the provided configuration values.
func NewClient(cfg config.NotifyConfig) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &WebhookClient{
		httpClient: restyClient,
		webhookURL: cfg.WebhookURL,
	}
}

// webhookPayload is the delivery envelope posted to the hook.
type webhookPayload struct {
	Text   string             `json:"text"`
	Report models.DailyReport `json:"report"`
}

// SendDailyReport posts one farm's roll-up to the configured webhook.
func (c *WebhookClient) SendDailyReport(ctx context.Context, report models.DailyReport) error {
	text := fmt.Sprintf(
		"Daily report %s: %d eggs, %d deaths, %d birds sold, sales %.2f, expenses %.2f, profit %.2f.",
		report.Date.Format("2006-01-02"),
		report.EggsCollected,
		report.Mortality,
		report.BirdsSold,
		report.SalesAmount,
		report.Expenses,
		report.Profit,
	)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(webhookPayload{Text: text, Report: report}).
		Post(c.webhookURL)
	if err != nil {
		return fmt.Errorf("send report webhook: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("report webhook error: status=%d, body=%s", resp.StatusCode(), resp.String())
	}

	return nil
}
