package webhook

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/config"
)

// Client delivers stock reports to an HTTP endpoint.
type Client interface {
	SendReport(ctx context.Context, req ReportRequest) (*ReportResponse, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook client. The token, when set, is sent as a bearer token.
func NewClient(cfg config.NotifyConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)
	if cfg.Token != "" {
		restyClient.SetAuthToken(cfg.Token)
	}

	return &APIClient{
		httpClient: restyClient,
		url:        cfg.WebhookURL,
	}
}

// ReportLine is one Low or Out item of a report.
type ReportLine struct {
	ItemID         int64  `json:"itemId"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	Threshold      int    `json:"threshold"`
	Status         string `json:"status"`
	SuggestedOrder int    `json:"suggestedOrder"`
}

// ReportRequest is the JSON body posted to the webhook.
type ReportRequest struct {
	Text        string       `json:"text"`
	GeneratedAt time.Time    `json:"generatedAt"`
	LowStock    []ReportLine `json:"lowStock"`
}

// ReportResponse is whatever the receiver acknowledges with.
type ReportResponse struct {
	ID string `json:"id"`
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *APIClient) SendReport(ctx context.Context, req ReportRequest) (*ReportResponse, error) {
	result := new(ReportResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(result).
		SetError(apiErr).
		Post(c.url)
	if err != nil {
		return nil, fmt.Errorf("send stock report: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Message
		if message == "" {
			message = apiErr.Error
		}
		return nil, fmt.Errorf("webhook error: code=%d, message=%s", resp.StatusCode(), message)
	}

	return result, nil
}
