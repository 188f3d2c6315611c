package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/config"
)

func TestSendReport(t *testing.T) {
	var got ReportRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg-1"}`))
	}))
	defer srv.Close()

	client := NewClient(config.NotifyConfig{WebhookURL: srv.URL, Token: "secret"})
	resp, err := client.SendReport(context.Background(), ReportRequest{
		Text:        "1 item low",
		GeneratedAt: time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC),
		LowStock:    []ReportLine{{ItemID: 1, Name: "Floss", Quantity: 4, Threshold: 10, Status: "Low", SuggestedOrder: 20}},
	})
	require.NoError(t, err)
	assert.Equal(t, "msg-1", resp.ID)
	assert.Equal(t, "1 item low", got.Text)
	require.Len(t, got.LowStock, 1)
	assert.Equal(t, 20, got.LowStock[0].SuggestedOrder)
}

func TestSendReportErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"bad token"}`))
	}))
	defer srv.Close()

	client := NewClient(config.NotifyConfig{WebhookURL: srv.URL})
	_, err := client.SendReport(context.Background(), ReportRequest{Text: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code=401")
	assert.Contains(t, err.Error(), "bad token")
}
