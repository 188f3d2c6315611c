package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/config"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/domain/models"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/service/reporting"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/pkg/clients/webhook"
)

type fakeReporter struct {
	report    reporting.Report
	err       error
	exportErr error
	exports   int
}

func (f *fakeReporter) Summary(context.Context) (reporting.Report, error) {
	return f.report, f.err
}

func (f *fakeReporter) ExportSnapshot(context.Context) (int, error) {
	f.exports++
	return 3, f.exportErr
}

type fakeNotifier struct {
	sent []webhook.ReportRequest
	err  error
}

func (f *fakeNotifier) SendReport(_ context.Context, req webhook.ReportRequest) (*webhook.ReportResponse, error) {
	f.sent = append(f.sent, req)
	return &webhook.ReportResponse{}, f.err
}

var validConfig = config.ReportingConfig{CronSchedule: "0 18 * * *", Timezone: "UTC"}

func TestNewSchedulerValidates(t *testing.T) {
	_, err := NewScheduler(config.ReportingConfig{CronSchedule: "not a cron", Timezone: "UTC"}, &fakeReporter{}, nil, nil)
	assert.Error(t, err)

	_, err = NewScheduler(config.ReportingConfig{CronSchedule: "0 18 * * *", Timezone: "Nowhere/Else"}, &fakeReporter{}, nil, nil)
	assert.Error(t, err)

	s, err := NewScheduler(validConfig, &fakeReporter{}, nil, nil)
	require.NoError(t, err)
	s.Start()
	s.Stop()
}

func TestRunReportSendsAndExports(t *testing.T) {
	reporter := &fakeReporter{report: reporting.Report{
		Text: "report",
		Low:  1,
		Lines: []reporting.Line{{
			Item:           models.InventoryItem{ID: 1, Name: "Floss", Quantity: 4, Threshold: 10, Status: models.StatusLow},
			SuggestedOrder: 16,
		}},
	}}
	notifier := &fakeNotifier{}

	s, err := NewScheduler(validConfig, reporter, notifier, nil)
	require.NoError(t, err)
	require.NoError(t, s.RunReport(context.Background()))

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "report", notifier.sent[0].Text)
	require.Len(t, notifier.sent[0].LowStock, 1)
	assert.Equal(t, "Low", notifier.sent[0].LowStock[0].Status)
	assert.Equal(t, 1, reporter.exports)
}

func TestRunReportToleratesDeliveryFailures(t *testing.T) {
	reporter := &fakeReporter{exportErr: reporting.ErrExportDisabled}
	notifier := &fakeNotifier{err: errors.New("timeout")}

	s, err := NewScheduler(validConfig, reporter, notifier, nil)
	require.NoError(t, err)
	assert.NoError(t, s.RunReport(context.Background()))
}

func TestRunReportSummaryFailure(t *testing.T) {
	reporter := &fakeReporter{err: errors.New("busy")}

	s, err := NewScheduler(validConfig, reporter, nil, nil)
	require.NoError(t, err)
	assert.Error(t, s.RunReport(context.Background()))
	assert.Zero(t, reporter.exports)
}
