package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/domain/models"
)

type staticLedger struct {
	items []models.InventoryItem
	err   error
}

func (l staticLedger) List(context.Context) ([]models.InventoryItem, error) {
	return l.items, l.err
}

type recordingWriter struct {
	sheetRange string
	rows       [][]interface{}
	err        error
}

func (w *recordingWriter) AppendRows(_ context.Context, sheetRange string, rows [][]interface{}) error {
	w.sheetRange = sheetRange
	w.rows = rows
	return w.err
}

var reportTime = time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)

func sampleItems() []models.InventoryItem {
	return []models.InventoryItem{
		{ID: 1, Name: "Dental Floss", Quantity: 4, Threshold: 10, Status: models.StatusLow},
		{ID: 2, Name: "Gloves", Quantity: 0, Threshold: 20, OrderAmount: 100, Status: models.StatusOut},
		{ID: 3, Name: "Suction Tips", Quantity: 199, Threshold: 50, Status: models.StatusOK},
	}
}

func newTestService(ledger ItemLister, writer *recordingWriter) *Service {
	var svc *Service
	if writer == nil {
		svc = NewService(ledger, nil, "Inventory!A:H", nil, nil)
	} else {
		svc = NewService(ledger, writer, "Inventory!A:H", nil, nil)
	}
	svc.now = func() time.Time { return reportTime }
	return svc
}

func TestSummary(t *testing.T) {
	svc := newTestService(staticLedger{items: sampleItems()}, nil)

	report, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 1, report.OK)
	assert.Equal(t, 1, report.Low)
	assert.Equal(t, 1, report.Out)
	require.Len(t, report.Lines, 2)
	assert.Equal(t, "Gloves", report.Lines[0].Item.Name)
	assert.Equal(t, 100, report.Lines[0].SuggestedOrder)
	assert.Equal(t, 16, report.Lines[1].SuggestedOrder)

	assert.Contains(t, report.Text, "Stock report 2024-05-01 18:00 UTC: 3 items (1 OK, 1 Low, 1 Out)")
	assert.Contains(t, report.Text, "- Gloves: 0 left (threshold 20) Out, reorder 100")
	assert.Contains(t, report.Text, "- Dental Floss: 4 left (threshold 10) Low, reorder 16")
}

func TestSummaryAllHealthy(t *testing.T) {
	svc := newTestService(staticLedger{items: []models.InventoryItem{{ID: 1, Name: "Bibs", Quantity: 50, Threshold: 5, Status: models.StatusOK}}}, nil)

	report, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Lines)
	assert.Contains(t, report.Text, "Everything is above its reorder threshold.")
}

func TestSummaryLedgerError(t *testing.T) {
	svc := newTestService(staticLedger{err: errors.New("busy")}, nil)

	_, err := svc.Summary(context.Background())
	assert.Error(t, err)
}

func TestSuggestedOrder(t *testing.T) {
	tests := []struct {
		name string
		item models.InventoryItem
		want int
	}{
		{"configured amount wins", models.InventoryItem{Quantity: 0, Threshold: 10, OrderAmount: 7}, 7},
		{"out of stock", models.InventoryItem{Quantity: 0, Threshold: 10}, 20},
		{"low", models.InventoryItem{Quantity: 9, Threshold: 10}, 11},
		{"zero threshold", models.InventoryItem{Quantity: 0, Threshold: 0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SuggestedOrder(tt.item))
		})
	}
}

func TestExportSnapshot(t *testing.T) {
	writer := &recordingWriter{}
	svc := newTestService(staticLedger{items: sampleItems()}, writer)

	n, err := svc.ExportSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "Inventory!A:H", writer.sheetRange)
	require.Len(t, writer.rows, 3)
	assert.Equal(t, "Gloves", writer.rows[1][2])
}

func TestExportSnapshotDisabled(t *testing.T) {
	svc := newTestService(staticLedger{items: sampleItems()}, nil)

	_, err := svc.ExportSnapshot(context.Background())
	assert.ErrorIs(t, err, ErrExportDisabled)
}

func TestExportSnapshotWriterError(t *testing.T) {
	writer := &recordingWriter{err: errors.New("quota")}
	svc := newTestService(staticLedger{items: sampleItems()}, writer)

	_, err := svc.ExportSnapshot(context.Background())
	assert.ErrorContains(t, err, "quota")
}
