package reporting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/domain/models"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/repository/sheets"
)

const timeLayout = "2006-01-02 15:04 MST"

// ErrExportDisabled is returned by ExportSnapshot when no spreadsheet is configured.
var ErrExportDisabled = errors.New("snapshot export is not configured")

// ItemLister is the read side of the inventory ledger.
type ItemLister interface {
	List(ctx context.Context) ([]models.InventoryItem, error)
}

// Line is one Low or Out item with the amount we suggest to reorder.
type Line struct {
	Item           models.InventoryItem `json:"item"`
	SuggestedOrder int                  `json:"suggestedOrder"`
}

// Report is a point-in-time view of stock levels.
type Report struct {
	GeneratedAt time.Time `json:"generatedAt"`
	Total       int       `json:"total"`
	OK          int       `json:"ok"`
	Low         int       `json:"low"`
	Out         int       `json:"out"`
	Lines       []Line    `json:"lines"`
	Text        string    `json:"text"`
}

// Service builds stock summaries and exports ledger snapshots.
type Service struct {
	ledger     ItemLister
	sheets     sheets.RowWriter
	sheetRange string
	location   *time.Location
	logger     *zap.Logger
	now        func() time.Time
}

// NewService wires a new reporting service instance. writer may be nil when
// snapshot export is disabled; loc defaults to UTC.
func NewService(ledger ItemLister, writer sheets.RowWriter, sheetRange string, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		ledger:     ledger,
		sheets:     writer,
		sheetRange: sheetRange,
		location:   loc,
		logger:     logger,
		now:        time.Now,
	}
}

// Summary counts items per status and lists every Low and Out item, Out first.
func (s *Service) Summary(ctx context.Context) (Report, error) {
	items, err := s.ledger.List(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("load inventory: %w", err)
	}

	report := Report{
		GeneratedAt: s.now().In(s.location),
		Total:       len(items),
		Lines:       []Line{},
	}

	var low []Line
	for _, item := range items {
		switch item.Status {
		case models.StatusOut:
			report.Out++
			report.Lines = append(report.Lines, Line{Item: item, SuggestedOrder: SuggestedOrder(item)})
		case models.StatusLow:
			report.Low++
			low = append(low, Line{Item: item, SuggestedOrder: SuggestedOrder(item)})
		default:
			report.OK++
		}
	}
	report.Lines = append(report.Lines, low...)
	report.Text = render(report)

	return report, nil
}

// ExportSnapshot appends the current ledger to the configured spreadsheet range.
func (s *Service) ExportSnapshot(ctx context.Context) (int, error) {
	if s.sheets == nil {
		return 0, ErrExportDisabled
	}

	items, err := s.ledger.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("load inventory: %w", err)
	}

	rows := sheets.SnapshotRows(items, s.now().In(s.location))
	if err := s.sheets.AppendRows(ctx, s.sheetRange, rows); err != nil {
		return 0, fmt.Errorf("export snapshot: %w", err)
	}

	s.logger.Info("inventory snapshot exported", zap.Int("rows", len(rows)), zap.String("range", s.sheetRange))
	return len(rows), nil
}

// SuggestedOrder is the item's configured order amount, or enough to get back
// to twice the threshold when none is set.
func SuggestedOrder(item models.InventoryItem) int {
	if item.OrderAmount > 0 {
		return item.OrderAmount
	}
	if n := 2*item.Threshold - item.Quantity; n > 0 {
		return n
	}
	return 1
}

func render(r Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Stock report %s: %d items (%d OK, %d Low, %d Out)", r.GeneratedAt.Format(timeLayout), r.Total, r.OK, r.Low, r.Out)

	if len(r.Lines) == 0 {
		b.WriteString("\nEverything is above its reorder threshold.")
		return b.String()
	}

	for _, line := range r.Lines {
		fmt.Fprintf(&b, "\n- %s: %d left (threshold %d) %s, reorder %d",
			line.Item.Name, line.Item.Quantity, line.Item.Threshold, line.Item.Status, line.SuggestedOrder)
	}
	return b.String()
}
