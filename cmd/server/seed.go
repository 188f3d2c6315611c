package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/domain/apperr"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/service/inventory"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/service/procedures"
)

var demoItems = []inventory.CreateInput{
	{Name: "Dental Floss", Quantity: 5, Threshold: 10, OrderAmount: 50, Category: "Hygiene", Supplier: "Oral-B"},
	{Name: "Gloves", Quantity: 15, Threshold: 20, OrderAmount: 200, Category: "PPE", Supplier: "Medline"},
	{Name: "Suction Tips", Quantity: 200, Threshold: 50, OrderAmount: 500, Category: "Disposables", Supplier: "Henry Schein"},
}

// routineCleaning lists item names with the units one cleaning uses.
var routineCleaning = []struct {
	item     string
	quantity int
}{
	{"Dental Floss", 1},
	{"Gloves", 2},
	{"Suction Tips", 1},
}

// seedDemoData loads the demo ledger and the "Routine Cleaning" procedure.
// Rows that already exist are left alone, so restarts are safe.
func seedDemoData(ctx context.Context, ledger *inventory.Ledger, catalog *procedures.Service, log *zap.Logger) error {
	for _, in := range demoItems {
		if _, err := ledger.Create(ctx, in); err != nil && !errors.Is(err, apperr.ErrConflict) {
			return fmt.Errorf("seed item %q: %w", in.Name, err)
		}
	}

	items, err := ledger.List(ctx)
	if err != nil {
		return err
	}
	ids := make(map[string]int64, len(items))
	for _, item := range items {
		ids[item.Name] = item.ID
	}

	lines := make([]procedures.LineInput, 0, len(routineCleaning))
	for _, line := range routineCleaning {
		id, ok := ids[line.item]
		if !ok {
			return fmt.Errorf("seed procedure: item %q missing", line.item)
		}
		lines = append(lines, procedures.LineInput{InventoryItemID: id, Quantity: line.quantity})
	}

	if _, err := catalog.Create(ctx, "Routine Cleaning", lines); err != nil && !errors.Is(err, apperr.ErrConflict) {
		return fmt.Errorf("seed procedure: %w", err)
	}

	log.Info("demo data seeded", zap.Int("items", len(demoItems)))
	return nil
}
