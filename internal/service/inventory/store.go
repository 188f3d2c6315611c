package inventory

import (
	"context"
	"errors"

	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/domain/models"
)

// Store persists ledger rows. The ledger serializes every call that mutates,
// so implementations only need to make Save of several items all-or-nothing.
type Store interface {
	List(ctx context.Context) ([]models.InventoryItem, error)
	Get(ctx context.Context, id int64) (models.InventoryItem, bool, error)
	FindByNameKey(ctx context.Context, key string) (models.InventoryItem, bool, error)
	MaxID(ctx context.Context) (int64, error)
	Insert(ctx context.Context, item models.InventoryItem) error
	Save(ctx context.Context, items ...models.InventoryItem) error
}

// MovementRecorder receives audit records after a mutation has committed.
type MovementRecorder interface {
	RecordMovements(ctx context.Context, movements []models.StockMovement) error
}

// Recorders fans movements out to several sinks. Every sink is tried; the
// errors of failing sinks are joined.
type Recorders []MovementRecorder

func (r Recorders) RecordMovements(ctx context.Context, movements []models.StockMovement) error {
	var errs []error
	for _, rec := range r {
		if err := rec.RecordMovements(ctx, movements); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
