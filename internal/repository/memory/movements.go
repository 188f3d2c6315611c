package memory

import (
	"context"
	"sync"

	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/domain/models"
)

// MovementLog is an append-only in-memory audit trail.
type MovementLog struct {
	mu        sync.RWMutex
	movements []models.StockMovement
}

func NewMovementLog() *MovementLog {
	return &MovementLog{}
}

func (l *MovementLog) RecordMovements(_ context.Context, movements []models.StockMovement) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.movements = append(l.movements, movements...)
	return nil
}

// Movements returns a copy of everything recorded so far, oldest first.
func (l *MovementLog) Movements() []models.StockMovement {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.StockMovement, len(l.movements))
	copy(out, l.movements)
	return out
}

// ForItem returns the newest movements of one item first.
func (l *MovementLog) ForItem(_ context.Context, itemID int64, limit int) ([]models.StockMovement, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []models.StockMovement
	for i := len(l.movements) - 1; i >= 0; i-- {
		if l.movements[i].ItemID != itemID {
			continue
		}
		out = append(out, l.movements[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
