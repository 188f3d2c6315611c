package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/domain/models"
)

// MovementStore appends audit records to stock_movements.
type MovementStore struct {
	db *gorm.DB
}

func NewMovementStore(db *gorm.DB) *MovementStore {
	return &MovementStore{db: db}
}

func (s *MovementStore) RecordMovements(ctx context.Context, movements []models.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).CreateInBatches(movements, 100).Error
}

// ForItem returns the newest movements of one item first.
func (s *MovementStore) ForItem(ctx context.Context, itemID int64, limit int) ([]models.StockMovement, error) {
	var movements []models.StockMovement
	q := s.db.WithContext(ctx).Where("item_id = ?", itemID).Order("recorded_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}
