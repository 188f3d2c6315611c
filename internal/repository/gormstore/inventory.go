package gormstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/domain/models"
)

// InventoryStore keeps ledger rows in the inventory_items table.
type InventoryStore struct {
	db *gorm.DB
}

func NewInventoryStore(db *gorm.DB) *InventoryStore {
	return &InventoryStore{db: db}
}

func (s *InventoryStore) List(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := s.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *InventoryStore) Get(ctx context.Context, id int64) (models.InventoryItem, bool, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *InventoryStore) FindByNameKey(ctx context.Context, key string) (models.InventoryItem, bool, error) {
	return s.first(ctx, "name_key = ?", key)
}

func (s *InventoryStore) MaxID(ctx context.Context) (int64, error) {
	var maxID int64
	err := s.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Select("COALESCE(MAX(id), 0)").
		Scan(&maxID).Error
	return maxID, err
}

func (s *InventoryStore) Insert(ctx context.Context, item models.InventoryItem) error {
	return s.db.WithContext(ctx).Create(&item).Error
}

// Save overwrites every given row inside one transaction.
func (s *InventoryStore) Save(ctx context.Context, items ...models.InventoryItem) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			res := tx.Model(&models.InventoryItem{}).
				Where("id = ?", item.ID).
				Select("*").
				Updates(item)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("inventory item %d not stored", item.ID)
			}
		}
		return nil
	})
}

func (s *InventoryStore) first(ctx context.Context, query string, args ...any) (models.InventoryItem, bool, error) {
	var items []models.InventoryItem
	if err := s.db.WithContext(ctx).Where(query, args...).Limit(1).Find(&items).Error; err != nil {
		return models.InventoryItem{}, false, err
	}
	if len(items) == 0 {
		return models.InventoryItem{}, false, nil
	}
	return items[0], true, nil
}
