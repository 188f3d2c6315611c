package gormstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/domain/models"
)

// OrderStore keeps supply orders in the orders table.
type OrderStore struct {
	db *gorm.DB
}

func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

func (s *OrderStore) Create(ctx context.Context, order models.Order) (models.Order, error) {
	order.ID = 0
	err := s.db.WithContext(ctx).Create(&order).Error
	return order, err
}

func (s *OrderStore) Get(ctx context.Context, id int64) (models.Order, bool, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Take(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, false, nil
	}
	if err != nil {
		return models.Order{}, false, err
	}
	return order, true, nil
}

func (s *OrderStore) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.WithContext(ctx).Order("id").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderStore) Update(ctx context.Context, order models.Order) error {
	res := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", order.ID).
		Select("*").
		Updates(order)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %d not stored", order.ID)
	}
	return nil
}
