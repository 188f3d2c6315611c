package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/domain/models"
)

// OrderStore keeps supply orders in memory.
type OrderStore struct {
	mu     sync.RWMutex
	nextID int64
	orders map[int64]models.Order
}

func NewOrderStore() *OrderStore {
	return &OrderStore{orders: make(map[int64]models.Order)}
}

func (s *OrderStore) Create(_ context.Context, order models.Order) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	order.ID = s.nextID
	s.orders[order.ID] = cloneOrder(order)
	return cloneOrder(order), nil
}

func (s *OrderStore) Get(_ context.Context, id int64) (models.Order, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	return cloneOrder(order), ok, nil
}

func (s *OrderStore) List(_ context.Context) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, 0, len(s.orders))
	for _, order := range s.orders {
		out = append(out, cloneOrder(order))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *OrderStore) Update(_ context.Context, order models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[order.ID]; !ok {
		return fmt.Errorf("order %d not stored", order.ID)
	}
	s.orders[order.ID] = cloneOrder(order)
	return nil
}

func cloneOrder(order models.Order) models.Order {
	if order.DeliveredAt != nil {
		at := *order.DeliveredAt
		order.DeliveredAt = &at
	}
	return order
}
