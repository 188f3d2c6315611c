// Package memory keeps ledger state in process memory. It backs DB_DRIVER=memory
// and the service unit tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/domain/models"
)

// InventoryStore is a map of inventory items guarded by a RWMutex.
// Values are copied in and out so callers never share state with the store.
type InventoryStore struct {
	mu    sync.RWMutex
	items map[int64]models.InventoryItem
}

func NewInventoryStore() *InventoryStore {
	return &InventoryStore{items: make(map[int64]models.InventoryItem)}
}

func (s *InventoryStore) List(_ context.Context) ([]models.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.InventoryItem, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InventoryStore) Get(_ context.Context, id int64) (models.InventoryItem, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	return item, ok, nil
}

func (s *InventoryStore) FindByNameKey(_ context.Context, key string) (models.InventoryItem, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.NameKey == key {
			return item, true, nil
		}
	}
	return models.InventoryItem{}, false, nil
}

func (s *InventoryStore) MaxID(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var maxID int64
	for id := range s.items {
		if id > maxID {
			maxID = id
		}
	}
	return maxID, nil
}

func (s *InventoryStore) Insert(_ context.Context, item models.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[item.ID]; exists {
		return fmt.Errorf("inventory item %d already stored", item.ID)
	}
	for _, existing := range s.items {
		if existing.NameKey == item.NameKey {
			return fmt.Errorf("inventory item name %q already stored", item.Name)
		}
	}
	s.items[item.ID] = item
	return nil
}

// Save replaces existing rows. Either every row is written or none is.
func (s *InventoryStore) Save(_ context.Context, items ...models.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range items {
		if _, ok := s.items[item.ID]; !ok {
			return fmt.Errorf("inventory item %d not stored", item.ID)
		}
	}
	for _, item := range items {
		s.items[item.ID] = item
	}
	return nil
}
