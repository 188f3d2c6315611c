package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/domain/models"
)

// ProcedureStore keeps procedure definitions in memory.
type ProcedureStore struct {
	mu     sync.RWMutex
	nextID int64
	defs   map[int64]models.ProcedureDefinition
}

func NewProcedureStore() *ProcedureStore {
	return &ProcedureStore{defs: make(map[int64]models.ProcedureDefinition)}
}

func (s *ProcedureStore) Create(_ context.Context, def models.ProcedureDefinition) (models.ProcedureDefinition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.defs {
		if existing.NameKey == def.NameKey {
			return models.ProcedureDefinition{}, fmt.Errorf("procedure name %q already stored", def.Name)
		}
	}

	s.nextID++
	def.ID = s.nextID
	def.Items = cloneLines(def.Items)
	for i := range def.Items {
		def.Items[i].ProcedureID = def.ID
		def.Items[i].Position = i
	}
	s.defs[def.ID] = def
	return cloneProcedure(def), nil
}

func (s *ProcedureStore) Get(_ context.Context, id int64) (models.ProcedureDefinition, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, ok := s.defs[id]
	return cloneProcedure(def), ok, nil
}

func (s *ProcedureStore) FindByNameKey(_ context.Context, key string) (models.ProcedureDefinition, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, def := range s.defs {
		if def.NameKey == key {
			return cloneProcedure(def), true, nil
		}
	}
	return models.ProcedureDefinition{}, false, nil
}

func (s *ProcedureStore) List(_ context.Context) ([]models.ProcedureDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ProcedureDefinition, 0, len(s.defs))
	for _, def := range s.defs {
		out = append(out, cloneProcedure(def))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func cloneProcedure(def models.ProcedureDefinition) models.ProcedureDefinition {
	def.Items = cloneLines(def.Items)
	return def
}

func cloneLines(lines []models.ProcedureLine) []models.ProcedureLine {
	if lines == nil {
		return nil
	}
	out := make([]models.ProcedureLine, len(lines))
	copy(out, lines)
	return out
}
