package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/domain/models"
)

// ProcedureStore keeps definitions in procedures and their lines in procedure_lines.
type ProcedureStore struct {
	db *gorm.DB
}

func NewProcedureStore(db *gorm.DB) *ProcedureStore {
	return &ProcedureStore{db: db}
}

// Create inserts the definition and its lines in one transaction.
func (s *ProcedureStore) Create(ctx context.Context, def models.ProcedureDefinition) (models.ProcedureDefinition, error) {
	def.ID = 0
	for i := range def.Items {
		def.Items[i].ID = 0
		def.Items[i].Position = i
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&def).Error
	})
	return def, err
}

func (s *ProcedureStore) Get(ctx context.Context, id int64) (models.ProcedureDefinition, bool, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *ProcedureStore) FindByNameKey(ctx context.Context, key string) (models.ProcedureDefinition, bool, error) {
	return s.first(ctx, "name_key = ?", key)
}

func (s *ProcedureStore) List(ctx context.Context) ([]models.ProcedureDefinition, error) {
	var defs []models.ProcedureDefinition
	if err := s.withLines(ctx).Order("id").Find(&defs).Error; err != nil {
		return nil, err
	}
	return defs, nil
}

func (s *ProcedureStore) first(ctx context.Context, query string, args ...any) (models.ProcedureDefinition, bool, error) {
	var defs []models.ProcedureDefinition
	if err := s.withLines(ctx).Where(query, args...).Limit(1).Find(&defs).Error; err != nil {
		return models.ProcedureDefinition{}, false, err
	}
	if len(defs) == 0 {
		return models.ProcedureDefinition{}, false, nil
	}
	return defs[0], true, nil
}

func (s *ProcedureStore) withLines(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}
