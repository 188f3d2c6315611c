package procedures

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/domain/apperr"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/domain/models"
)

// Store persists procedure definitions.
type Store interface {
	Create(ctx context.Context, def models.ProcedureDefinition) (models.ProcedureDefinition, error)
	Get(ctx context.Context, id int64) (models.ProcedureDefinition, bool, error)
	FindByNameKey(ctx context.Context, key string) (models.ProcedureDefinition, bool, error)
	List(ctx context.Context) ([]models.ProcedureDefinition, error)
}

// Ledger is the part of the inventory ledger the catalog depends on.
type Ledger interface {
	Get(ctx context.Context, id int64) (models.InventoryItem, error)
	ConsumeForProcedure(ctx context.Context, lines []models.ConsumptionLine, reason string) ([]models.InventoryItem, error)
}

// LineInput is one requested line of a new procedure.
type LineInput struct {
	InventoryItemID int64
	Quantity        int
}

// Service manages the procedure catalog and performs procedures against the ledger.
type Service struct {
	store  Store
	ledger Ledger
	logger *zap.Logger

	// serializes name checks with inserts
	mu  sync.Mutex
	now func() time.Time
}

func NewService(store Store, ledger Ledger, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		store:  store,
		ledger: ledger,
		logger: logger,
		now:    time.Now,
	}
}

// Create validates and stores a new procedure. Every referenced item must exist
// now; item names are cached on the lines for display.
func (s *Service) Create(ctx context.Context, name string, lines []LineInput) (models.ProcedureDefinition, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.ProcedureDefinition{}, apperr.InvalidArgument("procedure name is required")
	}
	if len(lines) == 0 {
		return models.ProcedureDefinition{}, apperr.InvalidArgument("procedure %q needs at least one item", name)
	}
	for i, line := range lines {
		if line.Quantity <= 0 {
			return models.ProcedureDefinition{}, apperr.InvalidArgument("line %d: quantity must be a positive integer, got %d", i+1, line.Quantity)
		}
	}

	def := models.ProcedureDefinition{
		Name:    name,
		NameKey: models.NameKey(name),
		Items:   make([]models.ProcedureLine, 0, len(lines)),
	}
	for i, line := range lines {
		item, err := s.ledger.Get(ctx, line.InventoryItemID)
		if err != nil {
			return models.ProcedureDefinition{}, err
		}
		def.Items = append(def.Items, models.ProcedureLine{
			Position:          i,
			InventoryItemID:   item.ID,
			InventoryItemName: item.Name,
			Quantity:          line.Quantity,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists, err := s.store.FindByNameKey(ctx, def.NameKey)
	if err != nil {
		return models.ProcedureDefinition{}, apperr.Internal(err, "lookup procedure %q", name)
	}
	if exists {
		return models.ProcedureDefinition{}, apperr.Conflict("procedure %q already exists", name)
	}

	def.CreatedAt = s.now()
	created, err := s.store.Create(ctx, def)
	if err != nil {
		return models.ProcedureDefinition{}, apperr.Internal(err, "store procedure %q", name)
	}

	s.logger.Info("procedure defined", zap.Int64("procedure_id", created.ID), zap.String("name", created.Name), zap.Int("lines", len(created.Items)))
	return created, nil
}

func (s *Service) List(ctx context.Context) ([]models.ProcedureDefinition, error) {
	defs, err := s.store.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err, "list procedures")
	}
	return defs, nil
}

func (s *Service) Get(ctx context.Context, id int64) (models.ProcedureDefinition, error) {
	def, ok, err := s.store.Get(ctx, id)
	if err != nil {
		return models.ProcedureDefinition{}, apperr.Internal(err, "load procedure %d", id)
	}
	if !ok {
		return models.ProcedureDefinition{}, apperr.NotFound("procedure %d not found", id)
	}
	return def, nil
}

// Perform consumes every line of the procedure in one atomic ledger operation.
func (s *Service) Perform(ctx context.Context, id int64) (models.ProcedureDefinition, []models.InventoryItem, error) {
	def, err := s.Get(ctx, id)
	if err != nil {
		return models.ProcedureDefinition{}, nil, err
	}

	items, err := s.ledger.ConsumeForProcedure(ctx, def.ConsumptionLines(), fmt.Sprintf("procedure: %s", def.Name))
	if err != nil {
		s.logger.Warn("procedure not performed", zap.Int64("procedure_id", id), zap.String("name", def.Name), zap.Error(err))
		return def, nil, err
	}

	s.logger.Info("procedure performed", zap.Int64("procedure_id", id), zap.String("name", def.Name))
	return def, items, nil
}
