package orders

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/domain/apperr"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/domain/models"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/service/inventory"
)

// Store persists supply orders.
type Store interface {
	Create(ctx context.Context, order models.Order) (models.Order, error)
	Get(ctx context.Context, id int64) (models.Order, bool, error)
	List(ctx context.Context) ([]models.Order, error)
	Update(ctx context.Context, order models.Order) error
}

// Ledger is the part of the inventory ledger orders drive.
type Ledger interface {
	BootstrapFromOrder(ctx context.Context, in inventory.BootstrapInput) (models.InventoryItem, bool, error)
	Restock(ctx context.Context, id int64, amount int, reason string) (models.InventoryItem, error)
	Deduct(ctx context.Context, id int64, amount int, reason string) (models.InventoryItem, error)
}

// PlaceInput describes a new supply order.
type PlaceInput struct {
	ProductName string
	Quantity    int
	Supplier    string
	Category    string
}

// Service places supply orders and reconciles deliveries into the ledger.
type Service struct {
	store  Store
	ledger Ledger
	logger *zap.Logger

	// guards the Pending -> Delivered/Cancelled transition
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

// Place records a pending order. The product is bootstrapped into the ledger
// when it is not tracked yet; an existing item is reused as is.
func (s *Service) Place(ctx context.Context, in PlaceInput) (models.Order, models.InventoryItem, error) {
	name := strings.TrimSpace(in.ProductName)
	if name == "" {
		return models.Order{}, models.InventoryItem{}, apperr.InvalidArgument("productName is required")
	}
	if in.Quantity <= 0 {
		return models.Order{}, models.InventoryItem{}, apperr.InvalidArgument("quantity must be a positive integer, got %d", in.Quantity)
	}

	item, created, err := s.ledger.BootstrapFromOrder(ctx, inventory.BootstrapInput{
		ProductName:   name,
		OrderQuantity: in.Quantity,
		Supplier:      in.Supplier,
		Category:      in.Category,
	})
	if err != nil {
		return models.Order{}, models.InventoryItem{}, err
	}

	order, err := s.store.Create(ctx, models.Order{
		ProductName:     name,
		Quantity:        in.Quantity,
		Supplier:        strings.TrimSpace(in.Supplier),
		Category:        strings.TrimSpace(in.Category),
		InventoryItemID: item.ID,
		Status:          models.OrderPending,
		CreatedAt:       s.now(),
	})
	if err != nil {
		return models.Order{}, models.InventoryItem{}, apperr.Internal(err, "store order for %q", name)
	}

	s.logger.Info("order placed",
		zap.Int64("order_id", order.ID),
		zap.String("product", name),
		zap.Int("quantity", in.Quantity),
		zap.Int64("item_id", item.ID),
		zap.Bool("item_created", created))
	return order, item, nil
}

// MarkDelivered restocks the linked item. deliveredQuantity <= 0 means the full ordered quantity.
// When the order row cannot be updated the restock is deducted again, so the
// order stays Pending with the ledger unchanged and the call can be retried.
func (s *Service) MarkDelivered(ctx context.Context, id int64, deliveredQuantity int) (models.Order, models.InventoryItem, error) {
	if deliveredQuantity < 0 {
		return models.Order{}, models.InventoryItem{}, apperr.InvalidArgument("deliveredQuantity must be >= 0, got %d", deliveredQuantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.pending(ctx, id)
	if err != nil {
		return models.Order{}, models.InventoryItem{}, err
	}
	if deliveredQuantity == 0 {
		deliveredQuantity = order.Quantity
	}

	item, err := s.ledger.Restock(ctx, order.InventoryItemID, deliveredQuantity, fmt.Sprintf("order %d delivered", order.ID))
	if err != nil {
		return models.Order{}, models.InventoryItem{}, err
	}

	at := s.now()
	order.Status = models.OrderDelivered
	order.DeliveredQuantity = deliveredQuantity
	order.DeliveredAt = &at
	if err := s.store.Update(ctx, order); err != nil {
		s.rollbackDelivery(ctx, order)
		return models.Order{}, models.InventoryItem{}, apperr.Internal(err, "update order %d", order.ID)
	}

	s.logger.Info("order delivered", zap.Int64("order_id", order.ID), zap.Int("delivered", deliveredQuantity), zap.Int("quantity_after", item.Quantity))
	return order, item, nil
}

func (s *Service) rollbackDelivery(ctx context.Context, order models.Order) {
	_, err := s.ledger.Deduct(ctx, order.InventoryItemID, order.DeliveredQuantity, fmt.Sprintf("order %d delivery rollback", order.ID))
	if err != nil {
		// stock stays restocked while the order is Pending; a retry would restock twice
		s.logger.Error("order delivery not rolled back",
			zap.Int64("order_id", order.ID),
			zap.Int64("item_id", order.InventoryItemID),
			zap.Int("delivered", order.DeliveredQuantity),
			zap.Error(err))
		return
	}
	s.logger.Warn("order delivery rolled back", zap.Int64("order_id", order.ID), zap.Int("delivered", order.DeliveredQuantity))
}

// Cancel closes a pending order without touching the ledger.
func (s *Service) Cancel(ctx context.Context, id int64) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.pending(ctx, id)
	if err != nil {
		return models.Order{}, err
	}

	order.Status = models.OrderCancelled
	if err := s.store.Update(ctx, order); err != nil {
		return models.Order{}, apperr.Internal(err, "update order %d", order.ID)
	}

	s.logger.Info("order cancelled", zap.Int64("order_id", order.ID))
	return order, nil
}

func (s *Service) List(ctx context.Context) ([]models.Order, error) {
	orders, err := s.store.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err, "list orders")
	}
	return orders, nil
}

func (s *Service) Get(ctx context.Context, id int64) (models.Order, error) {
	order, ok, err := s.store.Get(ctx, id)
	if err != nil {
		return models.Order{}, apperr.Internal(err, "load order %d", id)
	}
	if !ok {
		return models.Order{}, apperr.NotFound("order %d not found", id)
	}
	return order, nil
}

func (s *Service) pending(ctx context.Context, id int64) (models.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	if order.Status != models.OrderPending {
		return models.Order{}, apperr.Conflict("order %d is %s", id, order.Status)
	}
	return order, nil
}
