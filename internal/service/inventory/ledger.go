package inventory

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/domain/apperr"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/domain/models"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/metrics"
)

// DefaultBootstrapPercent is the share of an order quantity used as the reorder
// threshold of a bootstrapped item. It is a policy value, not a derived rule.
const DefaultBootstrapPercent = 20

// DefaultLockTimeout bounds how long a caller waits for the ledger lock.
const DefaultLockTimeout = 2 * time.Second

// Options tunes a Ledger.
type Options struct {
	LockTimeout      time.Duration
	BootstrapPercent int
}

// CreateInput carries the fields of a new inventory item.
type CreateInput struct {
	Name        string
	Quantity    int
	Threshold   int
	OrderAmount int
	Category    string
	Supplier    string
}

// AdjustInput overwrites the mutable numeric fields of an item.
// Nil optionals keep their current value.
type AdjustInput struct {
	Quantity    int
	Threshold   *int
	OrderAmount *int
}

// BootstrapInput describes an order for a product that may not be tracked yet.
type BootstrapInput struct {
	ProductName   string
	OrderQuantity int
	Supplier      string
	Category      string
}

// Ledger is the authoritative set of inventory items. All mutations go through
// one write critical section, so check and act always see the same snapshot.
type Ledger struct {
	store     Store
	movements MovementRecorder
	metrics   *metrics.Metrics
	lock      *ledgerLock
	logger    *zap.Logger

	bootstrapPercent int
	now              func() time.Time
}

// NewLedger wires a ledger over the given store. movements and m may be nil.
func NewLedger(store Store, movements MovementRecorder, m *metrics.Metrics, opts Options, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.LockTimeout <= 0 {
		opts.LockTimeout = DefaultLockTimeout
	}
	if opts.BootstrapPercent <= 0 {
		opts.BootstrapPercent = DefaultBootstrapPercent
	}
	if opts.BootstrapPercent > 100 {
		opts.BootstrapPercent = 100
	}

	return &Ledger{
		store:            store,
		movements:        movements,
		metrics:          m,
		lock:             newLedgerLock(opts.LockTimeout, m),
		logger:           logger,
		bootstrapPercent: opts.BootstrapPercent,
		now:              time.Now,
	}
}

// List returns every item ordered by id.
func (l *Ledger) List(ctx context.Context) ([]models.InventoryItem, error) {
	release, err := l.lock.read(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	items, err := l.store.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err, "list inventory")
	}
	l.metrics.ObserveItems(items)
	return items, nil
}

// Get returns a single item.
func (l *Ledger) Get(ctx context.Context, id int64) (models.InventoryItem, error) {
	release, err := l.lock.read(ctx)
	if err != nil {
		return models.InventoryItem{}, err
	}
	defer release()

	return l.mustGet(ctx, id)
}

// LowStock returns the items whose status is Low or Out.
func (l *Ledger) LowStock(ctx context.Context) ([]models.InventoryItem, error) {
	items, err := l.List(ctx)
	if err != nil {
		return nil, err
	}

	low := make([]models.InventoryItem, 0, len(items))
	for _, item := range items {
		if item.Status != models.StatusOK {
			low = append(low, item)
		}
	}
	return low, nil
}

// Create adds a new item. Names are unique case-insensitively.
func (l *Ledger) Create(ctx context.Context, in CreateInput) (models.InventoryItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.InventoryItem{}, apperr.InvalidArgument("name is required")
	}
	if err := nonNegative("quantity", in.Quantity); err != nil {
		return models.InventoryItem{}, err
	}
	if err := nonNegative("threshold", in.Threshold); err != nil {
		return models.InventoryItem{}, err
	}
	if err := nonNegative("orderAmount", in.OrderAmount); err != nil {
		return models.InventoryItem{}, err
	}

	var created models.InventoryItem
	err := l.withWrite(ctx, "create", func() error {
		_, exists, err := l.store.FindByNameKey(ctx, models.NameKey(name))
		if err != nil {
			return apperr.Internal(err, "lookup inventory item %q", name)
		}
		if exists {
			return apperr.Conflict("inventory item %q already exists", name)
		}

		created, err = l.insert(ctx, models.InventoryItem{
			Name:        name,
			Quantity:    in.Quantity,
			Threshold:   in.Threshold,
			OrderAmount: in.OrderAmount,
			Category:    withDefault(in.Category, models.DefaultCategory),
			Supplier:    withDefault(in.Supplier, models.DefaultSupplier),
		})
		return err
	})
	if err != nil {
		return models.InventoryItem{}, err
	}

	l.record(ctx, l.movement(created, created.Quantity, models.SourceCreate, ""))
	return created, nil
}

// Adjust overwrites quantity and, when supplied, threshold and order amount.
func (l *Ledger) Adjust(ctx context.Context, id int64, in AdjustInput) (models.InventoryItem, error) {
	if err := nonNegative("quantity", in.Quantity); err != nil {
		return models.InventoryItem{}, err
	}
	if in.Threshold != nil {
		if err := nonNegative("threshold", *in.Threshold); err != nil {
			return models.InventoryItem{}, err
		}
	}
	if in.OrderAmount != nil {
		if err := nonNegative("orderAmount", *in.OrderAmount); err != nil {
			return models.InventoryItem{}, err
		}
	}

	var (
		updated models.InventoryItem
		delta   int
	)
	err := l.withWrite(ctx, "adjust", func() error {
		item, err := l.mustGet(ctx, id)
		if err != nil {
			return err
		}

		delta = in.Quantity - item.Quantity
		item.Quantity = in.Quantity
		if in.Threshold != nil {
			item.Threshold = *in.Threshold
		}
		if in.OrderAmount != nil {
			item.OrderAmount = *in.OrderAmount
		}
		item.Touch(l.now())

		if err := l.store.Save(ctx, item); err != nil {
			return apperr.Internal(err, "save inventory item %d", id)
		}
		updated = item
		return nil
	})
	if err != nil {
		return models.InventoryItem{}, err
	}

	l.record(ctx, l.movement(updated, delta, models.SourceAdjust, ""))
	return updated, nil
}

// Deduct removes amount units from one item. reason is kept for the audit trail only.
func (l *Ledger) Deduct(ctx context.Context, id int64, amount int, reason string) (models.InventoryItem, error) {
	if amount <= 0 {
		return models.InventoryItem{}, apperr.InvalidArgument("amount must be a positive integer, got %d", amount)
	}

	var updated models.InventoryItem
	err := l.withWrite(ctx, "deduct", func() error {
		item, err := l.mustGet(ctx, id)
		if err != nil {
			return err
		}
		if amount > item.Quantity {
			return apperr.InsufficientStock(item.Name, item.Quantity, amount)
		}

		item.Quantity -= amount
		item.Touch(l.now())

		if err := l.store.Save(ctx, item); err != nil {
			return apperr.Internal(err, "save inventory item %d", id)
		}
		updated = item
		return nil
	})
	if err != nil {
		return models.InventoryItem{}, err
	}

	l.record(ctx, l.movement(updated, -amount, models.SourceDeduct, reason))
	return updated, nil
}

// Restock adds amount units to one item, e.g. when an order is delivered.
func (l *Ledger) Restock(ctx context.Context, id int64, amount int, reason string) (models.InventoryItem, error) {
	if amount <= 0 {
		return models.InventoryItem{}, apperr.InvalidArgument("amount must be a positive integer, got %d", amount)
	}

	var updated models.InventoryItem
	err := l.withWrite(ctx, "restock", func() error {
		item, err := l.mustGet(ctx, id)
		if err != nil {
			return err
		}
		if amount > math.MaxInt-item.Quantity {
			return apperr.InvalidArgument("restock of %d would overflow quantity %d of %s", amount, item.Quantity, item.Name)
		}

		item.Quantity += amount
		item.Touch(l.now())

		if err := l.store.Save(ctx, item); err != nil {
			return apperr.Internal(err, "save inventory item %d", id)
		}
		updated = item
		return nil
	})
	if err != nil {
		return models.InventoryItem{}, err
	}

	l.record(ctx, l.movement(updated, amount, models.SourceRestock, reason))
	return updated, nil
}

// ConsumeForProcedure deducts every line or nothing at all.
//
// Phase one checks that every item exists and that every (aggregated) requirement
// is covered, collecting all shortfalls. Phase two deducts and persists all rows
// in one store call. Both phases run under the same write lock.
func (l *Ledger) ConsumeForProcedure(ctx context.Context, lines []models.ConsumptionLine, reason string) ([]models.InventoryItem, error) {
	if len(lines) == 0 {
		return nil, apperr.InvalidArgument("at least one consumption line is required")
	}

	order := make([]int64, 0, len(lines))
	required := make(map[int64]int, len(lines))
	for i, line := range lines {
		if line.Quantity <= 0 {
			return nil, apperr.InvalidArgument("line %d: quantity must be a positive integer, got %d", i+1, line.Quantity)
		}
		sum, seen := required[line.ItemID]
		if !seen {
			order = append(order, line.ItemID)
		}
		if line.Quantity > math.MaxInt-sum {
			return nil, apperr.InvalidArgument("line %d: total quantity for item %d overflows", i+1, line.ItemID)
		}
		required[line.ItemID] = sum + line.Quantity
	}

	var updated []models.InventoryItem
	err := l.withWrite(ctx, "consume", func() error {
		items := make([]models.InventoryItem, 0, len(order))
		var missing []string
		for _, id := range order {
			item, ok, err := l.store.Get(ctx, id)
			if err != nil {
				return apperr.Internal(err, "load inventory item %d", id)
			}
			if !ok {
				missing = append(missing, fmt.Sprint(id))
				continue
			}
			items = append(items, item)
		}
		if len(missing) > 0 {
			return apperr.NotFound("inventory item(s) not found: %s", strings.Join(missing, ", "))
		}

		var shortfalls []apperr.Shortfall
		for _, item := range items {
			if need := required[item.ID]; need > item.Quantity {
				shortfalls = append(shortfalls, apperr.Shortfall{
					ItemID:    item.ID,
					Name:      item.Name,
					Available: item.Quantity,
					Required:  need,
				})
			}
		}
		if len(shortfalls) > 0 {
			return apperr.InsufficientInventory(shortfalls)
		}

		now := l.now()
		for i := range items {
			items[i].Quantity -= required[items[i].ID]
			items[i].Touch(now)
		}
		if err := l.store.Save(ctx, items...); err != nil {
			return apperr.Internal(err, "save consumed inventory")
		}
		updated = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	movements := make([]models.StockMovement, 0, len(updated))
	for _, item := range updated {
		movements = append(movements, l.movement(item, -required[item.ID], models.SourceProcedure, reason))
	}
	l.record(ctx, movements...)
	return updated, nil
}

// BootstrapFromOrder makes sure an ordered product is tracked. A new item starts
// at quantity 0 with a threshold of ceil(percent% of the order quantity).
// An existing item with the same name is returned unchanged with created=false.
func (l *Ledger) BootstrapFromOrder(ctx context.Context, in BootstrapInput) (item models.InventoryItem, created bool, err error) {
	name := strings.TrimSpace(in.ProductName)
	if name == "" {
		return models.InventoryItem{}, false, apperr.InvalidArgument("productName is required")
	}
	if in.OrderQuantity <= 0 {
		return models.InventoryItem{}, false, apperr.InvalidArgument("order quantity must be a positive integer, got %d", in.OrderQuantity)
	}

	err = l.withWrite(ctx, "bootstrap", func() error {
		existing, exists, err := l.store.FindByNameKey(ctx, models.NameKey(name))
		if err != nil {
			return apperr.Internal(err, "lookup inventory item %q", name)
		}
		if exists {
			item = existing
			return nil
		}

		item, err = l.insert(ctx, models.InventoryItem{
			Name:      name,
			Quantity:  0,
			Threshold: BootstrapThreshold(in.OrderQuantity, l.bootstrapPercent),
			Category:  withDefault(in.Category, models.DefaultCategory),
			Supplier:  withDefault(in.Supplier, models.DefaultSupplier),
		})
		if err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return models.InventoryItem{}, false, err
	}

	if created {
		l.record(ctx, l.movement(item, 0, models.SourceBootstrap, fmt.Sprintf("order of %d", in.OrderQuantity)))
	}
	return item, created, nil
}

// BootstrapThreshold is ceil(percent * orderQuantity / 100) in integer arithmetic.
// percent is capped at 100, so the result never exceeds orderQuantity and the
// split into whole hundreds and remainder cannot overflow.
func BootstrapThreshold(orderQuantity, percent int) int {
	if orderQuantity <= 0 || percent <= 0 {
		return 0
	}
	percent = min(percent, 100)
	return orderQuantity/100*percent + (orderQuantity%100*percent+99)/100
}

func (l *Ledger) withWrite(ctx context.Context, operation string, fn func() error) error {
	release, err := l.lock.write(ctx)
	if err != nil {
		l.metrics.RecordOperation(operation, err)
		l.logger.Warn("ledger lock not acquired", zap.String("operation", operation), zap.Error(err))
		return err
	}
	defer release()

	err = fn()
	l.metrics.RecordOperation(operation, err)
	if err != nil {
		return err
	}

	if l.metrics != nil {
		if items, listErr := l.store.List(ctx); listErr == nil {
			l.metrics.ObserveItems(items)
		} else {
			l.logger.Debug("metrics snapshot failed", zap.Error(listErr))
		}
	}
	return nil
}

// insert assigns the next id and derives status. Callers hold the write lock.
func (l *Ledger) insert(ctx context.Context, item models.InventoryItem) (models.InventoryItem, error) {
	maxID, err := l.store.MaxID(ctx)
	if err != nil {
		return models.InventoryItem{}, apperr.Internal(err, "next inventory id")
	}

	item.ID = maxID + 1
	item.NameKey = models.NameKey(item.Name)
	item.Touch(l.now())

	if err := l.store.Insert(ctx, item); err != nil {
		return models.InventoryItem{}, apperr.Internal(err, "insert inventory item %q", item.Name)
	}
	return item, nil
}

func (l *Ledger) mustGet(ctx context.Context, id int64) (models.InventoryItem, error) {
	item, ok, err := l.store.Get(ctx, id)
	if err != nil {
		return models.InventoryItem{}, apperr.Internal(err, "load inventory item %d", id)
	}
	if !ok {
		return models.InventoryItem{}, apperr.NotFound("inventory item %d not found", id)
	}
	return item, nil
}

func (l *Ledger) movement(item models.InventoryItem, delta int, source models.MovementSource, reason string) models.StockMovement {
	return models.StockMovement{
		ID:            uuid.NewString(),
		ItemID:        item.ID,
		ItemName:      item.Name,
		Delta:         delta,
		QuantityAfter: item.Quantity,
		Reason:        strings.TrimSpace(reason),
		Source:        source,
		RecordedAt:    item.LastUpdated,
	}
}

// record logs committed movements and forwards them to the audit sink.
// A sink failure never undoes the mutation.
func (l *Ledger) record(ctx context.Context, movements ...models.StockMovement) {
	for _, mv := range movements {
		l.logger.Info("stock movement",
			zap.String("source", string(mv.Source)),
			zap.Int64("item_id", mv.ItemID),
			zap.String("item", mv.ItemName),
			zap.Int("delta", mv.Delta),
			zap.Int("quantity_after", mv.QuantityAfter),
			zap.String("reason", mv.Reason))
	}

	if l.movements == nil || len(movements) == 0 {
		return
	}
	if err := l.movements.RecordMovements(ctx, movements); err != nil {
		l.logger.Error("failed to record stock movements", zap.Error(err), zap.Int("count", len(movements)))
	}
}

func nonNegative(field string, value int) error {
	if value < 0 {
		return apperr.InvalidArgument("%s must be an integer >= 0, got %d", field, value)
	}
	return nil
}

func withDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
