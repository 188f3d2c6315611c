package orders

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/domain/apperr"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/domain/models"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/repository/memory"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/service/inventory"
)

func newTestService(t *testing.T) (*Service, *inventory.Ledger) {
	t.Helper()

	ledger := inventory.NewLedger(memory.NewInventoryStore(), nil, nil, inventory.Options{}, zap.NewNop())
	return NewService(memory.NewOrderStore(), ledger, zap.NewNop()), ledger
}

func TestPlaceBootstrapsNewProduct(t *testing.T) {
	svc, ledger := newTestService(t)
	ctx := context.Background()

	order, item, err := svc.Place(ctx, PlaceInput{ProductName: "Composite Resin", Quantity: 47, Supplier: "Dentsply"})
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, item.ID, order.InventoryItemID)
	assert.Equal(t, 0, item.Quantity)
	assert.Equal(t, 10, item.Threshold)
	assert.Equal(t, models.StatusOut, item.Status)

	items, err := ledger.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestPlaceReusesExistingItem(t *testing.T) {
	svc, ledger := newTestService(t)
	ctx := context.Background()

	existing, err := ledger.Create(ctx, inventory.CreateInput{Name: "Gloves", Quantity: 15, Threshold: 20})
	require.NoError(t, err)

	order, item, err := svc.Place(ctx, PlaceInput{ProductName: "gloves", Quantity: 100})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, order.InventoryItemID)
	assert.Equal(t, 15, item.Quantity)
	assert.Equal(t, 20, item.Threshold)
}

func TestPlaceValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Place(ctx, PlaceInput{ProductName: "", Quantity: 5})
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))

	_, _, err = svc.Place(ctx, PlaceInput{ProductName: "Bibs", Quantity: 0})
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))
}

func TestMarkDeliveredRestocks(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	order, _, err := svc.Place(ctx, PlaceInput{ProductName: "Gauze", Quantity: 40})
	require.NoError(t, err)

	delivered, item, err := svc.MarkDelivered(ctx, order.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, models.OrderDelivered, delivered.Status)
	assert.Equal(t, 40, delivered.DeliveredQuantity)
	require.NotNil(t, delivered.DeliveredAt)
	assert.Equal(t, 40, item.Quantity)
	assert.Equal(t, models.StatusOK, item.Status)

	_, _, err = svc.MarkDelivered(ctx, order.ID, 0)
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestMarkDeliveredPartial(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	order, _, err := svc.Place(ctx, PlaceInput{ProductName: "Gauze", Quantity: 40})
	require.NoError(t, err)

	delivered, item, err := svc.MarkDelivered(ctx, order.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, delivered.DeliveredQuantity)
	assert.Equal(t, 5, item.Quantity)
	assert.Equal(t, models.StatusLow, item.Status)
}

func TestMarkDeliveredRejectsOverflow(t *testing.T) {
	svc, ledger := newTestService(t)
	ctx := context.Background()

	existing, err := ledger.Create(ctx, inventory.CreateInput{Name: "Bibs", Quantity: math.MaxInt, Threshold: 5})
	require.NoError(t, err)
	order, _, err := svc.Place(ctx, PlaceInput{ProductName: "Bibs", Quantity: 10})
	require.NoError(t, err)

	_, _, err = svc.MarkDelivered(ctx, order.ID, 0)
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))

	current, err := ledger.Get(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, current.Quantity)

	stored, err := svc.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, stored.Status)
}

type failingUpdateStore struct {
	*memory.OrderStore
	fail bool
}

func (s *failingUpdateStore) Update(ctx context.Context, order models.Order) error {
	if s.fail {
		return errors.New("orders table locked")
	}
	return s.OrderStore.Update(ctx, order)
}

func TestMarkDeliveredRollsBackRestockWhenUpdateFails(t *testing.T) {
	ctx := context.Background()
	ledger := inventory.NewLedger(memory.NewInventoryStore(), nil, nil, inventory.Options{}, zap.NewNop())
	store := &failingUpdateStore{OrderStore: memory.NewOrderStore()}
	svc := NewService(store, ledger, zap.NewNop())

	order, item, err := svc.Place(ctx, PlaceInput{ProductName: "Gauze", Quantity: 40})
	require.NoError(t, err)

	store.fail = true
	_, _, err = svc.MarkDelivered(ctx, order.ID, 0)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))

	current, err := ledger.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, current.Quantity)

	stored, err := svc.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, stored.Status)

	store.fail = false
	delivered, restocked, err := svc.MarkDelivered(ctx, order.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, models.OrderDelivered, delivered.Status)
	assert.Equal(t, 40, restocked.Quantity)
}

func TestCancel(t *testing.T) {
	svc, ledger := newTestService(t)
	ctx := context.Background()

	order, item, err := svc.Place(ctx, PlaceInput{ProductName: "Gauze", Quantity: 40})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, cancelled.Status)

	_, _, err = svc.MarkDelivered(ctx, order.ID, 0)
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	current, err := ledger.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, current.Quantity)

	_, err = svc.Cancel(ctx, 999)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestListOrders(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"A", "B"} {
		_, _, err := svc.Place(ctx, PlaceInput{ProductName: name, Quantity: 1})
		require.NoError(t, err)
	}

	orders, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "A", orders[0].ProductName)
}
