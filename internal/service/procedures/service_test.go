package procedures

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/domain/apperr"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/domain/models"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/repository/memory"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/service/inventory"
)

type fixture struct {
	svc    *Service
	ledger *inventory.Ledger
	floss  models.InventoryItem
	gloves models.InventoryItem
	tips   models.InventoryItem
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()

	ledger := inventory.NewLedger(memory.NewInventoryStore(), nil, nil, inventory.Options{}, zap.NewNop())
	create := func(name string, quantity, threshold int) models.InventoryItem {
		item, err := ledger.Create(ctx, inventory.CreateInput{Name: name, Quantity: quantity, Threshold: threshold})
		require.NoError(t, err)
		return item
	}

	return fixture{
		svc:    NewService(memory.NewProcedureStore(), ledger, zap.NewNop()),
		ledger: ledger,
		floss:  create("Dental Floss", 5, 10),
		gloves: create("Gloves", 15, 20),
		tips:   create("Suction Tips", 200, 50),
	}
}

func (f fixture) routineCleaning(t *testing.T) models.ProcedureDefinition {
	t.Helper()

	def, err := f.svc.Create(context.Background(), "Routine Cleaning", []LineInput{
		{InventoryItemID: f.floss.ID, Quantity: 1},
		{InventoryItemID: f.gloves.ID, Quantity: 2},
		{InventoryItemID: f.tips.ID, Quantity: 1},
	})
	require.NoError(t, err)
	return def
}

func TestCreateCachesItemNames(t *testing.T) {
	f := newFixture(t)
	def := f.routineCleaning(t)

	assert.Equal(t, "Routine Cleaning", def.Name)
	require.Len(t, def.Items, 3)
	assert.Equal(t, "Dental Floss", def.Items[0].InventoryItemName)
	assert.Equal(t, "Suction Tips", def.Items[2].InventoryItemName)
	assert.False(t, def.CreatedAt.IsZero())
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.routineCleaning(t)

	tests := []struct {
		name  string
		pname string
		lines []LineInput
		kind  apperr.Kind
	}{
		{"empty name", " ", []LineInput{{InventoryItemID: f.floss.ID, Quantity: 1}}, apperr.KindInvalidArgument},
		{"no lines", "Exam", nil, apperr.KindInvalidArgument},
		{"zero quantity", "Exam", []LineInput{{InventoryItemID: f.floss.ID, Quantity: 0}}, apperr.KindInvalidArgument},
		{"unknown item", "Exam", []LineInput{{InventoryItemID: 404, Quantity: 1}}, apperr.KindNotFound},
		{"duplicate name", "routine cleaning", []LineInput{{InventoryItemID: f.floss.ID, Quantity: 1}}, apperr.KindConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, tt.pname, tt.lines)
			assert.Equal(t, tt.kind, apperr.KindOf(err))
		})
	}
}

func TestPerformRoutineCleaning(t *testing.T) {
	f := newFixture(t)
	def := f.routineCleaning(t)

	_, items, err := f.svc.Perform(context.Background(), def.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, 4, items[0].Quantity)
	assert.Equal(t, 13, items[1].Quantity)
	assert.Equal(t, 199, items[2].Quantity)
}

func TestPerformInsufficientLeavesLedgerUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	def, err := f.svc.Create(ctx, "Big Job", []LineInput{
		{InventoryItemID: f.tips.ID, Quantity: 10},
		{InventoryItemID: f.floss.ID, Quantity: 6},
	})
	require.NoError(t, err)

	_, _, err = f.svc.Perform(ctx, def.ID)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindInsufficientInventory, appErr.Kind)
	require.Len(t, appErr.Shortfalls, 1)
	assert.Equal(t, "Dental Floss", appErr.Shortfalls[0].Name)

	tips, err := f.ledger.Get(ctx, f.tips.ID)
	require.NoError(t, err)
	assert.Equal(t, 200, tips.Quantity)
}

func TestPerformUnknownProcedure(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.svc.Perform(context.Background(), 9)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestListAndGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	def := f.routineCleaning(t)

	defs, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, defs, 1)

	got, err := f.svc.Get(ctx, def.ID)
	require.NoError(t, err)
	assert.Equal(t, def.Name, got.Name)
}
