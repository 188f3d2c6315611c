package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/config"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/service/inventory"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/service/procedures"
)

func TestSeedDemoDataIsRepeatable(t *testing.T) {
	ctx := context.Background()
	st, err := openStores(config.DatabaseConfig{Driver: "memory"}, zap.NewNop())
	require.NoError(t, err)

	ledger := inventory.NewLedger(st.inventory, st.movements, nil, inventory.Options{}, nil)
	catalog := procedures.NewService(st.procedures, ledger, nil)

	require.NoError(t, seedDemoData(ctx, ledger, catalog, zap.NewNop()))
	require.NoError(t, seedDemoData(ctx, ledger, catalog, zap.NewNop()))

	items, err := ledger.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 3)

	defs, err := catalog.List(ctx)
	require.NoError(t, err)
	require.Len(t, defs, 1)

	_, updated, err := catalog.Perform(ctx, defs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 4, updated[0].Quantity)
	assert.Equal(t, 13, updated[1].Quantity)
	assert.Equal(t, 199, updated[2].Quantity)
}

func TestOpenStoresSQLite(t *testing.T) {
	st, err := openStores(config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	assert.NoError(t, st.close())
}
