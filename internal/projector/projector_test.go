package projector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgercat/ledgercat/internal/catalog"
	"github.com/ledgercat/ledgercat/internal/common"
	"github.com/ledgercat/ledgercat/internal/memory"
	"github.com/ledgercat/ledgercat/internal/model"
)

func seededMemory(t *testing.T) memory.Store {
	t.Helper()
	cat, err := catalog.New([]model.Category{
		{ID: "groc_01", Name: "Supermarkets and grocery stores", GroupID: "food", GroupName: "Food"},
		{ID: "fuel_01", Name: "Petrol stations", GroupID: "transport", GroupName: "Transport"},
	})
	require.NoError(t, err)

	mem := memory.NewInMemory(cat)
	_, err = mem.Commit(context.Background(), "t1", "BP", "fuel_01", model.MethodManual, 1.0)
	require.NoError(t, err)
	return mem
}

func TestProjectOverlaysRememberedCategories(t *testing.T) {
	proj := New(seededMemory(t))

	transactions := []model.Transaction{
		{ID: "txn-1", MerchantName: "BP", Name: "EFTPOS BP CONNECT"},
		{ID: "txn-2", MerchantName: "Unknown Corner Store"},
		{ID: "txn-3", MerchantName: "BP", CategoryName: "Business travel", GroupName: "Work"},
	}

	projected, err := proj.Project(context.Background(), "t1", transactions)
	require.NoError(t, err)
	require.Len(t, projected, 3)

	assert.Equal(t, "Petrol stations", projected[0].CategoryName)
	assert.Equal(t, "Transport", projected[0].GroupName)

	assert.Empty(t, projected[1].CategoryName, "no memory entry, row stays uncategorized")

	assert.Equal(t, "Business travel", projected[2].CategoryName, "already categorized rows are untouched")
}

func TestProjectDoesNotMutateInput(t *testing.T) {
	proj := New(seededMemory(t))

	transactions := []model.Transaction{
		{ID: "txn-1", MerchantName: "BP"},
	}

	_, err := proj.Project(context.Background(), "t1", transactions)
	require.NoError(t, err)

	assert.Empty(t, transactions[0].CategoryName, "input slice must stay as loaded")
}

func TestProjectTreatsPlaceholderAsUncategorized(t *testing.T) {
	proj := New(seededMemory(t))

	transactions := []model.Transaction{
		{ID: "txn-1", MerchantName: "BP", CategoryName: model.PlaceholderCategory},
	}

	projected, err := proj.Project(context.Background(), "t1", transactions)
	require.NoError(t, err)
	assert.Equal(t, "Petrol stations", projected[0].CategoryName)
}

func TestProjectFallsBackToRawDescription(t *testing.T) {
	mem := seededMemory(t)
	_, err := mem.Commit(context.Background(), "t1", "eftpos countdown 123", "groc_01", model.MethodManual, 1.0)
	require.NoError(t, err)
	proj := New(mem)

	transactions := []model.Transaction{
		{ID: "txn-1", Name: "EFTPOS COUNTDOWN 123"},
	}

	projected, err := proj.Project(context.Background(), "t1", transactions)
	require.NoError(t, err)
	assert.Equal(t, "Supermarkets and grocery stores", projected[0].CategoryName)
}

func TestProjectTenantScoped(t *testing.T) {
	proj := New(seededMemory(t))

	transactions := []model.Transaction{
		{ID: "txn-1", MerchantName: "BP"},
	}

	projected, err := proj.Project(context.Background(), "t2", transactions)
	require.NoError(t, err)
	assert.Empty(t, projected[0].CategoryName, "another tenant's memory must not leak in")

	_, err = proj.Project(context.Background(), "", transactions)
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}
