package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgercat/ledgercat/internal/common"
	"github.com/ledgercat/ledgercat/internal/model"
	"github.com/ledgercat/ledgercat/internal/tenant"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func fuelResult() model.CategorizationResult {
	return model.CategorizationResult{
		CategoryID:   "fuel_01",
		CategoryName: "Petrol stations",
		GroupID:      "transport",
		GroupName:    "Transport",
		Confidence:   1.0,
		Method:       model.MethodManual,
		UpdatedAt:    time.Now().UTC().Truncate(time.Second),
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Migrate(context.Background()))

	var version int
	err := store.db.QueryRow(`SELECT MAX(version) FROM schema_versions`).Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestMemoryRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	miss, err := store.GetMemory(ctx, "t1", "bp")
	require.NoError(t, err)
	assert.Nil(t, miss, "a miss is (nil, nil)")

	want := fuelResult()
	require.NoError(t, store.SaveMemory(ctx, "t1", "bp", want))

	got, err := store.GetMemory(ctx, "t1", "bp")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.CategoryID, got.CategoryID)
	assert.Equal(t, want.CategoryName, got.CategoryName)
	assert.Equal(t, want.GroupName, got.GroupName)
	assert.Equal(t, want.Method, got.Method)
	assert.Equal(t, want.Confidence, got.Confidence)
}

func TestMemoryUpsertOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := fuelResult()
	require.NoError(t, store.SaveMemory(ctx, "t1", "bp", first))

	second := first
	second.CategoryID = "groc_01"
	second.CategoryName = "Supermarkets and grocery stores"
	require.NoError(t, store.SaveMemory(ctx, "t1", "bp", second))

	got, err := store.GetMemory(ctx, "t1", "bp")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "groc_01", got.CategoryID)
}

func TestMemoryTenantScoping(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveMemory(ctx, "t1", "bp", fuelResult()))

	other, err := store.GetMemory(ctx, "t2", "bp")
	require.NoError(t, err)
	assert.Nil(t, other, "another tenant must not see the entry")

	_, err = store.GetMemory(ctx, "", "bp")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	err = store.SaveMemory(ctx, "", "bp", fuelResult())
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	_, err = store.ListMemory(ctx, "")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestListMemory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveMemory(ctx, "t1", "bp", fuelResult()))
	require.NoError(t, store.SaveMemory(ctx, "t1", "countdown", fuelResult()))
	require.NoError(t, store.SaveMemory(ctx, "t2", "bp", fuelResult()))

	entries, err := store.ListMemory(ctx, "t1")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Contains(t, entries, "bp")
	assert.Contains(t, entries, "countdown")
}

func TestListMemoryScoped(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveMemory(ctx, "t1", "bp", fuelResult()))
	require.NoError(t, store.SaveMemory(ctx, "t2", "countdown", fuelResult()))

	one, err := store.ListMemoryScoped(ctx, tenant.One("t1"))
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, model.TenantID("t1"), one[0].Tenant)
	assert.Equal(t, "bp", one[0].MerchantKey)

	all, err := store.ListMemoryScoped(ctx, tenant.AllTenants())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = store.ListMemoryScoped(ctx, tenant.Scope{})
	assert.ErrorIs(t, err, common.ErrUnauthorized, "the zero scope is rejected")
}

func sampleTransactions(tenantID model.TenantID) []model.Transaction {
	day := func(d int) time.Time {
		return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
	}
	return []model.Transaction{
		{
			TenantID:     tenantID,
			Date:         day(1),
			Name:         "EFTPOS BP CONNECT",
			MerchantName: "BP",
			Amount:       decimal.NewFromFloat(85.40),
			AccountID:    "acc-1",
		},
		{
			TenantID:     tenantID,
			Date:         day(2),
			Name:         "EFTPOS COUNTDOWN",
			MerchantName: "Countdown",
			Amount:       decimal.NewFromFloat(123.45),
			AccountID:    "acc-1",
			CategoryName: "Supermarkets and grocery stores",
			GroupName:    "Food",
		},
		{
			TenantID:  tenantID,
			Date:      day(3),
			Name:      "DIRECT DEBIT POWERCO",
			Amount:    decimal.NewFromFloat(210.00),
			AccountID: "acc-2",
		},
	}
}

func TestSaveAndListTransactions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTransactions(ctx, "t1", sampleTransactions("t1")))

	listed, err := store.ListTransactions(ctx, tenant.One("t1"), TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 3)

	// Newest first.
	assert.Equal(t, "DIRECT DEBIT POWERCO", listed[0].Name)
	assert.Equal(t, "EFTPOS BP CONNECT", listed[2].Name)

	for _, txn := range listed {
		assert.NotEmpty(t, txn.ID, "missing IDs are filled in")
		assert.NotEmpty(t, txn.Hash, "missing hashes are filled in")
		assert.Equal(t, model.TenantID("t1"), txn.TenantID)
	}

	assert.True(t, listed[2].Amount.Equal(decimal.NewFromFloat(85.40)))
	assert.Equal(t, "Supermarkets and grocery stores", listed[1].CategoryName)
	assert.Empty(t, listed[0].MerchantName)
}

func TestSaveTransactionsSkipsDuplicates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	txns := sampleTransactions("t1")
	require.NoError(t, store.SaveTransactions(ctx, "t1", txns))

	// Re-importing the same rows is a no-op.
	again := sampleTransactions("t1")
	require.NoError(t, store.SaveTransactions(ctx, "t1", again))

	count, err := store.CountTransactions(ctx, tenant.One("t1"))
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestListTransactionsScope(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTransactions(ctx, "t1", sampleTransactions("t1")))
	require.NoError(t, store.SaveTransactions(ctx, "t2", sampleTransactions("t2")))

	one, err := store.ListTransactions(ctx, tenant.One("t1"), TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, one, 3)

	all, err := store.ListTransactions(ctx, tenant.AllTenants(), TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 6)

	_, err = store.ListTransactions(ctx, tenant.Scope{}, TransactionFilter{})
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestListTransactionsDateFilterAndLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTransactions(ctx, "t1", sampleTransactions("t1")))

	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	filtered, err := store.ListTransactions(ctx, tenant.One("t1"), TransactionFilter{StartDate: &start})
	require.NoError(t, err)
	assert.Len(t, filtered, 2)

	end := time.Date(2025, 6, 1, 23, 59, 59, 0, time.UTC)
	filtered, err = store.ListTransactions(ctx, tenant.One("t1"), TransactionFilter{EndDate: &end})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "EFTPOS BP CONNECT", filtered[0].Name)

	limited, err := store.ListTransactions(ctx, tenant.One("t1"), TransactionFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	paged, err := store.ListTransactions(ctx, tenant.One("t1"), TransactionFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, paged, 1)
}
