package engine

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgercat/ledgercat/internal/catalog"
	"github.com/ledgercat/ledgercat/internal/common"
	"github.com/ledgercat/ledgercat/internal/memory"
	"github.com/ledgercat/ledgercat/internal/model"
	"github.com/ledgercat/ledgercat/internal/strategy"
)

// stubStrategy returns canned proposals and counts invocations.
type stubStrategy struct {
	result      *model.CategorizationResult
	suggestions []model.CategorySuggestion
	err         error
	calls       int
}

func (s *stubStrategy) ProposeCategory(_ context.Context, _ strategy.Input) (*model.CategorizationResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.result == nil {
		return nil, nil
	}
	r := *s.result
	return &r, nil
}

func (s *stubStrategy) ProposeSuggestions(_ context.Context, _ strategy.Input, maxCount int) ([]model.CategorySuggestion, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if len(s.suggestions) > maxCount {
		return s.suggestions[:maxCount], nil
	}
	return s.suggestions, nil
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]model.Category{
		{ID: "groc_01", Name: "Supermarkets and grocery stores", GroupID: "food", GroupName: "Food"},
		{ID: "rest_01", Name: "Restaurants and cafes", GroupID: "food", GroupName: "Food"},
		{ID: "fuel_01", Name: "Petrol stations", GroupID: "transport", GroupName: "Transport"},
	})
	require.NoError(t, err)
	return cat
}

func grocResult() *model.CategorizationResult {
	return &model.CategorizationResult{
		CategoryID:   "groc_01",
		CategoryName: "Supermarkets and grocery stores",
		GroupID:      "food",
		GroupName:    "Food",
		Method:       model.MethodAutomatic,
		Confidence:   0.9,
	}
}

func newEngine(t *testing.T, automatic, hybrid strategy.Strategy) *Engine {
	t.Helper()
	cat := testCatalog(t)
	return New(cat, memory.NewInMemory(cat), automatic, hybrid, slog.Default())
}

func TestCategorizeWritesThroughAndCaches(t *testing.T) {
	auto := &stubStrategy{result: grocResult()}
	eng := newEngine(t, auto, &stubStrategy{})
	ctx := context.Background()

	first, err := eng.Categorize(ctx, "t1", "Countdown", "", nil, model.MethodAutomatic)
	require.NoError(t, err)
	assert.Equal(t, "groc_01", first.CategoryID)
	assert.Equal(t, model.MethodAutomatic, first.Method)
	assert.Equal(t, 1, auto.calls)

	// Second call is a memory hit: relabeled Cached, no strategy call.
	second, err := eng.Categorize(ctx, "t1", "COUNTDOWN", "", nil, model.MethodAutomatic)
	require.NoError(t, err)
	assert.Equal(t, "groc_01", second.CategoryID)
	assert.Equal(t, model.MethodCached, second.Method)
	assert.Equal(t, 1, auto.calls, "memory hit must not invoke the strategy")
}

func TestCategorizeCacheHitIgnoresRequestedMethod(t *testing.T) {
	auto := &stubStrategy{result: grocResult()}
	hybrid := &stubStrategy{}
	eng := newEngine(t, auto, hybrid)
	ctx := context.Background()

	_, err := eng.Categorize(ctx, "t1", "Countdown", "", nil, model.MethodAutomatic)
	require.NoError(t, err)

	for _, method := range []model.Method{model.MethodHybrid, model.MethodManual, model.MethodAutomatic} {
		result, err := eng.Categorize(ctx, "t1", "Countdown", "", nil, method)
		require.NoError(t, err, method)
		assert.Equal(t, model.MethodCached, result.Method, method)
	}
	assert.Equal(t, 0, hybrid.calls)
}

func TestCategorizeManualNeverAutoResolves(t *testing.T) {
	auto := &stubStrategy{result: grocResult()}
	eng := newEngine(t, auto, &stubStrategy{})

	_, err := eng.Categorize(context.Background(), "t1", "Countdown", "", nil, model.MethodManual)
	assert.ErrorIs(t, err, common.ErrNoResult)
	assert.Equal(t, 0, auto.calls)
}

func TestCategorizeStrategyMissIsNoResult(t *testing.T) {
	eng := newEngine(t, &stubStrategy{}, &stubStrategy{})

	_, err := eng.Categorize(context.Background(), "t1", "Mystery Shop", "", nil, model.MethodAutomatic)
	assert.ErrorIs(t, err, common.ErrNoResult)
}

func TestCategorizeStrategyErrorDegradesToNoResult(t *testing.T) {
	auto := &stubStrategy{err: errors.New("backend down")}
	eng := newEngine(t, auto, &stubStrategy{})

	_, err := eng.Categorize(context.Background(), "t1", "Countdown", "", nil, model.MethodAutomatic)
	assert.ErrorIs(t, err, common.ErrNoResult)
	assert.NotErrorIs(t, err, common.ErrBackendUnavailable)
}

func TestCategorizeRequiresTenant(t *testing.T) {
	eng := newEngine(t, &stubStrategy{}, &stubStrategy{})

	_, err := eng.Categorize(context.Background(), "", "Countdown", "", nil, model.MethodAutomatic)
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestCategorizeRequiresMerchantOrDescription(t *testing.T) {
	eng := newEngine(t, &stubStrategy{}, &stubStrategy{})

	_, err := eng.Categorize(context.Background(), "t1", "", "  ", nil, model.MethodAutomatic)
	assert.Error(t, err)
}

func TestCategorizeFallsBackToDescription(t *testing.T) {
	auto := &stubStrategy{result: grocResult()}
	eng := newEngine(t, auto, &stubStrategy{})
	ctx := context.Background()

	_, err := eng.Categorize(ctx, "t1", "", "EFTPOS COUNTDOWN 123", nil, model.MethodAutomatic)
	require.NoError(t, err)

	hit, err := eng.Categorize(ctx, "t1", "", "eftpos countdown 123", nil, model.MethodAutomatic)
	require.NoError(t, err)
	assert.Equal(t, model.MethodCached, hit.Method)
}

func TestCategorizeTenantsDoNotShareMemory(t *testing.T) {
	auto := &stubStrategy{result: grocResult()}
	eng := newEngine(t, auto, &stubStrategy{})
	ctx := context.Background()

	_, err := eng.Categorize(ctx, "t1", "Countdown", "", nil, model.MethodAutomatic)
	require.NoError(t, err)

	result, err := eng.Categorize(ctx, "t2", "Countdown", "", nil, model.MethodAutomatic)
	require.NoError(t, err)
	assert.Equal(t, model.MethodAutomatic, result.Method, "other tenant resolves fresh")
	assert.Equal(t, 2, auto.calls)
}

func TestSuggestionsAlwaysUseHybridAndSkipMemory(t *testing.T) {
	hybrid := &stubStrategy{suggestions: []model.CategorySuggestion{
		{CategoryID: "groc_01", CategoryName: "Supermarkets and grocery stores", Score: 0.9},
		{CategoryID: "rest_01", CategoryName: "Restaurants and cafes", Score: 0.4},
	}}
	auto := &stubStrategy{result: grocResult()}
	eng := newEngine(t, auto, hybrid)
	ctx := context.Background()

	// Seed memory so a lookup, if one happened, would hit.
	_, err := eng.Confirm(ctx, "t1", "Countdown", "fuel_01", "")
	require.NoError(t, err)

	suggestions, err := eng.Suggestions(ctx, "t1", "Countdown", "", nil, 0)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "groc_01", suggestions[0].CategoryID)
	assert.Equal(t, 1, hybrid.calls)
	assert.Equal(t, 0, auto.calls)

	// Memory is untouched: the confirmed mapping still stands.
	cached, err := eng.Categorize(ctx, "t1", "Countdown", "", nil, model.MethodAutomatic)
	require.NoError(t, err)
	assert.Equal(t, "fuel_01", cached.CategoryID)
}

func TestSuggestionsDefaultMaxCount(t *testing.T) {
	many := make([]model.CategorySuggestion, 10)
	for i := range many {
		many[i] = model.CategorySuggestion{CategoryID: "groc_01", Score: 0.5}
	}
	hybrid := &stubStrategy{suggestions: many}
	eng := newEngine(t, &stubStrategy{}, hybrid)

	suggestions, err := eng.Suggestions(context.Background(), "t1", "Countdown", "", nil, 0)
	require.NoError(t, err)
	assert.Len(t, suggestions, DefaultMaxSuggestions)
}

func TestConfirmOverwritesAndResolvesCached(t *testing.T) {
	eng := newEngine(t, &stubStrategy{}, &stubStrategy{})
	ctx := context.Background()

	confirmed, err := eng.Confirm(ctx, "t1", "Countdown", "groc_01", "")
	require.NoError(t, err)
	assert.Equal(t, model.MethodManual, confirmed.Method, "empty method defaults to manual")
	assert.Equal(t, 1.0, confirmed.Confidence)

	// Re-confirming the same mapping is idempotent.
	again, err := eng.Confirm(ctx, "t1", "Countdown", "groc_01", "")
	require.NoError(t, err)
	assert.Equal(t, confirmed.CategoryID, again.CategoryID)
	assert.Equal(t, confirmed.Method, again.Method)

	// Later categorizations resolve from memory.
	result, err := eng.Categorize(ctx, "t1", "Countdown", "", nil, model.MethodAutomatic)
	require.NoError(t, err)
	assert.Equal(t, "groc_01", result.CategoryID)
	assert.Equal(t, model.MethodCached, result.Method)
}

func TestConfirmUnknownCategory(t *testing.T) {
	eng := newEngine(t, &stubStrategy{}, &stubStrategy{})

	_, err := eng.Confirm(context.Background(), "t1", "Countdown", "bogus_99", "")
	assert.ErrorIs(t, err, common.ErrUnknownCategory)
}

func TestConfirmRequiresTenant(t *testing.T) {
	eng := newEngine(t, &stubStrategy{}, &stubStrategy{})

	_, err := eng.Confirm(context.Background(), "", "Countdown", "groc_01", "")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestCommitFailureStillReturnsStrategyResult(t *testing.T) {
	// An engine whose memory rejects every commit: catalog mismatch makes
	// the strategy's category unknown to the memory's catalog.
	memCat, err := catalog.New([]model.Category{
		{ID: "other_01", Name: "Other", GroupID: "misc", GroupName: "Misc"},
	})
	require.NoError(t, err)

	auto := &stubStrategy{result: grocResult()}
	eng := New(testCatalog(t), memory.NewInMemory(memCat), auto, &stubStrategy{}, slog.Default())

	result, err := eng.Categorize(context.Background(), "t1", "Countdown", "", nil, model.MethodAutomatic)
	require.NoError(t, err, "memoization failure must not fail the categorization")
	assert.Equal(t, "groc_01", result.CategoryID)
}

func TestCatalogAccessors(t *testing.T) {
	eng := newEngine(t, &stubStrategy{}, &stubStrategy{})

	assert.Equal(t, []string{"Food", "Transport"}, eng.GroupNames())

	grouped := eng.GroupedCatalog()
	assert.Len(t, grouped["Food"], 2)

	food, err := eng.CatalogGroup("Food")
	require.NoError(t, err)
	assert.Len(t, food, 2)

	_, err = eng.CatalogGroup("Nonexistent")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
