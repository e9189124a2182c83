// Package engine orchestrates merchant categorization: merchant memory
// first, then a categorization strategy, with confirmed choices committed
// back into memory. It is the only surface callers interact with.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/ledgercat/ledgercat/internal/catalog"
	"github.com/ledgercat/ledgercat/internal/common"
	"github.com/ledgercat/ledgercat/internal/memory"
	"github.com/ledgercat/ledgercat/internal/model"
	"github.com/ledgercat/ledgercat/internal/strategy"
)

// DefaultMaxSuggestions bounds the suggestion shortlist when the caller
// does not say otherwise.
const DefaultMaxSuggestions = 6

// Engine resolves categories for merchants. Strategies are bound to
// methods once at construction; there is no runtime registry.
type Engine struct {
	catalog    *catalog.Catalog
	memory     memory.Store
	strategies map[model.Method]strategy.Strategy
	logger     *slog.Logger
}

// New creates the categorization engine.
func New(cat *catalog.Catalog, mem memory.Store, automatic, hybrid strategy.Strategy, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		catalog: cat,
		memory:  mem,
		strategies: map[model.Method]strategy.Strategy{
			model.MethodAutomatic: automatic,
			model.MethodHybrid:    hybrid,
		},
		logger: logger,
	}
}

// Categorize resolves a category for a merchant. A merchant memory hit is
// returned relabeled Cached regardless of the requested method. On a miss
// the matching strategy runs and a hit is written through to memory before
// returning. Manual never auto-resolves. A miss end to end is
// common.ErrNoResult, a legitimate outcome, never a backend error.
func (e *Engine) Categorize(ctx context.Context, tenant model.TenantID, merchantName, description string, amount *decimal.Decimal, method model.Method) (*model.CategorizationResult, error) {
	if !tenant.Valid() {
		return nil, fmt.Errorf("%w: categorize", common.ErrUnauthorized)
	}

	key := model.MerchantKey(merchantName, description)
	if key == "" {
		return nil, fmt.Errorf("merchant name or description is required")
	}

	cached, err := e.memory.Lookup(ctx, tenant, key)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		hit := *cached
		hit.Method = model.MethodCached
		return &hit, nil
	}

	strat, ok := e.strategies[method]
	if !ok {
		// Manual (and Cached) never auto-resolve on a memory miss.
		return nil, fmt.Errorf("%w: %s", common.ErrNoResult, key)
	}

	// The strategy call may block on the backend for seconds; no memory
	// lock is held here.
	result, err := strat.ProposeCategory(ctx, strategy.Input{
		MerchantName: merchantName,
		Description:  description,
		Amount:       amount,
	})
	if err != nil {
		e.logger.Warn("strategy returned an error, degrading to no result",
			"merchant", key,
			"method", method,
			"error", err)
		return nil, fmt.Errorf("%w: %s", common.ErrNoResult, key)
	}
	if result == nil {
		return nil, fmt.Errorf("%w: %s", common.ErrNoResult, key)
	}

	// The first successful automatic categorization becomes sticky.
	committed, err := e.memory.Commit(ctx, tenant, key, result.CategoryID, result.Method, result.Confidence)
	if err != nil {
		e.logger.Error("failed to memoize categorization",
			"merchant", key,
			"tenant", tenant,
			"error", err)
		return result, nil
	}

	return committed, nil
}

// Suggestions returns a ranked shortlist for interactive confirmation.
// Suggestions are provisional: memory is neither consulted nor updated.
func (e *Engine) Suggestions(ctx context.Context, tenant model.TenantID, merchantName, description string, amount *decimal.Decimal, maxCount int) ([]model.CategorySuggestion, error) {
	if !tenant.Valid() {
		return nil, fmt.Errorf("%w: suggestions", common.ErrUnauthorized)
	}
	if model.MerchantKey(merchantName, description) == "" {
		return nil, fmt.Errorf("merchant name or description is required")
	}
	if maxCount <= 0 {
		maxCount = DefaultMaxSuggestions
	}

	return e.strategies[model.MethodHybrid].ProposeSuggestions(ctx, strategy.Input{
		MerchantName: merchantName,
		Description:  description,
		Amount:       amount,
	}, maxCount)
}

// Confirm commits a user-confirmed category for a merchant with full
// confidence, overwriting any prior entry.
func (e *Engine) Confirm(ctx context.Context, tenant model.TenantID, merchantName, categoryID string, method model.Method) (*model.CategorizationResult, error) {
	if !tenant.Valid() {
		return nil, fmt.Errorf("%w: confirm", common.ErrUnauthorized)
	}

	key := model.MerchantKey(merchantName, "")
	if key == "" {
		return nil, fmt.Errorf("merchant name is required")
	}

	if method == "" {
		method = model.MethodManual
	}

	result, err := e.memory.Commit(ctx, tenant, key, categoryID, method, 1.0)
	if err != nil {
		return nil, err
	}

	e.logger.Info("merchant categorization confirmed",
		"tenant", tenant,
		"merchant", key,
		"category", result.CategoryName,
		"method", method)

	return result, nil
}

// GroupedCatalog returns the full catalog keyed by group name, categories
// within a group sorted alphabetically.
func (e *Engine) GroupedCatalog() map[string][]model.Category {
	return e.catalog.Grouped()
}

// CatalogGroup returns one group's categories, or common.ErrNotFound for
// an unknown group.
func (e *Engine) CatalogGroup(groupName string) ([]model.Category, error) {
	return e.catalog.ByGroup(groupName)
}

// GroupNames returns every catalog group name in alphabetical order.
func (e *Engine) GroupNames() []string {
	return e.catalog.GroupNames()
}
