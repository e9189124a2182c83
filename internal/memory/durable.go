package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/ledgercat/ledgercat/internal/catalog"
	"github.com/ledgercat/ledgercat/internal/common"
	"github.com/ledgercat/ledgercat/internal/model"
)

// Backend is the durable keyed store behind a Durable memory, implemented
// by the SQLite storage layer.
type Backend interface {
	GetMemory(ctx context.Context, tenant model.TenantID, merchantKey string) (*model.CategorizationResult, error)
	SaveMemory(ctx context.Context, tenant model.TenantID, merchantKey string, result model.CategorizationResult) error
	ListMemory(ctx context.Context, tenant model.TenantID) (map[string]model.CategorizationResult, error)
}

// Durable is a merchant memory whose entries survive restarts: an
// in-process cache in front of a durable backend. Lookups read through;
// commits write through.
type Durable struct {
	cache   *InMemory
	backend Backend
	catalog *catalog.Catalog
}

// NewDurable creates a durable merchant memory.
func NewDurable(cat *catalog.Catalog, backend Backend) *Durable {
	return &Durable{
		cache:   NewInMemory(cat),
		backend: backend,
		catalog: cat,
	}
}

// Lookup consults the cache first and falls through to the backend on a
// miss, hydrating the cache on a hit.
func (d *Durable) Lookup(ctx context.Context, tenant model.TenantID, merchantKey string) (*model.CategorizationResult, error) {
	result, err := d.cache.Lookup(ctx, tenant, merchantKey)
	if err != nil || result != nil {
		return result, err
	}

	key := model.MerchantKey(merchantKey, "")
	if key == "" {
		return nil, nil
	}

	stored, err := d.backend.GetMemory(ctx, tenant, key)
	if err != nil {
		return nil, fmt.Errorf("merchant memory read-through failed: %w", err)
	}
	if stored == nil {
		return nil, nil
	}

	d.cache.put(tenant, key, *stored)
	return stored, nil
}

// Commit validates the category, writes through to the backend, and only
// then updates the cache, so a backend failure leaves the cache untouched.
func (d *Durable) Commit(ctx context.Context, tenant model.TenantID, merchantKey, categoryID string, method model.Method, confidence float64) (*model.CategorizationResult, error) {
	if !tenant.Valid() {
		return nil, fmt.Errorf("%w: merchant memory commit", common.ErrUnauthorized)
	}

	key := model.MerchantKey(merchantKey, "")
	if key == "" {
		return nil, fmt.Errorf("merchant key is required")
	}

	cat, ok := d.catalog.ByID(categoryID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownCategory, categoryID)
	}

	result := model.CategorizationResult{
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
		GroupID:      cat.GroupID,
		GroupName:    cat.GroupName,
		Confidence:   confidence,
		Method:       method,
		UpdatedAt:    time.Now(),
	}

	if err := d.backend.SaveMemory(ctx, tenant, key, result); err != nil {
		return nil, fmt.Errorf("merchant memory write-through failed: %w", err)
	}

	d.cache.put(tenant, key, result)
	return &result, nil
}

// Entries returns the backend's view of one tenant's mappings; the backend
// is authoritative for listing.
func (d *Durable) Entries(ctx context.Context, tenant model.TenantID) (map[string]model.CategorizationResult, error) {
	if !tenant.Valid() {
		return nil, fmt.Errorf("%w: merchant memory listing", common.ErrUnauthorized)
	}
	return d.backend.ListMemory(ctx, tenant)
}
