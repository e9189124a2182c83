package memory

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/ledgercat/ledgercat/internal/catalog"
	"github.com/ledgercat/ledgercat/internal/common"
	"github.com/ledgercat/ledgercat/internal/model"
)

const shardCount = 16

// shard holds one partition of the tenant-scoped mapping. Entries are
// keyed by tenant first so a scan for one tenant never touches another's.
type shard struct {
	entries map[model.TenantID]map[string]model.CategorizationResult
	mu      sync.RWMutex
}

// InMemory is a concurrency-safe merchant memory held entirely in process
// memory. Concurrent commits for the same key interleave with last write
// wins.
type InMemory struct {
	catalog *catalog.Catalog
	shards  [shardCount]*shard
}

// NewInMemory creates an empty in-process merchant memory validating
// commits against the given catalog.
func NewInMemory(cat *catalog.Catalog) *InMemory {
	m := &InMemory{catalog: cat}
	for i := range m.shards {
		m.shards[i] = &shard{
			entries: make(map[model.TenantID]map[string]model.CategorizationResult),
		}
	}
	return m
}

func (m *InMemory) shardFor(tenant model.TenantID, key string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(tenant))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(key))
	return m.shards[h.Sum32()%shardCount]
}

// Lookup returns the remembered result for the pair, or (nil, nil).
func (m *InMemory) Lookup(_ context.Context, tenant model.TenantID, merchantKey string) (*model.CategorizationResult, error) {
	if !tenant.Valid() {
		return nil, fmt.Errorf("%w: merchant memory lookup", common.ErrUnauthorized)
	}

	key := model.MerchantKey(merchantKey, "")
	if key == "" {
		return nil, nil
	}

	s := m.shardFor(tenant, key)
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.entries[tenant][key]
	if !ok {
		return nil, nil
	}
	return &result, nil
}

// Commit overwrites the entry for the pair. Last confirmation wins.
func (m *InMemory) Commit(_ context.Context, tenant model.TenantID, merchantKey, categoryID string, method model.Method, confidence float64) (*model.CategorizationResult, error) {
	if !tenant.Valid() {
		return nil, fmt.Errorf("%w: merchant memory commit", common.ErrUnauthorized)
	}

	key := model.MerchantKey(merchantKey, "")
	if key == "" {
		return nil, fmt.Errorf("merchant key is required")
	}

	cat, ok := m.catalog.ByID(categoryID)
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

	s := m.shardFor(tenant, key)
	s.mu.Lock()
	defer s.mu.Unlock()

	byKey, ok := s.entries[tenant]
	if !ok {
		byKey = make(map[string]model.CategorizationResult)
		s.entries[tenant] = byKey
	}
	byKey[key] = result

	return &result, nil
}

// Entries returns a copy of one tenant's remembered mappings.
func (m *InMemory) Entries(_ context.Context, tenant model.TenantID) (map[string]model.CategorizationResult, error) {
	if !tenant.Valid() {
		return nil, fmt.Errorf("%w: merchant memory listing", common.ErrUnauthorized)
	}

	out := make(map[string]model.CategorizationResult)
	for _, s := range m.shards {
		s.mu.RLock()
		for key, result := range s.entries[tenant] {
			out[key] = result
		}
		s.mu.RUnlock()
	}
	return out, nil
}

// put seeds an entry without catalog validation; used by the durable store
// when hydrating the cache from its backend.
func (m *InMemory) put(tenant model.TenantID, key string, result model.CategorizationResult) {
	s := m.shardFor(tenant, key)
	s.mu.Lock()
	defer s.mu.Unlock()

	byKey, ok := s.entries[tenant]
	if !ok {
		byKey = make(map[string]model.CategorizationResult)
		s.entries[tenant] = byKey
	}
	byKey[key] = result
}
