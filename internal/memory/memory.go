// Package memory implements the per-tenant merchant memory: a mapping from
// merchant identity to a confirmed categorization result. Once a merchant
// has been categorized, memory is the single source of truth for it.
package memory

import (
	"context"

	"github.com/ledgercat/ledgercat/internal/model"
)

// Store is the merchant memory contract. Keys compare case-insensitively;
// implementations normalize them. Every entry is scoped to one tenant and
// no operation may cross tenant boundaries.
type Store interface {
	// Lookup returns the remembered result for a (tenant, merchantKey)
	// pair, or (nil, nil) on a miss.
	Lookup(ctx context.Context, tenant model.TenantID, merchantKey string) (*model.CategorizationResult, error)

	// Commit records a result for a (tenant, merchantKey) pair,
	// unconditionally overwriting any prior entry. It fails with
	// common.ErrUnknownCategory when categoryID is not in the catalog,
	// leaving memory untouched.
	Commit(ctx context.Context, tenant model.TenantID, merchantKey, categoryID string, method model.Method, confidence float64) (*model.CategorizationResult, error)

	// Entries returns every remembered (merchantKey, result) pair for one
	// tenant.
	Entries(ctx context.Context, tenant model.TenantID) (map[string]model.CategorizationResult, error)
}
