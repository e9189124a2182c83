// Package projector overlays merchant memory results onto transactions at
// read time, so a single confirmation retroactively applies to every
// historical transaction from that merchant without a write-back
// migration.
package projector

import (
	"context"
	"fmt"

	"github.com/ledgercat/ledgercat/internal/common"
	"github.com/ledgercat/ledgercat/internal/memory"
	"github.com/ledgercat/ledgercat/internal/model"
)

// Projector applies merchant memory to listed transactions.
type Projector struct {
	memory memory.Store
}

// New creates a projector over the given merchant memory.
func New(mem memory.Store) *Projector {
	return &Projector{memory: mem}
}

// Project returns a copy of the transactions with remembered categories
// overlaid onto every row lacking one. The input slice is never mutated
// and nothing is persisted; the overlay is recomputed on every call.
func (p *Projector) Project(ctx context.Context, tenant model.TenantID, transactions []model.Transaction) ([]model.Transaction, error) {
	if !tenant.Valid() {
		return nil, fmt.Errorf("%w: projection", common.ErrUnauthorized)
	}

	out := make([]model.Transaction, len(transactions))
	copy(out, transactions)

	for i := range out {
		txn := &out[i]
		if txn.Categorized() {
			continue
		}

		key := txn.MerchantKey()
		if key == "" {
			continue
		}

		result, err := p.memory.Lookup(ctx, tenant, key)
		if err != nil {
			return nil, err
		}
		if result == nil {
			continue
		}

		txn.CategoryName = result.CategoryName
		txn.GroupName = result.GroupName
	}

	return out, nil
}
