// Package strategy implements the categorization strategies: automatic
// classification via a text-generation backend, and a hybrid variant used
// for the suggest-then-confirm flow.
package strategy

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ledgercat/ledgercat/internal/model"
)

// Input carries the details available for one categorization request.
// Description and Amount are optional.
type Input struct {
	MerchantName string
	Description  string
	Amount       *decimal.Decimal
}

// Strategy proposes categories for a merchant. Backend failures never
// surface as errors: ProposeCategory returns (nil, nil) and
// ProposeSuggestions returns an empty slice, meaning "still uncategorized".
type Strategy interface {
	ProposeCategory(ctx context.Context, input Input) (*model.CategorizationResult, error)
	ProposeSuggestions(ctx context.Context, input Input, maxCount int) ([]model.CategorySuggestion, error)
}
