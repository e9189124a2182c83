package strategy

import (
	"context"

	"github.com/ledgercat/ledgercat/internal/model"
)

// Hybrid never decides on its own: its category proposal is the automatic
// strategy's top suggestion relabeled, so callers can request "the top
// suggestion" and "a shortlist for user choice" through one object.
type Hybrid struct {
	automatic *Automatic
}

// NewHybrid creates the hybrid strategy on top of an automatic one.
func NewHybrid(automatic *Automatic) *Hybrid {
	return &Hybrid{automatic: automatic}
}

// ProposeCategory returns the single best suggestion relabeled with
// method=Hybrid, or nil when the backend produced nothing usable.
func (h *Hybrid) ProposeCategory(ctx context.Context, input Input) (*model.CategorizationResult, error) {
	suggestions, err := h.automatic.ProposeSuggestions(ctx, input, 1)
	if err != nil {
		return nil, err
	}
	if len(suggestions) == 0 {
		return nil, nil
	}

	top := suggestions[0]
	return &model.CategorizationResult{
		CategoryID:   top.CategoryID,
		CategoryName: top.CategoryName,
		GroupID:      top.GroupID,
		GroupName:    top.GroupName,
		Confidence:   top.Score,
		Method:       model.MethodHybrid,
	}, nil
}

// ProposeSuggestions is a pure pass-through to the automatic strategy.
func (h *Hybrid) ProposeSuggestions(ctx context.Context, input Input, maxCount int) ([]model.CategorySuggestion, error) {
	return h.automatic.ProposeSuggestions(ctx, input, maxCount)
}
