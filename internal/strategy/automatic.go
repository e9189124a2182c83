package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/ledgercat/ledgercat/internal/catalog"
	"github.com/ledgercat/ledgercat/internal/common"
	"github.com/ledgercat/ledgercat/internal/llm"
	"github.com/ledgercat/ledgercat/internal/model"
)

// AutomaticConfig tunes the automatic strategy.
type AutomaticConfig struct {
	Timeout   time.Duration
	RateLimit int // requests per minute
	Retry     common.RetryOptions
}

// Automatic delegates categorization to a text-generation backend. Every
// category name the backend returns is validated against the catalog;
// anything unmatched or unparsable degrades to "no result".
type Automatic struct {
	client  llm.Client
	catalog *catalog.Catalog
	limiter *llm.RateLimiter
	logger  *slog.Logger
	retry   common.RetryOptions
	timeout time.Duration
}

// NewAutomatic creates the automatic strategy.
func NewAutomatic(client llm.Client, cat *catalog.Catalog, cfg AutomaticConfig, logger *slog.Logger) *Automatic {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	retry := cfg.Retry
	if retry.MaxAttempts == 0 {
		retry.MaxAttempts = 2
	}
	if retry.InitialDelay == 0 {
		retry.InitialDelay = time.Second
	}

	return &Automatic{
		client:  client,
		catalog: cat,
		limiter: llm.NewRateLimiter(cfg.RateLimit),
		logger:  logger,
		retry:   retry,
		timeout: timeout,
	}
}

// Close releases the strategy's rate limiter.
func (a *Automatic) Close() error {
	a.limiter.Close()
	return nil
}

// categoryReply mirrors the single-object response format the prompt
// instructs the backend to produce.
type categoryReply struct {
	Category   string  `json:"category"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
}

// ProposeCategory asks the backend for the single best category.
func (a *Automatic) ProposeCategory(ctx context.Context, input Input) (*model.CategorizationResult, error) {
	raw, err := a.complete(ctx, a.buildCategoryPrompt(input))
	if err != nil {
		a.logger.Warn("backend categorization failed",
			"merchant", input.MerchantName,
			"error", err)
		return nil, nil
	}

	payload, ok := llm.ExtractJSONObject(raw)
	if !ok {
		a.logger.Warn("no JSON object in backend response",
			"merchant", input.MerchantName)
		return nil, nil
	}

	var reply categoryReply
	if err := json.Unmarshal([]byte(payload), &reply); err != nil {
		a.logger.Warn("unparsable backend response",
			"merchant", input.MerchantName,
			"error", err)
		return nil, nil
	}

	cat, ok := a.catalog.MatchName(reply.Category)
	if !ok {
		a.logger.Warn("backend returned category not in catalog",
			"merchant", input.MerchantName,
			"category", reply.Category)
		return nil, nil
	}

	return &model.CategorizationResult{
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
		GroupID:      cat.GroupID,
		GroupName:    cat.GroupName,
		Confidence:   clampScore(reply.Confidence),
		Method:       model.MethodAutomatic,
	}, nil
}

// suggestionReply mirrors one entry of the array response format.
type suggestionReply struct {
	Category string  `json:"category"`
	Reason   string  `json:"reason"`
	Score    float64 `json:"score"`
}

// ProposeSuggestions asks the backend for a ranked shortlist. Entries
// naming unknown categories are silently dropped.
func (a *Automatic) ProposeSuggestions(ctx context.Context, input Input, maxCount int) ([]model.CategorySuggestion, error) {
	if maxCount <= 0 {
		return []model.CategorySuggestion{}, nil
	}

	raw, err := a.complete(ctx, a.buildSuggestionPrompt(input, maxCount))
	if err != nil {
		a.logger.Warn("backend suggestion call failed",
			"merchant", input.MerchantName,
			"error", err)
		return []model.CategorySuggestion{}, nil
	}

	payload, ok := llm.ExtractJSONArray(raw)
	if !ok {
		a.logger.Warn("no JSON array in backend response",
			"merchant", input.MerchantName)
		return []model.CategorySuggestion{}, nil
	}

	var replies []suggestionReply
	if err := json.Unmarshal([]byte(payload), &replies); err != nil {
		a.logger.Warn("unparsable backend suggestions",
			"merchant", input.MerchantName,
			"error", err)
		return []model.CategorySuggestion{}, nil
	}

	suggestions := make([]model.CategorySuggestion, 0, len(replies))
	for _, r := range replies {
		cat, ok := a.catalog.MatchName(r.Category)
		if !ok {
			a.logger.Debug("dropping suggestion for unknown category",
				"merchant", input.MerchantName,
				"category", r.Category)
			continue
		}
		suggestions = append(suggestions, model.CategorySuggestion{
			CategoryID:   cat.ID,
			CategoryName: cat.Name,
			GroupID:      cat.GroupID,
			GroupName:    cat.GroupName,
			Rationale:    r.Reason,
			Score:        clampScore(r.Score),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})

	if len(suggestions) > maxCount {
		suggestions = suggestions[:maxCount]
	}

	return suggestions, nil
}

// complete issues the backend call with rate limiting, a per-attempt
// timeout, and retry. No merchant memory lock is held here.
func (a *Automatic) complete(ctx context.Context, prompt string) (string, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return "", err
	}

	var raw string
	err := common.WithRetry(ctx, func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()

		response, err := a.client.Complete(attemptCtx, prompt)
		if err != nil {
			return &common.RetryableError{
				Err:       fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err),
				Retryable: true,
			}
		}
		raw = response
		return nil
	}, a.retry)

	return raw, err
}

func (a *Automatic) buildCategoryPrompt(input Input) string {
	return fmt.Sprintf(`Categorize this merchant into exactly one of the spending categories below.

%s
%s
Instructions:
Respond with a single JSON object and nothing else, in this exact shape:
{"category": "<category name exactly as listed>", "confidence": <0.0-1.0>, "reason": "<one short sentence>"}

The category name must be copied verbatim from the list. Do not invent categories.`,
		a.renderCatalog(),
		renderDetails(input))
}

func (a *Automatic) buildSuggestionPrompt(input Input, maxCount int) string {
	return fmt.Sprintf(`Suggest the %d most likely spending categories for this merchant, best first.

%s
%s
Instructions:
Respond with a single JSON array and nothing else, in this exact shape:
[{"category": "<category name exactly as listed>", "score": <0.0-1.0>, "reason": "<one short sentence>"}]

Order entries from most to least likely. Category names must be copied verbatim from the list.`,
		maxCount,
		a.renderCatalog(),
		renderDetails(input))
}

// renderCatalog lists every category grouped by spending group, the way
// the prompt presents the closed set of valid answers.
func (a *Automatic) renderCatalog() string {
	var b strings.Builder
	b.WriteString("Categories by group:\n")
	grouped := a.catalog.Grouped()
	for _, group := range a.catalog.GroupNames() {
		fmt.Fprintf(&b, "%s:\n", group)
		for _, cat := range grouped[group] {
			fmt.Fprintf(&b, "- %s\n", cat.Name)
		}
	}
	return b.String()
}

func renderDetails(input Input) string {
	var b strings.Builder
	b.WriteString("Merchant details:\n")
	fmt.Fprintf(&b, "Merchant: %s\n", input.MerchantName)
	if input.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", input.Description)
	}
	if input.Amount != nil {
		fmt.Fprintf(&b, "Amount: %s\n", input.Amount.StringFixed(2))
	}
	return b.String()
}

func clampScore(score float64) float64 {
	switch {
	case score < 0:
		return 0
	case score > 1:
		return 1
	default:
		return score
	}
}
