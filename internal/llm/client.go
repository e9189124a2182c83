// Package llm provides clients for the text-generation backends used by
// the automatic categorization strategy. The backend enforces no schema on
// its responses; callers must parse defensively.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Client defines the interface for text-generation providers: one prompt
// in, one raw text blob out. The response may contain prose around any
// structured content.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds configuration for a backend client.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	RateLimit   int // requests per minute
}

// NewClient creates a backend client based on the provided configuration.
func NewClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return newOpenAIClient(cfg)
	case "anthropic":
		return newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
