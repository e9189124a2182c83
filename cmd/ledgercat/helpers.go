package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/ledgercat/ledgercat/internal/catalog"
	"github.com/ledgercat/ledgercat/internal/common"
	"github.com/ledgercat/ledgercat/internal/engine"
	"github.com/ledgercat/ledgercat/internal/llm"
	"github.com/ledgercat/ledgercat/internal/memory"
	"github.com/ledgercat/ledgercat/internal/model"
	"github.com/ledgercat/ledgercat/internal/storage"
	"github.com/ledgercat/ledgercat/internal/strategy"
)

// app bundles the wired-up core for one CLI invocation.
type app struct {
	catalog *catalog.Catalog
	store   *storage.Store
	engine  *engine.Engine
	cleanup func()
}

func buildApp(ctx context.Context) (*app, error) {
	cat, err := buildCatalog()
	if err != nil {
		return nil, err
	}

	store, err := openStore(ctx)
	if err != nil {
		return nil, err
	}

	mem := memory.NewDurable(cat, store)

	client := buildLLMClient()
	automatic := strategy.NewAutomatic(client, cat, strategy.AutomaticConfig{
		Timeout:   viper.GetDuration("llm.timeout"),
		RateLimit: viper.GetInt("llm.rate_limit"),
	}, slog.Default())
	hybrid := strategy.NewHybrid(automatic)

	eng := engine.New(cat, mem, automatic, hybrid, slog.Default())

	return &app{
		catalog: cat,
		store:   store,
		engine:  eng,
		cleanup: func() {
			_ = automatic.Close()
			_ = store.Close()
		},
	}, nil
}

func buildCatalog() (*catalog.Catalog, error) {
	if path := viper.GetString("catalog.file"); path != "" {
		cat, err := catalog.FromFile(path)
		if err != nil {
			return nil, common.NewUserError(fmt.Sprintf("failed to load catalog from %s", path), err)
		}
		return cat, nil
	}
	return catalog.Default(), nil
}

func openStore(ctx context.Context) (*storage.Store, error) {
	path := viper.GetString("database.path")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, ".local", "share", "ledgercat", "ledgercat.db")
	}

	store, err := storage.New(path)
	if err != nil {
		return nil, common.NewUserError("failed to open the merchant memory database", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, common.NewUserError("failed to migrate the merchant memory database", err)
	}
	return store, nil
}

func buildLLMClient() llm.Client {
	cfg := llm.Config{
		Provider:    viper.GetString("llm.provider"),
		APIKey:      viper.GetString("llm.api_key"),
		Model:       viper.GetString("llm.model"),
		BaseURL:     viper.GetString("llm.base_url"),
		Temperature: viper.GetFloat64("llm.temperature"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
		Timeout:     viper.GetDuration("llm.timeout"),
	}
	if cfg.Provider == "" {
		cfg.Provider = "anthropic"
	}

	client, err := llm.NewClient(cfg)
	if err != nil {
		// Categorization is advisory; commands that never reach the
		// backend (confirm, categories, merchants) still work.
		slog.Warn("classification backend not configured", "error", err)
		return unavailableClient{err: err}
	}
	return client
}

// unavailableClient fails every completion; the strategies absorb the
// failure into "no result".
type unavailableClient struct {
	err error
}

func (u unavailableClient) Complete(_ context.Context, _ string) (string, error) {
	return "", fmt.Errorf("%w: %v", common.ErrBackendUnavailable, u.err)
}

func requireTenant(raw string) (model.TenantID, error) {
	t := model.TenantID(strings.TrimSpace(raw))
	if !t.Valid() {
		return "", fmt.Errorf("%w: --tenant is required", common.ErrUnauthorized)
	}
	return t, nil
}

func parseAmount(raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return &amount, nil
}

func printResult(result *model.CategorizationResult) {
	fmt.Printf("%s  (%s)  confidence=%.2f  method=%s\n",
		result.CategoryName, result.GroupName, result.Confidence, result.Method)
}

func formatUpdatedAt(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}
