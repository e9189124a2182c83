package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ledgercat/ledgercat/internal/model"
	"github.com/ledgercat/ledgercat/internal/tenant"
)

// GetMemory retrieves the remembered result for a (tenant, merchantKey)
// pair. A miss is (nil, nil), not an error.
func (s *Store) GetMemory(ctx context.Context, tenant model.TenantID, merchantKey string) (*model.CategorizationResult, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateTenant(tenant); err != nil {
		return nil, err
	}
	if err := validateString(merchantKey, "merchantKey"); err != nil {
		return nil, err
	}

	var result model.CategorizationResult
	err := s.db.QueryRowContext(ctx, `
		SELECT category_id, category_name, group_id, group_name, confidence, method, updated_at
		FROM merchant_memory
		WHERE tenant_id = ? AND merchant_key = ?
	`, tenant.String(), merchantKey).Scan(
		&result.CategoryID,
		&result.CategoryName,
		&result.GroupID,
		&result.GroupName,
		&result.Confidence,
		&result.Method,
		&result.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get merchant memory: %w", err)
	}

	return &result, nil
}

// SaveMemory saves or overwrites the entry for a (tenant, merchantKey)
// pair. Last confirmation wins.
func (s *Store) SaveMemory(ctx context.Context, tenant model.TenantID, merchantKey string, result model.CategorizationResult) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTenant(tenant); err != nil {
		return err
	}
	if err := validateString(merchantKey, "merchantKey"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO merchant_memory
			(tenant_id, merchant_key, category_id, category_name, group_id, group_name, confidence, method, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(tenant_id, merchant_key) DO UPDATE SET
			category_id = excluded.category_id,
			category_name = excluded.category_name,
			group_id = excluded.group_id,
			group_name = excluded.group_name,
			confidence = excluded.confidence,
			method = excluded.method,
			updated_at = excluded.updated_at
	`, tenant.String(), merchantKey,
		result.CategoryID, result.CategoryName,
		result.GroupID, result.GroupName,
		result.Confidence, string(result.Method), result.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to save merchant memory: %w", err)
	}

	return nil
}

// ListMemory returns every remembered mapping for one tenant.
func (s *Store) ListMemory(ctx context.Context, tenant model.TenantID) (map[string]model.CategorizationResult, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateTenant(tenant); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT merchant_key, category_id, category_name, group_id, group_name, confidence, method, updated_at
		FROM merchant_memory
		WHERE tenant_id = ?
		ORDER BY merchant_key
	`, tenant.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query merchant memory: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make(map[string]model.CategorizationResult)
	for rows.Next() {
		var key string
		var result model.CategorizationResult
		if err := rows.Scan(
			&key,
			&result.CategoryID,
			&result.CategoryName,
			&result.GroupID,
			&result.GroupName,
			&result.Confidence,
			&result.Method,
			&result.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan merchant memory row: %w", err)
		}
		entries[key] = result
	}

	return entries, rows.Err()
}

// MemoryEntry is one remembered mapping with its owning tenant, used by
// scoped listings.
type MemoryEntry struct {
	Tenant      model.TenantID
	MerchantKey string
	Result      model.CategorizationResult
}

// ListMemoryScoped lists remembered mappings under an explicit scope: one
// tenant, or the administrative all-tenants override. There is no
// unscoped variant.
func (s *Store) ListMemoryScoped(ctx context.Context, scope tenant.Scope) ([]MemoryEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	query := `
		SELECT tenant_id, merchant_key, category_id, category_name, group_id, group_name, confidence, method, updated_at
		FROM merchant_memory`
	var args []any
	if t, ok := scope.Tenant(); ok {
		query += " WHERE tenant_id = ?"
		args = append(args, t.String())
	}
	query += " ORDER BY tenant_id, merchant_key"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query merchant memory: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []MemoryEntry
	for rows.Next() {
		var entry MemoryEntry
		var tenantID string
		if err := rows.Scan(
			&tenantID,
			&entry.MerchantKey,
			&entry.Result.CategoryID,
			&entry.Result.CategoryName,
			&entry.Result.GroupID,
			&entry.Result.GroupName,
			&entry.Result.Confidence,
			&entry.Result.Method,
			&entry.Result.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan merchant memory row: %w", err)
		}
		entry.Tenant = model.TenantID(tenantID)
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
