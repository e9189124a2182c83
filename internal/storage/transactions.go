package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgercat/ledgercat/internal/model"
	"github.com/ledgercat/ledgercat/internal/tenant"
)

// TransactionFilter defines filtering options for transaction queries.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// SaveTransactions persists transactions for one tenant. Missing IDs and
// hashes are filled in; rows already present (same tenant and hash) are
// skipped.
func (s *Store) SaveTransactions(ctx context.Context, tenantID model.TenantID, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTenant(tenantID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions
			(id, tenant_id, hash, date, name, merchant_name, amount, account_id, category_name, group_name)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(tenant_id, hash) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range transactions {
		txn := &transactions[i]
		txn.TenantID = tenantID
		if txn.ID == "" {
			txn.ID = uuid.NewString()
		}
		if txn.Hash == "" {
			txn.Hash = txn.GenerateHash()
		}

		if _, err := stmt.ExecContext(ctx,
			txn.ID, tenantID.String(), txn.Hash, txn.Date, txn.Name,
			txn.MerchantName, txn.Amount.String(), txn.AccountID,
			nullable(txn.CategoryName), nullable(txn.GroupName),
		); err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", txn.ID, err)
		}
	}

	return tx.Commit()
}

// ListTransactions returns the transactions visible under the given
// scope, newest first. Stored category fields come back as written; the
// projector overlay happens in memory afterwards, never here.
func (s *Store) ListTransactions(ctx context.Context, scope tenant.Scope, filter TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	query := `
		SELECT id, tenant_id, hash, date, name, merchant_name, amount, account_id, category_name, group_name
		FROM transactions`
	var args []any
	var conds []string

	if t, ok := scope.Tenant(); ok {
		conds = append(conds, "tenant_id = ?")
		args = append(args, t.String())
	}
	if filter.StartDate != nil {
		conds = append(conds, "date >= ?")
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		conds = append(conds, "date <= ?")
		args = append(args, *filter.EndDate)
	}

	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY date DESC, id"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var tenantID, amount string
		var merchantName, accountID, categoryName, groupName sql.NullString

		if err := rows.Scan(
			&txn.ID, &tenantID, &txn.Hash, &txn.Date, &txn.Name,
			&merchantName, &amount, &accountID, &categoryName, &groupName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		txn.TenantID = model.TenantID(tenantID)
		txn.MerchantName = merchantName.String
		txn.AccountID = accountID.String
		txn.CategoryName = categoryName.String
		txn.GroupName = groupName.String

		txn.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("corrupt amount on transaction %s: %w", txn.ID, err)
		}

		transactions = append(transactions, txn)
	}

	return transactions, rows.Err()
}

// CountTransactions returns the number of stored transactions under the
// given scope.
func (s *Store) CountTransactions(ctx context.Context, scope tenant.Scope) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := scope.Validate(); err != nil {
		return 0, err
	}

	query := `SELECT COUNT(*) FROM transactions`
	var args []any
	if t, ok := scope.Tenant(); ok {
		query += " WHERE tenant_id = ?"
		args = append(args, t.String())
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
