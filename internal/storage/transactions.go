package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/himynameismarvin/budget-bop/internal/model"
	"github.com/himynameismarvin/budget-bop/internal/service"
)

// SaveTransactions persists a committed batch. Hash collisions with prior
// imports are skipped rather than erroring: commit is idempotent across
// re-imports of the same statement.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, txn := range transactions {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO transactions
				(id, hash, date, description, vendor, amount, direction, category, account, reference, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(hash) DO NOTHING
		`, txn.ID, txn.Hash, txn.Date, txn.Description, txn.Vendor, txn.Amount,
			string(txn.Direction), txn.Category, txn.Account, txn.Reference, txn.Notes); err != nil {
			return fmt.Errorf("failed to save transaction %s: %w", txn.ID, err)
		}
	}

	return tx.Commit()
}

// GetKnownHashes returns every stored fingerprint, used to flag duplicates
// against prior imports.
func (s *SQLiteStorage) GetKnownHashes(ctx context.Context) (map[string]bool, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT hash FROM transactions`)
	if err != nil {
		return nil, fmt.Errorf("failed to query hashes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	known := make(map[string]bool)
	for rows.Next() {
		var hash string
		if err := rows.Scan(&hash); err != nil {
			return nil, fmt.Errorf("failed to scan hash: %w", err)
		}
		known[hash] = true
	}

	return known, rows.Err()
}

// GetTransactions retrieves stored transactions, newest first.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, hash, date, description, vendor, amount, direction, category, account, reference, notes
		FROM transactions
	`
	var args []any
	if filter.Category != "" {
		query += ` WHERE category = ?`
		args = append(args, filter.Category)
	}
	query += ` ORDER BY date DESC, id`
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var direction string
		if err := rows.Scan(
			&txn.ID,
			&txn.Hash,
			&txn.Date,
			&txn.Description,
			&txn.Vendor,
			&txn.Amount,
			&direction,
			&txn.Category,
			&txn.Account,
			&txn.Reference,
			&txn.Notes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Direction = model.Direction(direction)
		transactions = append(transactions, txn)
	}

	return transactions, rows.Err()
}

// nullableTime converts a zero time to NULL for storage.
func nullableTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
