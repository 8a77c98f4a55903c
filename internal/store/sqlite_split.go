package store

import (
	"context"
	"fmt"

	"github.com/hance08/ledger/internal/model"
)

func (s *Store) InsertSplits(ctx context.Context, txID int64, splits []model.Split) ([]model.Split, error) {
	stmtSplit, err := s.db.PrepareContext(ctx, `
        INSERT INTO splits (transaction_id, account_id, category_id, amount, direction)
        VALUES (?, ?, ?, ?, ?)
        RETURNING id;
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare split SQL: %w", err)
	}
	defer func() {
		_ = stmtSplit.Close()
	}()

	out := make([]model.Split, 0, len(splits))
	for _, split := range splits {
		var id int64
		err := stmtSplit.QueryRowContext(ctx,
			txID, split.AccountID, split.CategoryID, split.Amount, split.Direction,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("failed to insert split (account_id: %d): %w", split.AccountID, mapSQLiteError(err))
		}

		split.ID = id
		split.TransactionID = txID
		out = append(out, split)
	}

	return out, nil
}

func (s *Store) GetSplitsByTransaction(ctx context.Context, txID int64) ([]model.Split, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, transaction_id, account_id, category_id, amount, direction
        FROM splits
        WHERE transaction_id = ?
        ORDER BY id
    `, txID)
	if err != nil {
		return nil, fmt.Errorf("failed to query splits: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var splits []model.Split
	for rows.Next() {
		var split model.Split
		err := rows.Scan(
			&split.ID,
			&split.TransactionID,
			&split.AccountID,
			&split.CategoryID,
			&split.Amount,
			&split.Direction,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, split)
	}

	return splits, rows.Err()
}

func (s *Store) DeleteSplitsByTransaction(ctx context.Context, txID int64) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
        DELETE FROM splits
        WHERE transaction_id = ?
    `, txID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete splits: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

// ListPostedSplits returns every split of the book with its transaction type,
// ordered so that replaying them is deterministic.
func (s *Store) ListPostedSplits(ctx context.Context, bookID string) ([]model.PostedSplit, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT s.id, s.transaction_id, s.account_id, s.category_id, s.amount, s.direction, t.type
        FROM splits s
        INNER JOIN transactions t ON t.id = s.transaction_id
        WHERE t.book_id = ?
        ORDER BY s.transaction_id, s.id
    `, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to query posted splits: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var splits []model.PostedSplit
	for rows.Next() {
		var ps model.PostedSplit
		err := rows.Scan(
			&ps.ID, &ps.TransactionID, &ps.AccountID, &ps.CategoryID,
			&ps.Amount, &ps.Direction, &ps.TxType,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan posted split: %w", err)
		}
		splits = append(splits, ps)
	}

	return splits, rows.Err()
}
