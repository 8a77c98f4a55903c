package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hance08/ledger/internal/constants"
	"github.com/hance08/ledger/internal/model"
)

const transactionColumns = `id, book_id, type, description, date, counterparty,
        category_id, created_by, updated_by, created_at, updated_at`

// InsertTransaction inserts a transaction header.
// It relies on the caller (Service layer) to wrap it in ExecTx together with
// the splits and balance updates.
func (s *Store) InsertTransaction(ctx context.Context, tx *model.Transaction) (int64, error) {
	stmtTx, err := s.db.PrepareContext(ctx, `
        INSERT INTO transactions (book_id, type, description, date, counterparty,
            category_id, created_by, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        RETURNING id;
    `)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare transaction SQL: %w", err)
	}
	defer func() {
		_ = stmtTx.Close()
	}()

	var newTxID int64
	err = stmtTx.QueryRowContext(ctx,
		tx.BookID, tx.Type, tx.Description, tx.Date.Unix(), tx.Counterparty,
		tx.CategoryID, tx.CreatedBy, tx.CreatedAt.Unix(), tx.UpdatedAt.Unix(),
	).Scan(&newTxID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert transaction: %w", mapSQLiteError(err))
	}

	return newTxID, nil
}

func (s *Store) GetTransaction(ctx context.Context, bookID string, id int64) (*model.Transaction, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT `+transactionColumns+`
        FROM transactions
        WHERE id = ? AND book_id = ?
    `, id, bookID)

	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction with ID %d: %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}
	return tx, nil
}

// ListTransactions returns the book's transactions, newest first.
func (s *Store) ListTransactions(ctx context.Context, bookID string, filter model.TransactionFilter) ([]*model.Transaction, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = constants.DefaultListLimit
	}
	if limit > constants.MaxListLimit {
		limit = constants.MaxListLimit
	}

	conds := []string{"t.book_id = ?"}
	args := []any{bookID}

	if filter.AccountID != nil {
		conds = append(conds, "EXISTS (SELECT 1 FROM splits s WHERE s.transaction_id = t.id AND s.account_id = ?)")
		args = append(args, *filter.AccountID)
	}
	if filter.Type != nil {
		conds = append(conds, "t.type = ?")
		args = append(args, *filter.Type)
	}
	if filter.From != nil {
		conds = append(conds, "t.date >= ?")
		args = append(args, filter.From.Unix())
	}
	if filter.To != nil {
		conds = append(conds, "t.date <= ?")
		args = append(args, filter.To.Unix())
	}
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, `
        SELECT `+prefixColumns("t", transactionColumns)+`
        FROM transactions t
        WHERE `+strings.Join(conds, " AND ")+`
        ORDER BY t.date DESC, t.id DESC
        LIMIT ? OFFSET ?
    `, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var transactions []*model.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}

func (s *Store) UpdateTransactionHeader(ctx context.Context, bookID string, id int64, h TransactionHeader) error {
	result, err := s.db.ExecContext(ctx, `
        UPDATE transactions
        SET type = ?, description = ?, date = ?, counterparty = ?,
            category_id = ?, updated_by = ?, updated_at = ?
        WHERE id = ? AND book_id = ?
    `, h.Type, h.Description, h.Date.Unix(), h.Counterparty,
		h.CategoryID, h.UpdatedBy, h.UpdatedAt.Unix(),
		id, bookID)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", mapSQLiteError(err))
	}
	return checkAffected(result, "transaction", id)
}

// DeleteTransaction deletes a transaction header. Splits cascade, but the
// service deletes them explicitly after reversing their balances.
func (s *Store) DeleteTransaction(ctx context.Context, bookID string, id int64) error {
	result, err := s.db.ExecContext(ctx, `
        DELETE FROM transactions
        WHERE id = ? AND book_id = ?
    `, id, bookID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", mapSQLiteError(err))
	}
	return checkAffected(result, "transaction", id)
}

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	tx := &model.Transaction{}
	var date, createdAt, updatedAt int64

	err := row.Scan(
		&tx.ID, &tx.BookID, &tx.Type, &tx.Description, &date, &tx.Counterparty,
		&tx.CategoryID, &tx.CreatedBy, &tx.UpdatedBy, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	tx.Date = time.Unix(date, 0).UTC()
	tx.CreatedAt = time.Unix(createdAt, 0).UTC()
	tx.UpdatedAt = time.Unix(updatedAt, 0).UTC()

	return tx, nil
}

func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
