package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hance08/ledger/internal/model"
)

const accountColumns = "id, book_id, name, kind, balance, archived, created_at"

func (s *Store) CreateAccount(ctx context.Context, acc *model.Account) (int64, error) {
	stmt, err := s.db.PrepareContext(ctx, `
        INSERT INTO accounts (book_id, name, kind, created_at)
        VALUES (?, ?, ?, ?)
        RETURNING id;
    `)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare SQL: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	var newID int64
	err = stmt.QueryRowContext(ctx, acc.BookID, acc.Name, acc.Kind, acc.CreatedAt.Unix()).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("failed to create account '%s': %w", acc.Name, mapSQLiteError(err))
	}

	return newID, nil
}

func (s *Store) GetAccountByID(ctx context.Context, bookID string, id int64) (*model.Account, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+accountColumns+" FROM accounts WHERE id = ? AND book_id = ?", id, bookID)

	acc, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account with ID %d: %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query account with ID %d: %w", id, err)
	}
	return acc, nil
}

func (s *Store) GetAccountByName(ctx context.Context, bookID, name string) (*model.Account, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+accountColumns+" FROM accounts WHERE book_id = ? AND name = ?", bookID, name)

	acc, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account '%s': %w", name, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query account '%s': %w", name, err)
	}
	return acc, nil
}

func (s *Store) AccountExists(ctx context.Context, bookID, name string) (bool, error) {
	var exists bool
	row := s.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM accounts WHERE book_id = ? AND name = ?)", bookID, name)
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}
	return exists, nil
}

func (s *Store) ListAccounts(ctx context.Context, bookID string) ([]*model.Account, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT `+accountColumns+`
        FROM accounts
        WHERE book_id = ?
        ORDER BY name
    `, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var accounts []*model.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}

	return accounts, rows.Err()
}

func (s *Store) SetAccountArchived(ctx context.Context, bookID string, id int64, archived bool) error {
	result, err := s.db.ExecContext(ctx, `
        UPDATE accounts
        SET archived = ?
        WHERE id = ? AND book_id = ?
    `, archived, id, bookID)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return checkAffected(result, "account", id)
}

func (s *Store) DeleteAccount(ctx context.Context, bookID string, id int64) error {
	result, err := s.db.ExecContext(ctx, `
        DELETE FROM accounts
        WHERE id = ? AND book_id = ?
    `, id, bookID)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", mapSQLiteError(err))
	}
	return checkAffected(result, "account", id)
}

func (s *Store) CountSplitsByAccount(ctx context.Context, accountID int64) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM splits WHERE account_id = ?", accountID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count splits: %w", err)
	}
	return count, nil
}

// AdjustAccountBalance adds delta to the stored balance. The update is
// refused with ErrBalanceOverflow when the result would not fit in int64.
func (s *Store) AdjustAccountBalance(ctx context.Context, bookID string, accountID, delta int64) error {
	result, err := s.db.ExecContext(ctx, `
        UPDATE accounts
        SET balance = balance + ?1
        WHERE id = ?2 AND book_id = ?3
          AND (?1 <= 0 OR balance <= 9223372036854775807 - ?1)
          AND (?1 >= 0 OR balance >= (-9223372036854775807 - 1) - ?1)
    `, delta, accountID, bookID)
	if err != nil {
		return fmt.Errorf("failed to adjust balance of account %d: %w", accountID, mapSQLiteError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	var exists bool
	err = s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM accounts WHERE id = ? AND book_id = ?)", accountID, bookID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check account %d: %w", accountID, err)
	}
	if !exists {
		return fmt.Errorf("account %d: %w", accountID, ErrRecordNotFound)
	}
	return fmt.Errorf("account %d, delta %+d: %w", accountID, delta, ErrBalanceOverflow)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*model.Account, error) {
	acc := &model.Account{}
	var createdAt int64

	err := row.Scan(
		&acc.ID, &acc.BookID, &acc.Name,
		&acc.Kind, &acc.Balance, &acc.Archived,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	acc.CreatedAt = time.Unix(createdAt, 0).UTC()

	return acc, nil
}
