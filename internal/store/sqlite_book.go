package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hance08/ledger/internal/model"
)

func (s *Store) CreateBook(ctx context.Context, book *model.Book) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO books (id, name, currency, created_at)
        VALUES (?, ?, ?, ?)
    `, book.ID, book.Name, book.Currency, book.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to create book '%s': %w", book.Name, mapSQLiteError(err))
	}
	return nil
}

func (s *Store) GetBook(ctx context.Context, id string) (*model.Book, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, currency, created_at FROM books WHERE id = ?", id)

	book := &model.Book{}
	var createdAt int64
	if err := row.Scan(&book.ID, &book.Name, &book.Currency, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("book %s: %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query book %s: %w", id, err)
	}
	book.CreatedAt = time.Unix(createdAt, 0).UTC()

	return book, nil
}

func (s *Store) ListBooks(ctx context.Context) ([]*model.Book, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, name, currency, created_at
        FROM books
        ORDER BY name, id
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var books []*model.Book
	for rows.Next() {
		book := &model.Book{}
		var createdAt int64
		if err := rows.Scan(&book.ID, &book.Name, &book.Currency, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		book.CreatedAt = time.Unix(createdAt, 0).UTC()
		books = append(books, book)
	}

	return books, rows.Err()
}
