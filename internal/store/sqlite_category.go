package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hance08/ledger/internal/model"
)

func (s *Store) CreateCategory(ctx context.Context, c *model.Category) (int64, error) {
	var newID int64
	err := s.db.QueryRowContext(ctx, `
        INSERT INTO categories (book_id, name, kind, created_at)
        VALUES (?, ?, ?, ?)
        RETURNING id;
    `, c.BookID, c.Name, c.Kind, c.CreatedAt.Unix()).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("failed to create category '%s': %w", c.Name, mapSQLiteError(err))
	}
	return newID, nil
}

func (s *Store) GetCategoryByID(ctx context.Context, bookID string, id int64) (*model.Category, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, book_id, name, kind, created_at
        FROM categories
        WHERE id = ? AND book_id = ?
    `, id, bookID)

	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("category with ID %d: %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query category with ID %d: %w", id, err)
	}
	return c, nil
}

func (s *Store) GetCategoryByName(ctx context.Context, bookID, name string) (*model.Category, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, book_id, name, kind, created_at
        FROM categories
        WHERE book_id = ? AND name = ?
    `, bookID, name)

	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("category '%s': %w", name, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query category '%s': %w", name, err)
	}
	return c, nil
}

func (s *Store) ListCategories(ctx context.Context, bookID string) ([]*model.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, book_id, name, kind, created_at
        FROM categories
        WHERE book_id = ?
        ORDER BY kind, name
    `, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var categories []*model.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func scanCategory(row rowScanner) (*model.Category, error) {
	c := &model.Category{}
	var createdAt int64
	if err := row.Scan(&c.ID, &c.BookID, &c.Name, &c.Kind, &createdAt); err != nil {
		return nil, err
	}
	c.CreatedAt = time.Unix(createdAt, 0).UTC()
	return c, nil
}
