package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pterm/pterm"

	"github.com/hance08/ledger/internal/config"
	"github.com/hance08/ledger/internal/constants"
	"github.com/hance08/ledger/internal/currency"
	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/store"
	"github.com/hance08/ledger/internal/validation"
)

type BookService struct {
	repo   store.Repository
	config *config.Config
	logger *pterm.Logger
}

func NewBookService(repo store.Repository, cfg *config.Config, logger *pterm.Logger) *BookService {
	return &BookService{repo: repo, config: cfg, logger: logger}
}

// CreateBook creates a book together with its opening balance account.
// An empty currency falls back to the configured default.
func (bs *BookService) CreateBook(ctx context.Context, name, code string) (*model.Book, error) {
	name = strings.TrimSpace(name)
	if err := validation.ValidateBookName(name); err != nil {
		return nil, validationError(err)
	}
	if err := validation.ValidateCurrency(code); err != nil {
		return nil, validationError(err)
	}

	code = currency.Normalize(code)
	if code == "" {
		code = currency.Normalize(bs.config.Defaults.Currency)
	}

	now := clock()
	book := &model.Book{
		ID:        uuid.NewString(),
		Name:      name,
		Currency:  code,
		CreatedAt: now,
	}

	err := bs.repo.ExecTx(ctx, func(repo store.Repository) error {
		if err := repo.CreateBook(ctx, book); err != nil {
			return err
		}
		_, err := repo.CreateAccount(ctx, &model.Account{
			BookID:    book.ID,
			Name:      constants.SystemAccountOpeningBalance,
			Kind:      model.KindEquity,
			CreatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("failed to create opening balance account: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}

	bs.logger.Info("book created", bs.logger.Args("book", book.ID, "name", book.Name, "currency", book.Currency))
	return book, nil
}

func (bs *BookService) GetBook(ctx context.Context, id string) (*model.Book, error) {
	book, err := bs.repo.GetBook(ctx, id)
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, notFound("book %s", id)
	}
	if err != nil {
		return nil, translate(err)
	}
	return book, nil
}

func (bs *BookService) ListBooks(ctx context.Context) ([]*model.Book, error) {
	books, err := bs.repo.ListBooks(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return books, nil
}

// ResolveBook finds a book by id or, failing that, by exact name. An empty
// ref selects the configured default book, or the only book if there is
// just one.
func (bs *BookService) ResolveBook(ctx context.Context, ref string) (*model.Book, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		ref = bs.config.Defaults.Book
	}

	books, err := bs.ListBooks(ctx)
	if err != nil {
		return nil, err
	}

	if ref == "" {
		if len(books) == 1 {
			return books[0], nil
		}
		return nil, validationError(fmt.Errorf("no book selected: pass --book or set defaults.book (%d books exist)", len(books)))
	}

	for _, b := range books {
		if b.ID == ref {
			return b, nil
		}
	}
	for _, b := range books {
		if b.Name == ref {
			return b, nil
		}
	}
	return nil, notFound("book '%s'", ref)
}
