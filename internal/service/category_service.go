package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/store"
	"github.com/hance08/ledger/internal/validation"
)

type CategoryService struct {
	repo   store.Repository
	logger *pterm.Logger
}

func NewCategoryService(repo store.Repository, logger *pterm.Logger) *CategoryService {
	return &CategoryService{repo: repo, logger: logger}
}

func (cs *CategoryService) CreateCategory(ctx context.Context, bookID, name string, kind model.CategoryKind) (*model.Category, error) {
	name = strings.TrimSpace(name)
	kind = model.CategoryKind(strings.ToUpper(string(kind)))

	if err := validation.ValidateCategoryName(name); err != nil {
		return nil, validationError(err)
	}
	if !kind.Valid() {
		return nil, validationError(fmt.Errorf("invalid category kind '%s' (must be INCOME or EXPENSE)", kind))
	}

	cat := &model.Category{
		BookID:    bookID,
		Name:      name,
		Kind:      kind,
		CreatedAt: clock(),
	}

	err := cs.repo.ExecTx(ctx, func(repo store.Repository) error {
		if _, err := repo.GetBook(ctx, bookID); err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				return referenceNotFound("book %s", bookID)
			}
			return err
		}

		id, err := repo.CreateCategory(ctx, cat)
		if err != nil {
			return err
		}
		cat.ID = id
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}

	cs.logger.Info("category created", cs.logger.Args("book", bookID, "category", cat.ID, "name", cat.Name, "kind", cat.Kind))
	return cat, nil
}

func (cs *CategoryService) GetCategoryByName(ctx context.Context, bookID, name string) (*model.Category, error) {
	cat, err := cs.repo.GetCategoryByName(ctx, bookID, strings.TrimSpace(name))
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, notFound("category '%s'", name)
	}
	if err != nil {
		return nil, translate(err)
	}
	return cat, nil
}

func (cs *CategoryService) ListCategories(ctx context.Context, bookID string) ([]*model.Category, error) {
	cats, err := cs.repo.ListCategories(ctx, bookID)
	if err != nil {
		return nil, translate(err)
	}
	return cats, nil
}
