package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/store"
)

type AccountService struct {
	repo   store.Repository
	logger *pterm.Logger
}

func NewAccountService(repo store.Repository, logger *pterm.Logger) *AccountService {
	return &AccountService{repo: repo, logger: logger}
}

func (as *AccountService) GetAccount(ctx context.Context, bookID string, id int64) (*model.Account, error) {
	acc, err := as.repo.GetAccountByID(ctx, bookID, id)
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, notFound("account %d", id)
	}
	if err != nil {
		return nil, translate(err)
	}
	return acc, nil
}

func (as *AccountService) GetAccountByName(ctx context.Context, bookID, name string) (*model.Account, error) {
	acc, err := as.repo.GetAccountByName(ctx, bookID, strings.TrimSpace(name))
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, notFound("account '%s'", name)
	}
	if err != nil {
		return nil, translate(err)
	}
	return acc, nil
}

// ListAccounts returns the book's accounts. Archived accounts are included
// only when withArchived is set.
func (as *AccountService) ListAccounts(ctx context.Context, bookID string, withArchived bool) ([]*model.Account, error) {
	accounts, err := as.repo.ListAccounts(ctx, bookID)
	if err != nil {
		return nil, translate(fmt.Errorf("failed to list accounts: %w", err))
	}
	if withArchived {
		return accounts, nil
	}

	active := make([]*model.Account, 0, len(accounts))
	for _, acc := range accounts {
		if !acc.Archived {
			active = append(active, acc)
		}
	}
	return active, nil
}

func (as *AccountService) CheckAccountExists(ctx context.Context, bookID, name string) (bool, error) {
	exists, err := as.repo.AccountExists(ctx, bookID, strings.TrimSpace(name))
	if err != nil {
		return false, translate(err)
	}
	return exists, nil
}
