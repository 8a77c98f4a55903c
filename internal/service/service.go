package service

import (
	"time"

	"github.com/pterm/pterm"

	"github.com/hance08/ledger/internal/config"
	"github.com/hance08/ledger/internal/logging"
	"github.com/hance08/ledger/internal/store"
)

type Service struct {
	Config      *config.Config
	Book        *BookService
	Account     *AccountService
	Category    *CategoryService
	Transaction *TransactionService
}

func NewService(repo store.Repository, cfg *config.Config, logger *pterm.Logger) *Service {
	if cfg == nil {
		cfg = config.NewDefault()
	}
	if logger == nil {
		logger = logging.Discard()
	}

	return &Service{
		Config:      cfg,
		Book:        NewBookService(repo, cfg, logger),
		Account:     NewAccountService(repo, logger),
		Category:    NewCategoryService(repo, logger),
		Transaction: NewTransactionService(repo, logger),
	}
}

// clock is swapped in tests.
var clock = func() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
