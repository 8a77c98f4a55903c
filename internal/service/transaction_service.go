package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pterm/pterm"

	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/store"
)

// TransactionService is the transaction lifecycle manager. Every mutating
// method runs as exactly one store.ExecTx unit.
type TransactionService struct {
	repo   store.Repository
	logger *pterm.Logger
}

func NewTransactionService(repo store.Repository, logger *pterm.Logger) *TransactionService {
	return &TransactionService{repo: repo, logger: logger}
}

// GetTransaction retrieves a transaction with its splits.
func (ts *TransactionService) GetTransaction(ctx context.Context, bookID string, txID int64) (*model.TransactionDetail, error) {
	tx, splits, err := ts.load(ctx, ts.repo, bookID, txID)
	if err != nil {
		return nil, translate(err)
	}
	return &model.TransactionDetail{Transaction: *tx, Splits: splits}, nil
}

// ListTransactions returns the book's transactions matching filter, newest
// first, each hydrated with its splits.
func (ts *TransactionService) ListTransactions(ctx context.Context, bookID string, filter model.TransactionFilter) ([]*model.TransactionDetail, error) {
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, validationError(fmt.Errorf("limit and offset can't be negative"))
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, validationError(fmt.Errorf("from date is after to date"))
	}

	txs, err := ts.repo.ListTransactions(ctx, bookID, filter)
	if err != nil {
		return nil, translate(fmt.Errorf("failed to list transactions: %w", err))
	}

	details := make([]*model.TransactionDetail, 0, len(txs))
	for _, tx := range txs {
		splits, err := ts.repo.GetSplitsByTransaction(ctx, tx.ID)
		if err != nil {
			return nil, translate(fmt.Errorf("failed to get splits of transaction %d: %w", tx.ID, err))
		}
		details = append(details, &model.TransactionDetail{Transaction: *tx, Splits: splits})
	}
	return details, nil
}

// load reads a transaction header and its splits. A missing header or an
// empty split set is reported as model.ErrNotFound.
func (ts *TransactionService) load(ctx context.Context, repo store.Repository, bookID string, txID int64) (*model.Transaction, []model.Split, error) {
	tx, err := repo.GetTransaction(ctx, bookID, txID)
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, nil, notFound("transaction %d", txID)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get transaction %d: %w", txID, err)
	}

	splits, err := repo.GetSplitsByTransaction(ctx, txID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get splits of transaction %d: %w", txID, err)
	}
	if len(splits) == 0 {
		return nil, nil, notFound("splits of transaction %d", txID)
	}
	return tx, splits, nil
}
