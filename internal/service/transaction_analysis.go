package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hance08/ledger/internal/logic/accounting"
	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/store"
)

// VerifyBalances replays every posted split of the book and reports the
// accounts whose stored balance differs from the replayed one.
func (ts *TransactionService) VerifyBalances(ctx context.Context, bookID string) ([]model.BalanceDrift, error) {
	drifts, err := ts.drifts(ctx, ts.repo, bookID)
	if err != nil {
		return nil, translate(err)
	}
	return drifts, nil
}

// RebuildBalances corrects every drifted account in one unit and returns
// the corrections it applied.
func (ts *TransactionService) RebuildBalances(ctx context.Context, bookID string) ([]model.BalanceDrift, error) {
	var drifts []model.BalanceDrift
	err := ts.repo.ExecTx(ctx, func(repo store.Repository) error {
		var err error
		drifts, err = ts.drifts(ctx, repo, bookID)
		if err != nil {
			return err
		}

		corrections := make([]model.Delta, 0, len(drifts))
		for _, d := range drifts {
			corrections = append(corrections, model.Delta{AccountID: d.AccountID, Amount: d.Diff()})
		}
		return ts.applyDeltas(ctx, repo, bookID, corrections)
	})
	if err != nil {
		return nil, translate(err)
	}

	if len(drifts) > 0 {
		ts.logger.Warn("balances rebuilt", ts.logger.Args("book", bookID, "accounts", len(drifts)))
	}
	return drifts, nil
}

func (ts *TransactionService) drifts(ctx context.Context, repo store.Repository, bookID string) ([]model.BalanceDrift, error) {
	if _, err := repo.GetBook(ctx, bookID); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, notFound("book %s", bookID)
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	accounts, err := repo.ListAccounts(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	posted, err := repo.ListPostedSplits(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}

	expected, err := accounting.ReplayBalances(posted)
	if err != nil {
		return nil, err
	}

	var drifts []model.BalanceDrift
	for _, acc := range accounts {
		if acc.Balance != expected[acc.ID] {
			drifts = append(drifts, model.BalanceDrift{
				AccountID: acc.ID,
				Name:      acc.Name,
				Stored:    acc.Balance,
				Expected:  expected[acc.ID],
			})
		}
	}
	return drifts, nil
}
