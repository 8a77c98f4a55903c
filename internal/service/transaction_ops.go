package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hance08/ledger/internal/logic/accounting"
	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/store"
)

// CreateTransaction validates the intent, builds its splits and posts them
// together with the balance changes.
func (ts *TransactionService) CreateTransaction(ctx context.Context, intent model.Intent, creator string) (*model.TransactionDetail, error) {
	if creator == "" {
		return nil, &model.IntentError{Index: -1, Field: "creator", Reason: "is required"}
	}
	plan, err := accounting.BuildSplits(intent)
	if err != nil {
		return nil, err
	}

	var detail *model.TransactionDetail
	err = ts.repo.ExecTx(ctx, func(repo store.Repository) error {
		detail, err = ts.post(ctx, repo, intent, plan, creator)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	ts.logger.Info("transaction created", ts.logger.Args(
		"book", intent.BookID, "tx", detail.ID, "type", intent.Type, "amount", intent.Amount, "by", creator))
	return detail, nil
}

// UpdateTransaction replaces a transaction with a new intent. The stored
// balance effect is reversed before the new one is applied, so the result
// equals deleting the transaction and creating it again under the same id.
func (ts *TransactionService) UpdateTransaction(ctx context.Context, bookID string, txID int64, intent model.Intent, editor string) (*model.TransactionDetail, error) {
	if editor == "" {
		return nil, &model.IntentError{Index: -1, Field: "editor", Reason: "is required"}
	}
	if intent.BookID == "" {
		intent.BookID = bookID
	}
	if intent.BookID != bookID {
		return nil, &model.IntentError{Index: -1, Field: "book", Reason: "does not match the transaction's book"}
	}
	plan, err := accounting.BuildSplits(intent)
	if err != nil {
		return nil, err
	}

	var detail *model.TransactionDetail
	err = ts.repo.ExecTx(ctx, func(repo store.Repository) error {
		existing, oldSplits, err := ts.load(ctx, repo, bookID, txID)
		if err != nil {
			return err
		}
		detail, err = ts.repost(ctx, repo, existing, oldSplits, intent, plan, editor)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	ts.logger.Info("transaction updated", ts.logger.Args("book", bookID, "tx", txID, "by", editor))
	return detail, nil
}

// PatchTransaction applies a partial update. Fields left nil in patch keep
// their stored values.
func (ts *TransactionService) PatchTransaction(ctx context.Context, bookID string, txID int64, patch model.TransactionPatch, editor string) (*model.TransactionDetail, error) {
	if editor == "" {
		return nil, &model.IntentError{Index: -1, Field: "editor", Reason: "is required"}
	}

	var detail *model.TransactionDetail
	err := ts.repo.ExecTx(ctx, func(repo store.Repository) error {
		existing, oldSplits, err := ts.load(ctx, repo, bookID, txID)
		if err != nil {
			return err
		}

		base, err := accounting.IntentFromSplits(*existing, oldSplits)
		if err != nil {
			return err
		}
		intent := patch.Apply(base)

		// Nothing has been written yet, so a rejected merge rolls back cleanly.
		plan, err := accounting.BuildSplits(intent)
		if err != nil {
			return err
		}

		detail, err = ts.repost(ctx, repo, existing, oldSplits, intent, plan, editor)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	ts.logger.Info("transaction patched", ts.logger.Args("book", bookID, "tx", txID, "by", editor))
	return detail, nil
}

// DeleteTransaction removes a transaction and reverses its balance effect.
func (ts *TransactionService) DeleteTransaction(ctx context.Context, bookID string, txID int64) error {
	err := ts.repo.ExecTx(ctx, func(repo store.Repository) error {
		existing, splits, err := ts.load(ctx, repo, bookID, txID)
		if err != nil {
			return err
		}

		deltas, err := accounting.DeltasFromSplits(existing.Type, splits)
		if err != nil {
			return err
		}
		if err := ts.applyDeltas(ctx, repo, bookID, accounting.Negate(deltas)); err != nil {
			return err
		}

		if _, err := repo.DeleteSplitsByTransaction(ctx, txID); err != nil {
			return fmt.Errorf("failed to delete splits: %w", err)
		}
		if err := repo.DeleteTransaction(ctx, bookID, txID); err != nil {
			return fmt.Errorf("failed to delete transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return translate(err)
	}

	ts.logger.Info("transaction deleted", ts.logger.Args("book", bookID, "tx", txID))
	return nil
}

// CreateBatch posts several intents atomically. Every intent is validated
// before storage is touched; the first invalid one rejects the whole batch
// with an *model.IntentError carrying its index. A failure while posting
// rolls every intent of the batch back.
func (ts *TransactionService) CreateBatch(ctx context.Context, bookID string, intents []model.Intent, creator string) ([]*model.TransactionDetail, error) {
	if len(intents) == 0 {
		return nil, &model.IntentError{Index: -1, Field: "intents", Reason: "batch is empty"}
	}
	if creator == "" {
		return nil, &model.IntentError{Index: -1, Field: "creator", Reason: "is required"}
	}

	batch := make([]model.Intent, len(intents))
	plans := make([]accounting.Plan, len(intents))
	for i, intent := range intents {
		if intent.BookID == "" {
			intent.BookID = bookID
		}
		if intent.BookID != bookID {
			return nil, &model.IntentError{Index: i, Field: "book", Reason: "does not match the batch book"}
		}

		plan, err := accounting.BuildSplits(intent)
		if err != nil {
			return nil, withIndex(err, i)
		}
		batch[i], plans[i] = intent, plan
	}

	details := make([]*model.TransactionDetail, 0, len(batch))
	err := ts.repo.ExecTx(ctx, func(repo store.Repository) error {
		for i, intent := range batch {
			detail, err := ts.post(ctx, repo, intent, plans[i], creator)
			if err != nil {
				return withIndex(err, i)
			}
			details = append(details, detail)
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}

	ts.logger.Info("batch created", ts.logger.Args("book", bookID, "count", len(details), "by", creator))
	return details, nil
}

// post inserts the header and splits of a new transaction and applies its
// deltas. It must run inside an open unit.
func (ts *TransactionService) post(ctx context.Context, repo store.Repository, intent model.Intent, plan accounting.Plan, creator string) (*model.TransactionDetail, error) {
	if err := ts.checkReferences(ctx, repo, intent); err != nil {
		return nil, err
	}

	now := clock()
	tx := model.Transaction{
		BookID:       intent.BookID,
		Type:         intent.Type,
		Description:  intent.Description,
		Date:         dateOrNow(intent, now),
		Counterparty: intent.Counterparty,
		CategoryID:   intent.CategoryID,
		CreatedBy:    creator,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := repo.InsertTransaction(ctx, &tx)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}
	tx.ID = id

	splits, err := repo.InsertSplits(ctx, id, plan.Splits)
	if err != nil {
		return nil, fmt.Errorf("failed to insert splits: %w", err)
	}

	if err := ts.applyDeltas(ctx, repo, intent.BookID, plan.Deltas); err != nil {
		return nil, err
	}

	ts.logger.Debug("transaction posted", ts.logger.Args("book", intent.BookID, "tx", id, "splits", len(splits)))
	return &model.TransactionDetail{Transaction: tx, Splits: splits}, nil
}

// repost swaps the splits of an existing transaction for a new plan and
// rewrites its header. It must run inside an open unit.
func (ts *TransactionService) repost(ctx context.Context, repo store.Repository, existing *model.Transaction, oldSplits []model.Split, intent model.Intent, plan accounting.Plan, editor string) (*model.TransactionDetail, error) {
	if err := ts.checkReferences(ctx, repo, intent); err != nil {
		return nil, err
	}

	old, err := accounting.DeltasFromSplits(existing.Type, oldSplits)
	if err != nil {
		return nil, err
	}
	if err := ts.applyDeltas(ctx, repo, existing.BookID, accounting.Negate(old)); err != nil {
		return nil, err
	}

	if _, err := repo.DeleteSplitsByTransaction(ctx, existing.ID); err != nil {
		return nil, fmt.Errorf("failed to delete splits: %w", err)
	}
	splits, err := repo.InsertSplits(ctx, existing.ID, plan.Splits)
	if err != nil {
		return nil, fmt.Errorf("failed to insert splits: %w", err)
	}

	if err := ts.applyDeltas(ctx, repo, existing.BookID, plan.Deltas); err != nil {
		return nil, err
	}

	now := clock()
	header := store.TransactionHeader{
		Type:         intent.Type,
		Description:  intent.Description,
		Date:         dateOrNow(intent, existing.Date),
		Counterparty: intent.Counterparty,
		CategoryID:   intent.CategoryID,
		UpdatedBy:    editor,
		UpdatedAt:    now,
	}
	if err := repo.UpdateTransactionHeader(ctx, existing.BookID, existing.ID, header); err != nil {
		return nil, fmt.Errorf("failed to update transaction header: %w", err)
	}

	tx := *existing
	tx.Type = header.Type
	tx.Description = header.Description
	tx.Date = header.Date
	tx.Counterparty = header.Counterparty
	tx.CategoryID = header.CategoryID
	tx.UpdatedBy = &editor
	tx.UpdatedAt = now

	return &model.TransactionDetail{Transaction: tx, Splits: splits}, nil
}

// checkReferences verifies that every account and category of the intent
// exists in the intent's book and that no posting account is archived.
func (ts *TransactionService) checkReferences(ctx context.Context, repo store.Repository, intent model.Intent) error {
	fields := []string{"source_account", "destination_account"}
	for i, id := range intent.AccountIDs() {
		acc, err := repo.GetAccountByID(ctx, intent.BookID, id)
		if errors.Is(err, store.ErrRecordNotFound) {
			return referenceNotFound("account %d in book %s", id, intent.BookID)
		}
		if err != nil {
			return fmt.Errorf("failed to get account %d: %w", id, err)
		}
		if acc.Archived {
			return &model.IntentError{Index: -1, Field: fields[i], Reason: fmt.Sprintf("account '%s' is archived", acc.Name)}
		}
	}

	if intent.CategoryID == nil {
		return nil
	}

	cat, err := repo.GetCategoryByID(ctx, intent.BookID, *intent.CategoryID)
	if errors.Is(err, store.ErrRecordNotFound) {
		return referenceNotFound("category %d in book %s", *intent.CategoryID, intent.BookID)
	}
	if err != nil {
		return fmt.Errorf("failed to get category %d: %w", *intent.CategoryID, err)
	}
	if string(cat.Kind) != string(intent.Type) {
		return &model.IntentError{
			Index:  -1,
			Field:  "category",
			Reason: fmt.Sprintf("%s category '%s' can't be used on %s", cat.Kind, cat.Name, intent.Type),
		}
	}
	return nil
}

func (ts *TransactionService) applyDeltas(ctx context.Context, repo store.Repository, bookID string, deltas []model.Delta) error {
	err := accounting.ApplyDeltas(ctx, repo, bookID, deltas)
	switch {
	case errors.Is(err, store.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", model.ErrReferenceNotFound, err)
	case errors.Is(err, store.ErrBalanceOverflow), errors.Is(err, accounting.ErrOverflow):
		return &model.IntentError{Index: -1, Field: "amount", Reason: "would overflow the account balance"}
	}
	return err
}

func dateOrNow(intent model.Intent, fallback time.Time) time.Time {
	if intent.Date.IsZero() {
		return fallback
	}
	return intent.Date.UTC().Truncate(time.Second)
}
