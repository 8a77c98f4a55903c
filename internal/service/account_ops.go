package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hance08/ledger/internal/constants"
	"github.com/hance08/ledger/internal/logic/accounting"
	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/store"
	"github.com/hance08/ledger/internal/validation"
)

func (as *AccountService) CreateAccount(ctx context.Context, bookID, name string, kind model.AccountKind) (*model.Account, error) {
	var acc *model.Account
	err := as.repo.ExecTx(ctx, func(repo store.Repository) error {
		var err error
		acc, err = createAccount(ctx, repo, bookID, name, kind)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	as.logger.Info("account created", as.logger.Args("book", bookID, "account", acc.ID, "name", acc.Name, "kind", acc.Kind))
	return acc, nil
}

// ArchiveAccount hides an account from listings and blocks new postings to
// it. Existing transactions are untouched.
func (as *AccountService) ArchiveAccount(ctx context.Context, bookID string, id int64, archived bool) error {
	err := as.repo.ExecTx(ctx, func(repo store.Repository) error {
		acc, err := repo.GetAccountByID(ctx, bookID, id)
		if errors.Is(err, store.ErrRecordNotFound) {
			return notFound("account %d", id)
		}
		if err != nil {
			return err
		}
		if acc.Name == constants.SystemAccountOpeningBalance {
			return validationError(fmt.Errorf("'%s' is a system account", acc.Name))
		}
		return repo.SetAccountArchived(ctx, bookID, id, archived)
	})
	if err != nil {
		return translate(err)
	}

	as.logger.Info("account archive flag set", as.logger.Args("book", bookID, "account", id, "archived", archived))
	return nil
}

// DeleteAccount removes an account that has no balance and no postings.
func (as *AccountService) DeleteAccount(ctx context.Context, bookID string, id int64) error {
	err := as.repo.ExecTx(ctx, func(repo store.Repository) error {
		acc, err := repo.GetAccountByID(ctx, bookID, id)
		if errors.Is(err, store.ErrRecordNotFound) {
			return notFound("account %d", id)
		}
		if err != nil {
			return err
		}
		if acc.Name == constants.SystemAccountOpeningBalance {
			return fmt.Errorf("%w: '%s' is a system account", model.ErrAccountInUse, acc.Name)
		}
		if acc.Balance != 0 {
			return fmt.Errorf("%w: account '%s' has balance %d", model.ErrAccountInUse, acc.Name, acc.Balance)
		}

		count, err := repo.CountSplitsByAccount(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: account '%s' is used by %d splits", model.ErrAccountInUse, acc.Name, count)
		}

		return repo.DeleteAccount(ctx, bookID, id)
	})
	if err != nil {
		return translate(err)
	}

	as.logger.Info("account deleted", as.logger.Args("book", bookID, "account", id))
	return nil
}

// CreateAccountWithBalance creates an account and, when opening is non-zero,
// posts its opening balance as a transfer against the book's
// Equity:OpeningBalances account. Both happen in one unit.
func (s *Service) CreateAccountWithBalance(ctx context.Context, bookID, name string, kind model.AccountKind, opening int64, creator string) (*model.Account, error) {
	if opening < 0 {
		return nil, validationError(fmt.Errorf("opening balance can't be negative"))
	}
	if opening != 0 && kind != model.KindAsset && kind != model.KindLiability {
		return nil, validationError(fmt.Errorf("only ASSET and LIABILITY accounts can have an opening balance"))
	}
	if opening != 0 && creator == "" {
		return nil, &model.IntentError{Index: -1, Field: "creator", Reason: "is required"}
	}

	var acc *model.Account
	err := s.Transaction.repo.ExecTx(ctx, func(repo store.Repository) error {
		var err error
		acc, err = createAccount(ctx, repo, bookID, name, kind)
		if err != nil || opening == 0 {
			return err
		}

		equity, err := repo.GetAccountByName(ctx, bookID, constants.SystemAccountOpeningBalance)
		if err != nil {
			return fmt.Errorf("can not find '%s' account, failed to set opening balance: %w",
				constants.SystemAccountOpeningBalance, err)
		}

		intent := openingIntent(bookID, acc, equity.ID, opening)
		plan, err := accounting.BuildSplits(intent)
		if err != nil {
			return err
		}
		if _, err := s.Transaction.post(ctx, repo, intent, plan, creator); err != nil {
			return fmt.Errorf("failed to post opening balance: %w", err)
		}

		acc, err = repo.GetAccountByID(ctx, bookID, acc.ID)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	s.Transaction.logger.Info("account created", s.Transaction.logger.Args(
		"book", bookID, "account", acc.ID, "name", acc.Name, "kind", acc.Kind, "opening", opening))
	return acc, nil
}

// openingIntent moves the opening amount out of equity into an asset, or
// out of a liability into equity so the liability carries a negative balance.
func openingIntent(bookID string, acc *model.Account, equityID, amount int64) model.Intent {
	intent := model.Intent{
		BookID:      bookID,
		Type:        model.TxTransfer,
		Amount:      amount,
		Description: constants.OpeningBalanceDescription,
	}

	if acc.Kind == model.KindLiability {
		dest := equityID
		intent.SourceAccountID = acc.ID
		intent.DestinationAccountID = &dest
		return intent
	}

	dest := acc.ID
	intent.SourceAccountID = equityID
	intent.DestinationAccountID = &dest
	return intent
}

func createAccount(ctx context.Context, repo store.Repository, bookID, name string, kind model.AccountKind) (*model.Account, error) {
	name = strings.TrimSpace(name)
	kind = model.AccountKind(strings.ToUpper(string(kind)))

	if err := validation.ValidateAccountName(name); err != nil {
		return nil, validationError(err)
	}
	if err := validation.ValidateAccountKind(string(kind)); err != nil {
		return nil, validationError(err)
	}

	if _, err := repo.GetBook(ctx, bookID); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, referenceNotFound("book %s", bookID)
		}
		return nil, err
	}

	acc := &model.Account{
		BookID:    bookID,
		Name:      name,
		Kind:      kind,
		CreatedAt: clock(),
	}
	id, err := repo.CreateAccount(ctx, acc)
	if err != nil {
		return nil, err
	}
	acc.ID = id
	return acc, nil
}
