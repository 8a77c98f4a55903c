// Package accounting holds the double-entry rules of the ledger: how an
// intent becomes signed splits and how those splits move account balances.
// Nothing in this package performs I/O except ApplyDeltas, which writes
// through the BalanceWriter it is given.
package accounting

import (
	"fmt"

	"github.com/hance08/ledger/internal/model"
)

// Plan is the materialized form of an intent: the splits to insert and the
// balance deltas to apply, in that order.
type Plan struct {
	Splits []model.Split
	Deltas []model.Delta
}

// ValidateIntent checks the per-type preconditions of an intent.
func ValidateIntent(intent model.Intent) error {
	if intent.BookID == "" {
		return invalid("book", "is required")
	}
	if !intent.Type.Valid() {
		return invalid("type", fmt.Sprintf("unknown transaction type %q", intent.Type))
	}
	if intent.Amount <= 0 {
		return invalid("amount", "must be positive")
	}
	if intent.SourceAccountID <= 0 {
		return invalid("source_account", "is required")
	}

	switch intent.Type {
	case model.TxTransfer:
		if intent.DestinationAccountID == nil || *intent.DestinationAccountID <= 0 {
			return invalid("destination_account", "is required for transfers")
		}
		if *intent.DestinationAccountID == intent.SourceAccountID {
			return invalid("destination_account", "must differ from the source account")
		}
		if intent.CategoryID != nil {
			return invalid("category", "is not allowed on transfers")
		}
	case model.TxIncome, model.TxExpense:
		if intent.DestinationAccountID != nil {
			return invalid("destination_account", fmt.Sprintf("is not allowed on %s", intent.Type))
		}
	}

	return nil
}

// BuildSplits turns an intent into its split set and balance deltas.
//
// INCOME and EXPENSE post two legs on the same account: a categorized +amount
// DEBIT and an uncategorized -amount CREDIT. The displayed amount is always
// the magnitude; the balance effect per type comes from Deltas.
// TRANSFER posts +amount DEBIT on the destination and -amount CREDIT on the
// source.
func BuildSplits(intent model.Intent) (Plan, error) {
	if err := ValidateIntent(intent); err != nil {
		return Plan{}, err
	}

	var splits []model.Split
	switch intent.Type {
	case model.TxIncome, model.TxExpense:
		splits = []model.Split{
			{
				AccountID:  intent.SourceAccountID,
				CategoryID: intent.CategoryID,
				Amount:     intent.Amount,
				Direction:  model.Debit,
			},
			{
				AccountID: intent.SourceAccountID,
				Amount:    -intent.Amount,
				Direction: model.Credit,
			},
		}
	case model.TxTransfer:
		splits = []model.Split{
			{
				AccountID: *intent.DestinationAccountID,
				Amount:    intent.Amount,
				Direction: model.Debit,
			},
			{
				AccountID: intent.SourceAccountID,
				Amount:    -intent.Amount,
				Direction: model.Credit,
			},
		}
	}

	return Plan{
		Splits: splits,
		Deltas: Deltas(intent),
	}, nil
}

// ValidateSplitsBalance validates that all splits sum to zero (double-entry principle)
func ValidateSplitsBalance(splits []model.Split) error {
	var total int64
	for _, split := range splits {
		total += split.Amount
	}

	if total != 0 {
		return fmt.Errorf("splits do not balance: total is %d minor units, must be 0", total)
	}
	return nil
}

// IntentFromSplits reconstructs the intent a stored transaction was built
// from. It is the inverse of BuildSplits for every split set BuildSplits
// produces.
func IntentFromSplits(tx model.Transaction, splits []model.Split) (model.Intent, error) {
	debit, credit, err := legs(splits)
	if err != nil {
		return model.Intent{}, fmt.Errorf("transaction %d: %w", tx.ID, err)
	}

	intent := model.Intent{
		BookID:       tx.BookID,
		Type:         tx.Type,
		Amount:       debit.Amount,
		Description:  tx.Description,
		Date:         tx.Date,
		Counterparty: tx.Counterparty,
	}

	switch tx.Type {
	case model.TxIncome, model.TxExpense:
		intent.SourceAccountID = debit.AccountID
		intent.CategoryID = debit.CategoryID
	case model.TxTransfer:
		dest := debit.AccountID
		intent.SourceAccountID = credit.AccountID
		intent.DestinationAccountID = &dest
	default:
		return model.Intent{}, fmt.Errorf("transaction %d: unknown type %q", tx.ID, tx.Type)
	}

	return intent, nil
}

// legs returns the DEBIT and CREDIT leg of a two-leg split set.
func legs(splits []model.Split) (debit, credit model.Split, err error) {
	if len(splits) != 2 {
		return debit, credit, fmt.Errorf("expected 2 splits, got %d", len(splits))
	}

	var haveDebit, haveCredit bool
	for _, s := range splits {
		switch s.Direction {
		case model.Debit:
			debit, haveDebit = s, true
		case model.Credit:
			credit, haveCredit = s, true
		}
	}
	if !haveDebit || !haveCredit {
		return debit, credit, fmt.Errorf("split set needs one DEBIT and one CREDIT leg")
	}
	return debit, credit, nil
}

func invalid(field, reason string) error {
	return &model.IntentError{Index: -1, Field: field, Reason: reason}
}
