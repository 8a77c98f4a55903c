package prompts

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/hance08/ledger/internal/constants"
	"github.com/hance08/ledger/internal/currency"
	"github.com/hance08/ledger/internal/model"
)

// PromptTransactionType prompts for transaction type selection
func PromptTransactionType() (model.TxType, error) {
	return PromptSelect("Choose the transaction type:", []huh.Option[model.TxType]{
		huh.NewOption("Record Expense", model.TxExpense),
		huh.NewOption("Record Income", model.TxIncome),
		huh.NewOption("Transfer", model.TxTransfer),
	}, model.TxExpense)
}

// PromptTransactionDate prompts for transaction date
func PromptTransactionDate() (time.Time, error) {
	for {
		raw, err := PromptDate(
			"Transaction Date (YYYY-MM-DD):",
			time.Now().Format(constants.DateFormat),
			"Press Enter for today",
		)
		if err != nil {
			return time.Time{}, err
		}

		date, err := time.Parse(constants.DateFormat, raw)
		if err == nil {
			return date, nil
		}
		fmt.Printf("invalid date %q, expected %s\n", raw, constants.DateFormat)
	}
}

// PromptAccountSelection prompts for one of the active accounts, skipping
// the excluded id. Balances are shown next to the names.
func PromptAccountSelection(accounts []*model.Account, message, code string, exclude int64) (int64, error) {
	var opts []huh.Option[int64]
	for _, acc := range accounts {
		if acc.Archived || acc.ID == exclude {
			continue
		}
		label := fmt.Sprintf("%s (Balance: %s %s)", acc.Name, currency.FormatMinor(acc.Balance, code), code)
		opts = append(opts, huh.NewOption(label, acc.ID))
	}

	if len(opts) == 0 {
		return 0, fmt.Errorf("no available accounts, create one with 'ledger account create'")
	}

	return PromptSelect(message, opts, opts[0].Value)
}

// PromptCategorySelection prompts for an optional category of the given
// kind. It returns nil when the user picks "Uncategorized".
func PromptCategorySelection(categories []*model.Category, kind model.CategoryKind) (*int64, error) {
	opts := []huh.Option[int64]{huh.NewOption("Uncategorized", int64(0))}
	for _, c := range categories {
		if c.Kind == kind {
			opts = append(opts, huh.NewOption(c.Name, c.ID))
		}
	}
	if len(opts) == 1 {
		return nil, nil
	}

	id, err := PromptSelect("Category:", opts, 0)
	if err != nil || id == 0 {
		return nil, err
	}
	return &id, nil
}
