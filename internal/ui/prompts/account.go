package prompts

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/validation"
)

// PromptAccountKind prompts for account kind selection
func PromptAccountKind() (model.AccountKind, error) {
	kind, err := PromptSelect("Account kind:", []huh.Option[model.AccountKind]{
		huh.NewOption("Asset (cash, bank, wallet)", model.KindAsset),
		huh.NewOption("Liability (credit card, loan)", model.KindLiability),
		huh.NewOption("Equity (Advanced)", model.KindEquity),
	}, model.KindAsset)
	if err != nil {
		return "", fmt.Errorf("input cancelled: %w", err)
	}
	return kind, nil
}

// PromptAccountName prompts for account name with validation
func PromptAccountName() (string, error) {
	return PromptInput("Account Name:", "", validation.ValidateAccountName)
}

// PromptOpeningBalance prompts for an optional opening balance as a decimal.
func PromptOpeningBalance(code string) (string, error) {
	return PromptInput(fmt.Sprintf("Opening balance in %s (press Enter for 0):", code), "0", nil)
}

// PromptCategoryKind prompts for category kind selection
func PromptCategoryKind() (model.CategoryKind, error) {
	return PromptSelect("Category kind:", []huh.Option[model.CategoryKind]{
		huh.NewOption("Expense", model.CategoryExpense),
		huh.NewOption("Income", model.CategoryIncome),
	}, model.CategoryExpense)
}
