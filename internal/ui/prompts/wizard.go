package prompts

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/hance08/ledger/internal/validation"
)

// PromptNewBook asks for the name and currency of a book. It runs on first
// use, when no book exists yet.
func PromptNewBook(currDefault string) (string, string, error) {
	name := "Personal"
	selection := currDefault
	var custom string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to ledger!").
				Description("No book exists yet. A book holds its own accounts, categories and transactions."),
			huh.NewInput().
				Title("Book name:").
				Value(&name).
				Validate(validation.ValidateBookName),
			huh.NewSelect[string]().
				Title("Book currency:").
				Options(
					huh.NewOption("USD", "USD"),
					huh.NewOption("EUR", "EUR"),
					huh.NewOption("GBP", "GBP"),
					huh.NewOption("JPY", "JPY"),
					huh.NewOption("TWD", "TWD"),
					huh.NewOption("Other", "Other"),
				).
				Value(&selection),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Please enter the currency code:").
				Description("Please use the ISO 4217 standard 3-letter currency code.").
				Value(&custom).
				Validate(validation.ValidateCurrency),
		).WithHideFunc(func() bool { return selection != "Other" }),
	)

	if err := form.Run(); err != nil {
		return "", "", err
	}

	if selection == "Other" {
		selection = custom
	}
	return strings.TrimSpace(name), strings.ToUpper(strings.TrimSpace(selection)), nil
}
