package prompts

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/hance08/ledger/internal/currency"
)

// PromptDescription prompts for a description text
// Can be used for transactions, accounts, or any other entity
func PromptDescription(message string, required bool) (string, error) {
	var desc string

	input := huh.NewInput().
		Title(message).
		Value(&desc)

	if required {
		input.Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("description is required")
			}
			return nil
		})
	}

	err := input.Run()
	return strings.TrimSpace(desc), err
}

// PromptAmount prompts for a positive decimal amount in the given currency
// and returns it in minor units.
func PromptAmount(message, code string) (int64, error) {
	var raw string

	err := huh.NewInput().
		Title(message).
		Description(fmt.Sprintf("Amount in %s, e.g. 150 or 150.50", code)).
		Value(&raw).
		Validate(func(s string) error {
			minor, err := currency.ParseMinor(s, code)
			if err != nil {
				return err
			}
			if minor <= 0 {
				return fmt.Errorf("amount must be positive")
			}
			return nil
		}).
		Run()
	if err != nil {
		return 0, err
	}

	return currency.ParseMinor(raw, code)
}

// PromptConfirm prompts for yes/no confirmation
func PromptConfirm(message string, defaultValue bool) (bool, error) {
	confirm := defaultValue

	err := huh.NewConfirm().
		Title(message).
		Affirmative("Yes").
		Negative("No").
		Value(&confirm).
		Run()

	return confirm, err
}

// PromptDate prompts for a date in YYYY-MM-DD format
func PromptDate(message string, defaultDate string, helpText string) (string, error) {
	var date string

	// huh has no date picker, the placeholder shows the default
	err := huh.NewInput().
		Title(message).
		Description(helpText).
		Placeholder(defaultDate).
		Value(&date).
		Run()

	if err != nil {
		return "", err
	}

	if date == "" {
		return defaultDate, nil
	}
	return date, nil
}

// PromptInput prompts for a generic text input with optional default and validator
func PromptInput(message string, defaultValue string, validator func(string) error) (string, error) {
	var inputVal string

	input := huh.NewInput().
		Title(message).
		Value(&inputVal)

	if defaultValue != "" {
		input.Placeholder(defaultValue)
	}

	if validator != nil {
		input.Validate(func(s string) error {
			if s == "" && defaultValue != "" {
				return nil
			}
			return validator(s)
		})
	}

	err := input.Run()
	if err != nil {
		return "", err
	}

	if inputVal == "" && defaultValue != "" {
		return defaultValue, nil
	}

	return strings.TrimSpace(inputVal), nil
}

// PromptSelect prompts for one of options, preselecting def.
func PromptSelect[T comparable](message string, options []huh.Option[T], def T) (T, error) {
	selected := def

	err := huh.NewSelect[T]().
		Title(message).
		Options(options...).
		Value(&selected).
		Height(min(len(options)+2, 15)).
		Run()

	return selected, err
}
