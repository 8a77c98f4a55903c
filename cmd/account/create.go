package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/ledger/cmd/cmdutil"
	"github.com/hance08/ledger/internal/currency"
	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/service"
	"github.com/hance08/ledger/internal/ui"
	"github.com/hance08/ledger/internal/ui/prompts"
	"github.com/hance08/ledger/internal/ui/views"
	"github.com/hance08/ledger/internal/validation"
)

type createFlags struct {
	Name    string
	Kind    string
	Balance string
}

// AccountCreator collects the fields of a new account and saves it.
type AccountCreator struct {
	svc  *service.Service
	book *model.Book

	name    string
	kind    model.AccountKind
	opening int64
}

func NewCreateCmd(svc *service.Service) *cobra.Command {
	flags := &createFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new account.",
		Long: `Create an account in the current book. Asset and liability accounts can
start with an opening balance, recorded as a transfer against
Equity:OpeningBalances.`,
		Example: `  ledger account create --name Checking --kind asset --opening 1500
  ledger account create --name Visa --kind liability --opening 320.75`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			book, err := cmdutil.CurrentBook(ctx, svc)
			if err != nil {
				return err
			}

			creator := &AccountCreator{svc: svc, book: book}

			hasFlags := cmd.Flags().Changed("name") || cmd.Flags().Changed("kind")
			if hasFlags {
				return creator.FlagsMode(ctx, flags)
			}
			return creator.InteractiveMode(ctx)
		},
	}

	cmd.Flags().StringVarP(&flags.Name, "name", "n", "", "Account name")
	cmd.Flags().StringVarP(&flags.Kind, "kind", "k", "", "Account kind: asset, liability or equity")
	cmd.Flags().StringVar(&flags.Balance, "opening", "", "Opening balance (assets and liabilities only)")

	return cmd
}

// FlagsMode builds an account from command-line flags
func (ac *AccountCreator) FlagsMode(ctx context.Context, flags *createFlags) error {
	if flags.Name == "" || flags.Kind == "" {
		return fmt.Errorf("when using flags, --name and --kind are both required")
	}

	if err := validation.ValidateAccountName(flags.Name); err != nil {
		return fmt.Errorf("invalid account name: %w", err)
	}
	kind := strings.ToUpper(strings.TrimSpace(flags.Kind))
	if err := validation.ValidateAccountKind(kind); err != nil {
		return err
	}

	exists, err := ac.svc.Account.CheckAccountExists(ctx, ac.book.ID, flags.Name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("account '%s' already exists in book '%s'", flags.Name, ac.book.Name)
	}

	ac.name = flags.Name
	ac.kind = model.AccountKind(kind)

	if err := ac.setOpening(flags.Balance); err != nil {
		return err
	}

	ac.displaySummary()
	return ac.Save(ctx)
}

// InteractiveMode builds an account through interactive prompts
func (ac *AccountCreator) InteractiveMode(ctx context.Context) error {
	kind, err := prompts.PromptAccountKind()
	if err != nil {
		return err
	}
	ac.kind = kind

	if ac.name, err = prompts.PromptAccountName(); err != nil {
		return err
	}

	if kind == model.KindAsset || kind == model.KindLiability {
		raw, err := prompts.PromptOpeningBalance(ac.book.Currency)
		if err != nil {
			return err
		}
		if err := ac.setOpening(raw); err != nil {
			return err
		}
	}

	ac.displaySummary()

	confirm, err := prompts.PromptConfirm("Proceed with account creation?", true)
	if err != nil {
		return err
	}
	if !confirm {
		return fmt.Errorf("account creation cancelled")
	}

	return ac.Save(ctx)
}

func (ac *AccountCreator) setOpening(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "0" {
		return nil
	}
	minor, err := currency.ParseMinor(raw, ac.book.Currency)
	if err != nil {
		return fmt.Errorf("invalid opening balance: %w", err)
	}
	if minor < 0 {
		return fmt.Errorf("opening balance can't be negative")
	}
	ac.opening = minor
	return nil
}

func (ac *AccountCreator) displaySummary() {
	ui.Separator()

	tableData := pterm.TableData{
		{pterm.Blue("Book"), ac.book.Name},
		{pterm.Blue("Name"), ac.name},
		{pterm.Blue("Kind"), ui.KindColor(ac.kind, string(ac.kind))},
		{pterm.Blue("Opening"), currency.FormatMinor(ac.opening, ac.book.Currency) + " " + ac.book.Currency},
	}

	_ = pterm.DefaultTable.WithData(tableData).Render()
}

// Save persists the account and its opening balance in one step.
func (ac *AccountCreator) Save(ctx context.Context) error {
	acc, err := ac.svc.CreateAccountWithBalance(ctx, ac.book.ID, ac.name, ac.kind, ac.opening, cmdutil.User(ac.svc))
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return views.RenderAccountSuccess(acc, ac.book.Currency)
}
