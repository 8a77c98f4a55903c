package cmd

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/ledger/cmd/cmdutil"
	"github.com/hance08/ledger/internal/currency"
	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/service"
	"github.com/hance08/ledger/internal/ui/prompts"
	"github.com/hance08/ledger/internal/ui/views"
)

type addFlags struct {
	Type         string
	Amount       string
	Account      string
	To           string
	Category     string
	Desc         string
	Date         string
	Counterparty string
}

type addRunner struct {
	svc   *service.Service
	flags *addFlags
	cmd   *cobra.Command
	book  *model.Book
}

func NewAddCmd(svc *service.Service) *cobra.Command {
	flags := &addFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new transaction",
		Long: `Add a new transaction to the current book.

An expense or income posts against a single account; a transfer moves money
from --account to --to. Without flags an interactive form is shown.`,
		Example: `  # Interactive mode
  ledger add

  # Quick mode with flags
  ledger add --type expense --amount 12.50 --account Checking --category Food --desc "Lunch"
  ledger add --type transfer --amount 200 --account Checking --to Savings`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &addRunner{
				svc:   svc,
				flags: flags,
				cmd:   cmd,
			}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&flags.Type, "type", "t", "", "Transaction type: income, expense or transfer")
	cmd.Flags().StringVarP(&flags.Amount, "amount", "a", "", "Amount (e.g., 150 or 150.50)")
	cmd.Flags().StringVar(&flags.Account, "account", "", "Account name or ID (source of a transfer)")
	cmd.Flags().StringVar(&flags.To, "to", "", "Destination account of a transfer")
	cmd.Flags().StringVar(&flags.Category, "category", "", "Category name or ID (income/expense only)")
	cmd.Flags().StringVarP(&flags.Desc, "desc", "d", "", "Transaction description")
	cmd.Flags().StringVar(&flags.Date, "date", "", "Transaction date (YYYY-MM-DD), default is today")
	cmd.Flags().StringVar(&flags.Counterparty, "counterparty", "", "Who the money came from or went to")

	return cmd
}

func (r *addRunner) Run(ctx context.Context) error {
	book, err := cmdutil.CurrentBook(ctx, r.svc)
	if err != nil {
		return err
	}
	r.book = book

	var intent model.Intent
	// Check if using flag mode or interactive mode
	hasFlags := r.cmd.Flags().Changed("type") || r.cmd.Flags().Changed("amount") ||
		r.cmd.Flags().Changed("account") || r.cmd.Flags().Changed("to")

	if hasFlags {
		intent, err = r.flagsMode(ctx)
	} else {
		intent, err = r.interactiveMode(ctx)
	}
	if err != nil {
		return err
	}

	detail, err := r.svc.Transaction.CreateTransaction(ctx, intent, cmdutil.User(r.svc))
	if err != nil {
		return err
	}

	pterm.Success.Printf("Transaction created successfully! (ID: %d)\n", detail.ID)

	lookup, err := cmdutil.Lookup(ctx, r.svc, book)
	if err != nil {
		return err
	}
	return views.RenderTransactionSummary(detail, lookup)
}

func (r *addRunner) flagsMode(ctx context.Context) (model.Intent, error) {
	if r.flags.Type == "" || r.flags.Amount == "" || r.flags.Account == "" {
		return model.Intent{}, fmt.Errorf("when using flags, --type, --amount and --account are all required")
	}

	txType, err := cmdutil.ParseTxType(r.flags.Type)
	if err != nil {
		return model.Intent{}, err
	}

	amount, err := currency.ParseMinor(r.flags.Amount, r.book.Currency)
	if err != nil {
		return model.Intent{}, fmt.Errorf("invalid amount: %w", err)
	}

	source, err := cmdutil.ResolveAccount(ctx, r.svc, r.book.ID, r.flags.Account)
	if err != nil {
		return model.Intent{}, err
	}

	intent := model.Intent{
		BookID:          r.book.ID,
		Type:            txType,
		Amount:          amount,
		SourceAccountID: source.ID,
		Description:     r.flags.Desc,
	}

	if r.flags.To != "" {
		dest, err := cmdutil.ResolveAccount(ctx, r.svc, r.book.ID, r.flags.To)
		if err != nil {
			return model.Intent{}, err
		}
		intent.DestinationAccountID = &dest.ID
	}

	if r.flags.Category != "" {
		cat, err := cmdutil.ResolveCategory(ctx, r.svc, r.book.ID, r.flags.Category)
		if err != nil {
			return model.Intent{}, err
		}
		intent.CategoryID = &cat.ID
	}

	if r.flags.Date != "" {
		date, err := cmdutil.ParseDate(r.flags.Date)
		if err != nil {
			return model.Intent{}, err
		}
		intent.Date = date
	}

	if r.flags.Counterparty != "" {
		cp := r.flags.Counterparty
		intent.Counterparty = &cp
	}

	return intent, nil
}

func (r *addRunner) interactiveMode(ctx context.Context) (model.Intent, error) {
	accounts, err := r.svc.Account.ListAccounts(ctx, r.book.ID, false)
	if err != nil {
		return model.Intent{}, err
	}

	txType, err := prompts.PromptTransactionType()
	if err != nil {
		return model.Intent{}, err
	}

	intent := model.Intent{BookID: r.book.ID, Type: txType}

	sourceMsg := "Account:"
	if txType == model.TxTransfer {
		sourceMsg = "From account:"
	}
	if intent.SourceAccountID, err = prompts.PromptAccountSelection(accounts, sourceMsg, r.book.Currency, 0); err != nil {
		return model.Intent{}, err
	}

	if txType == model.TxTransfer {
		dest, err := prompts.PromptAccountSelection(accounts, "To account:", r.book.Currency, intent.SourceAccountID)
		if err != nil {
			return model.Intent{}, err
		}
		intent.DestinationAccountID = &dest
	} else {
		categories, err := r.svc.Category.ListCategories(ctx, r.book.ID)
		if err != nil {
			return model.Intent{}, err
		}
		if intent.CategoryID, err = prompts.PromptCategorySelection(categories, model.CategoryKind(txType)); err != nil {
			return model.Intent{}, err
		}
	}

	if intent.Amount, err = prompts.PromptAmount("Amount:", r.book.Currency); err != nil {
		return model.Intent{}, err
	}

	if intent.Description, err = prompts.PromptDescription("Description:", false); err != nil {
		return model.Intent{}, err
	}

	if intent.Date, err = prompts.PromptTransactionDate(); err != nil {
		return model.Intent{}, err
	}

	ok, err := prompts.PromptConfirm("Save this transaction?", true)
	if err != nil {
		return model.Intent{}, err
	}
	if !ok {
		return model.Intent{}, fmt.Errorf("transaction cancelled")
	}

	return intent, nil
}
