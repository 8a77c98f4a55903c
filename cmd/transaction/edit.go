package transaction

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/ledger/cmd/cmdutil"
	"github.com/hance08/ledger/internal/currency"
	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/service"
	"github.com/hance08/ledger/internal/ui/prompts"
	"github.com/hance08/ledger/internal/ui/views"
)

type editFlags struct {
	Type              string
	Amount            string
	Account           string
	To                string
	ClearTo           bool
	Category          string
	ClearCategory     bool
	Desc              string
	Date              string
	Counterparty      string
	ClearCounterparty bool
}

type EditCommandRunner struct {
	svc   *service.Service
	flags *editFlags
	cmd   *cobra.Command
	book  *model.Book
}

func NewEditCmd(svc *service.Service) *cobra.Command {
	flags := &editFlags{}

	cmd := &cobra.Command{
		Use:   "edit <transaction-id>",
		Short: "Edit a transaction",
		Long: `Change fields of a transaction. Fields not given keep their stored value;
the splits and account balances are recomputed from the result.
Without flags an interactive menu is shown.`,
		Example: `  ledger transaction edit 12 --amount 18.40
  ledger transaction edit 12 --type transfer --to Savings --clear-category`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &EditCommandRunner{
				svc:   svc,
				flags: flags,
				cmd:   cmd,
			}
			return runner.Run(cmd.Context(), args)
		},
	}

	cmd.Flags().StringVarP(&flags.Type, "type", "t", "", "New type: income, expense or transfer")
	cmd.Flags().StringVarP(&flags.Amount, "amount", "a", "", "New amount")
	cmd.Flags().StringVar(&flags.Account, "account", "", "New account (source of a transfer)")
	cmd.Flags().StringVar(&flags.To, "to", "", "New destination account")
	cmd.Flags().BoolVar(&flags.ClearTo, "clear-to", false, "Remove the destination account")
	cmd.Flags().StringVar(&flags.Category, "category", "", "New category")
	cmd.Flags().BoolVar(&flags.ClearCategory, "clear-category", false, "Remove the category")
	cmd.Flags().StringVarP(&flags.Desc, "desc", "d", "", "New description")
	cmd.Flags().StringVar(&flags.Date, "date", "", "New date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.Counterparty, "counterparty", "", "New counterparty")
	cmd.Flags().BoolVar(&flags.ClearCounterparty, "clear-counterparty", false, "Remove the counterparty")

	return cmd
}

func (r *EditCommandRunner) Run(ctx context.Context, args []string) error {
	txID, err := cmdutil.ParseID(args[0], "transaction")
	if err != nil {
		return err
	}

	if r.book, err = cmdutil.CurrentBook(ctx, r.svc); err != nil {
		return err
	}

	detail, err := r.svc.Transaction.GetTransaction(ctx, r.book.ID, txID)
	if err != nil {
		return err
	}

	lookup, err := cmdutil.Lookup(ctx, r.svc, r.book)
	if err != nil {
		return err
	}

	var patch model.TransactionPatch
	if r.hasFlags() {
		patch, err = r.flagsPatch(ctx)
	} else {
		pterm.DefaultSection.Printf("Editing Transaction #%d", txID)
		if err := views.RenderTransactionDetail(detail, lookup); err != nil {
			return err
		}
		var save bool
		patch, save, err = r.interactivePatch(ctx, detail)
		if err == nil && !save {
			pterm.Info.Println("Changes discarded")
			return nil
		}
	}
	if err != nil {
		return err
	}

	updated, err := r.svc.Transaction.PatchTransaction(ctx, r.book.ID, txID, patch, cmdutil.User(r.svc))
	if err != nil {
		return err
	}

	pterm.Success.Printf("Transaction #%d updated\n", txID)

	// names may have changed
	if lookup, err = cmdutil.Lookup(ctx, r.svc, r.book); err != nil {
		return err
	}
	return views.RenderTransactionSummary(updated, lookup)
}

func (r *EditCommandRunner) hasFlags() bool {
	for _, name := range []string{
		"type", "amount", "account", "to", "clear-to", "category",
		"clear-category", "desc", "date", "counterparty", "clear-counterparty",
	} {
		if r.cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func (r *EditCommandRunner) flagsPatch(ctx context.Context) (model.TransactionPatch, error) {
	var patch model.TransactionPatch
	f := r.flags
	changed := r.cmd.Flags().Changed

	if changed("type") {
		t, err := cmdutil.ParseTxType(f.Type)
		if err != nil {
			return patch, err
		}
		patch.Type = &t
	}

	if changed("amount") {
		amount, err := currency.ParseMinor(f.Amount, r.book.Currency)
		if err != nil {
			return patch, fmt.Errorf("invalid amount: %w", err)
		}
		patch.Amount = &amount
	}

	if changed("account") {
		acc, err := cmdutil.ResolveAccount(ctx, r.svc, r.book.ID, f.Account)
		if err != nil {
			return patch, err
		}
		patch.SourceAccountID = &acc.ID
	}

	if changed("to") {
		acc, err := cmdutil.ResolveAccount(ctx, r.svc, r.book.ID, f.To)
		if err != nil {
			return patch, err
		}
		patch.DestinationAccountID = &acc.ID
	}
	patch.ClearDestination = f.ClearTo

	if changed("category") {
		cat, err := cmdutil.ResolveCategory(ctx, r.svc, r.book.ID, f.Category)
		if err != nil {
			return patch, err
		}
		patch.CategoryID = &cat.ID
	}
	patch.ClearCategory = f.ClearCategory

	if changed("desc") {
		patch.Description = &f.Desc
	}

	if changed("date") {
		date, err := cmdutil.ParseDate(f.Date)
		if err != nil {
			return patch, err
		}
		patch.Date = &date
	}

	if changed("counterparty") {
		patch.Counterparty = &f.Counterparty
	}
	patch.ClearCounterparty = f.ClearCounterparty

	return patch, nil
}

const (
	editDescription = "Description"
	editDate        = "Date"
	editAmount      = "Amount"
	editCategory    = "Category"
	editSave        = "Save & Exit"
	editCancel      = "Cancel (discard changes)"
)

// interactivePatch runs the edit menu until the user saves or cancels.
func (r *EditCommandRunner) interactivePatch(ctx context.Context, detail *model.TransactionDetail) (model.TransactionPatch, bool, error) {
	var patch model.TransactionPatch

	options := []huh.Option[string]{
		huh.NewOption(editDescription, editDescription),
		huh.NewOption(editDate, editDate),
		huh.NewOption(editAmount, editAmount),
	}
	if detail.Type != model.TxTransfer {
		options = append(options, huh.NewOption(editCategory, editCategory))
	}
	options = append(options,
		huh.NewOption(editSave, editSave),
		huh.NewOption(editCancel, editCancel),
	)

	for {
		choice, err := prompts.PromptSelect("What do you want to change?", options, editSave)
		if err != nil {
			return patch, false, err
		}

		switch choice {
		case editDescription:
			desc, err := prompts.PromptInput("New description:", detail.Description, nil)
			if err != nil {
				return patch, false, err
			}
			patch.Description = &desc

		case editDate:
			date, err := prompts.PromptTransactionDate()
			if err != nil {
				return patch, false, err
			}
			patch.Date = &date

		case editAmount:
			amount, err := prompts.PromptAmount("New amount:", r.book.Currency)
			if err != nil {
				return patch, false, err
			}
			patch.Amount = &amount

		case editCategory:
			categories, err := r.svc.Category.ListCategories(ctx, r.book.ID)
			if err != nil {
				return patch, false, err
			}
			id, err := prompts.PromptCategorySelection(categories, model.CategoryKind(detail.Type))
			if err != nil {
				return patch, false, err
			}
			patch.CategoryID = id
			patch.ClearCategory = id == nil

		case editSave:
			return patch, true, nil

		case editCancel:
			return patch, false, nil
		}
	}
}
