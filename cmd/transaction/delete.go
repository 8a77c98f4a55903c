package transaction

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/ledger/cmd/cmdutil"
	"github.com/hance08/ledger/internal/service"
	"github.com/hance08/ledger/internal/ui"
	"github.com/hance08/ledger/internal/ui/views"
)

type deleteRunner struct {
	svc *service.Service
	yes bool
}

func NewDeleteCmd(svc *service.Service) *cobra.Command {
	runner := &deleteRunner{svc: svc}

	cmd := &cobra.Command{
		Use:   "delete <transaction-id>",
		Short: "Delete a transaction",
		Long: `Delete a transaction and all its splits. The balances of the affected
accounts are restored. This action cannot be undone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner.Run(cmd.Context(), args[0])
		},
	}

	cmd.Flags().BoolVarP(&runner.yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func (r *deleteRunner) Run(ctx context.Context, arg string) error {
	txID, err := cmdutil.ParseID(arg, "transaction")
	if err != nil {
		return err
	}

	book, err := cmdutil.CurrentBook(ctx, r.svc)
	if err != nil {
		return err
	}

	// Get transaction details first to show what will be deleted
	detail, err := r.svc.Transaction.GetTransaction(ctx, book.ID, txID)
	if err != nil {
		return err
	}

	lookup, err := cmdutil.Lookup(ctx, r.svc, book)
	if err != nil {
		return err
	}

	if !r.yes {
		if err := views.RenderTransactionDeletePreview(detail, lookup); err != nil {
			return err
		}

		ok, err := ui.ConfirmDestructive("Do you want to delete this transaction?")
		if err != nil {
			return err
		}
		if !ok {
			pterm.Info.Println("Deletion cancelled")
			return nil
		}
	}

	if err := r.svc.Transaction.DeleteTransaction(ctx, book.ID, txID); err != nil {
		return err
	}

	views.RenderTransactionDeleteSuccess(txID)
	return nil
}
