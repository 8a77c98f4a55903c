package transaction

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hance08/ledger/cmd/cmdutil"
	"github.com/hance08/ledger/internal/service"
	"github.com/hance08/ledger/internal/ui/views"
)

type ShowCommandRunner struct {
	svc *service.Service
}

func NewShowCmd(svc *service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "show <transaction-id>",
		Short: "Show transaction details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &ShowCommandRunner{
				svc: svc,
			}
			return runner.Run(cmd.Context(), args)
		},
	}
}

func (r *ShowCommandRunner) Run(ctx context.Context, args []string) error {
	txID, err := cmdutil.ParseID(args[0], "transaction")
	if err != nil {
		return err
	}

	book, err := cmdutil.CurrentBook(ctx, r.svc)
	if err != nil {
		return err
	}

	detail, err := r.svc.Transaction.GetTransaction(ctx, book.ID, txID)
	if err != nil {
		return err
	}

	lookup, err := cmdutil.Lookup(ctx, r.svc, book)
	if err != nil {
		return err
	}
	return views.RenderTransactionDetail(detail, lookup)
}
