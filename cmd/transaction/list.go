package transaction

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/ledger/cmd/cmdutil"
	"github.com/hance08/ledger/internal/constants"
	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/service"
	"github.com/hance08/ledger/internal/ui/views"
)

type listFlags struct {
	Account string
	Type    string
	Since   string
	Until   string
	Limit   int
	Offset  int
}

type listRunner struct {
	svc   *service.Service
	flags *listFlags
}

func NewListCmd(svc *service.Service) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "List recent transactions",
		Long: `List transactions of the current book, newest first.

The table shows date, type, account, category, description and amount.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &listRunner{
				svc:   svc,
				flags: flags,
			}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&flags.Account, "account", "a", "", "Filter transactions by account name or ID")
	cmd.Flags().StringVarP(&flags.Type, "type", "t", "", "Filter by type: income, expense or transfer")
	cmd.Flags().StringVar(&flags.Since, "since", "", "Only transactions on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.Until, "until", "", "Only transactions on or before this date (YYYY-MM-DD)")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 20, "Maximum number of transactions to display")
	cmd.Flags().IntVar(&flags.Offset, "offset", 0, "Number of transactions to skip")

	return cmd
}

func (r *listRunner) Run(ctx context.Context) error {
	book, err := cmdutil.CurrentBook(ctx, r.svc)
	if err != nil {
		return err
	}

	filter, err := r.filter(ctx, book.ID)
	if err != nil {
		return err
	}

	details, err := r.svc.Transaction.ListTransactions(ctx, book.ID, filter)
	if err != nil {
		return fmt.Errorf("failed to get transactions: %w", err)
	}

	if r.flags.Account != "" {
		pterm.Info.Printf("Showing transactions for account: %s\n\n", r.flags.Account)
	}

	lookup, err := cmdutil.Lookup(ctx, r.svc, book)
	if err != nil {
		return err
	}
	return views.NewTransactionListView(lookup).Render(details, filter.Limit)
}

func (r *listRunner) filter(ctx context.Context, bookID string) (model.TransactionFilter, error) {
	filter := model.TransactionFilter{
		Limit:  min(r.flags.Limit, constants.MaxListLimit),
		Offset: r.flags.Offset,
	}

	if r.flags.Account != "" {
		acc, err := cmdutil.ResolveAccount(ctx, r.svc, bookID, r.flags.Account)
		if err != nil {
			return filter, err
		}
		filter.AccountID = &acc.ID
	}

	if r.flags.Type != "" {
		t, err := cmdutil.ParseTxType(r.flags.Type)
		if err != nil {
			return filter, err
		}
		filter.Type = &t
	}

	if r.flags.Since != "" {
		from, err := cmdutil.ParseDate(r.flags.Since)
		if err != nil {
			return filter, err
		}
		filter.From = &from
	}

	if r.flags.Until != "" {
		to, err := cmdutil.ParseDate(r.flags.Until)
		if err != nil {
			return filter, err
		}
		to = model.EndOfDay(to)
		filter.To = &to
	}

	return filter, nil
}
