package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/ledger/cmd/cmdutil"
	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/service"
	"github.com/hance08/ledger/internal/ui/views"
)

type listFlags struct {
	Kind         string
	ShowArchived bool
}

type ListCommandRunner struct {
	svc   *service.Service
	flags *listFlags
}

func NewListCmd(svc *service.Service) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all accounts with their balances",
		Long: `List the accounts of the current book with their current balances.
You can filter by account kind or include archived accounts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &ListCommandRunner{
				svc:   svc,
				flags: flags,
			}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&flags.Kind, "kind", "k", "", "Filter accounts by kind (asset, liability, equity)")
	cmd.Flags().BoolVar(&flags.ShowArchived, "archived", false, "Include archived accounts")

	return cmd
}

func (r *ListCommandRunner) Run(ctx context.Context) error {
	book, err := cmdutil.CurrentBook(ctx, r.svc)
	if err != nil {
		return err
	}

	accounts, err := r.svc.Account.ListAccounts(ctx, book.ID, r.flags.ShowArchived)
	if err != nil {
		return fmt.Errorf("failed to get accounts: %w", err)
	}

	if r.flags.Kind != "" {
		kind := model.AccountKind(strings.ToUpper(r.flags.Kind))
		if !kind.Valid() {
			return fmt.Errorf("invalid account kind %q", r.flags.Kind)
		}
		filtered := accounts[:0]
		for _, acc := range accounts {
			if acc.Kind == kind {
				filtered = append(filtered, acc)
			}
		}
		accounts = filtered
	}

	if len(accounts) == 0 {
		pterm.Warning.Println("No accounts found")
		return nil
	}

	return views.NewAccountListView(book.Currency).Render(accounts)
}
