package account

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/ledger/cmd/cmdutil"
	"github.com/hance08/ledger/internal/service"
)

func NewArchiveCmd(svc *service.Service) *cobra.Command {
	var restore bool

	cmd := &cobra.Command{
		Use:   "archive <account>",
		Short: "Archive an account so it can no longer be posted to",
		Long: `Archive an account by name or ID. Archived accounts keep their history
and balance but are rejected by new transactions. Use --restore to undo.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			book, err := cmdutil.CurrentBook(ctx, svc)
			if err != nil {
				return err
			}

			acc, err := cmdutil.ResolveAccount(ctx, svc, book.ID, args[0])
			if err != nil {
				return err
			}

			if err := svc.Account.ArchiveAccount(ctx, book.ID, acc.ID, !restore); err != nil {
				return err
			}

			if restore {
				pterm.Success.Printf("Account '%s' restored\n", acc.Name)
			} else {
				pterm.Success.Printf("Account '%s' archived\n", acc.Name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&restore, "restore", false, "Unarchive the account")

	return cmd
}
