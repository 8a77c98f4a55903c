package account

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/ledger/cmd/cmdutil"
	"github.com/hance08/ledger/internal/service"
	"github.com/hance08/ledger/internal/ui"
)

func NewDeleteCmd(svc *service.Service) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <account>",
		Short: "Delete an unused account",
		Long: `Delete an account by name or ID. Only accounts with a zero balance and
no recorded transactions can be deleted; archive the others instead.`,
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

			if !yes {
				ok, err := ui.ConfirmDestructive("Delete account '" + acc.Name + "'?")
				if err != nil {
					return err
				}
				if !ok {
					pterm.Info.Println("Deletion cancelled")
					return nil
				}
			}

			if err := svc.Account.DeleteAccount(ctx, book.ID, acc.ID); err != nil {
				return err
			}
			pterm.Success.Printf("Account '%s' deleted\n", acc.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
