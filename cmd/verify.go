package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/ledger/cmd/cmdutil"
	"github.com/hance08/ledger/internal/service"
	"github.com/hance08/ledger/internal/ui/views"
)

func NewVerifyCmd(svc *service.Service) *cobra.Command {
	var repair bool

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check stored balances against the recorded transactions",
		Long: `Replay every transaction of the current book and compare the result with
the stored account balances. With --repair the stored balances are corrected.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			book, err := cmdutil.CurrentBook(ctx, svc)
			if err != nil {
				return err
			}

			drifts, err := svc.Transaction.VerifyBalances(ctx, book.ID)
			if err != nil {
				return err
			}
			if len(drifts) == 0 {
				pterm.Success.Println("All balances are consistent")
				return nil
			}

			pterm.Warning.Printf("%d account balances drifted\n", len(drifts))
			if err := views.RenderDrifts(drifts, book.Currency); err != nil {
				return err
			}

			if !repair {
				pterm.Info.Println("Run with --repair to correct them")
				return nil
			}

			fixed, err := svc.Transaction.RebuildBalances(ctx, book.ID)
			if err != nil {
				return err
			}
			pterm.Success.Printf("Repaired %d balances\n", len(fixed))
			return nil
		},
	}

	cmd.Flags().BoolVar(&repair, "repair", false, "Rewrite drifted balances")

	return cmd
}
