package transaction

import (
	"github.com/spf13/cobra"

	"github.com/hance08/ledger/internal/service"
)

func NewTransactionCmd(svc *service.Service) *cobra.Command {
	transactionCmd := &cobra.Command{
		Use:     "transaction",
		Aliases: []string{"tx"},
		Short:   "Manage transactions",
		Long:    "Manage transactions: view details, list, edit or delete them.",
	}

	transactionCmd.AddCommand(NewShowCmd(svc))
	transactionCmd.AddCommand(NewListCmd(svc))
	transactionCmd.AddCommand(NewEditCmd(svc))
	transactionCmd.AddCommand(NewDeleteCmd(svc))

	return transactionCmd
}
