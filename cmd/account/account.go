package account

import (
	"github.com/spf13/cobra"

	"github.com/hance08/ledger/internal/service"
)

func NewAccountCmd(svc *service.Service) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:     "account",
		Aliases: []string{"acc"},
		Short:   "Create, list, archive and delete accounts",
		Long:    `Create, list, archive and delete the accounts of the current book.`,
	}

	accountCmd.AddCommand(NewCreateCmd(svc))
	accountCmd.AddCommand(NewListCmd(svc))
	accountCmd.AddCommand(NewArchiveCmd(svc))
	accountCmd.AddCommand(NewDeleteCmd(svc))

	return accountCmd
}
