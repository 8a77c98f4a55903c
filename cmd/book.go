package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/ledger/internal/service"
	"github.com/hance08/ledger/internal/ui/prompts"
	"github.com/hance08/ledger/internal/ui/views"
)

func NewBookCmd(svc *service.Service) *cobra.Command {
	bookCmd := &cobra.Command{
		Use:   "book",
		Short: "Create and list books",
		Long: `A book is an independent ledger with its own accounts, categories and
currency. Select the book other commands work on with --book or defaults.book.`,
	}

	bookCmd.AddCommand(newBookCreateCmd(svc))
	bookCmd.AddCommand(newBookListCmd(svc))

	return bookCmd
}

type bookCreateFlags struct {
	Name     string
	Currency string
}

func newBookCreateCmd(svc *service.Service) *cobra.Command {
	flags := &bookCreateFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new book",
		Example: `  ledger book create --name Household --currency EUR
  ledger book create`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, code := flags.Name, flags.Currency
			if name == "" {
				var err error
				name, code, err = prompts.PromptNewBook(svc.Config.Defaults.Currency)
				if err != nil {
					return err
				}
			}

			book, err := svc.Book.CreateBook(cmd.Context(), name, code)
			if err != nil {
				return err
			}

			pterm.Success.Printf("Book '%s' created\n", book.Name)
			return pterm.DefaultTable.WithData(pterm.TableData{
				{pterm.Blue("Book ID"), book.ID},
				{pterm.Blue("Name"), book.Name},
				{pterm.Blue("Currency"), book.Currency},
			}).Render()
		},
	}

	cmd.Flags().StringVarP(&flags.Name, "name", "n", "", "Book name")
	cmd.Flags().StringVar(&flags.Currency, "currency", "", "ISO 4217 currency code (defaults.currency)")

	return cmd
}

func newBookListCmd(svc *service.Service) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List books",
		RunE: func(cmd *cobra.Command, args []string) error {
			books, err := svc.Book.ListBooks(cmd.Context())
			if err != nil {
				return err
			}
			if len(books) == 0 {
				pterm.Warning.Println("No books yet, run 'ledger book create'")
				return nil
			}
			return views.RenderBookList(books, svc.Config.Defaults.Book)
		},
	}
}
