package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/ledger/cmd/cmdutil"
	"github.com/hance08/ledger/internal/importer"
	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/service"
	"github.com/hance08/ledger/internal/ui/views"
)

type importFlags struct {
	DryRun bool
}

type importRunner struct {
	svc   *service.Service
	flags *importFlags
}

func NewImportCmd(svc *service.Service) *cobra.Command {
	flags := &importFlags{}

	cmd := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Import a batch of transactions from a YAML file",
		Long: `Import every transaction of a YAML file as one batch. If any entry is
invalid nothing is recorded and the failing entry is reported.

  book: Household
  transactions:
    - type: expense
      amount: "12.50"
      account: Checking
      category: Food
      date: 2026-03-14`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &importRunner{
				svc:   svc,
				flags: flags,
			}
			return runner.Run(cmd.Context(), args[0])
		},
	}

	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Resolve and validate entries without recording them")

	return cmd
}

func (r *importRunner) Run(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	f, err := importer.Parse(bytes.NewReader(data))
	if err != nil {
		return err
	}

	book, err := r.book(ctx, f)
	if err != nil {
		return err
	}

	im := importer.New(r.svc)

	if r.flags.DryRun {
		intents, err := im.Intents(ctx, book, f)
		if err != nil {
			return err
		}
		pterm.Success.Printf("%d entries resolved against book '%s', nothing recorded\n", len(intents), book.Name)
		return nil
	}

	details, err := im.Import(ctx, book, bytes.NewReader(data), cmdutil.User(r.svc))
	if err != nil {
		return err
	}

	pterm.Success.Printf("Imported %d transactions into '%s'\n", len(details), book.Name)

	lookup, err := cmdutil.Lookup(ctx, r.svc, book)
	if err != nil {
		return err
	}
	return views.NewTransactionListView(lookup).Render(details, len(details))
}

// book prefers --book/defaults.book and falls back to the book named in the file.
func (r *importRunner) book(ctx context.Context, f *importer.File) (*model.Book, error) {
	if r.svc.Config.Defaults.Book == "" && f.Book != "" {
		return r.svc.Book.ResolveBook(ctx, f.Book)
	}
	return cmdutil.CurrentBook(ctx, r.svc)
}
