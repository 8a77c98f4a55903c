package cmd

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/ledger/cmd/cmdutil"
	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/service"
	"github.com/hance08/ledger/internal/ui/prompts"
	"github.com/hance08/ledger/internal/ui/views"
	"github.com/hance08/ledger/internal/validation"
)

func NewCategoryCmd(svc *service.Service) *cobra.Command {
	categoryCmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "Manage income and expense categories",
	}

	categoryCmd.AddCommand(newCategoryCreateCmd(svc))
	categoryCmd.AddCommand(newCategoryListCmd(svc))

	return categoryCmd
}

type categoryFlags struct {
	Name string
	Kind string
}

func newCategoryCreateCmd(svc *service.Service) *cobra.Command {
	flags := &categoryFlags{}

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a category",
		Example: `  ledger category create --name Groceries --kind expense`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			book, err := cmdutil.CurrentBook(ctx, svc)
			if err != nil {
				return err
			}

			name := flags.Name
			if name == "" {
				if name, err = prompts.PromptInput("Category name:", "", validation.ValidateCategoryName); err != nil {
					return err
				}
			}

			var kind model.CategoryKind
			if flags.Kind != "" {
				kind = model.CategoryKind(strings.ToUpper(flags.Kind))
				if !kind.Valid() {
					return fmt.Errorf("invalid category kind %q (use income or expense)", flags.Kind)
				}
			} else if kind, err = prompts.PromptCategoryKind(); err != nil {
				return err
			}

			cat, err := svc.Category.CreateCategory(ctx, book.ID, name, kind)
			if err != nil {
				return err
			}
			pterm.Success.Printf("Category '%s' (%s) created with ID %d\n", cat.Name, cat.Kind, cat.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.Name, "name", "n", "", "Category name")
	cmd.Flags().StringVarP(&flags.Kind, "kind", "k", "", "Category kind: income or expense")

	return cmd
}

func newCategoryListCmd(svc *service.Service) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List categories of the current book",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			book, err := cmdutil.CurrentBook(ctx, svc)
			if err != nil {
				return err
			}
			categories, err := svc.Category.ListCategories(ctx, book.ID)
			if err != nil {
				return err
			}
			if len(categories) == 0 {
				pterm.Warning.Println("No categories found")
				return nil
			}
			return views.RenderCategoryList(categories)
		},
	}
}
