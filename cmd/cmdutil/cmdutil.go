// Package cmdutil holds helpers shared by the cobra commands.
package cmdutil

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/hance08/ledger/internal/constants"
	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/service"
	"github.com/hance08/ledger/internal/ui/prompts"
	"github.com/hance08/ledger/internal/ui/views"
)

// CurrentBook resolves the book selected by --book or defaults.book. When
// the database holds no book yet, the first-run wizard creates one.
func CurrentBook(ctx context.Context, svc *service.Service) (*model.Book, error) {
	books, err := svc.Book.ListBooks(ctx)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 && svc.Config.Defaults.Book == "" {
		return firstRun(ctx, svc)
	}
	return svc.Book.ResolveBook(ctx, "")
}

func firstRun(ctx context.Context, svc *service.Service) (*model.Book, error) {
	pterm.Info.Println("No book found. Let's create your first one.")

	name, code, err := prompts.PromptNewBook(svc.Config.Defaults.Currency)
	if err != nil {
		return nil, err
	}

	book, err := svc.Book.CreateBook(ctx, name, code)
	if err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	pterm.Success.Printf("Book '%s' created (%s)\n", book.Name, book.Currency)
	return book, nil
}

// Lookup loads the names needed to render transactions of a book.
func Lookup(ctx context.Context, svc *service.Service, book *model.Book) (*views.Lookup, error) {
	accounts, err := svc.Account.ListAccounts(ctx, book.ID, true)
	if err != nil {
		return nil, err
	}
	categories, err := svc.Category.ListCategories(ctx, book.ID)
	if err != nil {
		return nil, err
	}
	return views.NewLookup(book, accounts, categories), nil
}

func ParseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID: %s", what, arg)
	}
	return id, nil
}

// ResolveAccount accepts either a numeric account id or an account name.
func ResolveAccount(ctx context.Context, svc *service.Service, bookID, ref string) (*model.Account, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return svc.Account.GetAccount(ctx, bookID, id)
	}
	return svc.Account.GetAccountByName(ctx, bookID, ref)
}

func ResolveCategory(ctx context.Context, svc *service.Service, bookID, ref string) (*model.Category, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		categories, err := svc.Category.ListCategories(ctx, bookID)
		if err != nil {
			return nil, err
		}
		for _, c := range categories {
			if c.ID == id {
				return c, nil
			}
		}
		return nil, fmt.Errorf("category %d: %w", id, model.ErrNotFound)
	}
	return svc.Category.GetCategoryByName(ctx, bookID, ref)
}

// ParseDate parses a YYYY-MM-DD flag value as a UTC date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, use YYYY-MM-DD: %w", err)
	}
	return t.UTC(), nil
}

func ParseTxType(s string) (model.TxType, error) {
	t := model.TxType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("invalid transaction type %q (use income, expense or transfer)", s)
	}
	return t, nil
}

// User returns the name recorded as creator/editor of CLI changes.
func User(svc *service.Service) string {
	if u := strings.TrimSpace(svc.Config.Defaults.User); u != "" {
		return u
	}
	return constants.SystemUser
}
