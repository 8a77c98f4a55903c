package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hance08/ledger/internal/config"
	"github.com/hance08/ledger/internal/logging"
	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/service"
	"github.com/hance08/ledger/internal/store"
)

const batch = `
book: Household
transactions:
  - type: expense
    amount: "12.50"
    account: Checking
    category: Food
    date: 2026-03-14
    counterparty: Corner Shop
  - type: income
    amount: "100"
    account: Checking
  - type: transfer
    amount: "20.00"
    account: Checking
    to: Savings
    description: monthly saving
`

func setup(t *testing.T) (*service.Service, *model.Book) {
	t.Helper()
	ctx := context.Background()

	repo, err := store.NewStore(filepath.Join(t.TempDir(), "ledger.db"), os.DirFS("../.."))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	svc := service.NewService(repo, config.NewDefault(), logging.Discard())
	book, err := svc.Book.CreateBook(ctx, "Household", "USD")
	require.NoError(t, err)

	_, err = svc.CreateAccountWithBalance(ctx, book.ID, "Checking", model.KindAsset, 10000, "alice")
	require.NoError(t, err)
	_, err = svc.Account.CreateAccount(ctx, book.ID, "Savings", model.KindAsset)
	require.NoError(t, err)
	_, err = svc.Category.CreateCategory(ctx, book.ID, "Food", model.CategoryExpense)
	require.NoError(t, err)

	return svc, book
}

func TestParse(t *testing.T) {
	f, err := Parse(strings.NewReader(batch))
	require.NoError(t, err)
	assert.Equal(t, "Household", f.Book)
	require.Len(t, f.Transactions, 3)
	assert.Equal(t, "Savings", f.Transactions[2].To)

	_, err = Parse(strings.NewReader("transactions:\n  - type: expense\n    colour: red\n"))
	assert.Error(t, err)

	_, err = Parse(strings.NewReader("book: Household\n"))
	assert.Error(t, err)

	_, err = Parse(strings.NewReader(""))
	assert.Error(t, err)
}

func TestImport(t *testing.T) {
	svc, book := setup(t)
	ctx := context.Background()

	details, err := New(svc).Import(ctx, book, strings.NewReader(batch), "alice")
	require.NoError(t, err)
	require.Len(t, details, 3)

	assert.Equal(t, int64(1250), details[0].Splits[0].Amount)
	require.NotNil(t, details[0].Counterparty)
	assert.Equal(t, "Corner Shop", *details[0].Counterparty)

	checking, err := svc.Account.GetAccountByName(ctx, book.ID, "Checking")
	require.NoError(t, err)
	// 100.00 - 12.50 + 100 - 20.00
	assert.Equal(t, int64(16750), checking.Balance)

	savings, err := svc.Account.GetAccountByName(ctx, book.ID, "Savings")
	require.NoError(t, err)
	assert.Equal(t, int64(2000), savings.Balance)
}

func TestImport_UnknownNameRejectsBatch(t *testing.T) {
	svc, book := setup(t)
	ctx := context.Background()

	input := strings.Replace(batch, "to: Savings", "to: Brokerage", 1)
	_, err := New(svc).Import(ctx, book, strings.NewReader(input), "alice")
	require.ErrorIs(t, err, model.ErrReferenceNotFound)
	assert.Contains(t, err.Error(), "entry #3")

	txs, err := svc.Transaction.ListTransactions(ctx, book.ID, model.TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, txs, 1, "only the opening balance")
}

func TestImport_BadAmount(t *testing.T) {
	svc, book := setup(t)

	input := strings.Replace(batch, `"100"`, `"1.005"`, 1)
	_, err := New(svc).Import(context.Background(), book, strings.NewReader(input), "alice")
	require.ErrorIs(t, err, model.ErrInvalidIntent)

	var ie *model.IntentError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, 1, ie.Index)
	assert.Equal(t, "amount", ie.Field)
}

func TestImport_WrongBook(t *testing.T) {
	svc, book := setup(t)

	input := strings.Replace(batch, "book: Household", "book: Business", 1)
	_, err := New(svc).Import(context.Background(), book, strings.NewReader(input), "alice")
	assert.ErrorIs(t, err, model.ErrValidation)
}
