package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hance08/ledger/internal/config"
	"github.com/hance08/ledger/internal/logging"
	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/store"
)

const testUser = "alice"

type fixture struct {
	svc   *Service
	repo  *store.Store
	book  *model.Book
	ctx   context.Context
	food  *model.Category
	wages *model.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo, err := store.NewStore(filepath.Join(t.TempDir(), "ledger.db"), os.DirFS("../.."))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	return newFixtureWithRepo(t, repo, repo)
}

// newFixtureWithRepo builds the services on top of wrapped while keeping
// direct access to the underlying store for assertions.
func newFixtureWithRepo(t *testing.T, raw *store.Store, wrapped store.Repository) *fixture {
	t.Helper()
	ctx := context.Background()

	svc := NewService(wrapped, config.NewDefault(), logging.Discard())
	book, err := svc.Book.CreateBook(ctx, "Household", "USD")
	require.NoError(t, err)

	food, err := svc.Category.CreateCategory(ctx, book.ID, "Food", model.CategoryExpense)
	require.NoError(t, err)
	wages, err := svc.Category.CreateCategory(ctx, book.ID, "Wages", model.CategoryIncome)
	require.NoError(t, err)

	return &fixture{svc: svc, repo: raw, book: book, ctx: ctx, food: food, wages: wages}
}

func (f *fixture) account(t *testing.T, name string, opening int64) *model.Account {
	t.Helper()
	acc, err := f.svc.CreateAccountWithBalance(f.ctx, f.book.ID, name, model.KindAsset, opening, testUser)
	require.NoError(t, err)
	require.Equal(t, opening, acc.Balance)
	return acc
}

func (f *fixture) balance(t *testing.T, id int64) int64 {
	t.Helper()
	acc, err := f.repo.GetAccountByID(f.ctx, f.book.ID, id)
	require.NoError(t, err)
	return acc.Balance
}

func (f *fixture) txCount(t *testing.T) int {
	t.Helper()
	txs, err := f.repo.ListTransactions(f.ctx, f.book.ID, model.TransactionFilter{Limit: 500})
	require.NoError(t, err)
	return len(txs)
}

func (f *fixture) assertConsistent(t *testing.T) {
	t.Helper()
	drifts, err := f.svc.Transaction.VerifyBalances(f.ctx, f.book.ID)
	require.NoError(t, err)
	require.Empty(t, drifts)
}

func (f *fixture) expense(acc *model.Account, amount int64) model.Intent {
	return model.Intent{
		BookID:          f.book.ID,
		Type:            model.TxExpense,
		Amount:          amount,
		SourceAccountID: acc.ID,
		CategoryID:      &f.food.ID,
		Description:     "groceries",
		Date:            time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) income(acc *model.Account, amount int64) model.Intent {
	return model.Intent{
		BookID:          f.book.ID,
		Type:            model.TxIncome,
		Amount:          amount,
		SourceAccountID: acc.ID,
		CategoryID:      &f.wages.ID,
		Description:     "salary",
	}
}

func ptr[T any](v T) *T { return &v }
