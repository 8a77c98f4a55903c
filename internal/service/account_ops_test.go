package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hance08/ledger/internal/constants"
	"github.com/hance08/ledger/internal/model"
)

func TestCreateBook_CreatesOpeningAccount(t *testing.T) {
	f := newFixture(t)

	assert.Len(t, f.book.ID, 36)
	assert.Equal(t, "USD", f.book.Currency)

	equity, err := f.svc.Account.GetAccountByName(f.ctx, f.book.ID, constants.SystemAccountOpeningBalance)
	require.NoError(t, err)
	assert.Equal(t, model.KindEquity, equity.Kind)

	_, err = f.svc.Book.CreateBook(f.ctx, " ", "USD")
	assert.ErrorIs(t, err, model.ErrValidation)
	_, err = f.svc.Book.CreateBook(f.ctx, "Travel", "EURO")
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = f.svc.Book.GetBook(f.ctx, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestResolveBook(t *testing.T) {
	f := newFixture(t)

	got, err := f.svc.Book.ResolveBook(f.ctx, "")
	require.NoError(t, err)
	assert.Equal(t, f.book.ID, got.ID)

	_, err = f.svc.Book.CreateBook(f.ctx, "Business", "EUR")
	require.NoError(t, err)

	_, err = f.svc.Book.ResolveBook(f.ctx, "")
	assert.ErrorIs(t, err, model.ErrValidation)

	got, err = f.svc.Book.ResolveBook(f.ctx, "Household")
	require.NoError(t, err)
	assert.Equal(t, f.book.ID, got.ID)

	got, err = f.svc.Book.ResolveBook(f.ctx, f.book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Household", got.Name)

	_, err = f.svc.Book.ResolveBook(f.ctx, "Nope")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestCreateAccount(t *testing.T) {
	f := newFixture(t)

	acc, err := f.svc.Account.CreateAccount(f.ctx, f.book.ID, " Checking ", "asset")
	require.NoError(t, err)
	assert.Equal(t, "Checking", acc.Name)
	assert.Equal(t, model.KindAsset, acc.Kind)

	_, err = f.svc.Account.CreateAccount(f.ctx, f.book.ID, "Checking", model.KindAsset)
	assert.ErrorIs(t, err, model.ErrDuplicate)

	_, err = f.svc.Account.CreateAccount(f.ctx, f.book.ID, "Stocks", "REVENUE")
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = f.svc.Account.CreateAccount(f.ctx, f.book.ID, constants.SystemAccountOpeningBalance, model.KindEquity)
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = f.svc.Account.CreateAccount(f.ctx, "no-such-book", "Cash", model.KindAsset)
	assert.ErrorIs(t, err, model.ErrReferenceNotFound)
}

func TestCreateAccountWithBalance(t *testing.T) {
	f := newFixture(t)

	asset := f.account(t, "Checking", 5000)
	assert.Equal(t, int64(5000), asset.Balance)

	card, err := f.svc.CreateAccountWithBalance(f.ctx, f.book.ID, "Visa", model.KindLiability, 1200, testUser)
	require.NoError(t, err)
	assert.Equal(t, int64(-1200), card.Balance)

	equity, err := f.svc.Account.GetAccountByName(f.ctx, f.book.ID, constants.SystemAccountOpeningBalance)
	require.NoError(t, err)
	assert.Equal(t, int64(-3800), equity.Balance)

	_, err = f.svc.CreateAccountWithBalance(f.ctx, f.book.ID, "Capital", model.KindEquity, 10, testUser)
	assert.ErrorIs(t, err, model.ErrValidation)
	_, err = f.svc.CreateAccountWithBalance(f.ctx, f.book.ID, "Loan", model.KindLiability, -10, testUser)
	assert.ErrorIs(t, err, model.ErrValidation)

	exists, err := f.svc.Account.CheckAccountExists(f.ctx, f.book.ID, "Loan")
	require.NoError(t, err)
	assert.False(t, exists)

	f.assertConsistent(t)
}

func TestArchiveAccount(t *testing.T) {
	f := newFixture(t)
	acc := f.account(t, "Old Wallet", 0)

	require.NoError(t, f.svc.Account.ArchiveAccount(f.ctx, f.book.ID, acc.ID, true))

	active, err := f.svc.Account.ListAccounts(f.ctx, f.book.ID, false)
	require.NoError(t, err)
	for _, a := range active {
		assert.NotEqual(t, acc.ID, a.ID)
	}

	all, err := f.svc.Account.ListAccounts(f.ctx, f.book.ID, true)
	require.NoError(t, err)
	assert.Len(t, all, len(active)+1)

	err = f.svc.Account.ArchiveAccount(f.ctx, f.book.ID, 999, true)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestDeleteAccount(t *testing.T) {
	f := newFixture(t)
	used := f.account(t, "Checking", 100)
	empty := f.account(t, "Spare", 0)

	err := f.svc.Account.DeleteAccount(f.ctx, f.book.ID, used.ID)
	assert.ErrorIs(t, err, model.ErrAccountInUse)

	require.NoError(t, f.svc.Account.DeleteAccount(f.ctx, f.book.ID, empty.ID))
	_, err = f.svc.Account.GetAccount(f.ctx, f.book.ID, empty.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	equity, err := f.svc.Account.GetAccountByName(f.ctx, f.book.ID, constants.SystemAccountOpeningBalance)
	require.NoError(t, err)
	err = f.svc.Account.DeleteAccount(f.ctx, f.book.ID, equity.ID)
	assert.ErrorIs(t, err, model.ErrAccountInUse)
}

func TestCreateCategory(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Category.CreateCategory(f.ctx, f.book.ID, "Food", model.CategoryExpense)
	assert.ErrorIs(t, err, model.ErrDuplicate)

	_, err = f.svc.Category.CreateCategory(f.ctx, f.book.ID, "Gifts", "TRANSFER")
	assert.ErrorIs(t, err, model.ErrValidation)

	cats, err := f.svc.Category.ListCategories(f.ctx, f.book.ID)
	require.NoError(t, err)
	assert.Len(t, cats, 2)

	got, err := f.svc.Category.GetCategoryByName(f.ctx, f.book.ID, "Wages")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryIncome, got.Kind)
}

func TestRebuildBalances(t *testing.T) {
	f := newFixture(t)
	a := f.account(t, "Checking", 1000)

	// Simulate drift by writing the balance column behind the engine's back.
	require.NoError(t, f.repo.AdjustAccountBalance(f.ctx, f.book.ID, a.ID, 55))

	drifts, err := f.svc.Transaction.VerifyBalances(f.ctx, f.book.ID)
	require.NoError(t, err)
	require.Len(t, drifts, 1)
	assert.Equal(t, a.ID, drifts[0].AccountID)
	assert.Equal(t, int64(1055), drifts[0].Stored)
	assert.Equal(t, int64(1000), drifts[0].Expected)

	fixed, err := f.svc.Transaction.RebuildBalances(f.ctx, f.book.ID)
	require.NoError(t, err)
	assert.Len(t, fixed, 1)
	assert.Equal(t, int64(1000), f.balance(t, a.ID))
	f.assertConsistent(t)

	_, err = f.svc.Transaction.VerifyBalances(f.ctx, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
}
