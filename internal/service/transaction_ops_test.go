package service

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/store"
)

func TestLifecycle_Scenarios(t *testing.T) {
	f := newFixture(t)
	a := f.account(t, "Checking", 100000)
	b := f.account(t, "Savings", 0)

	// EXPENSE of 50000 in Food.
	spent, err := f.svc.Transaction.CreateTransaction(f.ctx, f.expense(a, 50000), testUser)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), f.balance(t, a.ID))
	require.Len(t, spent.Splits, 2)
	assert.Zero(t, spent.Splits[0].Amount+spent.Splits[1].Amount)

	// INCOME of 20000.
	_, err = f.svc.Transaction.CreateTransaction(f.ctx, model.Intent{
		BookID:          f.book.ID,
		Type:            model.TxIncome,
		Amount:          20000,
		SourceAccountID: a.ID,
		CategoryID:      &f.wages.ID,
	}, testUser)
	require.NoError(t, err)
	assert.Equal(t, int64(70000), f.balance(t, a.ID))

	// TRANSFER of 30000 from A to B.
	moved, err := f.svc.Transaction.CreateTransaction(f.ctx, model.Intent{
		BookID:               f.book.ID,
		Type:                 model.TxTransfer,
		Amount:               30000,
		SourceAccountID:      a.ID,
		DestinationAccountID: &b.ID,
	}, testUser)
	require.NoError(t, err)
	assert.Equal(t, int64(40000), f.balance(t, a.ID))
	assert.Equal(t, int64(30000), f.balance(t, b.ID))

	// Deleting the transfer restores both accounts.
	require.NoError(t, f.svc.Transaction.DeleteTransaction(f.ctx, f.book.ID, moved.ID))
	assert.Equal(t, int64(70000), f.balance(t, a.ID))
	assert.Equal(t, int64(0), f.balance(t, b.ID))
	splits, err := f.repo.GetSplitsByTransaction(f.ctx, moved.ID)
	require.NoError(t, err)
	assert.Empty(t, splits)

	// Raising the first expense to 80000 reverses the old 50000 first.
	updated, err := f.svc.Transaction.UpdateTransaction(f.ctx, f.book.ID, spent.ID, f.expense(a, 80000), "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(40000), f.balance(t, a.ID))
	assert.Equal(t, spent.ID, updated.ID)
	require.NotNil(t, updated.UpdatedBy)
	assert.Equal(t, "bob", *updated.UpdatedBy)

	f.assertConsistent(t)
}

func TestUpdate_MatchesDeleteAndCreate(t *testing.T) {
	f := newFixture(t)
	a := f.account(t, "Checking", 100000)

	spent, err := f.svc.Transaction.CreateTransaction(f.ctx, f.expense(a, 50000), testUser)
	require.NoError(t, err)
	_, err = f.svc.Transaction.UpdateTransaction(f.ctx, f.book.ID, spent.ID, f.expense(a, 80000), testUser)
	require.NoError(t, err)
	assert.Equal(t, int64(20000), f.balance(t, a.ID))

	g := newFixture(t)
	c := g.account(t, "Checking", 100000)
	first, err := g.svc.Transaction.CreateTransaction(g.ctx, g.expense(c, 50000), testUser)
	require.NoError(t, err)
	require.NoError(t, g.svc.Transaction.DeleteTransaction(g.ctx, g.book.ID, first.ID))
	_, err = g.svc.Transaction.CreateTransaction(g.ctx, g.expense(c, 80000), testUser)
	require.NoError(t, err)

	assert.Equal(t, g.balance(t, c.ID), f.balance(t, a.ID))
}

func TestUpdate_ChangesType(t *testing.T) {
	f := newFixture(t)
	a := f.account(t, "Checking", 10000)
	b := f.account(t, "Wallet", 0)

	spent, err := f.svc.Transaction.CreateTransaction(f.ctx, f.expense(a, 3000), testUser)
	require.NoError(t, err)

	detail, err := f.svc.Transaction.UpdateTransaction(f.ctx, f.book.ID, spent.ID, model.Intent{
		Type:                 model.TxTransfer,
		Amount:               2500,
		SourceAccountID:      a.ID,
		DestinationAccountID: &b.ID,
	}, testUser)
	require.NoError(t, err)

	assert.Equal(t, model.TxTransfer, detail.Type)
	assert.Nil(t, detail.CategoryID)
	assert.Equal(t, int64(7500), f.balance(t, a.ID))
	assert.Equal(t, int64(2500), f.balance(t, b.ID))
	f.assertConsistent(t)
}

func TestPatchTransaction(t *testing.T) {
	f := newFixture(t)
	a := f.account(t, "Checking", 100000)

	spent, err := f.svc.Transaction.CreateTransaction(f.ctx, f.expense(a, 50000), testUser)
	require.NoError(t, err)

	detail, err := f.svc.Transaction.PatchTransaction(f.ctx, f.book.ID, spent.ID, model.TransactionPatch{
		Amount:       ptr(int64(12000)),
		Counterparty: ptr("Corner Shop"),
	}, "bob")
	require.NoError(t, err)

	assert.Equal(t, int64(88000), f.balance(t, a.ID))
	assert.Equal(t, "groceries", detail.Description)
	require.NotNil(t, detail.Counterparty)
	assert.Equal(t, "Corner Shop", *detail.Counterparty)
	require.NotNil(t, detail.CategoryID)
	assert.Equal(t, f.food.ID, *detail.CategoryID)

	stored, err := f.svc.Transaction.GetTransaction(f.ctx, f.book.ID, spent.ID)
	require.NoError(t, err)
	assert.Equal(t, detail.Counterparty, stored.Counterparty)
	assert.Equal(t, detail.Date, stored.Date)

	// Clearing the category keeps the expense as uncategorized.
	detail, err = f.svc.Transaction.PatchTransaction(f.ctx, f.book.ID, spent.ID, model.TransactionPatch{ClearCategory: true}, "bob")
	require.NoError(t, err)
	assert.Nil(t, detail.CategoryID)
	f.assertConsistent(t)
}

func TestPatchTransaction_InvalidMergeRollsBack(t *testing.T) {
	f := newFixture(t)
	a := f.account(t, "Checking", 100000)

	spent, err := f.svc.Transaction.CreateTransaction(f.ctx, f.expense(a, 50000), testUser)
	require.NoError(t, err)

	// A transfer needs a destination, which the stored expense lacks.
	_, err = f.svc.Transaction.PatchTransaction(f.ctx, f.book.ID, spent.ID, model.TransactionPatch{
		Type: ptr(model.TxTransfer),
	}, testUser)
	require.ErrorIs(t, err, model.ErrInvalidIntent)

	assert.Equal(t, int64(50000), f.balance(t, a.ID))
	f.assertConsistent(t)
}

func TestDelete_IsInverseOfCreate(t *testing.T) {
	f := newFixture(t)
	a := f.account(t, "Checking", 100000)
	b := f.account(t, "Savings", 500)
	before := f.txCount(t)

	for _, intent := range []model.Intent{
		f.expense(a, 4200),
		{BookID: f.book.ID, Type: model.TxIncome, Amount: 900, SourceAccountID: b.ID},
		{BookID: f.book.ID, Type: model.TxTransfer, Amount: 100, SourceAccountID: b.ID, DestinationAccountID: &a.ID},
	} {
		detail, err := f.svc.Transaction.CreateTransaction(f.ctx, intent, testUser)
		require.NoError(t, err)
		require.NoError(t, f.svc.Transaction.DeleteTransaction(f.ctx, f.book.ID, detail.ID))
	}

	assert.Equal(t, int64(100000), f.balance(t, a.ID))
	assert.Equal(t, int64(500), f.balance(t, b.ID))
	assert.Equal(t, before, f.txCount(t))
}

func TestNotFound(t *testing.T) {
	f := newFixture(t)
	a := f.account(t, "Checking", 100)

	_, err := f.svc.Transaction.GetTransaction(f.ctx, f.book.ID, 9999)
	assert.ErrorIs(t, err, model.ErrNotFound)

	err = f.svc.Transaction.DeleteTransaction(f.ctx, f.book.ID, 9999)
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = f.svc.Transaction.UpdateTransaction(f.ctx, f.book.ID, 9999, f.expense(a, 10), testUser)
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = f.svc.Transaction.PatchTransaction(f.ctx, f.book.ID, 9999, model.TransactionPatch{}, testUser)
	assert.ErrorIs(t, err, model.ErrNotFound)

	// Another book's transaction is not visible.
	other, err := f.svc.Book.CreateBook(f.ctx, "Business", "EUR")
	require.NoError(t, err)
	spent, err := f.svc.Transaction.CreateTransaction(f.ctx, f.expense(a, 10), testUser)
	require.NoError(t, err)
	_, err = f.svc.Transaction.GetTransaction(f.ctx, other.ID, spent.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestCreate_InvalidIntent(t *testing.T) {
	f := newFixture(t)
	a := f.account(t, "Checking", 100)
	before := f.txCount(t)

	_, err := f.svc.Transaction.CreateTransaction(f.ctx, f.expense(a, 0), testUser)
	assert.ErrorIs(t, err, model.ErrInvalidIntent)

	_, err = f.svc.Transaction.CreateTransaction(f.ctx, f.expense(a, 10), "")
	assert.ErrorIs(t, err, model.ErrInvalidIntent)

	wrongKind := f.expense(a, 10)
	wrongKind.CategoryID = &f.wages.ID
	_, err = f.svc.Transaction.CreateTransaction(f.ctx, wrongKind, testUser)
	assert.ErrorIs(t, err, model.ErrInvalidIntent)

	assert.Equal(t, before, f.txCount(t))
	assert.Equal(t, int64(100), f.balance(t, a.ID))
}

func TestCreate_ReferenceNotFound(t *testing.T) {
	f := newFixture(t)
	a := f.account(t, "Checking", 100)
	before := f.txCount(t)

	missing := int64(4242)
	_, err := f.svc.Transaction.CreateTransaction(f.ctx, model.Intent{
		BookID:               f.book.ID,
		Type:                 model.TxTransfer,
		Amount:               50,
		SourceAccountID:      a.ID,
		DestinationAccountID: &missing,
	}, testUser)
	assert.ErrorIs(t, err, model.ErrReferenceNotFound)

	badCategory := f.expense(a, 10)
	badCategory.CategoryID = &missing
	_, err = f.svc.Transaction.CreateTransaction(f.ctx, badCategory, testUser)
	assert.ErrorIs(t, err, model.ErrReferenceNotFound)

	// An account of another book is treated as missing.
	other, err := f.svc.Book.CreateBook(f.ctx, "Business", "")
	require.NoError(t, err)
	foreign := f.expense(a, 10)
	foreign.BookID = other.ID
	foreign.CategoryID = nil
	_, err = f.svc.Transaction.CreateTransaction(f.ctx, foreign, testUser)
	assert.ErrorIs(t, err, model.ErrReferenceNotFound)

	assert.Equal(t, before, f.txCount(t))
	assert.Equal(t, int64(100), f.balance(t, a.ID))
}

func TestCreate_ArchivedAccountRejected(t *testing.T) {
	f := newFixture(t)
	a := f.account(t, "Checking", 100)
	require.NoError(t, f.svc.Account.ArchiveAccount(f.ctx, f.book.ID, a.ID, true))

	_, err := f.svc.Transaction.CreateTransaction(f.ctx, f.expense(a, 10), testUser)
	assert.ErrorIs(t, err, model.ErrInvalidIntent)
	assert.Equal(t, int64(100), f.balance(t, a.ID))
}

func TestCreateBatch_StrictPolicy(t *testing.T) {
	f := newFixture(t)
	a := f.account(t, "Checking", 100000)
	before := f.txCount(t)

	_, err := f.svc.Transaction.CreateBatch(f.ctx, f.book.ID, []model.Intent{
		f.expense(a, 1000),
		f.expense(a, 0),
		f.expense(a, 3000),
	}, testUser)
	require.ErrorIs(t, err, model.ErrInvalidIntent)

	var ie *model.IntentError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, 1, ie.Index)
	assert.Equal(t, "amount", ie.Field)

	assert.Equal(t, int64(100000), f.balance(t, a.ID))
	assert.Equal(t, before, f.txCount(t))
}

func TestCreateBatch_ReferenceFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	a := f.account(t, "Checking", 100000)
	before := f.txCount(t)

	missing := int64(777)
	_, err := f.svc.Transaction.CreateBatch(f.ctx, f.book.ID, []model.Intent{
		f.expense(a, 1000),
		{Type: model.TxTransfer, Amount: 5, SourceAccountID: a.ID, DestinationAccountID: &missing},
	}, testUser)
	require.ErrorIs(t, err, model.ErrReferenceNotFound)
	assert.Contains(t, err.Error(), "intent #2")

	assert.Equal(t, int64(100000), f.balance(t, a.ID))
	assert.Equal(t, before, f.txCount(t))
}

func TestCreateBatch(t *testing.T) {
	f := newFixture(t)
	a := f.account(t, "Checking", 100000)

	details, err := f.svc.Transaction.CreateBatch(f.ctx, f.book.ID, []model.Intent{
		f.expense(a, 1000),
		f.expense(a, 2000),
		{Type: model.TxIncome, Amount: 500, SourceAccountID: a.ID},
	}, testUser)
	require.NoError(t, err)
	require.Len(t, details, 3)
	assert.Equal(t, int64(97500), f.balance(t, a.ID))

	_, err = f.svc.Transaction.CreateBatch(f.ctx, f.book.ID, nil, testUser)
	assert.ErrorIs(t, err, model.ErrInvalidIntent)
	f.assertConsistent(t)
}

func TestListTransactions(t *testing.T) {
	f := newFixture(t)
	a := f.account(t, "Checking", 100000)
	b := f.account(t, "Savings", 0)

	_, err := f.svc.Transaction.CreateTransaction(f.ctx, f.expense(a, 100), testUser)
	require.NoError(t, err)
	_, err = f.svc.Transaction.CreateTransaction(f.ctx, model.Intent{
		BookID: f.book.ID, Type: model.TxIncome, Amount: 200, SourceAccountID: b.ID,
	}, testUser)
	require.NoError(t, err)

	all, err := f.svc.Transaction.ListTransactions(f.ctx, f.book.ID, model.TransactionFilter{})
	require.NoError(t, err)
	// the opening balance of Checking is a transfer
	assert.Len(t, all, 3)
	for _, d := range all {
		assert.Len(t, d.Splits, 2)
	}

	income := model.TxIncome
	onlyIncome, err := f.svc.Transaction.ListTransactions(f.ctx, f.book.ID, model.TransactionFilter{Type: &income})
	require.NoError(t, err)
	require.Len(t, onlyIncome, 1)
	assert.Equal(t, int64(200), onlyIncome[0].Splits[0].Amount)

	_, err = f.svc.Transaction.ListTransactions(f.ctx, f.book.ID, model.TransactionFilter{Limit: -1})
	assert.ErrorIs(t, err, model.ErrValidation)
}

// failingRepo fails the n-th balance write inside a unit, after the header
// and splits of the transaction have been written.
type failingRepo struct {
	store.Repository
	failAt int
	calls  *int
}

var errInjected = errors.New("injected failure")

func (r *failingRepo) ExecTx(ctx context.Context, fn func(store.Repository) error) error {
	return r.Repository.ExecTx(ctx, func(tx store.Repository) error {
		return fn(&failingRepo{Repository: tx, failAt: r.failAt, calls: r.calls})
	})
}

func (r *failingRepo) AdjustAccountBalance(ctx context.Context, bookID string, accountID, delta int64) error {
	*r.calls++
	if *r.calls == r.failAt {
		return errInjected
	}
	return r.Repository.AdjustAccountBalance(ctx, bookID, accountID, delta)
}

func TestAtomicity_FailureInjection(t *testing.T) {
	f := newFixture(t)
	a := f.account(t, "Checking", 100000)
	b := f.account(t, "Savings", 0)

	calls := 0
	faulty := NewService(&failingRepo{Repository: f.repo, failAt: 2, calls: &calls}, f.svc.Config, nil)
	before := f.txCount(t)

	// The transfer's second balance write fails after its splits were inserted.
	_, err := faulty.Transaction.CreateTransaction(f.ctx, model.Intent{
		BookID: f.book.ID, Type: model.TxTransfer, Amount: 300, SourceAccountID: a.ID, DestinationAccountID: &b.ID,
	}, testUser)
	require.ErrorIs(t, err, model.ErrStorageFailure)
	require.ErrorIs(t, err, errInjected)

	assert.Equal(t, before, f.txCount(t))
	assert.Equal(t, int64(100000), f.balance(t, a.ID))
	assert.Equal(t, int64(0), f.balance(t, b.ID))
	f.assertConsistent(t)
}

func TestAtomicity_FailedUpdateKeepsOriginal(t *testing.T) {
	f := newFixture(t)
	a := f.account(t, "Checking", 100000)
	spent, err := f.svc.Transaction.CreateTransaction(f.ctx, f.expense(a, 50000), testUser)
	require.NoError(t, err)

	// Call 1 reverses the old deltas, call 2 applies the new ones.
	calls := 0
	faulty := NewService(&failingRepo{Repository: f.repo, failAt: 2, calls: &calls}, f.svc.Config, nil)
	_, err = faulty.Transaction.UpdateTransaction(f.ctx, f.book.ID, spent.ID, f.expense(a, 80000), testUser)
	require.ErrorIs(t, err, model.ErrStorageFailure)

	stored, err := f.svc.Transaction.GetTransaction(f.ctx, f.book.ID, spent.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), stored.Splits[0].Amount)
	assert.Equal(t, int64(50000), f.balance(t, a.ID))
	f.assertConsistent(t)
}

func TestCreate_BalanceOverflowRejected(t *testing.T) {
	f := newFixture(t)
	acc := f.account(t, "Checking", 0)

	_, err := f.svc.Transaction.CreateTransaction(f.ctx, f.income(acc, math.MaxInt64), testUser)
	require.NoError(t, err)

	_, err = f.svc.Transaction.CreateTransaction(f.ctx, f.income(acc, 1), testUser)
	require.ErrorIs(t, err, model.ErrInvalidIntent)
	var ie *model.IntentError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "amount", ie.Field)

	assert.Equal(t, int64(math.MaxInt64), f.balance(t, acc.ID))
	assert.Equal(t, 1, f.txCount(t))

	accounts, err := f.svc.Account.ListAccounts(f.ctx, f.book.ID, true)
	require.NoError(t, err)
	assert.NotEmpty(t, accounts)
	f.assertConsistent(t)
}

func TestCreateBatch_OverflowRollsBack(t *testing.T) {
	f := newFixture(t)
	acc := f.account(t, "Checking", 0)

	_, err := f.svc.Transaction.CreateBatch(f.ctx, f.book.ID, []model.Intent{
		f.income(acc, 10),
		f.income(acc, math.MaxInt64),
	}, testUser)

	var ie *model.IntentError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 1, ie.Index)
	assert.Equal(t, int64(0), f.balance(t, acc.ID))
	assert.Equal(t, 0, f.txCount(t))
	f.assertConsistent(t)
}

func TestCreate_ConcurrentWritersOnOneAccount(t *testing.T) {
	f := newFixture(t)
	acc := f.account(t, "Checking", 0)

	const (
		writers = 50
		amount  = 10
	)

	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Transaction.CreateTransaction(f.ctx, f.income(acc, amount), testUser)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int64(writers*amount), f.balance(t, acc.ID))
	assert.Equal(t, writers, f.txCount(t))
	f.assertConsistent(t)
}
