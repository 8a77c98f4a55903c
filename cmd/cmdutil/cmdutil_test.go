package cmdutil

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hance08/ledger/internal/config"
	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/service"
	"github.com/hance08/ledger/internal/store"
)

func newService(t *testing.T) *service.Service {
	t.Helper()
	st, err := store.NewStore(filepath.Join(t.TempDir(), "ledger.db"), os.DirFS("../.."))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return service.NewService(st, config.NewDefault(), nil)
}

func TestParseID(t *testing.T) {
	id, err := ParseID(" 42 ", "transaction")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "abc", "0", "-3"} {
		_, err := ParseID(bad, "transaction")
		assert.Error(t, err, bad)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("03/01/2025")
	assert.Error(t, err)
}

func TestParseTxType(t *testing.T) {
	tt, err := ParseTxType("expense")
	require.NoError(t, err)
	assert.Equal(t, model.TxExpense, tt)

	_, err = ParseTxType("refund")
	assert.Error(t, err)
}

func TestResolveAccountAndCategory(t *testing.T) {
	svc := newService(t)
	ctx := t.Context()

	book, err := svc.Book.CreateBook(ctx, "Home", "USD")
	require.NoError(t, err)
	acc, err := svc.Account.CreateAccount(ctx, book.ID, "Checking", model.KindAsset)
	require.NoError(t, err)
	cat, err := svc.Category.CreateCategory(ctx, book.ID, "Food", model.CategoryExpense)
	require.NoError(t, err)

	byName, err := ResolveAccount(ctx, svc, book.ID, "Checking")
	require.NoError(t, err)
	assert.Equal(t, acc.ID, byName.ID)

	byID, err := ResolveAccount(ctx, svc, book.ID, strconv.FormatInt(acc.ID, 10))
	require.NoError(t, err)
	assert.Equal(t, acc.ID, byID.ID)

	c, err := ResolveCategory(ctx, svc, book.ID, "Food")
	require.NoError(t, err)
	assert.Equal(t, cat.ID, c.ID)

	_, err = ResolveCategory(ctx, svc, book.ID, "999")
	assert.ErrorIs(t, err, model.ErrNotFound)

	current, err := CurrentBook(ctx, svc)
	require.NoError(t, err)
	assert.Equal(t, book.ID, current.ID)

	l, err := Lookup(ctx, svc, book)
	require.NoError(t, err)
	assert.Equal(t, "Checking", l.Account(acc.ID))
	assert.Equal(t, "Food", l.Category(&cat.ID))
}
