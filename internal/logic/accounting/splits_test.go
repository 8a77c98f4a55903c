package accounting

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hance08/ledger/internal/model"
)

func ptr[T any](v T) *T { return &v }

func expense(amount int64) model.Intent {
	return model.Intent{
		BookID:          "book-1",
		Type:            model.TxExpense,
		Amount:          amount,
		SourceAccountID: 1,
		CategoryID:      ptr(int64(7)),
		Description:     "Groceries",
		Date:            time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func transfer(amount int64) model.Intent {
	return model.Intent{
		BookID:               "book-1",
		Type:                 model.TxTransfer,
		Amount:               amount,
		SourceAccountID:      1,
		DestinationAccountID: ptr(int64(2)),
	}
}

func TestBuildSplits_SumToZero(t *testing.T) {
	income := expense(20000)
	income.Type = model.TxIncome

	for _, intent := range []model.Intent{expense(50000), income, transfer(30000)} {
		plan, err := BuildSplits(intent)
		require.NoError(t, err, intent.Type)
		require.Len(t, plan.Splits, 2)
		assert.NoError(t, ValidateSplitsBalance(plan.Splits), intent.Type)
	}
}

func TestBuildSplits_Expense(t *testing.T) {
	plan, err := BuildSplits(expense(50000))
	require.NoError(t, err)

	debit, credit := plan.Splits[0], plan.Splits[1]
	assert.Equal(t, int64(1), debit.AccountID)
	assert.Equal(t, int64(50000), debit.Amount)
	assert.Equal(t, model.Debit, debit.Direction)
	require.NotNil(t, debit.CategoryID)
	assert.Equal(t, int64(7), *debit.CategoryID)

	assert.Equal(t, int64(1), credit.AccountID)
	assert.Equal(t, int64(-50000), credit.Amount)
	assert.Equal(t, model.Credit, credit.Direction)
	assert.Nil(t, credit.CategoryID)

	assert.Equal(t, []model.Delta{{AccountID: 1, Amount: -50000}}, plan.Deltas)
}

func TestBuildSplits_Income(t *testing.T) {
	intent := expense(20000)
	intent.Type = model.TxIncome

	plan, err := BuildSplits(intent)
	require.NoError(t, err)

	assert.Equal(t, int64(20000), plan.Splits[0].Amount)
	assert.Equal(t, int64(-20000), plan.Splits[1].Amount)
	assert.Equal(t, []model.Delta{{AccountID: 1, Amount: 20000}}, plan.Deltas)
}

func TestBuildSplits_Transfer(t *testing.T) {
	plan, err := BuildSplits(transfer(30000))
	require.NoError(t, err)

	assert.Equal(t, model.Split{AccountID: 2, Amount: 30000, Direction: model.Debit}, plan.Splits[0])
	assert.Equal(t, model.Split{AccountID: 1, Amount: -30000, Direction: model.Credit}, plan.Splits[1])
	assert.Equal(t, int64(0), Sum(plan.Deltas))
}

func TestBuildSplits_InvalidIntent(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*model.Intent)
		field string
	}{
		{"zero amount", func(i *model.Intent) { i.Amount = 0 }, "amount"},
		{"negative amount", func(i *model.Intent) { i.Amount = -5 }, "amount"},
		{"missing book", func(i *model.Intent) { i.BookID = "" }, "book"},
		{"unknown type", func(i *model.Intent) { i.Type = "REFUND" }, "type"},
		{"missing account", func(i *model.Intent) { i.SourceAccountID = 0 }, "source_account"},
		{"expense with destination", func(i *model.Intent) { i.DestinationAccountID = ptr(int64(2)) }, "destination_account"},
		{"transfer without destination", func(i *model.Intent) {
			i.Type = model.TxTransfer
			i.CategoryID = nil
		}, "destination_account"},
		{"transfer to itself", func(i *model.Intent) {
			i.Type = model.TxTransfer
			i.CategoryID = nil
			i.DestinationAccountID = ptr(i.SourceAccountID)
		}, "destination_account"},
		{"transfer with category", func(i *model.Intent) {
			i.Type = model.TxTransfer
			i.DestinationAccountID = ptr(int64(2))
		}, "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := expense(100)
			tt.edit(&intent)

			_, err := BuildSplits(intent)
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrInvalidIntent))

			var ie *model.IntentError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, tt.field, ie.Field)
		})
	}
}

func TestBuildSplits_UncategorizedExpense(t *testing.T) {
	intent := expense(100)
	intent.CategoryID = nil

	plan, err := BuildSplits(intent)
	require.NoError(t, err)
	assert.Nil(t, plan.Splits[0].CategoryID)
}

func TestIntentFromSplits_RoundTrip(t *testing.T) {
	income := expense(20000)
	income.Type = model.TxIncome
	income.Counterparty = ptr("ACME")

	for _, intent := range []model.Intent{expense(50000), income, transfer(30000)} {
		plan, err := BuildSplits(intent)
		require.NoError(t, err)

		tx := model.Transaction{
			ID:           1,
			BookID:       intent.BookID,
			Type:         intent.Type,
			Description:  intent.Description,
			Date:         intent.Date,
			Counterparty: intent.Counterparty,
		}
		got, err := IntentFromSplits(tx, plan.Splits)
		require.NoError(t, err)
		assert.Equal(t, intent, got)
	}
}

func TestIntentFromSplits_Malformed(t *testing.T) {
	tx := model.Transaction{ID: 9, Type: model.TxExpense}

	_, err := IntentFromSplits(tx, []model.Split{{AccountID: 1, Amount: 5, Direction: model.Debit}})
	assert.Error(t, err)

	_, err = IntentFromSplits(tx, []model.Split{
		{AccountID: 1, Amount: 5, Direction: model.Debit},
		{AccountID: 1, Amount: -5, Direction: model.Debit},
	})
	assert.Error(t, err)
}
