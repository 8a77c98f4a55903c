package views

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hance08/ledger/internal/model"
)

func detail(t model.TxType, debitAcc, creditAcc int64, amount int64) *model.TransactionDetail {
	return &model.TransactionDetail{
		Transaction: model.Transaction{ID: 1, Type: t},
		Splits: []model.Split{
			{AccountID: debitAcc, Amount: amount, Direction: model.Debit},
			{AccountID: creditAcc, Amount: -amount, Direction: model.Credit},
		},
	}
}

func TestLookup(t *testing.T) {
	food := int64(7)
	l := NewLookup(
		&model.Book{Currency: "JPY"},
		[]*model.Account{{ID: 1, Name: "Wallet"}},
		[]*model.Category{{ID: food, Name: "Food"}},
	)

	assert.Equal(t, "Wallet", l.Account(1))
	assert.Equal(t, "[ID: 9]", l.Account(9))
	assert.Equal(t, "Food", l.Category(&food))
	assert.Equal(t, "-", l.Category(nil))
	assert.Equal(t, "1500 JPY", l.Money(1500))
}

func TestCounterpartAndAmount(t *testing.T) {
	l := NewLookup(
		&model.Book{Currency: "USD"},
		[]*model.Account{{ID: 1, Name: "Checking"}, {ID: 2, Name: "Savings"}},
		nil,
	)

	transfer := detail(model.TxTransfer, 2, 1, 500)
	assert.Equal(t, "Checking -> Savings", Counterpart(transfer, l))
	assert.Equal(t, int64(500), Amount(transfer))

	expense := detail(model.TxExpense, 1, 1, 250)
	assert.Equal(t, "Checking", Counterpart(expense, l))

	assert.Equal(t, "-", Counterpart(&model.TransactionDetail{}, l))
	assert.Equal(t, int64(0), Amount(&model.TransactionDetail{}))
}

func TestSplitRoleLabel(t *testing.T) {
	debit := model.Split{Direction: model.Debit}
	credit := model.Split{Direction: model.Credit}

	assert.Equal(t, "receiving account", SplitRoleLabel(model.TxTransfer, debit))
	assert.Equal(t, "source account", SplitRoleLabel(model.TxTransfer, credit))
	assert.Equal(t, "expense", SplitRoleLabel(model.TxExpense, debit))
	assert.Equal(t, "payment account", SplitRoleLabel(model.TxExpense, credit))
	assert.Equal(t, "income", SplitRoleLabel(model.TxIncome, debit))
}
