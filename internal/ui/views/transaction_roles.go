package views

import "github.com/hance08/ledger/internal/model"

// SplitRoleLabel names the part a split plays in its transaction.
func SplitRoleLabel(txType model.TxType, split model.Split) string {
	switch txType {
	case model.TxExpense:
		if split.Direction == model.Debit {
			return "expense"
		}
		return "payment account"
	case model.TxIncome:
		if split.Direction == model.Debit {
			return "income"
		}
		return "offset"
	case model.TxTransfer:
		if split.Direction == model.Debit {
			return "receiving account"
		}
		return "source account"
	default:
		return "account"
	}
}

// Counterpart describes where the money of a transaction went, for one-line
// listings: "Checking -> Savings" for transfers, the account otherwise.
func Counterpart(d *model.TransactionDetail, l *Lookup) string {
	var debit, credit *model.Split
	for i := range d.Splits {
		switch d.Splits[i].Direction {
		case model.Debit:
			debit = &d.Splits[i]
		case model.Credit:
			credit = &d.Splits[i]
		}
	}
	if debit == nil || credit == nil {
		return "-"
	}
	if d.Type == model.TxTransfer {
		return l.Account(credit.AccountID) + " -> " + l.Account(debit.AccountID)
	}
	return l.Account(debit.AccountID)
}

// Amount returns the magnitude of a two-leg transaction.
func Amount(d *model.TransactionDetail) int64 {
	for _, s := range d.Splits {
		if s.Direction == model.Debit {
			return s.Amount
		}
	}
	return 0
}
