package accounting

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/hance08/ledger/internal/model"
)

// ErrOverflow reports a balance change that does not fit in int64.
var ErrOverflow = errors.New("balance change overflows int64")

// BalanceWriter is the storage capability the applier needs. It is satisfied
// by store.Repository bound to an open unit.
type BalanceWriter interface {
	AdjustAccountBalance(ctx context.Context, bookID string, accountID, delta int64) error
}

// Deltas returns the balance changes an intent causes:
// INCOME +amount and EXPENSE -amount on the account, TRANSFER +amount on the
// destination and -amount on the source.
func Deltas(intent model.Intent) []model.Delta {
	switch intent.Type {
	case model.TxIncome:
		return []model.Delta{{AccountID: intent.SourceAccountID, Amount: intent.Amount}}
	case model.TxExpense:
		return []model.Delta{{AccountID: intent.SourceAccountID, Amount: -intent.Amount}}
	case model.TxTransfer:
		return []model.Delta{
			{AccountID: *intent.DestinationAccountID, Amount: intent.Amount},
			{AccountID: intent.SourceAccountID, Amount: -intent.Amount},
		}
	}
	return nil
}

// DeltasFromSplits derives the balance changes of a stored transaction from
// its type and splits. For INCOME and EXPENSE the DEBIT leg carries the
// account and the magnitude; for TRANSFER every leg's signed amount is the
// delta of its account.
func DeltasFromSplits(txType model.TxType, splits []model.Split) ([]model.Delta, error) {
	switch txType {
	case model.TxIncome, model.TxExpense:
		debit, _, err := legs(splits)
		if err != nil {
			return nil, err
		}
		amount := debit.Amount
		if txType == model.TxExpense {
			amount = -amount
		}
		return []model.Delta{{AccountID: debit.AccountID, Amount: amount}}, nil
	case model.TxTransfer:
		deltas := make([]model.Delta, 0, len(splits))
		for _, s := range splits {
			deltas = append(deltas, model.Delta{AccountID: s.AccountID, Amount: s.Amount})
		}
		return deltas, nil
	}
	return nil, fmt.Errorf("unknown transaction type %q", txType)
}

// Negate returns the deltas that undo the given ones.
func Negate(deltas []model.Delta) []model.Delta {
	out := make([]model.Delta, len(deltas))
	for i, d := range deltas {
		out[i] = model.Delta{AccountID: d.AccountID, Amount: -d.Amount}
	}
	return out
}

// Merge sums deltas per account, drops accounts whose net change is zero and
// orders the result by account id so writes happen in a stable order.
func Merge(deltas []model.Delta) ([]model.Delta, error) {
	sums := make(map[int64]int64, len(deltas))
	for _, d := range deltas {
		sum, ok := AddChecked(sums[d.AccountID], d.Amount)
		if !ok {
			return nil, fmt.Errorf("%w: account %d", ErrOverflow, d.AccountID)
		}
		sums[d.AccountID] = sum
	}

	out := make([]model.Delta, 0, len(sums))
	for id, amount := range sums {
		if amount == 0 {
			continue
		}
		out = append(out, model.Delta{AccountID: id, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out, nil
}

// AddChecked returns a+b and false when the sum overflows int64.
func AddChecked(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	return a + b, true
}

// Sum returns the total of all deltas.
func Sum(deltas []model.Delta) int64 {
	var total int64
	for _, d := range deltas {
		total += d.Amount
	}
	return total
}

// ApplyDeltas writes the merged deltas through w. Callers must run it inside
// the same atomic unit as the split writes it belongs to.
func ApplyDeltas(ctx context.Context, w BalanceWriter, bookID string, deltas []model.Delta) error {
	merged, err := Merge(deltas)
	if err != nil {
		return err
	}
	for _, d := range merged {
		if err := w.AdjustAccountBalance(ctx, bookID, d.AccountID, d.Amount); err != nil {
			return fmt.Errorf("failed to apply delta %+d to account %d: %w", d.Amount, d.AccountID, err)
		}
	}
	return nil
}

// ReplayBalances computes each account's expected balance from posted splits.
func ReplayBalances(posted []model.PostedSplit) (map[int64]int64, error) {
	byTx := make(map[int64][]model.Split)
	types := make(map[int64]model.TxType)
	var order []int64

	for _, ps := range posted {
		if _, seen := byTx[ps.TransactionID]; !seen {
			order = append(order, ps.TransactionID)
		}
		byTx[ps.TransactionID] = append(byTx[ps.TransactionID], ps.Split)
		types[ps.TransactionID] = ps.TxType
	}

	balances := make(map[int64]int64)
	for _, txID := range order {
		deltas, err := DeltasFromSplits(types[txID], byTx[txID])
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", txID, err)
		}
		for _, d := range deltas {
			sum, ok := AddChecked(balances[d.AccountID], d.Amount)
			if !ok {
				return nil, fmt.Errorf("transaction %d: %w: account %d", txID, ErrOverflow, d.AccountID)
			}
			balances[d.AccountID] = sum
		}
	}
	return balances, nil
}
