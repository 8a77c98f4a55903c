package model

import "time"

type TxType string

const (
	TxIncome   TxType = "INCOME"
	TxExpense  TxType = "EXPENSE"
	TxTransfer TxType = "TRANSFER"
)

func (t TxType) Valid() bool {
	switch t {
	case TxIncome, TxExpense, TxTransfer:
		return true
	}
	return false
}

// Direction is display metadata; the signed Split.Amount drives balance math.
type Direction string

const (
	Debit  Direction = "DEBIT"
	Credit Direction = "CREDIT"
)

type Transaction struct {
	ID           int64
	BookID       string
	Type         TxType
	Description  string
	Date         time.Time
	Counterparty *string
	CategoryID   *int64
	CreatedBy    string
	UpdatedBy    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Split struct {
	ID            int64
	TransactionID int64
	AccountID     int64
	CategoryID    *int64
	Amount        int64
	Direction     Direction
}

// TransactionDetail is a transaction hydrated with its splits.
type TransactionDetail struct {
	Transaction
	Splits []Split
}

// Delta is a balance change for a single account.
type Delta struct {
	AccountID int64
	Amount    int64
}

// BalanceDrift reports an account whose stored balance differs from the
// balance obtained by replaying its transactions.
type BalanceDrift struct {
	AccountID int64
	Name      string
	Stored    int64
	Expected  int64
}

func (d BalanceDrift) Diff() int64 {
	return d.Expected - d.Stored
}

// TransactionFilter narrows ListTransactions. Zero values mean "no filter".
type TransactionFilter struct {
	AccountID *int64
	Type      *TxType
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// EndOfDay returns the last second of d's calendar day, the inclusive upper
// bound used when a filter's To is given as a plain date.
func EndOfDay(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 23, 59, 59, 0, d.Location())
}

// PostedSplit is a stored split together with the type of its transaction,
// which is what balance replay needs.
type PostedSplit struct {
	Split
	TxType TxType
}
