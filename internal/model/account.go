package model

import "time"

type AccountKind string

const (
	KindAsset     AccountKind = "ASSET"
	KindLiability AccountKind = "LIABILITY"
	KindEquity    AccountKind = "EQUITY"
)

func (k AccountKind) Valid() bool {
	switch k {
	case KindAsset, KindLiability, KindEquity:
		return true
	}
	return false
}

type Account struct {
	ID        int64
	BookID    string
	Name      string
	Kind      AccountKind
	Balance   int64
	Archived  bool
	CreatedAt time.Time
}

type Book struct {
	ID        string
	Name      string
	Currency  string
	CreatedAt time.Time
}

type CategoryKind string

const (
	CategoryIncome  CategoryKind = "INCOME"
	CategoryExpense CategoryKind = "EXPENSE"
)

func (k CategoryKind) Valid() bool {
	return k == CategoryIncome || k == CategoryExpense
}

type Category struct {
	ID        int64
	BookID    string
	Name      string
	Kind      CategoryKind
	CreatedAt time.Time
}
