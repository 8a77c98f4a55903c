package views

import (
	"fmt"

	"github.com/hance08/ledger/internal/currency"
	"github.com/hance08/ledger/internal/model"
)

// Lookup resolves the ids stored on splits into display names.
type Lookup struct {
	Currency   string
	accounts   map[int64]string
	categories map[int64]string
}

func NewLookup(book *model.Book, accounts []*model.Account, categories []*model.Category) *Lookup {
	l := &Lookup{
		Currency:   book.Currency,
		accounts:   make(map[int64]string, len(accounts)),
		categories: make(map[int64]string, len(categories)),
	}
	for _, a := range accounts {
		l.accounts[a.ID] = a.Name
	}
	for _, c := range categories {
		l.categories[c.ID] = c.Name
	}
	return l
}

func (l *Lookup) Account(id int64) string {
	if name, ok := l.accounts[id]; ok {
		return name
	}
	return fmt.Sprintf("[ID: %d]", id)
}

func (l *Lookup) Category(id *int64) string {
	if id == nil {
		return "-"
	}
	if name, ok := l.categories[*id]; ok {
		return name
	}
	return fmt.Sprintf("[ID: %d]", *id)
}

func (l *Lookup) Money(minor int64) string {
	return fmt.Sprintf("%s %s", currency.FormatMinor(minor, l.Currency), l.Currency)
}
