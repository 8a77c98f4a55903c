package model

import "time"

// Intent is the user-level description of a transaction that the split
// builder turns into ledger entries. Amounts are in minor currency units.
type Intent struct {
	BookID               string
	Type                 TxType
	Amount               int64
	SourceAccountID      int64
	DestinationAccountID *int64
	CategoryID           *int64
	Description          string
	Date                 time.Time
	Counterparty         *string
}

// AccountIDs returns every account the intent posts to.
func (i Intent) AccountIDs() []int64 {
	ids := []int64{i.SourceAccountID}
	if i.DestinationAccountID != nil {
		ids = append(ids, *i.DestinationAccountID)
	}
	return ids
}

// TransactionPatch is a partial update of a transaction. A nil field keeps
// the stored value. ClearCategory/ClearCounterparty/ClearDestination remove
// an optional reference, which a nil pointer cannot express.
type TransactionPatch struct {
	Type                 *TxType
	Amount               *int64
	SourceAccountID      *int64
	DestinationAccountID *int64
	ClearDestination     bool
	CategoryID           *int64
	ClearCategory        bool
	Description          *string
	Date                 *time.Time
	Counterparty         *string
	ClearCounterparty    bool
}

// Apply merges the patch into base and returns the resulting intent.
func (p TransactionPatch) Apply(base Intent) Intent {
	out := base
	if p.Type != nil {
		out.Type = *p.Type
	}
	if p.Amount != nil {
		out.Amount = *p.Amount
	}
	if p.SourceAccountID != nil {
		out.SourceAccountID = *p.SourceAccountID
	}
	switch {
	case p.ClearDestination:
		out.DestinationAccountID = nil
	case p.DestinationAccountID != nil:
		out.DestinationAccountID = p.DestinationAccountID
	}
	switch {
	case p.ClearCategory:
		out.CategoryID = nil
	case p.CategoryID != nil:
		out.CategoryID = p.CategoryID
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Date != nil {
		out.Date = *p.Date
	}
	switch {
	case p.ClearCounterparty:
		out.Counterparty = nil
	case p.Counterparty != nil:
		out.Counterparty = p.Counterparty
	}
	return out
}
