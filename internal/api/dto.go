package api

import (
	"time"

	"github.com/hance08/ledger/internal/constants"
	"github.com/hance08/ledger/internal/currency"
	"github.com/hance08/ledger/internal/model"
)

// Amounts travel as decimal strings in the book's currency ("12.50").

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Field   string `json:"field,omitempty"`
	Index   *int   `json:"index,omitempty"`
}

type BookDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Currency  string `json:"currency"`
	CreatedAt string `json:"created_at"`
}

type CreateBookRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

type AccountDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Balance   string `json:"balance"`
	Archived  bool   `json:"archived"`
	CreatedAt string `json:"created_at"`
}

type CreateAccountRequest struct {
	Name           string `json:"name"`
	Kind           string `json:"kind"`
	OpeningBalance string `json:"opening_balance,omitempty"`
}

type ArchiveAccountRequest struct {
	Archived *bool `json:"archived"`
}

type CategoryDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type IntentRequest struct {
	Type                 string  `json:"type"`
	Amount               string  `json:"amount"`
	SourceAccountID      int64   `json:"source_account_id"`
	DestinationAccountID *int64  `json:"destination_account_id,omitempty"`
	CategoryID           *int64  `json:"category_id,omitempty"`
	Description          string  `json:"description"`
	Date                 string  `json:"date,omitempty"`
	Counterparty         *string `json:"counterparty,omitempty"`
}

type BatchRequest struct {
	Intents []IntentRequest `json:"intents"`
}

// PatchRequest leaves a field untouched when it is absent. The clear_*
// flags remove an optional reference.
type PatchRequest struct {
	Type                 *string `json:"type,omitempty"`
	Amount               *string `json:"amount,omitempty"`
	SourceAccountID      *int64  `json:"source_account_id,omitempty"`
	DestinationAccountID *int64  `json:"destination_account_id,omitempty"`
	ClearDestination     bool    `json:"clear_destination,omitempty"`
	CategoryID           *int64  `json:"category_id,omitempty"`
	ClearCategory        bool    `json:"clear_category,omitempty"`
	Description          *string `json:"description,omitempty"`
	Date                 *string `json:"date,omitempty"`
	Counterparty         *string `json:"counterparty,omitempty"`
	ClearCounterparty    bool    `json:"clear_counterparty,omitempty"`
}

type SplitDTO struct {
	ID         int64  `json:"id"`
	AccountID  int64  `json:"account_id"`
	CategoryID *int64 `json:"category_id,omitempty"`
	Amount     string `json:"amount"`
	Direction  string `json:"direction"`
}

type TransactionDTO struct {
	ID           int64      `json:"id"`
	BookID       string     `json:"book_id"`
	Type         string     `json:"type"`
	Amount       string     `json:"amount"`
	Description  string     `json:"description"`
	Date         string     `json:"date"`
	Counterparty *string    `json:"counterparty,omitempty"`
	CategoryID   *int64     `json:"category_id,omitempty"`
	CreatedBy    string     `json:"created_by"`
	UpdatedBy    *string    `json:"updated_by,omitempty"`
	CreatedAt    string     `json:"created_at"`
	UpdatedAt    string     `json:"updated_at"`
	Splits       []SplitDTO `json:"splits"`
}

type DriftDTO struct {
	AccountID int64  `json:"account_id"`
	Name      string `json:"name"`
	Stored    string `json:"stored"`
	Expected  string `json:"expected"`
}

type VerifyResponse struct {
	Consistent bool       `json:"consistent"`
	Drifts     []DriftDTO `json:"drifts"`
}

func toBookDTO(b *model.Book) BookDTO {
	return BookDTO{
		ID:        b.ID,
		Name:      b.Name,
		Currency:  b.Currency,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}

func toAccountDTO(a *model.Account, code string) AccountDTO {
	return AccountDTO{
		ID:        a.ID,
		Name:      a.Name,
		Kind:      string(a.Kind),
		Balance:   currency.FormatMinor(a.Balance, code),
		Archived:  a.Archived,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}

func toCategoryDTO(c *model.Category) CategoryDTO {
	return CategoryDTO{ID: c.ID, Name: c.Name, Kind: string(c.Kind)}
}

func toTransactionDTO(d *model.TransactionDetail, code string) TransactionDTO {
	dto := TransactionDTO{
		ID:           d.ID,
		BookID:       d.BookID,
		Type:         string(d.Type),
		Description:  d.Description,
		Date:         d.Date.Format(constants.DateFormat),
		Counterparty: d.Counterparty,
		CategoryID:   d.CategoryID,
		CreatedBy:    d.CreatedBy,
		UpdatedBy:    d.UpdatedBy,
		CreatedAt:    d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    d.UpdatedAt.Format(time.RFC3339),
		Splits:       make([]SplitDTO, 0, len(d.Splits)),
	}

	for _, s := range d.Splits {
		if s.Direction == model.Debit {
			dto.Amount = currency.FormatMinor(s.Amount, code)
		}
		dto.Splits = append(dto.Splits, SplitDTO{
			ID:         s.ID,
			AccountID:  s.AccountID,
			CategoryID: s.CategoryID,
			Amount:     currency.FormatMinor(s.Amount, code),
			Direction:  string(s.Direction),
		})
	}
	return dto
}
