// Package importer reads a YAML batch file and posts its entries to a book
// as one all-or-nothing batch.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hance08/ledger/internal/constants"
	"github.com/hance08/ledger/internal/currency"
	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/service"
)

// File is the on-disk batch format.
//
//	book: Household
//	transactions:
//	  - type: expense
//	    amount: "12.50"
//	    account: Checking
//	    category: Food
//	    date: 2026-03-14
type File struct {
	Book         string  `yaml:"book"`
	Transactions []Entry `yaml:"transactions"`
}

type Entry struct {
	Type         string `yaml:"type"`
	Amount       string `yaml:"amount"`
	Account      string `yaml:"account"`
	To           string `yaml:"to"`
	Category     string `yaml:"category"`
	Description  string `yaml:"description"`
	Date         string `yaml:"date"`
	Counterparty string `yaml:"counterparty"`
}

// Parse decodes a batch file. Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("batch file is empty")
		}
		return nil, fmt.Errorf("failed to parse batch file: %w", err)
	}
	if len(f.Transactions) == 0 {
		return nil, fmt.Errorf("batch file has no transactions")
	}
	return &f, nil
}

type Importer struct {
	svc *service.Service

	accounts   map[string]int64
	categories map[string]int64
}

func New(svc *service.Service) *Importer {
	return &Importer{svc: svc}
}

// Intents resolves account and category names against the book and
// converts every entry into an intent. Errors carry the entry index.
func (im *Importer) Intents(ctx context.Context, book *model.Book, f *File) ([]model.Intent, error) {
	im.accounts = make(map[string]int64)
	im.categories = make(map[string]int64)

	intents := make([]model.Intent, 0, len(f.Transactions))
	for i, e := range f.Transactions {
		intent, err := im.intent(ctx, book, e)
		if err != nil {
			return nil, indexed(err, i)
		}
		intents = append(intents, intent)
	}
	return intents, nil
}

// Import parses r, resolves it and posts it with CreateBatch.
func (im *Importer) Import(ctx context.Context, book *model.Book, r io.Reader, creator string) ([]*model.TransactionDetail, error) {
	f, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrValidation, err)
	}
	if f.Book != "" && f.Book != book.Name && f.Book != book.ID {
		return nil, fmt.Errorf("%w: batch file targets book '%s', not '%s'", model.ErrValidation, f.Book, book.Name)
	}

	intents, err := im.Intents(ctx, book, f)
	if err != nil {
		return nil, err
	}
	return im.svc.Transaction.CreateBatch(ctx, book.ID, intents, creator)
}

func (im *Importer) intent(ctx context.Context, book *model.Book, e Entry) (model.Intent, error) {
	intent := model.Intent{
		BookID:      book.ID,
		Type:        model.TxType(strings.ToUpper(strings.TrimSpace(e.Type))),
		Description: strings.TrimSpace(e.Description),
	}
	if !intent.Type.Valid() {
		return intent, &model.IntentError{Field: "type", Reason: fmt.Sprintf("unknown transaction type %q", e.Type)}
	}

	amount, err := currency.ParseMinor(e.Amount, book.Currency)
	if err != nil {
		return intent, &model.IntentError{Field: "amount", Reason: err.Error()}
	}
	intent.Amount = amount

	if e.Date != "" {
		date, err := time.Parse(constants.DateFormat, strings.TrimSpace(e.Date))
		if err != nil {
			return intent, &model.IntentError{Field: "date", Reason: fmt.Sprintf("expected %s", constants.DateFormat)}
		}
		intent.Date = date
	}

	if cp := strings.TrimSpace(e.Counterparty); cp != "" {
		intent.Counterparty = &cp
	}

	if intent.SourceAccountID, err = im.account(ctx, book.ID, e.Account); err != nil {
		return intent, err
	}

	if e.To != "" {
		dest, err := im.account(ctx, book.ID, e.To)
		if err != nil {
			return intent, err
		}
		intent.DestinationAccountID = &dest
	}

	if e.Category != "" {
		cat, err := im.category(ctx, book.ID, e.Category)
		if err != nil {
			return intent, err
		}
		intent.CategoryID = &cat
	}

	return intent, nil
}

func (im *Importer) account(ctx context.Context, bookID, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, &model.IntentError{Field: "account", Reason: "is required"}
	}
	if id, ok := im.accounts[name]; ok {
		return id, nil
	}

	acc, err := im.svc.Account.GetAccountByName(ctx, bookID, name)
	if errors.Is(err, model.ErrNotFound) {
		return 0, fmt.Errorf("%w: account '%s'", model.ErrReferenceNotFound, name)
	}
	if err != nil {
		return 0, err
	}
	im.accounts[name] = acc.ID
	return acc.ID, nil
}

func (im *Importer) category(ctx context.Context, bookID, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if id, ok := im.categories[name]; ok {
		return id, nil
	}

	cat, err := im.svc.Category.GetCategoryByName(ctx, bookID, name)
	if errors.Is(err, model.ErrNotFound) {
		return 0, fmt.Errorf("%w: category '%s'", model.ErrReferenceNotFound, name)
	}
	if err != nil {
		return 0, err
	}
	im.categories[name] = cat.ID
	return cat.ID, nil
}

func indexed(err error, i int) error {
	var ie *model.IntentError
	if errors.As(err, &ie) {
		return &model.IntentError{Index: i, Field: ie.Field, Reason: ie.Reason}
	}
	return fmt.Errorf("entry #%d: %w", i+1, err)
}
