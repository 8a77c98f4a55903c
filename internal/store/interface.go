package store

import (
	"context"
	"time"

	"github.com/hance08/ledger/internal/model"
)

type BookRepository interface {
	CreateBook(ctx context.Context, book *model.Book) error
	GetBook(ctx context.Context, id string) (*model.Book, error)
	ListBooks(ctx context.Context) ([]*model.Book, error)
}

type AccountRepository interface {
	CreateAccount(ctx context.Context, acc *model.Account) (int64, error)
	GetAccountByID(ctx context.Context, bookID string, id int64) (*model.Account, error)
	GetAccountByName(ctx context.Context, bookID, name string) (*model.Account, error)
	AccountExists(ctx context.Context, bookID, name string) (bool, error)
	ListAccounts(ctx context.Context, bookID string) ([]*model.Account, error)
	SetAccountArchived(ctx context.Context, bookID string, id int64, archived bool) error
	DeleteAccount(ctx context.Context, bookID string, id int64) error
	CountSplitsByAccount(ctx context.Context, accountID int64) (int64, error)

	// AdjustAccountBalance adds delta to the stored balance. It is the only
	// statement that writes accounts.balance.
	AdjustAccountBalance(ctx context.Context, bookID string, accountID, delta int64) error
}

type CategoryRepository interface {
	CreateCategory(ctx context.Context, c *model.Category) (int64, error)
	GetCategoryByID(ctx context.Context, bookID string, id int64) (*model.Category, error)
	GetCategoryByName(ctx context.Context, bookID, name string) (*model.Category, error)
	ListCategories(ctx context.Context, bookID string) ([]*model.Category, error)
}

// TransactionHeader enumerates every mutable column of a transaction row.
type TransactionHeader struct {
	Type         model.TxType
	Description  string
	Date         time.Time
	Counterparty *string
	CategoryID   *int64
	UpdatedBy    string
	UpdatedAt    time.Time
}

type TransactionRepository interface {
	InsertTransaction(ctx context.Context, tx *model.Transaction) (int64, error)
	GetTransaction(ctx context.Context, bookID string, id int64) (*model.Transaction, error)
	ListTransactions(ctx context.Context, bookID string, filter model.TransactionFilter) ([]*model.Transaction, error)
	UpdateTransactionHeader(ctx context.Context, bookID string, id int64, h TransactionHeader) error
	DeleteTransaction(ctx context.Context, bookID string, id int64) error

	InsertSplits(ctx context.Context, txID int64, splits []model.Split) ([]model.Split, error)
	GetSplitsByTransaction(ctx context.Context, txID int64) ([]model.Split, error)
	DeleteSplitsByTransaction(ctx context.Context, txID int64) (int64, error)
	ListPostedSplits(ctx context.Context, bookID string) ([]model.PostedSplit, error)
}

type Repository interface {
	BookRepository
	AccountRepository
	CategoryRepository
	TransactionRepository

	// ExecTx runs fn against a repository bound to one database transaction.
	// The transaction commits only if fn returns nil.
	ExecTx(ctx context.Context, fn func(Repository) error) error
	Close() error
}
