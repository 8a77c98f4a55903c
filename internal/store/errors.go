package store

import (
	"errors"
	"fmt"

	sqlite "github.com/mattn/go-sqlite3"
)

var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrDuplicate           = errors.New("record already exists")
	ErrForeignKey          = errors.New("foreign key constraint failed")
	ErrConstraintViolation = errors.New("database constraint violation")
	ErrNestedTx            = errors.New("store is already in a transaction")
	ErrBalanceOverflow     = errors.New("balance would overflow")
)

// mapSQLiteError turns sqlite constraint failures into store sentinels so
// callers never have to inspect driver codes.
func mapSQLiteError(err error) error {
	var sqliteErr sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}

	switch sqliteErr.ExtendedCode {
	case sqlite.ErrConstraintForeignKey:
		return fmt.Errorf("%w: %v", ErrForeignKey, err)
	case sqlite.ErrConstraintUnique, sqlite.ErrConstraintPrimaryKey:
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}

	if sqliteErr.Code == sqlite.ErrConstraint {
		return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
	}
	return err
}
