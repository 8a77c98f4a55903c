package validation

import (
	"fmt"
	"strings"

	"github.com/hance08/ledger/internal/constants"
	"github.com/hance08/ledger/internal/model"
)

// ValidateAccountName validates a user supplied account name.
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("account name can't be empty")
	}

	if name == constants.SystemAccountOpeningBalance {
		return fmt.Errorf("'%s' is a reserved system account", name)
	}

	if constants.ReservedNames[strings.ToLower(name)] {
		return fmt.Errorf("'%s' is a reserved root account name", name)
	}

	if len(name) > constants.MaxNameLen {
		return fmt.Errorf("account name too long (max %d characters)", constants.MaxNameLen)
	}
	return nil
}

func ValidateAccountKind(kind string) error {
	if !model.AccountKind(strings.ToUpper(kind)).Valid() {
		return fmt.Errorf("invalid account kind '%s' (must be ASSET, LIABILITY or EQUITY)", kind)
	}
	return nil
}

func ValidateCategoryName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("category name can't be empty")
	}
	if len(name) > constants.MaxNameLen {
		return fmt.Errorf("category name too long (max %d characters)", constants.MaxNameLen)
	}
	return nil
}

func ValidateBookName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("book name can't be empty")
	}
	if len(name) > constants.MaxNameLen {
		return fmt.Errorf("book name too long (max %d characters)", constants.MaxNameLen)
	}
	return nil
}

// ValidateCurrency validates a currency code format
func ValidateCurrency(currency string) error {
	currency = strings.TrimSpace(strings.ToUpper(currency))

	if currency == "" {
		return nil // Empty is allowed (will use default)
	}

	if len(currency) != 3 {
		return fmt.Errorf("currency code must be 3 characters (e.g. USD)")
	}

	for _, c := range currency {
		if c < 'A' || c > 'Z' {
			return fmt.Errorf("currency code must contain only letters")
		}
	}

	return nil
}
