package constants

const (
	MaxNameLen = 100
)

const (
	SystemAccountOpeningBalance = "Equity:OpeningBalances"
	OpeningBalanceDescription   = "Opening Balance"
	SystemUser                  = "system"
)

var ReservedNames = map[string]bool{
	"assets":      true,
	"liabilities": true,
	"equity":      true,
}
