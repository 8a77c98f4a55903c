package constants

const (
	// Date Layout
	DateFormat = "2006-01-02"

	DefaultListLimit = 50
	MaxListLimit     = 500
)
