// Package logging builds the structured logger shared by services and the
// HTTP layer.
package logging

import (
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/hance08/ledger/internal/config"
)

func New(cfg config.LogConfig, w io.Writer) *pterm.Logger {
	logger := pterm.DefaultLogger.
		WithWriter(w).
		WithLevel(ParseLevel(cfg.Level))

	if strings.EqualFold(cfg.Format, "json") {
		logger = logger.WithFormatter(pterm.LogFormatterJSON)
	}
	return logger
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *pterm.Logger {
	return pterm.DefaultLogger.WithWriter(io.Discard).WithLevel(pterm.LogLevelDisabled)
}

func ParseLevel(level string) pterm.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return pterm.LogLevelTrace
	case "debug":
		return pterm.LogLevelDebug
	case "warn", "warning":
		return pterm.LogLevelWarn
	case "error":
		return pterm.LogLevelError
	case "off", "disabled":
		return pterm.LogLevelDisabled
	default:
		return pterm.LogLevelInfo
	}
}
