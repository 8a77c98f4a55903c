package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hance08/ledger/internal/app"
	"github.com/hance08/ledger/internal/ui"
	"github.com/hance08/ledger/internal/ui/views"
)

type infoRunner struct {
	app *app.App
}

func NewInfoCmd(application *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display application information",
		Long:  `Display current configuration, database path, and system details.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &infoRunner{
				app: application,
			}

			return runner.Run(cmd)
		},
	}
}

func (r *infoRunner) Run(cmd *cobra.Command) error {
	cfg := r.app.Config

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = "(None, using defaults)"
	}

	dbExists := false
	if _, err := os.Stat(r.app.DBPath); err == nil {
		dbExists = true
	}

	books, err := r.app.Service.Book.ListBooks(cmd.Context())
	if err != nil {
		return err
	}

	items := views.SystemInfoItem{
		ConfigPath:      configPath,
		DBPath:          r.app.DBPath,
		DBExists:        dbExists,
		DefaultCurrency: cfg.Defaults.Currency,
		DefaultBook:     cfg.Defaults.Book,
		DefaultUser:     cfg.Defaults.User,
		ServerAddr:      cfg.Server.Addr,
		LogLevel:        cfg.Log.Level,
		Books:           len(books),
		AppDataDir:      appDataDirOrUnknown(),
	}

	ui.PrintL1Title("ledger system info")
	return views.RenderSystemInfo(items)
}

func appDataDirOrUnknown() string {
	dir, err := app.AppDataDir()
	if err != nil {
		return "Unknown"
	}
	return dir
}
