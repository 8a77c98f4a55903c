package app

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"

	"github.com/hance08/ledger/internal/config"
	"github.com/hance08/ledger/internal/logging"
	"github.com/hance08/ledger/internal/service"
	"github.com/hance08/ledger/internal/store"
)

type App struct {
	Config  *config.Config
	Service *service.Service
	Store   store.Repository
	Logger  *pterm.Logger
	DBPath  string
}

// NewApp initialize logger, database and services, then return App entity
func NewApp(cfg *config.Config, migrationFS fs.FS) (*App, func(), error) {
	logger := logging.New(cfg.Log, os.Stderr)

	dbPath, err := DBPath(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dbStore, err := store.NewStore(dbPath, migrationFS)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	logger.Debug("database opened", logger.Args("path", dbPath))

	svc := service.NewService(dbStore, cfg, logger)

	cleanup := func() {
		if err := dbStore.Close(); err != nil {
			logger.Error("closing database", logger.Args("error", err))
		}
	}

	return &App{
		Config:  cfg,
		Service: svc,
		Store:   dbStore,
		Logger:  logger,
		DBPath:  dbPath,
	}, cleanup, nil
}

// DBPath returns the configured database path with "~" expanded, or the
// default location inside the app data directory.
func DBPath(cfg *config.Config) (string, error) {
	if cfg.Database.Path != "" {
		return ExpandPath(cfg.Database.Path)
	}
	appDir, err := AppDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, "ledger.db"), nil
}

func AppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, ".ledger"), nil
	}

	return filepath.Join(configDir, "ledger"), nil
}

func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return home, nil
		}
		if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~\\") {
			return filepath.Join(home, path[2:]), nil
		}
	}
	return path, nil
}
