package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hance08/ledger/internal/config"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/data/ledger.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data/ledger.db"), got)

	got, err = ExpandPath("~")
	require.NoError(t, err)
	assert.Equal(t, home, got)

	got, err = ExpandPath("/tmp/ledger.db")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/ledger.db", got)
}

func TestNewApp(t *testing.T) {
	cfg := config.NewDefault()
	cfg.Database.Path = filepath.Join(t.TempDir(), "nested", "ledger.db")
	cfg.Log.Level = "off"

	application, cleanup, err := NewApp(cfg, os.DirFS("../.."))
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, cfg.Database.Path, application.DBPath)
	assert.FileExists(t, cfg.Database.Path)

	books, err := application.Service.Book.ListBooks(t.Context())
	require.NoError(t, err)
	assert.Empty(t, books)
}
