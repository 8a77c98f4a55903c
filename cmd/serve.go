package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hance08/ledger/internal/api"
	"github.com/hance08/ledger/internal/app"
)

type serveFlags struct {
	Addr string
}

type serveRunner struct {
	app   *app.App
	flags *serveFlags
}

func NewServeCmd(application *app.App) *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Serve the ledger engine as a JSON API.

The X-User-ID request header names the user recorded as creator or editor
of each transaction.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &serveRunner{
				app:   application,
				flags: flags,
			}
			return runner.Run()
		},
	}

	cmd.Flags().StringVar(&flags.Addr, "addr", "", "Listen address (overrides server.addr)")

	return cmd
}

func (r *serveRunner) Run() error {
	cfg := r.app.Config.Server
	if r.flags.Addr != "" {
		cfg.Addr = r.flags.Addr
	}
	logger := r.app.Logger

	handler := api.NewHandler(r.app.Service, logger)
	server := api.NewServer(handler, cfg)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", logger.Args("addr", cfg.Addr, "db", r.app.DBPath))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-quit:
	}

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
