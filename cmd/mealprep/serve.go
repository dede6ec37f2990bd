package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vbonduro/mealprep/internal/kitchen"
	"github.com/vbonduro/mealprep/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		sweepCtx, cancelSweep := context.WithCancel(ctx)
		defer cancelSweep()
		go kitchen.RunSweeper(sweepCtx, a.store, a.cfg.SweepInterval, a.logger)

		server := web.NewServer(a.service, a.logger)
		if err := server.ListenAndServe(ctx, a.cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("server error", "error", err)
			return err
		}
		a.logger.Info("server stopped")
		return nil
	},
}
