package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/networkteam/pagetour/dashboard"
	"github.com/networkteam/pagetour/demoapp"
	"github.com/networkteam/pagetour/history"
)

func newReportCmd(a *app) *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Work with recorded runs",
	}

	var addr string
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the reports of recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.Open(cmd.Context(), a.cfg.Output.HistoryPath, history.Options{Logger: a.logger})
			if err != nil {
				return err
			}
			defer store.Close()

			handler := dashboard.NewHandler(store,
				dashboard.WithTitle(a.cfg.Report.Title),
				dashboard.WithScreenshotsDir(a.cfg.Output.ScreenshotsDir),
			)
			printf(cmd, "Serving reports on http://%s/\n", addr)
			return serve(cmd.Context(), addr, handler, a.logger)
		},
	}
	serveCmd.Flags().StringVar(&addr, "addr", "localhost:8090", "listen address")

	reportCmd.AddCommand(serveCmd)
	return reportCmd
}

func newDemoCmd(a *app) *cobra.Command {
	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Local replica of the demo site",
	}

	var addr string
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo site, use with --base-url http://<addr>",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := demoapp.New(demoapp.Options{Logger: a.logger})
			printf(cmd, "Serving demo site on http://%s/ (user %s, password %s)\n", addr, demoapp.DefaultUsername, demoapp.DefaultPassword)
			return serve(cmd.Context(), addr, app, a.logger)
		},
	}
	serveCmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")

	demoCmd.AddCommand(serveCmd)
	return demoCmd
}

// serve runs handler on addr until ctx is done.
func serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
