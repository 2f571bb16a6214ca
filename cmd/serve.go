package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jryan2014/car-audio-events/internal/bootstrap"
	"github.com/jryan2014/car-audio-events/internal/bootstrap/logging"
	"github.com/jryan2014/car-audio-events/internal/errs"
	"github.com/jryan2014/car-audio-events/internal/transport/httpapi"
	usecaseevents "github.com/jryan2014/car-audio-events/internal/usecase/events"
)

// serveCmd runs the HTTP API with the MCP endpoint mounted at /mcp.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc *usecaseevents.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		server := &http.Server{
			Addr:              app.Config.HTTP.Addr,
			Handler:           httpapi.NewRouter(svc, app.Config.HTTP.APIToken),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		serveErr := make(chan error, 1)
		go func() {
			logging.Info(ctx, "http server listening", slog.String("addr", server.Addr))
			serveErr <- server.ListenAndServe()
		}()

		select {
		case err := <-serveErr:
			return errs.Wrap(err, "serve http")
		case <-ctx.Done():
		}

		logging.Info(ctx, "shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return errs.Wrap(err, "shutdown http server")
		}

		if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errs.Wrap(err, "serve http")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
