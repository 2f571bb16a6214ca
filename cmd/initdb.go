package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jryan2014/car-audio-events/internal/bootstrap"
	"github.com/jryan2014/car-audio-events/internal/bootstrap/logging"
	"github.com/jryan2014/car-audio-events/internal/errs"
	"github.com/jryan2014/car-audio-events/internal/infrastructure/persistence/fixture"
	sqliterepo "github.com/jryan2014/car-audio-events/internal/infrastructure/persistence/sqlite/repository"
	usecaseevents "github.com/jryan2014/car-audio-events/internal/usecase/events"
)

// initDbCmd represents the init-db command
var initDbCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Initialize database schema",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, _ *usecaseevents.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))
		logging.Info(ctx, "start init-db")

		if err := app.InitSchema(ctx); err != nil {
			logging.Error(ctx, "initialize schema failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "initialize schema")
		}

		if seed, _ := cmd.Flags().GetBool("seed"); seed {
			store := sqliterepo.NewStore(app.DB)
			for _, event := range fixture.SampleEvents() {
				if _, err := store.CreateEvent(ctx, event); err != nil {
					return errs.Wrapf(err, "seed event %s", event.ID)
				}
			}
			logging.Info(ctx, "sample events seeded", slog.Int("count", len(fixture.SampleEvents())))
		}

		logging.Info(ctx, "init-db finished", slog.String("database_dsn", app.Config.Database.DSN))
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "database schema initialized: %s\n", app.Config.Database.DSN); err != nil {
			return errs.Wrap(err, "write init-db output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(initDbCmd)
	initDbCmd.Flags().Bool("seed", false, "Insert the sample events after migration")
}
