package bootstrap

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/jryan2014/car-audio-events/internal/bootstrap/config"
	"github.com/jryan2014/car-audio-events/internal/bootstrap/database"
	"github.com/jryan2014/car-audio-events/internal/bootstrap/logging"
	cacheinfra "github.com/jryan2014/car-audio-events/internal/infrastructure/cache"
	"github.com/jryan2014/car-audio-events/internal/infrastructure/persistence/fixture"
	sqliterepo "github.com/jryan2014/car-audio-events/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "github.com/jryan2014/car-audio-events/internal/infrastructure/persistence/sqlite/uow"
	"github.com/jryan2014/car-audio-events/internal/ports"
	"github.com/jryan2014/car-audio-events/internal/usecase/events"
)

// Module wires config, database, the store implementation selected by
// the database driver, and the events service.
var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Provide(provideDatabase),
	fx.Provide(provideApp),
	fx.Provide(provideStore),
	fx.Provide(provideUnitOfWork),
	fx.Provide(provideCache),
	fx.Provide(events.NewService),
)

type configParams struct {
	fx.In

	Ctx        context.Context
	ConfigFile string `name:"configFile"`
}

func provideConfig(p configParams) (config.Config, error) {
	ctx := logging.WithAttrs(p.Ctx, slog.String("component", "bootstrap.fx"))
	return config.Load(ctx, p.ConfigFile)
}

// provideDatabase returns a nil handle for the fixture driver; the
// store providers branch on the same config.
func provideDatabase(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	if cfg.Database.IsFixture() {
		return nil, nil
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"))

	db, err := database.Open(logCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return db, nil
}

func provideStore(cfg config.Config, db *gorm.DB) ports.Store {
	if cfg.Database.IsFixture() {
		return fixture.NewStore()
	}
	return sqliterepo.NewStore(db)
}

func provideUnitOfWork(cfg config.Config, db *gorm.DB) ports.UnitOfWork {
	if cfg.Database.IsFixture() {
		return fixture.NewUnitOfWork()
	}
	return sqliteuow.NewUnitOfWork(db)
}

func provideCache(cfg config.Config, db *gorm.DB) ports.Cache {
	if cfg.Database.IsFixture() {
		return nil
	}
	return cacheinfra.NewSQLiteCache(db)
}

func provideApp(cfg config.Config, db *gorm.DB) *App {
	return &App{
		Config: cfg,
		DB:     db,
	}
}
