// Package gormrepo implements the domain repositories with GORM over
// PostgreSQL (primary plus replicas) or an embedded SQLite file.
package gormrepo

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"erp/config"
	"erp/internal/domain/lifecycle"
	"erp/internal/infra/persistence/model"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	dbPoolMonitorInterval       = 5 * time.Second
	dbPoolWarnDurationThreshold = 50 * time.Millisecond
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured database and ties its lifetime to the fx app.
func New(params Params) (*gorm.DB, error) {
	gormLogger := newGormSlogLogger(params.Logger, params.Config)

	var (
		db  *gorm.DB
		err error
	)

	switch driver := databaseDriver(params.Config); driver {
	case config.DatabaseDriverPostgres:
		db, err = pgLib.New(params.Config.Postgres)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create PostgreSQL client")
		}
		// Map driver errors (unique violations) to gorm.ErrDuplicatedKey and friends.
		db.Config.TranslateError = true
		db = db.Session(&gorm.Session{
			// Disable GORM's per-statement implicit transaction.
			// Multi-step operations use txManager.Execute explicitly.
			SkipDefaultTransaction: true,
			Logger:                 gormLogger,
		})

	case config.DatabaseDriverSQLite:
		db, err = OpenSQLite(params.Config.Database.SQLiteDSN, gormLogger)
		if err != nil {
			return nil, err
		}

	default:
		return nil, errors.Errorf("unsupported database driver: %s", driver)
	}

	if params.Config.Database != nil && params.Config.Database.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sql.DB")
	}

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping database")
			}

			go monitorDBPool(monitorCtx, params.Logger, sqlDB, dbPoolMonitorInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()

			return sqlDB.Close()
		},
	})

	return db, nil
}

// OpenSQLite opens an embedded database. SQLite serialises writers, and an
// in-memory database exists per connection, so the pool is pinned to one connection.
func OpenSQLite(dsn string, gormLogger logger.Interface) (*gorm.DB, error) {
	if dsn == "" {
		dsn = ":memory:"
	}
	if gormLogger == nil {
		gormLogger = logger.Discard
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 gormLogger,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open SQLite database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get SQLite sql.DB")
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// AutoMigrate creates or updates the tables and indexes.
func AutoMigrate(db *gorm.DB) error {
	return errors.Wrap(db.AutoMigrate(&model.UserModel{}, &model.ItemModel{}), "failed to migrate schema")
}

func databaseDriver(cfg *config.Config) string {
	if cfg.Database == nil || cfg.Database.Driver == "" {
		return config.DatabaseDriverPostgres
	}

	return cfg.Database.Driver
}

func monitorDBPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, interval time.Duration) {
	if logger == nil || sqlDB == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			waitDelta := cur.WaitCount - prev.WaitCount
			waitDurationDelta := cur.WaitDuration - prev.WaitDuration

			if waitDelta > 0 {
				attrs := []slog.Attr{
					slog.Int64("waitCountDelta", waitDelta),
					slog.Duration("waitDurationDelta", waitDurationDelta),
					slog.Duration("avgWait", waitDurationDelta/time.Duration(waitDelta)),
					slog.Int("maxOpenConns", cur.MaxOpenConnections),
					slog.Int("openConns", cur.OpenConnections),
					slog.Int("inUseConns", cur.InUse),
					slog.Int("idleConns", cur.Idle),
				}
				if waitDurationDelta >= dbPoolWarnDurationThreshold {
					logger.LogAttrs(ctx, slog.LevelWarn, "Database pool wait detected", attrs...)
				} else {
					logger.LogAttrs(ctx, slog.LevelDebug, "Database pool wait observed", attrs...)
				}
			}

			prev = cur
		}
	}
}

// Module provides the database and repositories
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(
		New,
		NewTransactionManager,
		NewUserRepository,
		NewItemRepository,
		NewDatabaseHealth,
	),
)
