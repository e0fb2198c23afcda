package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/mytheresa/catalog-admin/app/logging"
)

type Config struct {
	Driver string // postgres or sqlite
	DSN    string
	Env    string

	// LogLevel overrides the level derived from Env when set.
	LogLevel logger.LogLevel

	MaxAttempts int
	MaxBackoff  time.Duration
}

func dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "postgres":
		return postgres.Open(dsn), nil
	case "sqlite":
		// modernc.org/sqlite registers itself as "sqlite"; no cgo needed.
		return sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// LogLevel maps the application environment to a gorm log level.
func LogLevel(env string) logger.LogLevel {
	switch env {
	case "development":
		return logger.Info
	case "test":
		return logger.Silent
	default:
		return logger.Warn
	}
}

// Open opens a single connection pool and checks it with a ping.
func Open(ctx context.Context, cfg Config) (*gorm.DB, error) {
	d, err := dialector(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if level == 0 {
		level = LogLevel(cfg.Env)
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Connect calls Open until it succeeds, backing off exponentially between
// attempts, or until ctx is done.
func Connect(ctx context.Context, cfg Config) (*gorm.DB, error) {
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 15
	}
	maxBackoff := cfg.MaxBackoff
	if maxBackoff <= 0 {
		maxBackoff = 10 * time.Second
	}

	log := logging.Logger()
	log.Info("connecting to database", "driver", cfg.Driver)

	var err error
	for i := 1; i <= attempts; i++ {
		var db *gorm.DB
		db, err = Open(ctx, cfg)
		if err == nil {
			log.Info("database connected", "attempt", i)
			return db, nil
		}
		if i == attempts {
			break
		}

		wait := time.Duration(1<<uint(i-1)) * time.Second
		if wait > maxBackoff {
			wait = maxBackoff
		}
		log.Warn("database connection failed", "attempt", i, "retry_in", wait, "error", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempts, err)
}

// AutoMigrate creates or updates the tables for models.
func AutoMigrate(db *gorm.DB, models ...any) error {
	logging.Logger().Info("running database migrations")

	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}
	return nil
}
