package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sangkips/stockroom-api/internal/config"
	"github.com/sangkips/stockroom-api/internal/domain/entity"
	applog "github.com/sangkips/stockroom-api/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// zapWriter feeds gorm's logger into the application logger
type zapWriter struct {
	log *applog.Logger
}

func (w zapWriter) Printf(format string, args ...interface{}) {
	w.log.Infof(format, args...)
}

func gormLogger(log *applog.Logger, debug bool) logger.Interface {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return logger.New(zapWriter{log: log.WithComponent("gorm")}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

// NewPostgresDB opens the connection pool and waits for the database to
// answer
func NewPostgresDB(ctx context.Context, cfg *config.DatabaseConfig, log *applog.Logger, debug bool) (*gorm.DB, error) {
	db, err := Open(cfg, log, debug)
	if err != nil {
		return nil, err
	}
	if err := WaitReady(ctx, db, cfg, log); err != nil {
		_ = Close(db)
		return nil, err
	}
	return db, nil
}

// Open builds the connection pool without contacting the server. Queries fail
// until the database becomes reachable.
func Open(cfg *config.DatabaseConfig, log *applog.Logger, debug bool) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger:               gormLogger(log, debug),
		TranslateError:       true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db, nil
}

// WaitReady pings the database with exponential backoff. A ConnectAttempts
// of zero keeps trying until ctx is done.
func WaitReady(ctx context.Context, db *gorm.DB, cfg *config.DatabaseConfig, log *applog.Logger) error {
	backoff := cfg.ConnectBackoff
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}

	var lastErr error
	for attempt := 1; cfg.ConnectAttempts <= 0 || attempt <= cfg.ConnectAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := Ping(ctx, db)
		if err == nil {
			log.Infow("connected to PostgreSQL", "host", cfg.Host, "database", cfg.Name, "attempt", attempt)
			return nil
		}
		lastErr = err

		if attempt == cfg.ConnectAttempts {
			break
		}
		log.Warnw("database not reachable, retrying", "attempt", attempt, "retry_in", backoff.String(), "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff *= 2
		if cfg.ConnectMaxWait > 0 && backoff > cfg.ConnectMaxWait {
			backoff = cfg.ConnectMaxWait
		}
	}

	return fmt.Errorf("failed to connect to database after %d attempts: %w", cfg.ConnectAttempts, lastErr)
}

// Ping checks that the database answers within a short deadline
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// partialIndexes are applied after AutoMigrate. A single-column uniqueIndex
// tag makes gorm add a column-wide UNIQUE, so these are written by hand.
var partialIndexes = []string{
	// at most one active price list entry per product
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_price_lists_active_product ON price_lists (product_id) WHERE is_active`,
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB, log *applog.Logger) error {
	log.Info("running database migrations")

	err := db.AutoMigrate(
		&entity.User{},

		// Catalog
		&entity.Category{},
		&entity.Supplier{},
		&entity.Product{},
		&entity.Customer{},

		// Stock ledger
		&entity.Batch{},
		&entity.BatchItem{},
		&entity.StockMovement{},
		&entity.PriceListEntry{},

		// Documents
		&entity.PurchaseRequest{},
		&entity.PurchaseRequestItem{},
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.Payment{},
		&entity.Return{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	for _, stmt := range partialIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	log.Info("database migrations completed")
	return nil
}
