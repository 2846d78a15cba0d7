package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/bizsuite/backend/internal/infrastructure/config"
	"github.com/bizsuite/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database wraps the GORM connection and its pool settings
type Database struct {
	DB  *gorm.DB
	cfg *config.DatabaseConfig
}

// NewDatabase opens a PostgreSQL connection with the configured pool limits.
// Default transactions are skipped; workflows that need atomicity run through
// an explicit TransactionScope.
func NewDatabase(cfg *config.DatabaseConfig, logCfg *config.LogConfig, zapLogger *zap.Logger) (*Database, error) {
	gormLog := logger.NewGormLogger(zapLogger, logger.MapGormLogLevel(logCfg.Level))

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                 gormLog,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{DB: db, cfg: cfg}, nil
}

// NewDatabaseWithDB wraps an existing GORM connection. Used by tests that run
// against sqlite or sqlmock.
func NewDatabaseWithDB(db *gorm.DB) *Database {
	return &Database{DB: db}
}

// Ping verifies the database connection is alive
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// PingContext verifies the database connection is alive, honoring ctx
func (d *Database) PingContext(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection pool
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Stats returns connection pool statistics for health reporting
func (d *Database) Stats() (map[string]any, error) {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return nil, err
	}
	stats := sqlDB.Stats()
	return map[string]any{
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
		"idle":             stats.Idle,
		"wait_count":       stats.WaitCount,
		"wait_duration":    stats.WaitDuration.String(),
	}, nil
}

// SetLogLevel changes the GORM log level at runtime
func (d *Database) SetLogLevel(level gormlogger.LogLevel) {
	d.DB.Logger = d.DB.Logger.LogMode(level)
}
