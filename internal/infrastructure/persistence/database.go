package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/erp/posting/internal/infrastructure/config"
	"github.com/erp/posting/internal/infrastructure/logger"
	"github.com/erp/posting/internal/infrastructure/persistence/tenant"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Database is the gorm handle shared by repositories and transaction scopes.
type Database struct {
	DB *gorm.DB
}

// Plugin hooks into the connection once it is open. Tracing and pool
// metrics come in this way.
type Plugin interface {
	Register(db *gorm.DB) error
}

type PluginFunc func(db *gorm.DB) error

func (f PluginFunc) Register(db *gorm.DB) error { return f(db) }

// NewDatabase connects to PostgreSQL using the [database] settings.
func NewDatabase(cfg *config.DatabaseConfig, zapLogger *zap.Logger, plugins ...Plugin) (*Database, error) {
	return Open(postgres.Open(cfg.DSN()), cfg, zapLogger, plugins...)
}

// Open connects through any dialector, so tests can pass sqlite or sqlmock.
// The tenant filter is always installed: scoped tables refuse statements
// whose context carries no tenant.
func Open(dialector gorm.Dialector, cfg *config.DatabaseConfig, zapLogger *zap.Logger, plugins ...Plugin) (*Database, error) {
	if zapLogger == nil {
		zapLogger = zap.NewNop()
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.NewGormLogger(zapLogger, logger.MapGormLogLevel(cfg.LogLevel)),
		SkipDefaultTransaction: true,
		NowFunc:                func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	d := &Database{DB: db}
	pool, err := d.pool()
	if err != nil {
		return nil, err
	}
	configurePool(pool, cfg)

	if err := tenant.EnableAutoTenantFilter(db, true); err != nil {
		return nil, fmt.Errorf("install tenant filter: %w", err)
	}
	for _, p := range plugins {
		if err := p.Register(db); err != nil {
			return nil, fmt.Errorf("register gorm plugin: %w", err)
		}
	}
	if err := pool.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return d, nil
}

// configurePool applies the pool limits. Zero connection counts keep the
// database/sql defaults; lifetimes are in minutes.
func configurePool(pool *sql.DB, cfg *config.DatabaseConfig) {
	if cfg.MaxOpenConns > 0 {
		pool.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		pool.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	pool.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	pool.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)
}

func (d *Database) pool() (*sql.DB, error) {
	pool, err := d.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap sql.DB: %w", err)
	}
	return pool, nil
}

func (d *Database) Close() error {
	pool, err := d.pool()
	if err != nil {
		return err
	}
	return pool.Close()
}

// Ping backs the readiness probe.
func (d *Database) Ping(ctx context.Context) error {
	pool, err := d.pool()
	if err != nil {
		return err
	}
	return pool.PingContext(ctx)
}

func (d *Database) Stats() (sql.DBStats, error) {
	pool, err := d.pool()
	if err != nil {
		return sql.DBStats{}, err
	}
	return pool.Stats(), nil
}
