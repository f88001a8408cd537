package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/erp/posting/internal/infrastructure/config"
	"github.com/erp/posting/internal/infrastructure/logger"
	"github.com/erp/posting/internal/infrastructure/persistence/models"
	"github.com/erp/posting/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openSQLite(t *testing.T, plugins ...Plugin) *Database {
	t.Helper()
	db, err := Open(sqlite.Open(":memory:"), &config.DatabaseConfig{MaxOpenConns: 1, LogLevel: "silent"}, zaptest.NewLogger(t), plugins...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpen_InstallsTenantFilter(t *testing.T) {
	db := openSQLite(t)
	require.NoError(t, db.DB.AutoMigrate(&models.LedgerModel{}))
	assert.True(t, db.DB.Migrator().HasTable(&models.LedgerModel{}))

	var count int64
	err := db.DB.WithContext(context.Background()).Model(&models.LedgerModel{}).Count(&count).Error
	require.ErrorIs(t, err, tenant.ErrTenantIDRequired)

	ctx := logger.WithTenantID(context.Background(), uuid.NewString())
	require.NoError(t, db.DB.WithContext(ctx).Model(&models.LedgerModel{}).Count(&count).Error)
}

func TestOpen_RegistersPlugins(t *testing.T) {
	called := false
	openSQLite(t, PluginFunc(func(*gorm.DB) error {
		called = true
		return nil
	}))
	assert.True(t, called)

	_, err := Open(sqlite.Open(":memory:"), &config.DatabaseConfig{}, nil, PluginFunc(func(*gorm.DB) error {
		return errors.New("boom")
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestDatabase_PingAndStats(t *testing.T) {
	db := openSQLite(t)
	require.NoError(t, db.Ping(context.Background()))

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MaxOpenConnections)
	assert.Equal(t, stats.OpenConnections, stats.InUse+stats.Idle)
}
