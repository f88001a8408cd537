package event

import (
	"context"
	"testing"
	"time"

	"github.com/erp/posting/internal/domain/accounting"
	"github.com/erp/posting/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOutboxTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.OutboxEntryModel{}))
	return db
}

func TestOutboxPublisher_PublishWithTx(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	voucher := accounting.NewVoucher(tenantID, "SI-1", accounting.VoucherSalesInvoice, time.Now())
	posted := accounting.NewVoucherPostedEvent(voucher, 4, decimal.RequireFromString("1180.00"), []uuid.UUID{uuid.New()})

	t.Run("writes pending entries inside the transaction", func(t *testing.T) {
		db := setupOutboxTestDB(t)
		publisher := NewOutboxPublisher(NewEventSerializer())

		err := db.Transaction(func(tx *gorm.DB) error {
			return publisher.Writer(tx).Write(ctx, posted)
		})
		require.NoError(t, err)

		repo := NewGormOutboxRepository(db)
		pending, err := repo.CountPending(ctx, tenantID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), pending)

		entries, err := repo.FindByAggregate(ctx, tenantID, voucher.ID)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, accounting.EventTypeVoucherPosted, entries[0].EventType)
		assert.Equal(t, posted.EventID(), entries[0].EventID)

		decoded, err := NewEventSerializer().Deserialize(entries[0].EventType, entries[0].Payload)
		require.NoError(t, err)
		event, ok := decoded.(*accounting.VoucherPostedEvent)
		require.True(t, ok)
		assert.Equal(t, "SI-1", event.VoucherNumber)
		assert.Equal(t, 4, event.EntryCount)
		assert.True(t, event.TotalDebit.Equal(decimal.NewFromInt(1180)))
	})

	t.Run("rolled back with the transaction", func(t *testing.T) {
		db := setupOutboxTestDB(t)
		publisher := NewOutboxPublisher(NewEventSerializer())

		err := db.Transaction(func(tx *gorm.DB) error {
			require.NoError(t, publisher.PublishWithTx(ctx, tx, posted))
			return assert.AnError
		})
		require.ErrorIs(t, err, assert.AnError)

		pending, err := NewGormOutboxRepository(db).CountPending(ctx, tenantID)
		require.NoError(t, err)
		assert.Zero(t, pending)
	})

	t.Run("no events is a no-op", func(t *testing.T) {
		db := setupOutboxTestDB(t)
		assert.NoError(t, NewOutboxPublisher(NewEventSerializer()).PublishWithTx(ctx, db))
	})
}

func TestEventSerializer_UnknownType(t *testing.T) {
	_, err := NewEventSerializer().Deserialize("Nope", []byte(`{}`))
	assert.ErrorContains(t, err, "unknown event type")
}
