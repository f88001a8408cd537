package persistence

import (
	"context"

	appposting "github.com/erp/posting/internal/application/posting"
	"github.com/erp/posting/internal/domain/accounting"
	"github.com/erp/posting/internal/domain/shared"
	"github.com/erp/posting/internal/infrastructure/event"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope with GORM transactions.
// Every repository handed to fn shares the same *gorm.DB transaction.
type GormTransactionScope struct {
	db        *gorm.DB
	publisher *event.OutboxPublisher
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB, publisher *event.OutboxPublisher) *GormTransactionScope {
	return &GormTransactionScope{db: db, publisher: publisher}
}

// Execute runs fn in a transaction, committing only if fn returns nil.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appposting.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx, publisher: s.publisher})
	})
}

type gormTransactionalRepositories struct {
	tx        *gorm.DB
	publisher *event.OutboxPublisher
}

func (r *gormTransactionalRepositories) AccountGroups() accounting.AccountGroupRepository {
	return NewGormAccountGroupRepository(r.tx)
}

func (r *gormTransactionalRepositories) Ledgers() accounting.LedgerRepository {
	return NewGormLedgerRepository(r.tx)
}

func (r *gormTransactionalRepositories) Vouchers() accounting.VoucherRepository {
	return NewGormVoucherRepository(r.tx)
}

func (r *gormTransactionalRepositories) Entries() accounting.LedgerEntryRepository {
	return NewGormLedgerEntryRepository(r.tx)
}

func (r *gormTransactionalRepositories) Inventory() accounting.InventoryItemReader {
	return NewGormInventoryItemReader(r.tx)
}

func (r *gormTransactionalRepositories) TDSDetails() accounting.TDSDetailRepository {
	return NewGormTDSDetailRepository(r.tx)
}

func (r *gormTransactionalRepositories) TenantProfiles() accounting.TenantProfileRepository {
	return NewGormTenantProfileRepository(r.tx)
}

func (r *gormTransactionalRepositories) Outbox() shared.OutboxEventWriter {
	return r.publisher.Writer(r.tx)
}

var (
	_ appposting.TransactionScope          = (*GormTransactionScope)(nil)
	_ appposting.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
)
