package posting

import (
	"context"

	"github.com/erp/posting/internal/domain/accounting"
	"github.com/erp/posting/internal/domain/shared"
)

// TransactionScope runs a unit of work in one database transaction.
// If fn returns an error, every write made through repos is rolled back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories bound to one open transaction.
//
// Balance refreshes must go through these repositories: refreshing outside the
// posting transaction could read entries another transaction has not committed yet.
type TransactionalRepositories interface {
	AccountGroups() accounting.AccountGroupRepository
	Ledgers() accounting.LedgerRepository
	Vouchers() accounting.VoucherRepository
	Entries() accounting.LedgerEntryRepository
	Inventory() accounting.InventoryItemReader
	TDSDetails() accounting.TDSDetailRepository
	TenantProfiles() accounting.TenantProfileRepository
	Outbox() shared.OutboxEventWriter
}
