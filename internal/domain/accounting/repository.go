package accounting

import (
	"context"

	"github.com/google/uuid"
)

// AccountGroupRepository persists the chart of accounts
type AccountGroupRepository interface {
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*AccountGroup, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]AccountGroup, error)
	// CreateIfAbsent inserts the group unless (tenant, code) exists. It reports whether a row was written.
	CreateIfAbsent(ctx context.Context, group *AccountGroup) (bool, error)
}

// LedgerFilter narrows and orders a ledger listing
type LedgerFilter struct {
	GroupID    *uuid.UUID
	SystemOnly bool
	SortBy     string
	SortOrder  string
	Page       int
	PageSize   int
}

// LedgerRepository persists ledgers
type LedgerRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Ledger, error)
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Ledger, error)
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*Ledger, error)
	// FindAll lists ledgers page by page and returns the unpaged total.
	FindAll(ctx context.Context, tenantID uuid.UUID, filter LedgerFilter) ([]*Ledger, int64, error)
	// CreateIfAbsent inserts the ledger unless (tenant, code) exists. It reports whether a row was written.
	CreateIfAbsent(ctx context.Context, ledger *Ledger) (bool, error)
	// Save updates the descriptive fields of an existing ledger.
	Save(ctx context.Context, ledger *Ledger) error
	// LockForUpdate takes row locks on the ledgers in ascending id order and returns them.
	LockForUpdate(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*Ledger, error)
	// UpdateBalance writes only current_balance and balance_side.
	UpdateBalance(ctx context.Context, ledger *Ledger) error
}

// VoucherRepository persists voucher headers and their items
type VoucherRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Voucher, error)
	// Create writes a new voucher with its items.
	Create(ctx context.Context, voucher *Voucher) error
	// UpdateStatus writes the lifecycle fields using optimistic locking on Version.
	UpdateStatus(ctx context.Context, voucher *Voucher) error
	ExistsByNumber(ctx context.Context, tenantID uuid.UUID, number string) (bool, error)
}

// LedgerEntryRepository persists voucher ledger entries
type LedgerEntryRepository interface {
	CreateBatch(ctx context.Context, entries []VoucherLedgerEntry) error
	FindByVoucher(ctx context.Context, tenantID, voucherID uuid.UUID) ([]VoucherLedgerEntry, error)
	// SumByLedger totals every entry ever posted to the ledger.
	SumByLedger(ctx context.Context, tenantID, ledgerID uuid.UUID) (Totals, error)
	DeleteByVoucher(ctx context.Context, tenantID, voucherID uuid.UUID) (int64, error)
}

// InventoryItemReader reads item costs maintained by the inventory subsystem
type InventoryItemReader interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*InventoryItem, error)
}

// TDSDetailRepository persists TDS side records
type TDSDetailRepository interface {
	Save(ctx context.Context, detail *TDSDetail) error
	FindByVoucher(ctx context.Context, tenantID, voucherID uuid.UUID) (*TDSDetail, error)
	DeleteByVoucher(ctx context.Context, tenantID, voucherID uuid.UUID) (int64, error)
}

// TenantProfileRepository persists the business profile chosen at provisioning
type TenantProfileRepository interface {
	Find(ctx context.Context, tenantID uuid.UUID) (*TenantProfile, error)
	// CreateIfAbsent stores the profile once; an existing profile is left untouched.
	CreateIfAbsent(ctx context.Context, profile *TenantProfile) (bool, error)
}
