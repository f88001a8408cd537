package persistence

import (
	"context"

	"github.com/erp/posting/internal/domain/accounting"
	"github.com/erp/posting/internal/domain/shared"
	"github.com/erp/posting/internal/infrastructure/persistence/models"
	"github.com/erp/posting/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormLedgerEntryRepository implements LedgerEntryRepository using GORM
type GormLedgerEntryRepository struct {
	db *gorm.DB
}

// NewGormLedgerEntryRepository creates a new GormLedgerEntryRepository
func NewGormLedgerEntryRepository(db *gorm.DB) *GormLedgerEntryRepository {
	return &GormLedgerEntryRepository{db: db}
}

// CreateBatch inserts entries in one statement
func (r *GormLedgerEntryRepository) CreateBatch(ctx context.Context, entries []accounting.VoucherLedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	rows := make([]*models.VoucherLedgerEntryModel, len(entries))
	for i := range entries {
		rows[i] = models.VoucherLedgerEntryModelFromDomain(&entries[i])
	}
	return r.db.WithContext(ctx).Create(rows).Error
}

// FindByVoucher returns a voucher's entries in posting order
func (r *GormLedgerEntryRepository) FindByVoucher(ctx context.Context, tenantID, voucherID uuid.UUID) ([]accounting.VoucherLedgerEntry, error) {
	var rows []models.VoucherLedgerEntryModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("voucher_id = ?", voucherID).
		Order("sequence ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	entries := make([]accounting.VoucherLedgerEntry, len(rows))
	for i := range rows {
		entries[i] = rows[i].ToDomain()
	}
	return entries, nil
}

type ledgerTotalsRow struct {
	Debit  decimal.NullDecimal
	Credit decimal.NullDecimal
}

// SumByLedger totals every entry ever posted to the ledger
func (r *GormLedgerEntryRepository) SumByLedger(ctx context.Context, tenantID, ledgerID uuid.UUID) (accounting.Totals, error) {
	var row ledgerTotalsRow
	if err := r.db.WithContext(ctx).
		Model(&models.VoucherLedgerEntryModel{}).
		Scopes(tenant.Scope(tenantID)).
		Select("COALESCE(SUM(debit_amount), 0) AS debit, COALESCE(SUM(credit_amount), 0) AS credit").
		Where("ledger_id = ?", ledgerID).
		Scan(&row).Error; err != nil {
		return accounting.Totals{}, err
	}
	return accounting.Totals{
		Debit:  shared.RoundAmount(shared.ZeroIfNull(row.Debit)),
		Credit: shared.RoundAmount(shared.ZeroIfNull(row.Credit)),
	}, nil
}

// DeleteByVoucher removes a voucher's entries and reports how many were deleted
func (r *GormLedgerEntryRepository) DeleteByVoucher(ctx context.Context, tenantID, voucherID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("voucher_id = ?", voucherID).
		Delete(&models.VoucherLedgerEntryModel{})
	return result.RowsAffected, result.Error
}

var _ accounting.LedgerEntryRepository = (*GormLedgerEntryRepository)(nil)
