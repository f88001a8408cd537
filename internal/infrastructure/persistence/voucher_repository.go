package persistence

import (
	"context"
	"errors"

	"github.com/erp/posting/internal/domain/accounting"
	"github.com/erp/posting/internal/domain/shared"
	"github.com/erp/posting/internal/infrastructure/persistence/models"
	"github.com/erp/posting/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormVoucherRepository implements VoucherRepository using GORM
type GormVoucherRepository struct {
	db *gorm.DB
}

// NewGormVoucherRepository creates a new GormVoucherRepository
func NewGormVoucherRepository(db *gorm.DB) *GormVoucherRepository {
	return &GormVoucherRepository{db: db}
}

// FindByIDForTenant loads a voucher and its items in line order
func (r *GormVoucherRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*accounting.Voucher, error) {
	var model models.VoucherModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Scopes(tenant.Scope(tenantID)).Order("line_no ASC")
		}).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Create writes the voucher header and its items
func (r *GormVoucherRepository) Create(ctx context.Context, voucher *accounting.Voucher) error {
	return r.db.WithContext(ctx).Create(models.VoucherModelFromDomain(voucher)).Error
}

// UpdateStatus writes the lifecycle columns if the stored version still matches,
// then advances the voucher's version.
func (r *GormVoucherRepository) UpdateStatus(ctx context.Context, voucher *accounting.Voucher) error {
	expected := voucher.Version
	result := r.db.WithContext(ctx).
		Model(&models.VoucherModel{}).
		Scopes(tenant.Scope(voucher.TenantID)).
		Where("id = ? AND version = ?", voucher.ID, expected).
		Updates(map[string]any{
			"status":       string(voucher.Status),
			"posted_at":    voucher.PostedAt,
			"cancelled_at": voucher.CancelledAt,
			"version":      expected + 1,
			"updated_at":   voucher.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.VoucherModel{}).
			Scopes(tenant.Scope(voucher.TenantID)).
			Where("id = ?", voucher.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrConcurrencyConflict
	}
	voucher.IncrementVersion()
	return nil
}

// ExistsByNumber reports whether the tenant already used a voucher number
func (r *GormVoucherRepository) ExistsByNumber(ctx context.Context, tenantID uuid.UUID, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.VoucherModel{}).
		Scopes(tenant.Scope(tenantID)).
		Where("number = ?", number).
		Count(&count).Error
	return count > 0, err
}

var _ accounting.VoucherRepository = (*GormVoucherRepository)(nil)
