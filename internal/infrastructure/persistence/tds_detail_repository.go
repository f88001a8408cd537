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

// GormTDSDetailRepository implements TDSDetailRepository using GORM
type GormTDSDetailRepository struct {
	db *gorm.DB
}

// NewGormTDSDetailRepository creates a new GormTDSDetailRepository
func NewGormTDSDetailRepository(db *gorm.DB) *GormTDSDetailRepository {
	return &GormTDSDetailRepository{db: db}
}

// Save inserts the TDS record; voucher_id is unique so a second record for one voucher fails
func (r *GormTDSDetailRepository) Save(ctx context.Context, detail *accounting.TDSDetail) error {
	return r.db.WithContext(ctx).Create(models.TDSDetailModelFromDomain(detail)).Error
}

// FindByVoucher finds the TDS record of a purchase voucher
func (r *GormTDSDetailRepository) FindByVoucher(ctx context.Context, tenantID, voucherID uuid.UUID) (*accounting.TDSDetail, error) {
	var model models.TDSDetailModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("voucher_id = ?", voucherID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// DeleteByVoucher removes the TDS record of a voucher that no longer stands.
// A voucher without one deletes nothing.
func (r *GormTDSDetailRepository) DeleteByVoucher(ctx context.Context, tenantID, voucherID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("voucher_id = ?", voucherID).
		Delete(&models.TDSDetailModel{})
	return result.RowsAffected, result.Error
}

var _ accounting.TDSDetailRepository = (*GormTDSDetailRepository)(nil)
