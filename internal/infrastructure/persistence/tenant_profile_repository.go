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
	"gorm.io/gorm/clause"
)

// GormTenantProfileRepository implements TenantProfileRepository using GORM
type GormTenantProfileRepository struct {
	db *gorm.DB
}

// NewGormTenantProfileRepository creates a new GormTenantProfileRepository
func NewGormTenantProfileRepository(db *gorm.DB) *GormTenantProfileRepository {
	return &GormTenantProfileRepository{db: db}
}

// Find loads the tenant's profile
func (r *GormTenantProfileRepository) Find(ctx context.Context, tenantID uuid.UUID) (*accounting.TenantProfile, error) {
	var model models.TenantProfileModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// CreateIfAbsent stores the profile once; the first business type recorded wins
func (r *GormTenantProfileRepository) CreateIfAbsent(ctx context.Context, profile *accounting.TenantProfile) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}},
			DoNothing: true,
		}).
		Create(models.TenantProfileModelFromDomain(profile))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

var _ accounting.TenantProfileRepository = (*GormTenantProfileRepository)(nil)
