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

// GormAccountGroupRepository implements AccountGroupRepository using GORM
type GormAccountGroupRepository struct {
	db *gorm.DB
}

// NewGormAccountGroupRepository creates a new GormAccountGroupRepository
func NewGormAccountGroupRepository(db *gorm.DB) *GormAccountGroupRepository {
	return &GormAccountGroupRepository{db: db}
}

// FindByCode finds an account group by its code within a tenant
func (r *GormAccountGroupRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*accounting.AccountGroup, error) {
	var model models.AccountGroupModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("code = ?", code).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant returns the tenant's chart of accounts ordered by code
func (r *GormAccountGroupRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]accounting.AccountGroup, error) {
	var rows []models.AccountGroupModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Order("code ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	groups := make([]accounting.AccountGroup, len(rows))
	for i := range rows {
		groups[i] = *rows[i].ToDomain()
	}
	return groups, nil
}

// CreateIfAbsent inserts the group unless the tenant already has its code
func (r *GormAccountGroupRepository) CreateIfAbsent(ctx context.Context, group *accounting.AccountGroup) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "code"}},
			DoNothing: true,
		}).
		Create(models.AccountGroupModelFromDomain(group))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

var _ accounting.AccountGroupRepository = (*GormAccountGroupRepository)(nil)
