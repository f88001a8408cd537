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

// GormInventoryItemReader reads item costs. It never writes: the inventory
// subsystem maintains avg_cost and quantity_on_hand.
type GormInventoryItemReader struct {
	db *gorm.DB
}

// NewGormInventoryItemReader creates a new GormInventoryItemReader
func NewGormInventoryItemReader(db *gorm.DB) *GormInventoryItemReader {
	return &GormInventoryItemReader{db: db}
}

// FindByIDForTenant finds an inventory item by ID within a tenant
func (r *GormInventoryItemReader) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*accounting.InventoryItem, error) {
	var model models.InventoryItemModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

var _ accounting.InventoryItemReader = (*GormInventoryItemReader)(nil)
