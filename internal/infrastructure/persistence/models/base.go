package models

import (
	"time"

	"github.com/erp/posting/internal/domain/shared"
	"github.com/google/uuid"
)

// BaseModel holds the id and audit columns present on every table.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func baseModelOf(e shared.BaseEntity) BaseModel {
	return BaseModel{ID: e.ID, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt}
}

func (m BaseModel) entity() shared.BaseEntity {
	return shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

// AggregateModel adds the version column compared by conditional updates.
// TenantID lives on the concrete model so it can lead composite indexes.
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

func aggregateModelOf(h shared.TenantAggregateRoot) AggregateModel {
	return AggregateModel{BaseModel: baseModelOf(h.BaseEntity), Version: h.Version}
}

func (m AggregateModel) header(tenantID uuid.UUID) shared.TenantAggregateRoot {
	return shared.TenantAggregateRoot{BaseEntity: m.entity(), TenantID: tenantID, Version: m.Version}
}
