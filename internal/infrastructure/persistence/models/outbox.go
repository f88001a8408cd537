package models

import (
	"time"

	"github.com/erp/posting/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OutboxEntryModel is a row of outbox_events. retry_count and max_retries
// belong to the relay and keep their column defaults on insert.
type OutboxEntryModel struct {
	ID            uuid.UUID           `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID           `gorm:"type:uuid;not null;index:idx_outbox_tenant_status,priority:1"`
	EventID       uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex"`
	EventType     string              `gorm:"type:varchar(255);not null"`
	AggregateID   uuid.UUID           `gorm:"type:uuid;not null"`
	AggregateType string              `gorm:"type:varchar(255);not null"`
	Payload       datatypes.JSON      `gorm:"type:jsonb;not null"`
	Status        shared.OutboxStatus `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_outbox_tenant_status,priority:2"`
	CreatedAt     time.Time           `gorm:"not null"`
	UpdatedAt     time.Time           `gorm:"not null"`
}

func (OutboxEntryModel) TableName() string { return "outbox_events" }

func (m *OutboxEntryModel) ToDomain() *shared.OutboxEntry {
	e := &shared.OutboxEntry{Payload: []byte(m.Payload), Status: m.Status}
	e.ID, e.TenantID, e.EventID = m.ID, m.TenantID, m.EventID
	e.EventType, e.AggregateID, e.AggregateType = m.EventType, m.AggregateID, m.AggregateType
	e.CreatedAt, e.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return e
}

func OutboxEntryModelFromDomain(e *shared.OutboxEntry) *OutboxEntryModel {
	m := &OutboxEntryModel{Payload: datatypes.JSON(e.Payload), Status: e.Status}
	m.ID, m.TenantID, m.EventID = e.ID, e.TenantID, e.EventID
	m.EventType, m.AggregateID, m.AggregateType = e.EventType, e.AggregateID, e.AggregateType
	m.CreatedAt, m.UpdatedAt = e.CreatedAt, e.UpdatedAt
	return m
}

// All returns every model the posting engine migrates, parents first.
func All() []any {
	return []any{
		&AccountGroupModel{},
		&LedgerModel{},
		&TenantProfileModel{},
		&InventoryItemModel{},
		&VoucherModel{},
		&VoucherItemModel{},
		&VoucherLedgerEntryModel{},
		&TDSDetailModel{},
		&OutboxEntryModel{},
	}
}
