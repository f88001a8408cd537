package models

import (
	"github.com/erp/posting/internal/domain/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryItemModel is the slice of the inventory subsystem's item table the posting
// engine reads. The inventory subsystem owns the table and maintains both cost columns.
type InventoryItemModel struct {
	BaseModel
	TenantID       uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_items_tenant_code,priority:1"`
	Code           string              `gorm:"type:varchar(64);not null;uniqueIndex:idx_inventory_items_tenant_code,priority:2"`
	Name           string              `gorm:"type:varchar(200);not null"`
	AvgCost        decimal.NullDecimal `gorm:"type:decimal(18,4)"`
	QuantityOnHand decimal.NullDecimal `gorm:"type:decimal(18,4)"`
}

// TableName returns the table name for GORM
func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

// ToDomain converts the persistence model to a domain InventoryItem
func (m *InventoryItemModel) ToDomain() *accounting.InventoryItem {
	return &accounting.InventoryItem{
		ID:             m.ID,
		TenantID:       m.TenantID,
		Code:           m.Code,
		Name:           m.Name,
		AvgCost:        m.AvgCost,
		QuantityOnHand: m.QuantityOnHand,
	}
}

// InventoryItemModelFromDomain creates a persistence model from a domain InventoryItem.
// Only seeding and tests write this table from here.
func InventoryItemModelFromDomain(i *accounting.InventoryItem) *InventoryItemModel {
	return &InventoryItemModel{
		BaseModel:      BaseModel{ID: i.ID},
		TenantID:       i.TenantID,
		Code:           i.Code,
		Name:           i.Name,
		AvgCost:        i.AvgCost,
		QuantityOnHand: i.QuantityOnHand,
	}
}
