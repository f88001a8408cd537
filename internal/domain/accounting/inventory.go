package accounting

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryItem is the read-side view of a stock item. The inventory
// subsystem maintains AvgCost (moving average) and QuantityOnHand; posting
// only reads them.
type InventoryItem struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	Code           string
	Name           string
	AvgCost        decimal.NullDecimal
	QuantityOnHand decimal.NullDecimal
}
