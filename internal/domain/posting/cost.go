package posting

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/posting/internal/domain/accounting"
	"github.com/erp/posting/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ValuateCOGS prices every line that references an inventory item at the
// item's current moving-average cost and returns the rounded total. Lines
// without an item, unset quantities or costs, and items that no longer exist
// all contribute zero.
func ValuateCOGS(ctx context.Context, reader accounting.InventoryItemReader, tenantID uuid.UUID, items []accounting.VoucherItem) (decimal.Decimal, error) {
	total := decimal.Zero
	costs := make(map[uuid.UUID]decimal.Decimal)

	for _, item := range items {
		if item.InventoryItemID == nil {
			continue
		}
		itemID := *item.InventoryItemID

		cost, seen := costs[itemID]
		if !seen {
			inv, err := reader.FindByIDForTenant(ctx, tenantID, itemID)
			switch {
			case errors.Is(err, shared.ErrNotFound):
				cost = decimal.Zero
			case err != nil:
				return decimal.Zero, fmt.Errorf("read average cost of item %s: %w", itemID, err)
			default:
				cost = shared.ZeroIfNull(inv.AvgCost)
			}
			costs[itemID] = cost
		}

		total = total.Add(cost.Mul(shared.ZeroIfNull(item.Quantity)))
	}
	return shared.RoundAmount(total), nil
}
