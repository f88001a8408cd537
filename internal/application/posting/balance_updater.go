package posting

import (
	"context"
	"fmt"

	"github.com/erp/posting/internal/domain/accounting"
	"github.com/google/uuid"
)

// BalanceUpdater recomputes ledger balances from their full entry history.
// It must run on the repositories of the transaction that wrote the entries.
type BalanceUpdater struct {
	ledgers accounting.LedgerRepository
	entries accounting.LedgerEntryRepository
}

// NewBalanceUpdater creates a BalanceUpdater
func NewBalanceUpdater(ledgers accounting.LedgerRepository, entries accounting.LedgerEntryRepository) *BalanceUpdater {
	return &BalanceUpdater{ledgers: ledgers, entries: entries}
}

// Refresh locks the ledgers in ascending id order, recomputes each balance and
// writes it back. It returns the refreshed ledgers in lock order.
func (u *BalanceUpdater) Refresh(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*accounting.Ledger, error) {
	locked, err := u.ledgers.LockForUpdate(ctx, tenantID, ids)
	if err != nil {
		return nil, fmt.Errorf("lock ledgers: %w", err)
	}
	for _, ledger := range locked {
		totals, err := u.entries.SumByLedger(ctx, tenantID, ledger.ID)
		if err != nil {
			return nil, fmt.Errorf("sum entries of ledger %s: %w", ledger.Code, err)
		}
		ledger.ApplyBalance(accounting.ComputeBalance(ledger.OpeningBalance, ledger.NormalSide(), totals))
		if err := u.ledgers.UpdateBalance(ctx, ledger); err != nil {
			return nil, fmt.Errorf("update balance of ledger %s: %w", ledger.Code, err)
		}
	}
	return locked, nil
}
