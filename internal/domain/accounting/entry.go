package accounting

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VoucherLedgerEntry is one posting. Exactly one of Debit and Credit is
// non-zero. Entries of a posted voucher are never edited.
type VoucherLedgerEntry struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	VoucherID uuid.UUID
	LedgerID  uuid.UUID
	Sequence  int
	Debit     decimal.Decimal
	Credit    decimal.Decimal
	CreatedAt time.Time
}

// Validate enforces the single-side, non-negative rule
func (e VoucherLedgerEntry) Validate() error {
	if e.Debit.IsNegative() || e.Credit.IsNegative() {
		return ErrInvalidEntry
	}
	if e.Debit.IsZero() == e.Credit.IsZero() {
		return ErrInvalidEntry
	}
	return nil
}
