package accounting

import (
	"time"

	"github.com/erp/posting/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// TDSDetail records the tax withheld on a purchase, 1:1 with the voucher
type TDSDetail struct {
	ID            uuid.UUID
	TenantID      uuid.UUID
	VoucherID     uuid.UUID
	PartyLedgerID uuid.UUID
	Section       string
	Rate          decimal.Decimal
	BaseAmount    decimal.Decimal
	TDSAmount     decimal.Decimal
	CreatedAt     time.Time
}

// NewTDSDetail computes the withheld amount on base at the party's rate
func NewTDSDetail(voucher *Voucher, party *Ledger, base decimal.Decimal) *TDSDetail {
	return &TDSDetail{
		ID:            uuid.New(),
		TenantID:      voucher.TenantID,
		VoucherID:     voucher.ID,
		PartyLedgerID: party.ID,
		Section:       party.TDSSection,
		Rate:          party.TDSRate,
		BaseAmount:    base,
		TDSAmount:     shared.RoundAmount(base.Mul(party.TDSRate).Div(hundred)),
		CreatedAt:     time.Now().UTC(),
	}
}
