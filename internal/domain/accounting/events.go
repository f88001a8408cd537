package accounting

import (
	"github.com/erp/posting/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate and event type names written to the outbox
const (
	AggregateTypeVoucher = "Voucher"
	AggregateTypeLedger  = "Ledger"

	EventTypeVoucherPosted       = "VoucherPosted"
	EventTypeVoucherCancelled    = "VoucherCancelled"
	EventTypeSystemLedgerCreated = "SystemLedgerCreated"
)

// VoucherPostedEvent is raised when a voucher's entries are committed
type VoucherPostedEvent struct {
	shared.EventHeader
	VoucherNumber      string          `json:"voucher_number"`
	VoucherType        VoucherType     `json:"voucher_type"`
	EntryCount         int             `json:"entry_count"`
	TotalDebit         decimal.Decimal `json:"total_debit"`
	RefreshedLedgerIDs []uuid.UUID     `json:"refreshed_ledger_ids"`
}

// NewVoucherPostedEvent builds the posted event for v
func NewVoucherPostedEvent(v *Voucher, entryCount int, totalDebit decimal.Decimal, refreshed []uuid.UUID) *VoucherPostedEvent {
	return &VoucherPostedEvent{
		EventHeader:        shared.NewEventHeader(EventTypeVoucherPosted, shared.AggregateRef{Type: AggregateTypeVoucher, ID: v.ID}, v.TenantID),
		VoucherNumber:      v.Number,
		VoucherType:        v.Type,
		EntryCount:         entryCount,
		TotalDebit:         totalDebit,
		RefreshedLedgerIDs: refreshed,
	}
}

// VoucherCancelledEvent is raised when a posted voucher is cancelled
type VoucherCancelledEvent struct {
	shared.EventHeader
	VoucherNumber     string     `json:"voucher_number"`
	ReversalVoucherID *uuid.UUID `json:"reversal_voucher_id,omitempty"`
	Destructive       bool       `json:"destructive"`
}

// NewVoucherCancelledEvent builds the cancelled event for v
func NewVoucherCancelledEvent(v *Voucher, reversalID *uuid.UUID, destructive bool) *VoucherCancelledEvent {
	return &VoucherCancelledEvent{
		EventHeader:       shared.NewEventHeader(EventTypeVoucherCancelled, shared.AggregateRef{Type: AggregateTypeVoucher, ID: v.ID}, v.TenantID),
		VoucherNumber:     v.Number,
		ReversalVoucherID: reversalID,
		Destructive:       destructive,
	}
}

// SystemLedgerCreatedEvent is raised when the resolver creates a missing system ledger
type SystemLedgerCreatedEvent struct {
	shared.EventHeader
	Code      string `json:"code"`
	Name      string `json:"name"`
	GroupCode string `json:"group_code"`
}

// NewSystemLedgerCreatedEvent builds the creation event for l
func NewSystemLedgerCreatedEvent(l *Ledger, groupCode string) *SystemLedgerCreatedEvent {
	return &SystemLedgerCreatedEvent{
		EventHeader: shared.NewEventHeader(EventTypeSystemLedgerCreated, shared.AggregateRef{Type: AggregateTypeLedger, ID: l.ID}, l.TenantID),
		Code:        l.Code,
		Name:        l.Name,
		GroupCode:   groupCode,
	}
}
