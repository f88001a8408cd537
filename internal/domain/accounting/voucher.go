package accounting

import (
	"time"

	"github.com/erp/posting/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VoucherType is the closed set of transaction kinds a voucher can carry.
// Values outside this set may still arrive from storage; they are reported
// by IsKnown and never posted.
type VoucherType string

const (
	VoucherSalesInvoice    VoucherType = "sales_invoice"
	VoucherTaxInvoice      VoucherType = "tax_invoice"
	VoucherRetailInvoice   VoucherType = "retail_invoice"
	VoucherExportInvoice   VoucherType = "export_invoice"
	VoucherPurchaseInvoice VoucherType = "purchase_invoice"
	VoucherPayment         VoucherType = "payment"
	VoucherReceipt         VoucherType = "receipt"
	VoucherJournal         VoucherType = "journal"
	VoucherContra          VoucherType = "contra"
	VoucherCreditNote      VoucherType = "credit_note"
	VoucherDebitNote       VoucherType = "debit_note"
	VoucherDeliveryChallan VoucherType = "delivery_challan"
	VoucherSalesOrder      VoucherType = "sales_order"
	VoucherPurchaseOrder   VoucherType = "purchase_order"
	VoucherProforma        VoucherType = "proforma_invoice"
	VoucherQuotation       VoucherType = "quotation"
)

// AllVoucherTypes lists every known voucher type
func AllVoucherTypes() []VoucherType {
	return []VoucherType{
		VoucherSalesInvoice, VoucherTaxInvoice, VoucherRetailInvoice, VoucherExportInvoice,
		VoucherPurchaseInvoice, VoucherPayment, VoucherReceipt, VoucherJournal, VoucherContra,
		VoucherCreditNote, VoucherDebitNote, VoucherDeliveryChallan, VoucherSalesOrder,
		VoucherPurchaseOrder, VoucherProforma, VoucherQuotation,
	}
}

// IsKnown reports whether t belongs to the closed set
func (t VoucherType) IsKnown() bool {
	for _, known := range AllVoucherTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// IsSalesType reports whether t is one of the invoice types that book revenue
func (t VoucherType) IsSalesType() bool {
	switch t {
	case VoucherSalesInvoice, VoucherTaxInvoice, VoucherRetailInvoice, VoucherExportInvoice:
		return true
	}
	return false
}

// ReversalType returns the note type that reverses t
func (t VoucherType) ReversalType() (VoucherType, bool) {
	switch {
	case t.IsSalesType():
		return VoucherCreditNote, true
	case t == VoucherPurchaseInvoice:
		return VoucherDebitNote, true
	}
	return "", false
}

// VoucherStatus is the lifecycle state of a voucher
type VoucherStatus string

const (
	VoucherStatusDraft     VoucherStatus = "draft"
	VoucherStatusPosted    VoucherStatus = "posted"
	VoucherStatusCancelled VoucherStatus = "cancelled"
)

// Voucher is a transaction header. Only posting and cancellation change it.
type Voucher struct {
	shared.TenantAggregateRoot
	Number           string
	Type             VoucherType
	Date             time.Time
	PartyLedgerID    *uuid.UUID
	CashBankLedgerID *uuid.UUID
	// DebitLedgerID and CreditLedgerID are the legacy single-pair journal references.
	DebitLedgerID   *uuid.UUID
	CreditLedgerID  *uuid.UUID
	TotalAmount     decimal.Decimal
	Narration       string
	Status          VoucherStatus
	RestockOnReturn bool
	ReversalOfID    *uuid.UUID
	PostedAt        *time.Time
	CancelledAt     *time.Time
	Items           []VoucherItem
}

// NewVoucher creates a draft voucher
func NewVoucher(tenantID uuid.UUID, number string, vt VoucherType, date time.Time) *Voucher {
	return &Voucher{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		Type:                vt,
		Date:                date,
		Status:              VoucherStatusDraft,
		TotalAmount:         decimal.Zero,
	}
}

// AddItem appends a line, numbering it and linking it to the voucher
func (v *Voucher) AddItem(item VoucherItem) {
	item.VoucherID = v.ID
	item.TenantID = v.TenantID
	item.LineNo = len(v.Items) + 1
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	v.Items = append(v.Items, item)
}

// HasLegacyJournalPair reports whether both legacy journal references are set
func (v *Voucher) HasLegacyJournalPair() bool {
	return v.DebitLedgerID != nil && v.CreditLedgerID != nil
}

// EnsurePostable fails unless the voucher is still a draft
func (v *Voucher) EnsurePostable() error {
	if v.Status != VoucherStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "voucher "+v.Number+" is "+string(v.Status)+" and cannot be posted")
	}
	return nil
}

// MarkPosted moves a draft voucher to posted and records the event
func (v *Voucher) MarkPosted(at time.Time, entryCount int, totalDebit decimal.Decimal, refreshed []uuid.UUID) error {
	if err := v.EnsurePostable(); err != nil {
		return err
	}
	v.Status = VoucherStatusPosted
	v.PostedAt = &at
	v.Touch()
	v.Raise(NewVoucherPostedEvent(v, entryCount, totalDebit, refreshed))
	return nil
}

// MarkCancelled moves a posted voucher to cancelled. A reversal note cannot be
// cancelled destructively: its original is already cancelled and would be left
// with live entries and no way back to posted.
func (v *Voucher) MarkCancelled(at time.Time, reversalID *uuid.UUID, destructive bool) error {
	if v.Status != VoucherStatusPosted {
		return shared.NewDomainError("INVALID_STATE", "only posted vouchers can be cancelled")
	}
	if destructive && v.ReversalOfID != nil {
		return shared.NewDomainError("INVALID_STATE", "voucher "+v.Number+" reverses another voucher and cannot be cancelled")
	}
	v.Status = VoucherStatusCancelled
	v.CancelledAt = &at
	v.Touch()
	v.Raise(NewVoucherCancelledEvent(v, reversalID, destructive))
	return nil
}

// NewReversal builds a draft note that mirrors v: same party and identical items
func (v *Voucher) NewReversal(number string, date time.Time) (*Voucher, error) {
	rt, ok := v.Type.ReversalType()
	if !ok {
		return nil, ErrNotReversible
	}
	if v.Status != VoucherStatusPosted {
		return nil, shared.NewDomainError("INVALID_STATE", "only posted vouchers can be reversed")
	}
	note := NewVoucher(v.TenantID, number, rt, date)
	note.PartyLedgerID = v.PartyLedgerID
	note.TotalAmount = v.TotalAmount
	note.Narration = "Reversal of " + v.Number
	note.ReversalOfID = &v.ID
	for _, item := range v.Items {
		item.ID = uuid.Nil
		note.AddItem(item)
	}
	return note, nil
}

// VoucherItem is one line of a voucher. Numeric fields are nullable because
// historical data is often partially populated; unset values count as zero.
type VoucherItem struct {
	ID              uuid.UUID
	TenantID        uuid.UUID
	VoucherID       uuid.UUID
	LineNo          int
	InventoryItemID *uuid.UUID
	Description     string
	HSNCode         string
	Quantity        decimal.NullDecimal
	Rate            decimal.NullDecimal
	TaxableAmount   decimal.NullDecimal
	CGSTAmount      decimal.NullDecimal
	SGSTAmount      decimal.NullDecimal
	IGSTAmount      decimal.NullDecimal
	CessAmount      decimal.NullDecimal
}
