package models

import (
	"time"

	"github.com/erp/posting/internal/domain/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VoucherModel is the persistence model for the Voucher aggregate root.
type VoucherModel struct {
	AggregateModel
	TenantID         uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_vouchers_tenant_number,priority:1;index:idx_vouchers_tenant_status,priority:1"`
	Number           string             `gorm:"type:varchar(50);not null;uniqueIndex:idx_vouchers_tenant_number,priority:2"`
	Type             string             `gorm:"column:voucher_type;type:varchar(30);not null"`
	Date             time.Time          `gorm:"column:voucher_date;not null"`
	PartyLedgerID    *uuid.UUID         `gorm:"type:uuid;index"`
	CashBankLedgerID *uuid.UUID         `gorm:"type:uuid"`
	DebitLedgerID    *uuid.UUID         `gorm:"type:uuid"`
	CreditLedgerID   *uuid.UUID         `gorm:"type:uuid"`
	TotalAmount      decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	Narration        string             `gorm:"type:text"`
	Status           string             `gorm:"type:varchar(20);not null;default:'draft';index:idx_vouchers_tenant_status,priority:2"`
	RestockOnReturn  bool               `gorm:"not null;default:false"`
	ReversalOfID     *uuid.UUID         `gorm:"type:uuid;index"`
	PostedAt         *time.Time         `gorm:"index"`
	CancelledAt      *time.Time         `gorm:"column:cancelled_at"`
	Items            []VoucherItemModel `gorm:"foreignKey:VoucherID;references:ID"`
}

// TableName returns the table name for GORM
func (VoucherModel) TableName() string {
	return "vouchers"
}

// ToDomain converts the persistence model to a domain Voucher, items included
func (m *VoucherModel) ToDomain() *accounting.Voucher {
	v := &accounting.Voucher{
		TenantAggregateRoot: m.header(m.TenantID),
		Number:              m.Number,
		Type:                accounting.VoucherType(m.Type),
		Date:                m.Date,
		PartyLedgerID:       m.PartyLedgerID,
		CashBankLedgerID:    m.CashBankLedgerID,
		DebitLedgerID:       m.DebitLedgerID,
		CreditLedgerID:      m.CreditLedgerID,
		TotalAmount:         m.TotalAmount,
		Narration:           m.Narration,
		Status:              accounting.VoucherStatus(m.Status),
		RestockOnReturn:     m.RestockOnReturn,
		ReversalOfID:        m.ReversalOfID,
		PostedAt:            m.PostedAt,
		CancelledAt:         m.CancelledAt,
		Items:               make([]accounting.VoucherItem, len(m.Items)),
	}
	for i := range m.Items {
		v.Items[i] = m.Items[i].ToDomain()
	}
	return v
}

// VoucherModelFromDomain creates a persistence model from a domain Voucher, items included
func VoucherModelFromDomain(v *accounting.Voucher) *VoucherModel {
	m := &VoucherModel{
		Number:           v.Number,
		Type:             string(v.Type),
		Date:             v.Date,
		PartyLedgerID:    v.PartyLedgerID,
		CashBankLedgerID: v.CashBankLedgerID,
		DebitLedgerID:    v.DebitLedgerID,
		CreditLedgerID:   v.CreditLedgerID,
		TotalAmount:      v.TotalAmount,
		Narration:        v.Narration,
		Status:           string(v.Status),
		RestockOnReturn:  v.RestockOnReturn,
		ReversalOfID:     v.ReversalOfID,
		PostedAt:         v.PostedAt,
		CancelledAt:      v.CancelledAt,
		Items:            make([]VoucherItemModel, len(v.Items)),
	}
	m.AggregateModel, m.TenantID = aggregateModelOf(v.TenantAggregateRoot), v.TenantID
	for i := range v.Items {
		m.Items[i] = *VoucherItemModelFromDomain(&v.Items[i])
	}
	return m
}

// VoucherItemModel is one line of a voucher. Amount columns are nullable because
// historical rows may be only partly populated.
type VoucherItemModel struct {
	ID              uuid.UUID           `gorm:"type:uuid;primaryKey"`
	TenantID        uuid.UUID           `gorm:"type:uuid;not null;index"`
	VoucherID       uuid.UUID           `gorm:"type:uuid;not null;index:idx_voucher_items_voucher_line,priority:1"`
	LineNo          int                 `gorm:"not null;index:idx_voucher_items_voucher_line,priority:2"`
	InventoryItemID *uuid.UUID          `gorm:"type:uuid;index"`
	Description     string              `gorm:"type:varchar(500)"`
	HSNCode         string              `gorm:"column:hsn_code;type:varchar(20)"`
	Quantity        decimal.NullDecimal `gorm:"type:decimal(18,4)"`
	Rate            decimal.NullDecimal `gorm:"type:decimal(18,4)"`
	TaxableAmount   decimal.NullDecimal `gorm:"type:decimal(18,2)"`
	CGSTAmount      decimal.NullDecimal `gorm:"column:cgst_amount;type:decimal(18,2)"`
	SGSTAmount      decimal.NullDecimal `gorm:"column:sgst_amount;type:decimal(18,2)"`
	IGSTAmount      decimal.NullDecimal `gorm:"column:igst_amount;type:decimal(18,2)"`
	CessAmount      decimal.NullDecimal `gorm:"column:cess_amount;type:decimal(18,2)"`
}

// TableName returns the table name for GORM
func (VoucherItemModel) TableName() string {
	return "voucher_items"
}

// ToDomain converts the persistence model to a domain VoucherItem
func (m *VoucherItemModel) ToDomain() accounting.VoucherItem {
	return accounting.VoucherItem{
		ID:              m.ID,
		TenantID:        m.TenantID,
		VoucherID:       m.VoucherID,
		LineNo:          m.LineNo,
		InventoryItemID: m.InventoryItemID,
		Description:     m.Description,
		HSNCode:         m.HSNCode,
		Quantity:        m.Quantity,
		Rate:            m.Rate,
		TaxableAmount:   m.TaxableAmount,
		CGSTAmount:      m.CGSTAmount,
		SGSTAmount:      m.SGSTAmount,
		IGSTAmount:      m.IGSTAmount,
		CessAmount:      m.CessAmount,
	}
}

// VoucherItemModelFromDomain creates a persistence model from a domain VoucherItem
func VoucherItemModelFromDomain(i *accounting.VoucherItem) *VoucherItemModel {
	return &VoucherItemModel{
		ID:              i.ID,
		TenantID:        i.TenantID,
		VoucherID:       i.VoucherID,
		LineNo:          i.LineNo,
		InventoryItemID: i.InventoryItemID,
		Description:     i.Description,
		HSNCode:         i.HSNCode,
		Quantity:        i.Quantity,
		Rate:            i.Rate,
		TaxableAmount:   i.TaxableAmount,
		CGSTAmount:      i.CGSTAmount,
		SGSTAmount:      i.SGSTAmount,
		IGSTAmount:      i.IGSTAmount,
		CessAmount:      i.CessAmount,
	}
}

// VoucherLedgerEntryModel is one immutable posting row.
type VoucherLedgerEntryModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_entries_tenant_ledger,priority:1"`
	VoucherID uuid.UUID       `gorm:"type:uuid;not null;index"`
	LedgerID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_entries_tenant_ledger,priority:2"`
	Sequence  int             `gorm:"not null"`
	Debit     decimal.Decimal `gorm:"column:debit_amount;type:decimal(18,2);not null;default:0"`
	Credit    decimal.Decimal `gorm:"column:credit_amount;type:decimal(18,2);not null;default:0"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (VoucherLedgerEntryModel) TableName() string {
	return "voucher_ledger_entries"
}

// ToDomain converts the persistence model to a domain VoucherLedgerEntry
func (m *VoucherLedgerEntryModel) ToDomain() accounting.VoucherLedgerEntry {
	return accounting.VoucherLedgerEntry{
		ID:        m.ID,
		TenantID:  m.TenantID,
		VoucherID: m.VoucherID,
		LedgerID:  m.LedgerID,
		Sequence:  m.Sequence,
		Debit:     m.Debit,
		Credit:    m.Credit,
		CreatedAt: m.CreatedAt,
	}
}

// VoucherLedgerEntryModelFromDomain creates a persistence model from a domain entry
func VoucherLedgerEntryModelFromDomain(e *accounting.VoucherLedgerEntry) *VoucherLedgerEntryModel {
	return &VoucherLedgerEntryModel{
		ID:        e.ID,
		TenantID:  e.TenantID,
		VoucherID: e.VoucherID,
		LedgerID:  e.LedgerID,
		Sequence:  e.Sequence,
		Debit:     e.Debit,
		Credit:    e.Credit,
		CreatedAt: e.CreatedAt,
	}
}

// TDSDetailModel is the withholding record written 1:1 with a purchase voucher.
type TDSDetailModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	VoucherID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	PartyLedgerID uuid.UUID       `gorm:"type:uuid;not null"`
	Section       string          `gorm:"type:varchar(20)"`
	Rate          decimal.Decimal `gorm:"type:decimal(7,4);not null"`
	BaseAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TDSAmount     decimal.Decimal `gorm:"column:tds_amount;type:decimal(18,2);not null"`
	CreatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TDSDetailModel) TableName() string {
	return "tds_details"
}

// ToDomain converts the persistence model to a domain TDSDetail
func (m *TDSDetailModel) ToDomain() *accounting.TDSDetail {
	return &accounting.TDSDetail{
		ID:            m.ID,
		TenantID:      m.TenantID,
		VoucherID:     m.VoucherID,
		PartyLedgerID: m.PartyLedgerID,
		Section:       m.Section,
		Rate:          m.Rate,
		BaseAmount:    m.BaseAmount,
		TDSAmount:     m.TDSAmount,
		CreatedAt:     m.CreatedAt,
	}
}

// TDSDetailModelFromDomain creates a persistence model from a domain TDSDetail
func TDSDetailModelFromDomain(d *accounting.TDSDetail) *TDSDetailModel {
	return &TDSDetailModel{
		ID:            d.ID,
		TenantID:      d.TenantID,
		VoucherID:     d.VoucherID,
		PartyLedgerID: d.PartyLedgerID,
		Section:       d.Section,
		Rate:          d.Rate,
		BaseAmount:    d.BaseAmount,
		TDSAmount:     d.TDSAmount,
		CreatedAt:     d.CreatedAt,
	}
}
