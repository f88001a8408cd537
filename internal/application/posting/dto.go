package posting

import (
	"time"

	"github.com/erp/posting/internal/domain/accounting"
	domain "github.com/erp/posting/internal/domain/posting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateVoucherRequest is the input for drafting a voucher
type CreateVoucherRequest struct {
	Number           string               `json:"number" binding:"required,max=50"`
	Type             string               `json:"voucher_type" binding:"required,max=30"`
	Date             time.Time            `json:"date" binding:"required"`
	PartyLedgerID    *uuid.UUID           `json:"party_ledger_id"`
	CashBankLedgerID *uuid.UUID           `json:"cash_bank_ledger_id"`
	DebitLedgerID    *uuid.UUID           `json:"debit_ledger_id"`
	CreditLedgerID   *uuid.UUID           `json:"credit_ledger_id"`
	TotalAmount      decimal.Decimal      `json:"total_amount"`
	Narration        string               `json:"narration" binding:"max=1000"`
	RestockOnReturn  bool                 `json:"restock_on_return"`
	Items            []VoucherItemRequest `json:"items" binding:"omitempty,dive"`
}

// VoucherItemRequest is one voucher line. Omitted amounts are stored as NULL.
type VoucherItemRequest struct {
	InventoryItemID *uuid.UUID          `json:"inventory_item_id"`
	Description     string              `json:"description" binding:"max=500"`
	HSNCode         string              `json:"hsn_code" binding:"max=20"`
	Quantity        decimal.NullDecimal `json:"quantity"`
	Rate            decimal.NullDecimal `json:"rate"`
	TaxableAmount   decimal.NullDecimal `json:"taxable_amount"`
	CGSTAmount      decimal.NullDecimal `json:"cgst_amount"`
	SGSTAmount      decimal.NullDecimal `json:"sgst_amount"`
	IGSTAmount      decimal.NullDecimal `json:"igst_amount"`
	CessAmount      decimal.NullDecimal `json:"cess_amount"`
}

// PostVoucherRequest carries entry lines for journals and contras
type PostVoucherRequest struct {
	Entries []EntryLineRequest `json:"entries" binding:"omitempty,dive"`
}

// EntryLineRequest is a caller-supplied entry line
type EntryLineRequest struct {
	LedgerID uuid.UUID       `json:"ledger_id" binding:"required"`
	Debit    decimal.Decimal `json:"debit"`
	Credit   decimal.Decimal `json:"credit"`
}

// ReverseVoucherRequest names the credit or debit note created by a reversal
type ReverseVoucherRequest struct {
	Number          string     `json:"number" binding:"max=50"`
	Date            *time.Time `json:"date"`
	RestockOnReturn bool       `json:"restock_on_return"`
}

// CreateLedgerRequest creates a user-maintained ledger such as a customer or bank account
type CreateLedgerRequest struct {
	Code           string          `json:"code" binding:"required,max=64"`
	Name           string          `json:"name" binding:"required,max=200"`
	GroupCode      string          `json:"group_code" binding:"required,max=64"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	OpeningSide    string          `json:"opening_side" binding:"omitempty,oneof=Dr Cr"`
	TDSApplicable  bool            `json:"tds_applicable"`
	TDSSection     string          `json:"tds_section" binding:"max=20"`
	TDSRate        decimal.Decimal `json:"tds_rate"`
}

// LedgerListFilter represents filter options for the ledger list
type LedgerListFilter struct {
	GroupID    *uuid.UUID `form:"group_id"`
	SystemOnly bool       `form:"system_only"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=500"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// VoucherResponse represents a voucher in API responses
type VoucherResponse struct {
	ID               uuid.UUID             `json:"id"`
	Number           string                `json:"number"`
	Type             string                `json:"voucher_type"`
	Date             time.Time             `json:"date"`
	PartyLedgerID    *uuid.UUID            `json:"party_ledger_id,omitempty"`
	CashBankLedgerID *uuid.UUID            `json:"cash_bank_ledger_id,omitempty"`
	DebitLedgerID    *uuid.UUID            `json:"debit_ledger_id,omitempty"`
	CreditLedgerID   *uuid.UUID            `json:"credit_ledger_id,omitempty"`
	TotalAmount      decimal.Decimal       `json:"total_amount"`
	Narration        string                `json:"narration,omitempty"`
	Status           string                `json:"status"`
	RestockOnReturn  bool                  `json:"restock_on_return"`
	ReversalOfID     *uuid.UUID            `json:"reversal_of_id,omitempty"`
	PostedAt         *time.Time            `json:"posted_at,omitempty"`
	CancelledAt      *time.Time            `json:"cancelled_at,omitempty"`
	Version          int                   `json:"version"`
	Items            []VoucherItemResponse `json:"items"`
	Entries          []EntryResponse       `json:"entries,omitempty"`
}

// VoucherItemResponse represents a voucher line in API responses
type VoucherItemResponse struct {
	ID              uuid.UUID           `json:"id"`
	LineNo          int                 `json:"line_no"`
	InventoryItemID *uuid.UUID          `json:"inventory_item_id,omitempty"`
	Description     string              `json:"description,omitempty"`
	HSNCode         string              `json:"hsn_code,omitempty"`
	Quantity        decimal.NullDecimal `json:"quantity"`
	Rate            decimal.NullDecimal `json:"rate"`
	TaxableAmount   decimal.NullDecimal `json:"taxable_amount"`
	CGSTAmount      decimal.NullDecimal `json:"cgst_amount"`
	SGSTAmount      decimal.NullDecimal `json:"sgst_amount"`
	IGSTAmount      decimal.NullDecimal `json:"igst_amount"`
	CessAmount      decimal.NullDecimal `json:"cess_amount"`
}

// EntryResponse represents one ledger entry
type EntryResponse struct {
	Sequence int             `json:"sequence"`
	LedgerID uuid.UUID       `json:"ledger_id"`
	Debit    decimal.Decimal `json:"debit"`
	Credit   decimal.Decimal `json:"credit"`
}

// TDSResponse represents the withholding record of a purchase
type TDSResponse struct {
	Section    string          `json:"section"`
	Rate       decimal.Decimal `json:"rate"`
	BaseAmount decimal.Decimal `json:"base_amount"`
	TDSAmount  decimal.Decimal `json:"tds_amount"`
}

// PostingResponse reports what a posting wrote. Posted is false when the
// voucher produced no entries and was left in its previous status.
type PostingResponse struct {
	VoucherID          uuid.UUID        `json:"voucher_id"`
	VoucherNumber      string           `json:"voucher_number"`
	Status             string           `json:"status"`
	Posted             bool             `json:"posted"`
	Strategy           string           `json:"strategy,omitempty"`
	Entries            []EntryResponse  `json:"entries"`
	TotalDebit         decimal.Decimal  `json:"total_debit"`
	TotalCredit        decimal.Decimal  `json:"total_credit"`
	RefreshedLedgerIDs []uuid.UUID      `json:"refreshed_ledger_ids"`
	CreatedLedgers     []string         `json:"created_ledgers,omitempty"`
	TDS                *TDSResponse     `json:"tds,omitempty"`
	Warnings           []domain.Warning `json:"warnings,omitempty"`
}

// ReversalResponse reports a reversal: the cancelled original and the posted note
type ReversalResponse struct {
	OriginalVoucherID uuid.UUID       `json:"original_voucher_id"`
	OriginalStatus    string          `json:"original_status"`
	Note              PostingResponse `json:"note"`
}

// CancelResponse reports a destructive cancellation
type CancelResponse struct {
	VoucherID          uuid.UUID   `json:"voucher_id"`
	Status             string      `json:"status"`
	DeletedEntries     int64       `json:"deleted_entries"`
	RefreshedLedgerIDs []uuid.UUID `json:"refreshed_ledger_ids"`
}

// LedgerResponse represents a ledger and its stored balance
type LedgerResponse struct {
	ID             uuid.UUID       `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	AccountGroupID uuid.UUID       `json:"account_group_id"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	OpeningSide    string          `json:"opening_side"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	BalanceSide    string          `json:"balance_side"`
	IsSystem       bool            `json:"is_system"`
	TDSApplicable  bool            `json:"tds_applicable"`
	TDSSection     string          `json:"tds_section,omitempty"`
	TDSRate        decimal.Decimal `json:"tds_rate"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToVoucherResponse converts a domain voucher to a response
func ToVoucherResponse(v *accounting.Voucher, entries []accounting.VoucherLedgerEntry) VoucherResponse {
	resp := VoucherResponse{
		ID:               v.ID,
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
		Version:          v.Version,
		Items:            make([]VoucherItemResponse, len(v.Items)),
		Entries:          toEntryResponses(entries),
	}
	for i, item := range v.Items {
		resp.Items[i] = VoucherItemResponse{
			ID:              item.ID,
			LineNo:          item.LineNo,
			InventoryItemID: item.InventoryItemID,
			Description:     item.Description,
			HSNCode:         item.HSNCode,
			Quantity:        item.Quantity,
			Rate:            item.Rate,
			TaxableAmount:   item.TaxableAmount,
			CGSTAmount:      item.CGSTAmount,
			SGSTAmount:      item.SGSTAmount,
			IGSTAmount:      item.IGSTAmount,
			CessAmount:      item.CessAmount,
		}
	}
	return resp
}

// ToLedgerResponse converts a domain ledger to a response
func ToLedgerResponse(l *accounting.Ledger) LedgerResponse {
	return LedgerResponse{
		ID:             l.ID,
		Code:           l.Code,
		Name:           l.Name,
		AccountGroupID: l.AccountGroupID,
		OpeningBalance: l.OpeningBalance,
		OpeningSide:    string(l.OpeningSide),
		CurrentBalance: l.CurrentBalance,
		BalanceSide:    string(l.BalanceSide),
		IsSystem:       l.IsSystem,
		TDSApplicable:  l.TDSApplicable,
		TDSSection:     l.TDSSection,
		TDSRate:        l.TDSRate,
		UpdatedAt:      l.UpdatedAt,
	}
}

func toPostingResponse(v *accounting.Voucher, r *Result, posted bool) PostingResponse {
	resp := PostingResponse{
		VoucherID:          v.ID,
		VoucherNumber:      v.Number,
		Status:             string(v.Status),
		Posted:             posted,
		Strategy:           string(r.Kind),
		Entries:            toEntryResponses(r.Entries),
		TotalDebit:         r.Totals.Debit,
		TotalCredit:        r.Totals.Credit,
		RefreshedLedgerIDs: r.RefreshedLedgerIDs,
		Warnings:           r.Warnings,
	}
	if resp.RefreshedLedgerIDs == nil {
		resp.RefreshedLedgerIDs = []uuid.UUID{}
	}
	for _, l := range r.CreatedLedgers {
		resp.CreatedLedgers = append(resp.CreatedLedgers, l.Code)
	}
	if r.TDS != nil {
		resp.TDS = &TDSResponse{
			Section:    r.TDS.Section,
			Rate:       r.TDS.Rate,
			BaseAmount: r.TDS.BaseAmount,
			TDSAmount:  r.TDS.TDSAmount,
		}
	}
	return resp
}

func toEntryResponses(entries []accounting.VoucherLedgerEntry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i, e := range entries {
		out[i] = EntryResponse{Sequence: e.Sequence, LedgerID: e.LedgerID, Debit: e.Debit, Credit: e.Credit}
	}
	return out
}

func (r PostVoucherRequest) lines() []domain.EntryLine {
	if len(r.Entries) == 0 {
		return nil
	}
	lines := make([]domain.EntryLine, len(r.Entries))
	for i, e := range r.Entries {
		lines[i] = domain.EntryLine{LedgerID: e.LedgerID, Debit: e.Debit, Credit: e.Credit, Label: "manual"}
	}
	return lines
}

func (i VoucherItemRequest) toDomain() accounting.VoucherItem {
	return accounting.VoucherItem{
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
