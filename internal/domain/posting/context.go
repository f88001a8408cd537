package posting

import (
	"context"

	"github.com/erp/posting/internal/domain/accounting"
	"github.com/erp/posting/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LedgerResolver finds or creates the canonical ledger for a definition
type LedgerResolver interface {
	Resolve(ctx context.Context, def accounting.SystemLedger) (*accounting.Ledger, error)
}

// Warning codes
const (
	WarnUnknownType       = "UNKNOWN_VOUCHER_TYPE"
	WarnMissingParty      = "MISSING_PARTY_LEDGER"
	WarnMissingCashBank   = "MISSING_CASH_BANK_LEDGER"
	WarnNoEntriesSupplied = "NO_ENTRIES_SUPPLIED"
	WarnTotalMismatch     = "TOTAL_MISMATCH"
	WarnZeroAmount        = "ZERO_AMOUNT"
)

// Warning is a non-fatal condition raised while building a posting
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Context is everything a strategy may read. Manual carries caller-supplied
// lines for journals and contras.
type Context struct {
	Voucher   *accounting.Voucher
	Manual    []EntryLine
	Ledgers   LedgerResolver
	Inventory accounting.InventoryItemReader
	Warnings  []Warning

	taxes TaxTotals
}

// NewContext prepares a strategy context for voucher
func NewContext(voucher *accounting.Voucher, ledgers LedgerResolver, inventory accounting.InventoryItemReader, manual []EntryLine) *Context {
	return &Context{
		Voucher:   voucher,
		Manual:    manual,
		Ledgers:   ledgers,
		Inventory: inventory,
	}
}

func (pc *Context) warn(code, message string) {
	pc.Warnings = append(pc.Warnings, Warning{Code: code, Message: message})
}

// warnIfZero flags a voucher whose amount rounds to zero and reports whether it did
func (pc *Context) warnIfZero(amount decimal.Decimal) bool {
	if !shared.RoundAmount(amount).IsZero() {
		return false
	}
	pc.warn(WarnZeroAmount, "voucher "+pc.Voucher.Number+" has a zero amount")
	return true
}

func (pc *Context) aggregateTaxes() TaxTotals {
	pc.taxes = AggregateTaxes(pc.Voucher.Items)
	if total := pc.Voucher.TotalAmount; !total.IsZero() && !total.Equal(pc.taxes.GrandTotal()) {
		pc.warn(WarnTotalMismatch, "voucher total "+total.StringFixed(2)+" differs from item total "+pc.taxes.GrandTotal().StringFixed(2))
	}
	return pc.taxes
}

func (pc *Context) cogs(ctx context.Context) (decimal.Decimal, error) {
	return ValuateCOGS(ctx, pc.Inventory, pc.Voucher.TenantID, pc.Voucher.Items)
}

// resolveIfNonZero resolves def only when amount needs a line
func (pc *Context) resolveIfNonZero(ctx context.Context, def accounting.SystemLedger, amount decimal.Decimal) (*accounting.Ledger, error) {
	if amount.IsZero() {
		return nil, nil
	}
	return pc.Ledgers.Resolve(ctx, def)
}
