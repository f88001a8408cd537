package posting

import (
	"github.com/erp/posting/internal/domain/accounting"
	"github.com/erp/posting/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TaxTotals are the transaction-level tax split of a voucher
type TaxTotals struct {
	Taxable decimal.Decimal
	CGST    decimal.Decimal
	SGST    decimal.Decimal
	IGST    decimal.Decimal
	Cess    decimal.Decimal
}

// GrandTotal is the sum of the rounded components, so that a posting built
// from these totals always balances.
func (t TaxTotals) GrandTotal() decimal.Decimal {
	return t.Taxable.Add(t.CGST).Add(t.SGST).Add(t.IGST).Add(t.Cess)
}

// TaxTotal is the sum of the tax components alone
func (t TaxTotals) TaxTotal() decimal.Decimal {
	return t.CGST.Add(t.SGST).Add(t.IGST).Add(t.Cess)
}

// AggregateTaxes sums the per-line amounts of items. Unset fields count as
// zero. Each total is rounded once, after summing.
func AggregateTaxes(items []accounting.VoucherItem) TaxTotals {
	var t TaxTotals
	for _, item := range items {
		t.Taxable = t.Taxable.Add(shared.ZeroIfNull(item.TaxableAmount))
		t.CGST = t.CGST.Add(shared.ZeroIfNull(item.CGSTAmount))
		t.SGST = t.SGST.Add(shared.ZeroIfNull(item.SGSTAmount))
		t.IGST = t.IGST.Add(shared.ZeroIfNull(item.IGSTAmount))
		t.Cess = t.Cess.Add(shared.ZeroIfNull(item.CessAmount))
	}
	return TaxTotals{
		Taxable: shared.RoundAmount(t.Taxable),
		CGST:    shared.RoundAmount(t.CGST),
		SGST:    shared.RoundAmount(t.SGST),
		IGST:    shared.RoundAmount(t.IGST),
		Cess:    shared.RoundAmount(t.Cess),
	}
}
