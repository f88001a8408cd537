package accounting

import (
	"github.com/erp/posting/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Totals are the summed debit and credit sides of a ledger's entries
type Totals struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// Add accumulates one entry into the totals
func (t Totals) Add(debit, credit decimal.Decimal) Totals {
	return Totals{Debit: t.Debit.Add(debit), Credit: t.Credit.Add(credit)}
}

// Balance is a non-negative amount paired with the side it sits on
type Balance struct {
	Amount decimal.Decimal
	Side   BalanceSide
}

// Equal compares amount and side
func (b Balance) Equal(o Balance) bool {
	return b.Side == o.Side && b.Amount.Equal(o.Amount)
}

// ComputeBalance derives a ledger balance from its opening balance and the
// totals of all of its entries.
//
//	debit-normal:  opening + debit - credit
//	credit-normal: opening + credit - debit
//
// A negative result flips the side and is reported as its absolute value.
// A zero result is reported on the normal side.
func ComputeBalance(opening decimal.Decimal, normal BalanceSide, totals Totals) Balance {
	if !normal.IsValid() {
		normal = SideDebit
	}
	var signed decimal.Decimal
	if normal == SideDebit {
		signed = opening.Add(totals.Debit).Sub(totals.Credit)
	} else {
		signed = opening.Add(totals.Credit).Sub(totals.Debit)
	}
	signed = shared.RoundAmount(signed)
	if signed.IsNegative() {
		return Balance{Amount: signed.Abs(), Side: normal.Opposite()}
	}
	return Balance{Amount: signed, Side: normal}
}
