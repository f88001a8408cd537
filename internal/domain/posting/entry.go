package posting

import (
	"fmt"

	"github.com/erp/posting/internal/domain/accounting"
	"github.com/erp/posting/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryLine is one (ledger, debit, credit) tuple produced by a strategy
type EntryLine struct {
	LedgerID uuid.UUID
	Debit    decimal.Decimal
	Credit   decimal.Decimal
	// Label names the role of the line (party, SALES, OUTPUT_CGST...) for logs and tests.
	Label string
}

// Side returns the non-zero side of the line
func (l EntryLine) Side() accounting.BalanceSide {
	if l.Debit.IsPositive() {
		return accounting.SideDebit
	}
	return accounting.SideCredit
}

// Amount returns the non-zero amount of the line
func (l EntryLine) Amount() decimal.Decimal {
	if l.Debit.IsPositive() {
		return l.Debit
	}
	return l.Credit
}

// Validate enforces exactly one non-zero, non-negative side
func (l EntryLine) Validate() error {
	if l.LedgerID == uuid.Nil {
		return shared.WrapDomainError(accounting.CodeInvalidEntry, "ledger entry has no ledger", accounting.ErrInvalidEntry)
	}
	return accounting.VoucherLedgerEntry{Debit: l.Debit, Credit: l.Credit}.Validate()
}

// lineBuilder accumulates lines in posting order. Zero amounts are dropped
// and negative amounts are posted on the opposite side.
type lineBuilder struct {
	lines []EntryLine
}

func (b *lineBuilder) add(ledgerID uuid.UUID, side accounting.BalanceSide, amount decimal.Decimal, label string) {
	if amount.IsZero() {
		return
	}
	if amount.IsNegative() {
		side = side.Opposite()
		amount = amount.Abs()
	}
	line := EntryLine{LedgerID: ledgerID, Debit: decimal.Zero, Credit: decimal.Zero, Label: label}
	if side == accounting.SideDebit {
		line.Debit = amount
	} else {
		line.Credit = amount
	}
	b.lines = append(b.lines, line)
}

func (b *lineBuilder) debit(ledgerID uuid.UUID, amount decimal.Decimal, label string) {
	b.add(ledgerID, accounting.SideDebit, amount, label)
}

func (b *lineBuilder) credit(ledgerID uuid.UUID, amount decimal.Decimal, label string) {
	b.add(ledgerID, accounting.SideCredit, amount, label)
}

// Reverse swaps the sides of every line, keeping order
func Reverse(lines []EntryLine) []EntryLine {
	out := make([]EntryLine, len(lines))
	for i, l := range lines {
		out[i] = EntryLine{LedgerID: l.LedgerID, Debit: l.Credit, Credit: l.Debit, Label: l.Label}
	}
	return out
}

// Sum totals the debit and credit sides of lines
func Sum(lines []EntryLine) accounting.Totals {
	t := accounting.Totals{Debit: decimal.Zero, Credit: decimal.Zero}
	for _, l := range lines {
		t = t.Add(l.Debit, l.Credit)
	}
	return t
}

// CheckBalanced validates every line and requires total debit to equal total credit
func CheckBalanced(lines []EntryLine) (accounting.Totals, error) {
	for i, l := range lines {
		if err := l.Validate(); err != nil {
			return accounting.Totals{}, fmt.Errorf("line %d (%s): %w", i+1, l.Label, err)
		}
	}
	t := Sum(lines)
	if !t.Debit.Equal(t.Credit) {
		return t, shared.WrapDomainError(accounting.CodeUnbalancedEntries, accounting.ErrUnbalancedEntries.Message,
			fmt.Errorf("debit %s != credit %s", t.Debit.StringFixed(2), t.Credit.StringFixed(2)))
	}
	return t, nil
}
