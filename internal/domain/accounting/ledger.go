package accounting

import (
	"strings"
	"unicode"

	"github.com/erp/posting/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ledger is a leaf account. Its normal side is the side of its opening
// balance. CurrentBalance is non-negative and always paired with BalanceSide;
// both are only ever written together through ApplyBalance.
type Ledger struct {
	shared.TenantAggregateRoot
	Code           string
	Name           string
	AccountGroupID uuid.UUID
	OpeningBalance decimal.Decimal
	OpeningSide    BalanceSide
	CurrentBalance decimal.Decimal
	BalanceSide    BalanceSide
	IsSystem       bool
	TDSApplicable  bool
	TDSSection     string
	TDSRate        decimal.Decimal
}

// NewLedger creates a ledger with the given opening balance
func NewLedger(tenantID uuid.UUID, code, name string, groupID uuid.UUID, opening decimal.Decimal, side BalanceSide) *Ledger {
	if !side.IsValid() {
		side = SideDebit
	}
	return &Ledger{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		AccountGroupID:      groupID,
		OpeningBalance:      opening.Abs(),
		OpeningSide:         side,
		CurrentBalance:      opening.Abs(),
		BalanceSide:         side,
	}
}

// NewSystemLedger creates a debit-normal, zero-opening ledger flagged as system generated
func NewSystemLedger(tenantID uuid.UUID, code, name string, groupID uuid.UUID) *Ledger {
	l := NewLedger(tenantID, code, name, groupID, decimal.Zero, SideDebit)
	l.IsSystem = true
	return l
}

// NormalSide is the side on which the ledger's balance increases
func (l *Ledger) NormalSide() BalanceSide {
	if l.OpeningSide.IsValid() {
		return l.OpeningSide
	}
	return SideDebit
}

// ApplyBalance stores a computed balance and side together
func (l *Ledger) ApplyBalance(b Balance) {
	l.CurrentBalance = b.Amount
	l.BalanceSide = b.Side
	l.Touch()
}

// Balance returns the stored balance pair
func (l *Ledger) Balance() Balance {
	return Balance{Amount: l.CurrentBalance, Side: l.BalanceSide}
}

// WithholdsTDS reports whether purchases from this party carry a TDS record
func (l *Ledger) WithholdsTDS() bool {
	return l.TDSApplicable && l.TDSRate.IsPositive()
}

// CodeFromName derives a ledger code from a display name: "Output CGST" -> "OUTPUT_CGST"
func CodeFromName(name string) string {
	var b strings.Builder
	underscore := false
	for _, r := range strings.TrimSpace(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToUpper(r))
			underscore = false
		case !underscore && b.Len() > 0:
			b.WriteByte('_')
			underscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
