package accounting

import "fmt"

// BalanceSide is the side of a ledger on which a balance sits
type BalanceSide string

const (
	SideDebit  BalanceSide = "Dr"
	SideCredit BalanceSide = "Cr"
)

// IsValid checks if the side is a known value
func (s BalanceSide) IsValid() bool {
	return s == SideDebit || s == SideCredit
}

// Opposite returns the other side
func (s BalanceSide) Opposite() BalanceSide {
	if s == SideCredit {
		return SideDebit
	}
	return SideCredit
}

// ParseBalanceSide accepts Dr/Cr in any of the spellings stored by older data
func ParseBalanceSide(s string) (BalanceSide, error) {
	switch s {
	case "Dr", "DR", "dr", "debit", "Debit":
		return SideDebit, nil
	case "Cr", "CR", "cr", "credit", "Credit":
		return SideCredit, nil
	}
	return "", fmt.Errorf("unknown balance side %q", s)
}

// GroupNature is the top-level classification of an account group
type GroupNature string

const (
	NatureAssets      GroupNature = "Assets"
	NatureLiabilities GroupNature = "Liabilities"
	NatureIncome      GroupNature = "Income"
	NatureExpenses    GroupNature = "Expenses"
)

// NormalSide is the side on which balances of this nature increase
func (n GroupNature) NormalSide() BalanceSide {
	switch n {
	case NatureLiabilities, NatureIncome:
		return SideCredit
	default:
		return SideDebit
	}
}

// BusinessType selects the chart of accounts seeded for a tenant
type BusinessType string

const (
	BusinessTrader       BusinessType = "trader"
	BusinessManufacturer BusinessType = "manufacturer"
	BusinessService      BusinessType = "service"
)

// ParseBusinessType validates a configured business type
func ParseBusinessType(s string) (BusinessType, error) {
	switch bt := BusinessType(s); bt {
	case BusinessTrader, BusinessManufacturer, BusinessService:
		return bt, nil
	}
	return "", fmt.Errorf("unknown business type %q", s)
}
