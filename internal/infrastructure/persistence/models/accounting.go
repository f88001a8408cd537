package models

import (
	"time"

	"github.com/erp/posting/internal/domain/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountGroupModel is the persistence model for a chart-of-accounts node.
type AccountGroupModel struct {
	BaseModel
	TenantID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_account_groups_tenant_code,priority:1"`
	Code             string     `gorm:"type:varchar(64);not null;uniqueIndex:idx_account_groups_tenant_code,priority:2"`
	Name             string     `gorm:"type:varchar(200);not null"`
	ParentID         *uuid.UUID `gorm:"type:uuid;index"`
	Nature           string     `gorm:"type:varchar(20);not null"`
	ScheduleCategory string     `gorm:"type:varchar(100)"`
	IsCustom         bool       `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (AccountGroupModel) TableName() string {
	return "account_groups"
}

// ToDomain converts the persistence model to a domain AccountGroup
func (m *AccountGroupModel) ToDomain() *accounting.AccountGroup {
	return &accounting.AccountGroup{
		BaseEntity:       m.entity(),
		TenantID:         m.TenantID,
		Code:             m.Code,
		Name:             m.Name,
		ParentID:         m.ParentID,
		Nature:           accounting.GroupNature(m.Nature),
		ScheduleCategory: m.ScheduleCategory,
		IsCustom:         m.IsCustom,
	}
}

// AccountGroupModelFromDomain creates a persistence model from a domain AccountGroup
func AccountGroupModelFromDomain(g *accounting.AccountGroup) *AccountGroupModel {
	m := &AccountGroupModel{
		TenantID:         g.TenantID,
		Code:             g.Code,
		Name:             g.Name,
		ParentID:         g.ParentID,
		Nature:           string(g.Nature),
		ScheduleCategory: g.ScheduleCategory,
		IsCustom:         g.IsCustom,
	}
	m.BaseModel = baseModelOf(g.BaseEntity)
	return m
}

// LedgerModel is the persistence model for the Ledger aggregate root.
// (tenant_id, code) is unique so concurrent auto-creation collapses onto one row.
type LedgerModel struct {
	AggregateModel
	TenantID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_ledgers_tenant_code,priority:1;index:idx_ledgers_tenant_name,priority:1"`
	Code           string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_ledgers_tenant_code,priority:2"`
	Name           string          `gorm:"type:varchar(200);not null;index:idx_ledgers_tenant_name,priority:2"`
	AccountGroupID uuid.UUID       `gorm:"type:uuid;not null;index"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	OpeningSide    string          `gorm:"type:varchar(2);not null;default:'Dr'"`
	CurrentBalance decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	BalanceSide    string          `gorm:"type:varchar(2);not null;default:'Dr'"`
	IsSystem       bool            `gorm:"not null;default:false"`
	TDSApplicable  bool            `gorm:"column:tds_applicable;not null;default:false"`
	TDSSection     string          `gorm:"column:tds_section;type:varchar(20)"`
	TDSRate        decimal.Decimal `gorm:"column:tds_rate;type:decimal(7,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (LedgerModel) TableName() string {
	return "ledgers"
}

// ToDomain converts the persistence model to a domain Ledger
func (m *LedgerModel) ToDomain() *accounting.Ledger {
	return &accounting.Ledger{
		TenantAggregateRoot: m.header(m.TenantID),
		Code:                m.Code,
		Name:                m.Name,
		AccountGroupID:      m.AccountGroupID,
		OpeningBalance:      m.OpeningBalance,
		OpeningSide:         sideOrDebit(m.OpeningSide),
		CurrentBalance:      m.CurrentBalance,
		BalanceSide:         sideOrDebit(m.BalanceSide),
		IsSystem:            m.IsSystem,
		TDSApplicable:       m.TDSApplicable,
		TDSSection:          m.TDSSection,
		TDSRate:             m.TDSRate,
	}
}

// sideOrDebit reads a stored side, accepting the spellings found in older rows.
// An empty or unreadable side is debit.
func sideOrDebit(s string) accounting.BalanceSide {
	side, err := accounting.ParseBalanceSide(s)
	if err != nil {
		return accounting.SideDebit
	}
	return side
}

// LedgerModelFromDomain creates a persistence model from a domain Ledger
func LedgerModelFromDomain(l *accounting.Ledger) *LedgerModel {
	m := &LedgerModel{
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
	}
	m.AggregateModel, m.TenantID = aggregateModelOf(l.TenantAggregateRoot), l.TenantID
	return m
}

// TenantProfileModel records the business type a tenant was provisioned with.
type TenantProfileModel struct {
	TenantID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	BusinessType  string    `gorm:"type:varchar(20);not null"`
	ProvisionedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TenantProfileModel) TableName() string {
	return "tenant_profiles"
}

// ToDomain converts the persistence model to a domain TenantProfile
func (m *TenantProfileModel) ToDomain() *accounting.TenantProfile {
	return &accounting.TenantProfile{
		TenantID:      m.TenantID,
		BusinessType:  accounting.BusinessType(m.BusinessType),
		ProvisionedAt: m.ProvisionedAt,
	}
}

// TenantProfileModelFromDomain creates a persistence model from a domain TenantProfile
func TenantProfileModelFromDomain(p *accounting.TenantProfile) *TenantProfileModel {
	return &TenantProfileModel{
		TenantID:      p.TenantID,
		BusinessType:  string(p.BusinessType),
		ProvisionedAt: p.ProvisionedAt,
	}
}
