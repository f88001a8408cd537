package accounting

import (
	"github.com/erp/posting/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountGroup is a node in the tenant's chart-of-accounts hierarchy
// (e.g. Assets -> Current Assets -> Inventories). Groups are seeded at
// provisioning; only custom leaves are added later.
type AccountGroup struct {
	shared.BaseEntity
	TenantID         uuid.UUID
	Code             string
	Name             string
	ParentID         *uuid.UUID
	Nature           GroupNature
	ScheduleCategory string
	IsCustom         bool
}

// NewAccountGroup creates a group under an optional parent
func NewAccountGroup(tenantID uuid.UUID, code, name string, nature GroupNature, parentID *uuid.UUID, category string) *AccountGroup {
	return &AccountGroup{
		BaseEntity:       shared.NewBaseEntity(),
		TenantID:         tenantID,
		Code:             code,
		Name:             name,
		ParentID:         parentID,
		Nature:           nature,
		ScheduleCategory: category,
	}
}
