// Package tenant scopes GORM statements to one tenant.
//
// Repositories apply Scope explicitly with the tenant id they were given. The
// callbacks registered by EnableAutoTenantFilter add the same condition from the
// request context to any query that arrives without one, so a forgotten scope
// cannot read across tenants.
package tenant

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Column is the tenant column every posting table carries
const Column = "tenant_id"

// ErrTenantIDRequired is returned when tenant_id is required but not found
var ErrTenantIDRequired = errors.New("tenant_id is required but not found in context")

// ErrInvalidTenantID is returned when tenant_id format is invalid
var ErrInvalidTenantID = errors.New("invalid tenant_id format")

// Condition is the tenant predicate on the statement's own table
func Condition(tenantID uuid.UUID) clause.Expression {
	return clause.Eq{
		Column: clause.Column{Table: clause.CurrentTable, Name: Column},
		Value:  tenantID,
	}
}

// Scope applies tenant filtering to a GORM statement.
// A nil tenant id is a programming error and fails the statement.
func Scope(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if tenantID == uuid.Nil {
			_ = db.AddError(ErrTenantIDRequired)
			return db
		}
		return db.Where(Condition(tenantID))
	}
}
