package tenant

import (
	"github.com/erp/posting/internal/infrastructure/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Callback adds the context tenant to statements that carry no tenant condition
type Callback struct {
	required bool
}

// NewCallback creates a tenant callback. When required is set, statements
// without a tenant in their context fail with ErrTenantIDRequired.
func NewCallback(required bool) *Callback {
	return &Callback{required: required}
}

// Register installs the callback before query, row, update and delete processing.
// Creates are not filtered: new rows are stamped with their tenant explicitly.
func (c *Callback) Register(db *gorm.DB) error {
	if err := db.Callback().Query().Before("gorm:query").Register("tenant:before_query", c.apply); err != nil {
		return err
	}
	if err := db.Callback().Row().Before("gorm:row").Register("tenant:before_row", c.apply); err != nil {
		return err
	}
	if err := db.Callback().Update().Before("gorm:update").Register("tenant:before_update", c.apply); err != nil {
		return err
	}
	return db.Callback().Delete().Before("gorm:delete").Register("tenant:before_delete", c.apply)
}

func (c *Callback) apply(db *gorm.DB) {
	if db.Statement.Context == nil || db.Statement.Unscoped {
		return
	}
	scoped, enforce := tenantScoped(db.Statement)
	if !scoped || hasTenantCondition(db.Statement) {
		return
	}

	raw := logger.GetTenantID(db.Statement.Context)
	if raw == "" {
		if c.required && enforce {
			_ = db.AddError(ErrTenantIDRequired)
		}
		return
	}
	tenantID, err := uuid.Parse(raw)
	if err != nil {
		_ = db.AddError(ErrInvalidTenantID)
		return
	}
	db.Statement.AddClause(clause.Where{Exprs: []clause.Expression{Condition(tenantID)}})
}

// tenantScoped reports whether a tenant condition can be added to stmt and
// whether a missing tenant is an error. Raw SQL is already built. Statements
// naming only a table are filtered when the context has a tenant, but the
// migrator's catalog lookups run that way without one.
func tenantScoped(stmt *gorm.Statement) (scoped, enforce bool) {
	if stmt.SQL.Len() > 0 {
		return false, false
	}
	if stmt.Schema != nil {
		has := stmt.Schema.LookUpField(Column) != nil
		return has, has
	}
	return stmt.Table != "", false
}

func hasTenantCondition(stmt *gorm.Statement) bool {
	c, ok := stmt.Clauses["WHERE"]
	if !ok {
		return false
	}
	where, ok := c.Expression.(clause.Where)
	if !ok {
		return false
	}
	for _, expr := range where.Exprs {
		if exprContainsTenant(expr) {
			return true
		}
	}
	return false
}

func exprContainsTenant(expr clause.Expression) bool {
	switch e := expr.(type) {
	case clause.Eq:
		if col, ok := e.Column.(clause.Column); ok {
			return col.Name == Column
		}
	case clause.IN:
		if col, ok := e.Column.(clause.Column); ok {
			return col.Name == Column
		}
	case clause.AndConditions:
		for _, cond := range e.Exprs {
			if exprContainsTenant(cond) {
				return true
			}
		}
	}
	return false
}

// EnableAutoTenantFilter registers tenant callbacks on db
func EnableAutoTenantFilter(db *gorm.DB, required bool) error {
	return NewCallback(required).Register(db)
}
