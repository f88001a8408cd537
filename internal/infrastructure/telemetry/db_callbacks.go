package telemetry

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

type gormRegister interface {
	Register(name string, fn func(*gorm.DB)) error
}

// otelAfterPrefix names otelgorm's after hooks, which end the span. Our after
// hooks run ahead of them so span attributes still land.
const otelAfterPrefix = "otel:after:"

// registerAround installs before on every gorm operation and after(op) once
// the operation has run. op is the SQL verb, or "" for Row and Raw, where
// the verb is read from the statement.
func registerAround(db *gorm.DB, prefix string, before func(*gorm.DB), after func(op string) func(*gorm.DB)) error {
	cb := db.Callback()
	hooks := []struct {
		reg  gormRegister
		name string
		fn   func(*gorm.DB)
	}{
		{cb.Create().Before("gorm:create"), "before_create", before},
		{cb.Query().Before("gorm:query"), "before_query", before},
		{cb.Update().Before("gorm:update"), "before_update", before},
		{cb.Delete().Before("gorm:delete"), "before_delete", before},
		{cb.Row().Before("gorm:row"), "before_row", before},
		{cb.Raw().Before("gorm:raw"), "before_raw", before},
		{cb.Create().After("gorm:create").Before(otelAfterPrefix + "create"), "after_create", after("INSERT")},
		{cb.Query().After("gorm:query").Before(otelAfterPrefix + "select"), "after_query", after("SELECT")},
		{cb.Update().After("gorm:update").Before(otelAfterPrefix + "update"), "after_update", after("UPDATE")},
		{cb.Delete().After("gorm:delete").Before(otelAfterPrefix + "delete"), "after_delete", after("DELETE")},
		{cb.Row().After("gorm:row").Before(otelAfterPrefix + "row"), "after_row", after("")},
		{cb.Raw().After("gorm:raw").Before(otelAfterPrefix + "raw"), "after_raw", after("")},
	}

	var errs []error
	for _, h := range hooks {
		errs = append(errs, h.reg.Register(prefix+":"+h.name, h.fn))
	}
	return errors.Join(errs...)
}

type startTimeKey string

// stampStart returns a before hook that records the start time under key
func stampStart(key startTimeKey) func(*gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}
		db.Statement.Context = context.WithValue(ctx, key, time.Now())
	}
}

func elapsedSince(db *gorm.DB, key startTimeKey) (time.Duration, bool) {
	if db.Statement.Context == nil {
		return 0, false
	}
	start, ok := db.Statement.Context.Value(key).(time.Time)
	if !ok {
		return 0, false
	}
	return time.Since(start), true
}

// operationOf returns op, or the leading SQL verb of the statement
func operationOf(db *gorm.DB, op string) string {
	if op != "" {
		return op
	}
	sql := strings.ToUpper(strings.TrimSpace(db.Statement.SQL.String()))
	for _, verb := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(sql, verb) {
			return verb
		}
	}
	return "OTHER"
}
