package persistence

import (
	"strings"

	"gorm.io/gorm/clause"
)

// sortSpec whitelists the columns a listing may be ordered by. User input
// never reaches SQL; unknown columns or directions fall back to the defaults.
type sortSpec struct {
	columns    map[string]struct{}
	defaultCol string
	defaultDsc bool
}

func newSortSpec(defaultCol string, desc bool, columns ...string) sortSpec {
	s := sortSpec{columns: make(map[string]struct{}, len(columns)+1), defaultCol: defaultCol, defaultDsc: desc}
	s.columns[defaultCol] = struct{}{}
	for _, c := range columns {
		s.columns[c] = struct{}{}
	}
	return s
}

var ledgerSort = newSortSpec("code", false, "name", "current_balance", "created_at", "updated_at")

// resolve returns the column and direction to use for the request.
func (s sortSpec) resolve(column, direction string) (string, bool) {
	col := strings.TrimSpace(column)
	if _, ok := s.columns[col]; !ok {
		col = s.defaultCol
	}
	switch strings.ToUpper(strings.TrimSpace(direction)) {
	case "ASC":
		return col, false
	case "DESC":
		return col, true
	}
	return col, s.defaultDsc
}

// orderBy builds the ORDER BY clause, with id as tie-breaker so pages are
// stable when the sort column repeats.
func (s sortSpec) orderBy(column, direction string) clause.OrderBy {
	col, desc := s.resolve(column, direction)
	cols := []clause.OrderByColumn{{Column: clause.Column{Name: col}, Desc: desc}}
	if col != "id" {
		cols = append(cols, clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}
	return clause.OrderBy{Columns: cols}
}
