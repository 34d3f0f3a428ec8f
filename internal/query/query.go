// Package query implements the shared pagination/filter/sort contract used
// by every listable entity. The same request shape produces the same
// semantics system-wide: clamped page/perPage, allow-listed sort columns,
// case-insensitive substring filters, and an items+count response.
package query

import (
	"strings"

	"gorm.io/gorm"
)

const (
	// DefaultPerPage is used when perPage is unset or out of range.
	DefaultPerPage = 20
	// MaxPerPage bounds a single result page.
	MaxPerPage = 50
)

// PageRequest is the pagination shape consumed from the request-parsing
// layer. Invalid values clamp to defaults rather than failing.
type PageRequest struct {
	Page      int    `json:"page" query:"page"`
	PerPage   int    `json:"per_page" query:"perPage"`
	SortBy    string `json:"sort_by" query:"sortBy"`
	Direction string `json:"asc_or_desc" query:"ascOrDesc"`
}

// Normalize clamps page, perPage, and direction into their valid ranges.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 || p.PerPage > MaxPerPage {
		p.PerPage = DefaultPerPage
	}
	switch strings.ToLower(p.Direction) {
	case "asc":
		p.Direction = "asc"
	case "desc":
		p.Direction = "desc"
	default:
		p.Direction = ""
	}
	return p
}

// Offset returns the row offset for the normalized request.
func (p PageRequest) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.PerPage
}

// Page is the uniform paginated response: one page of items plus the total
// number of matching rows before pagination.
type Page[T any] struct {
	Items []T   `json:"items"`
	Count int64 `json:"count"`
}

// Sortable maps caller-facing sort names onto database columns. Anything not
// in the map falls back to the entity default, never into raw SQL.
type Sortable struct {
	Columns map[string]string
	// Default is the full ORDER BY expression used when SortBy is unset or
	// unknown, e.g. "display_order asc" or "created_at desc".
	Default string
}

// Order resolves the ORDER BY clause for a request.
func (s Sortable) Order(p PageRequest) string {
	p = p.Normalize()
	col, ok := s.Columns[p.SortBy]
	if !ok {
		return s.Default
	}
	dir := p.Direction
	if dir == "" {
		dir = "asc"
	}
	return col + " " + dir
}

// Paginate applies ordering, limit, and offset onto a prepared gorm query.
// Filters belong on db before the call; Paginate never mutates state.
func Paginate(db *gorm.DB, p PageRequest, s Sortable) *gorm.DB {
	p = p.Normalize()
	return db.Order(s.Order(p)).Limit(p.PerPage).Offset(p.Offset())
}

// ILike appends a case-insensitive substring filter on column. Written as
// LOWER(...) LIKE so it behaves identically on postgres and sqlite.
func ILike(db *gorm.DB, column, term string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" {
		return db
	}
	return db.Where("LOWER("+column+") LIKE ?", "%"+strings.ToLower(term)+"%")
}
