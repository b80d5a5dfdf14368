package repos

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a slug lookup matches no row.
var ErrNotFound = errors.New("not found")

// Table names one of the three product tables.
type Table string

const (
	AnimeFigure Table = "animefigure"
	Pokemon     Table = "pokemon"
	Antique     Table = "antique"
)

var routeSlugs = map[Table]string{
	AnimeFigure: "anime-figures",
	Pokemon:     "pokemon",
	Antique:     "antique",
}

// Tables lists every table in navigation order.
func Tables() []Table { return []Table{Antique, AnimeFigure, Pokemon} }

func (t Table) Valid() bool {
	_, ok := routeSlugs[t]
	return ok
}

// Slug is the URL segment for the table's listing page.
func (t Table) Slug() string { return routeSlugs[t] }

// NavKey is the message key shared by the nav bar and breadcrumbs.
func (t Table) NavKey() string {
	switch t {
	case AnimeFigure:
		return "animeFigures"
	case Pokemon:
		return "pokemon"
	case Antique:
		return "antique"
	}
	return ""
}

// TableForRoute resolves a listing URL segment. Only canonical slugs match.
func TableForRoute(slug string) (Table, bool) {
	for t, s := range routeSlugs {
		if s == slug {
			return t, true
		}
	}
	return "", false
}

// TableForSlug is the lenient lookup used by query-string filters: it also
// accepts table names and the accented spelling.
func TableForSlug(s string) (Table, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "anime-figures", "animefigure", "anime-figure", "animefigures":
		return AnimeFigure, true
	case "pokemon", "pokémon", "pokemon-cards":
		return Pokemon, true
	case "antique", "antiques":
		return Antique, true
	}
	return "", false
}

// ListOptions narrows a table scan. Zero value means all rows, unordered.
type ListOptions struct {
	Category string
	OrderBy  string // "category" | "created_at"
	Desc     bool
	Limit    int
}

func (o ListOptions) orderColumn() string {
	switch o.OrderBy {
	case "category", "created_at":
		return o.OrderBy
	}
	return ""
}
