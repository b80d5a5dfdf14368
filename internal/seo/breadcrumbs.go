package seo

import (
	"taketora/internal/catalog"
	"taketora/internal/i18n"
)

// Crumb is one breadcrumb entry. Path is locale-less; Href is what the
// template links to.
type Crumb struct {
	Label string
	Path  string
	Href  string
}

// Labeled builds a crumb whose label is a message key.
func Labeled(loc i18n.Locale, key, path string) Crumb {
	return Crumb{Label: i18n.T(loc, key), Path: path}
}

// Segment builds a crumb for a dynamic slug, titleized for display.
func Segment(slug, path string) Crumb {
	return Crumb{Label: catalog.Titleize(slug), Path: path}
}

// Named uses a display name as-is (product names, post titles).
func Named(name, path string) Crumb {
	return Crumb{Label: name, Path: path}
}

// Trail is the ordered breadcrumb list: Home first, current page last.
type Trail []Crumb

// NewTrail prepends Home and resolves every Href against loc. The same
// trail feeds the visible breadcrumbs and BreadcrumbJSONLD.
func NewTrail(loc i18n.Locale, crumbs ...Crumb) Trail {
	t := make(Trail, 0, len(crumbs)+1)
	t = append(t, Labeled(loc, "breadcrumbs.home", ""))
	t = append(t, crumbs...)
	for i := range t {
		t[i].Href = LocalePath(loc, t[i].Path)
	}
	return t
}

// Current is the last crumb.
func (t Trail) Current() Crumb {
	if len(t) == 0 {
		return Crumb{}
	}
	return t[len(t)-1]
}

// Ancestors is every crumb but the last; templates link these.
func (t Trail) Ancestors() Trail {
	if len(t) == 0 {
		return nil
	}
	return t[:len(t)-1]
}
