// Package catalog shapes product lists for display: grouping by category,
// group ordering, and group labels.
package catalog

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"taketora/internal/domain"
	"taketora/internal/i18n"
)

const popularKey = "popular"

// OtherKey is the catch-all group. Rows tagged "other" and rows with no
// key end up in the same place.
const OtherKey = "other"

// Group is one display section.
type Group struct {
	Key      string
	Products []domain.Product
}

// Grouping is a partition of a product list: every input product sits in
// exactly one Group or in Ungrouped.
type Grouping struct {
	Groups    []Group
	Ungrouped []domain.Product
}

// Len counts every product in the grouping.
func (g Grouping) Len() int {
	n := len(g.Ungrouped)
	for _, grp := range g.Groups {
		n += len(grp.Products)
	}
	return n
}

// Empty reports whether there is nothing to render.
func (g Grouping) Empty() bool { return g.Len() == 0 }

// GroupKey resolves category, then the legacy sub-category columns. Case is
// preserved.
func GroupKey(p domain.Product) string {
	if p.Category != "" {
		return p.Category
	}
	return p.SubCategory
}

// GroupProducts buckets products by GroupKey, keeping input order inside each bucket.
func GroupProducts(products []domain.Product) Grouping {
	return groupWith(products, "")
}

// GroupWithFallback is GroupProducts but sends keyless products to the
// fallback group instead of Ungrouped.
func GroupWithFallback(products []domain.Product, fallback string) Grouping {
	return groupWith(products, fallback)
}

func groupWith(products []domain.Product, fallback string) Grouping {
	buckets := map[string][]domain.Product{}
	var out Grouping
	for _, p := range products {
		key := GroupKey(p)
		if key == "" || strings.EqualFold(key, OtherKey) {
			key = fallback
		}
		if key == "" {
			out.Ungrouped = append(out.Ungrouped, p)
			continue
		}
		buckets[key] = append(buckets[key], p)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	SortKeys(keys)
	for _, k := range keys {
		if len(buckets[k]) == 0 {
			continue
		}
		out.Groups = append(out.Groups, Group{Key: k, Products: buckets[k]})
	}
	return out
}

// SortKeys orders group keys: any key equal to "popular" ignoring case comes
// first, the rest by root-locale collation with a byte-wise tie-break.
func SortKeys(keys []string) {
	col := collate.New(language.Und)
	sort.SliceStable(keys, func(i, j int) bool { return keyLess(col, keys[i], keys[j]) })
}

func keyLess(col *collate.Collator, a, b string) bool {
	ap := strings.EqualFold(a, popularKey)
	bp := strings.EqualFold(b, popularKey)
	if ap != bp {
		return ap
	}
	if c := col.CompareString(a, b); c != 0 {
		return c < 0
	}
	return a < b
}

// Label turns a group key into a heading. combined marks the cross-table
// collection view, where the bare "pokemon" key gets its product-line name.
func Label(key string, loc i18n.Locale, combined bool) string {
	if key == "" || strings.EqualFold(key, OtherKey) {
		return i18n.T(loc, "catalog.other")
	}
	if combined && strings.EqualFold(key, "pokemon") {
		return i18n.T(loc, "catalog.pokemonCards")
	}
	return Titleize(key)
}

// Titleize splits on '-', '_' and whitespace, upper-cases the first letter
// of each word, lower-cases the rest, and joins with single spaces.
func Titleize(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_' || unicode.IsSpace(r)
	})
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}

// FilterSubcategory keeps products whose group key matches sub, ignoring
// case. An empty sub keeps everything; OtherKey also matches keyless rows.
func FilterSubcategory(products []domain.Product, sub string) []domain.Product {
	sub = strings.TrimSpace(sub)
	if sub == "" {
		return products
	}
	other := strings.EqualFold(sub, OtherKey)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		key := GroupKey(p)
		if strings.EqualFold(key, sub) || (other && key == "") {
			out = append(out, p)
		}
	}
	return out
}

// SortNewest orders by created_at descending; rows without a timestamp go
// last.
func SortNewest(products []domain.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
}
