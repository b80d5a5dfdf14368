package catalog_test

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taketora/internal/catalog"
	"taketora/internal/domain"
	"taketora/internal/i18n"
)

func names(ps []domain.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func TestGroupProducts_PopularFirstAndUngrouped(t *testing.T) {
	in := []domain.Product{
		{ID: "1", Name: "B", Category: "zebra"},
		{ID: "2", Name: "C"},
		{ID: "3", Name: "A", Category: "popular"},
	}
	g := catalog.GroupProducts(in)

	require.Len(t, g.Groups, 2)
	assert.Equal(t, "popular", g.Groups[0].Key)
	assert.Equal(t, []string{"A"}, names(g.Groups[0].Products))
	assert.Equal(t, "zebra", g.Groups[1].Key)
	assert.Equal(t, []string{"B"}, names(g.Groups[1].Products))
	assert.Equal(t, []string{"C"}, names(g.Ungrouped))
}

func TestGroupProducts_IsPartition(t *testing.T) {
	in := []domain.Product{
		{ID: "1", Category: "one-piece"},
		{ID: "2", SubCategory: "demon-slayer"},
		{ID: "3"},
		{ID: "4", Category: "one-piece"},
		{ID: "5", Category: "Popular"},
		{ID: "6", Category: "Kimono"},
		{ID: "7"},
	}
	g := catalog.GroupProducts(in)
	assert.Equal(t, len(in), g.Len())

	seen := map[string]int{}
	for _, grp := range g.Groups {
		assert.NotEmpty(t, grp.Products)
		for _, p := range grp.Products {
			seen[p.ID]++
			assert.Equal(t, grp.Key, catalog.GroupKey(p))
		}
	}
	for _, p := range g.Ungrouped {
		seen[p.ID]++
	}
	for _, p := range in {
		assert.Equal(t, 1, seen[p.ID], "product %s", p.ID)
	}
}

func TestGroupProducts_Empty(t *testing.T) {
	g := catalog.GroupProducts(nil)
	assert.True(t, g.Empty())
	assert.Empty(t, g.Groups)
}

func TestGroupKey_FallsBackToSubCategory(t *testing.T) {
	assert.Equal(t, "cat", catalog.GroupKey(domain.Product{Category: "cat", SubCategory: "sub"}))
	assert.Equal(t, "sub", catalog.GroupKey(domain.Product{SubCategory: "sub"}))
	assert.Equal(t, "", catalog.GroupKey(domain.Product{}))
}

func TestGroupWithFallback(t *testing.T) {
	g := catalog.GroupWithFallback([]domain.Product{{Name: "x"}, {Name: "y", Category: "art"}}, "other")
	require.Len(t, g.Groups, 2)
	assert.Equal(t, "art", g.Groups[0].Key)
	assert.Equal(t, "other", g.Groups[1].Key)
	assert.Empty(t, g.Ungrouped)
}

func TestSortKeys_PopularAlwaysFirst(t *testing.T) {
	inputs := [][]string{
		{"zebra", "apple", "POPULAR", "mango"},
		{"POPULAR", "zebra", "apple"},
		{"apple", "zebra", "POPULAR"},
	}
	for _, keys := range inputs {
		catalog.SortKeys(keys)
		assert.Equal(t, "POPULAR", keys[0])
		assert.True(t, sort.StringsAreSorted(keys[1:]))
	}
}

func TestSortKeys_StableUnderResort(t *testing.T) {
	keys := []string{"b", "Popular", "a", "B", "popular"}
	catalog.SortKeys(keys)
	first := append([]string(nil), keys...)
	catalog.SortKeys(keys)
	assert.Equal(t, first, keys)
	assert.Equal(t, []string{"popular", "Popular", "a", "b", "B"}, keys)
}

func TestSortKeys_MixedCaseCollates(t *testing.T) {
	keys := []string{"One Piece", "demon-slayer", "popular", "Antique", "banana"}
	catalog.SortKeys(keys)
	assert.Equal(t, []string{"popular", "Antique", "banana", "demon-slayer", "One Piece"}, keys)
}

func TestGroupProducts_ExplicitOtherJoinsUngrouped(t *testing.T) {
	in := []domain.Product{
		{Name: "tagged", Category: "Other"},
		{Name: "bare"},
		{Name: "plate", Category: "ceramics"},
	}
	g := catalog.GroupProducts(in)
	require.Len(t, g.Groups, 1)
	assert.Equal(t, "ceramics", g.Groups[0].Key)
	assert.Equal(t, []string{"tagged", "bare"}, names(g.Ungrouped))

	fb := catalog.GroupWithFallback(in, catalog.OtherKey)
	require.Len(t, fb.Groups, 2)
	assert.Equal(t, catalog.OtherKey, fb.Groups[1].Key)
	assert.Equal(t, []string{"tagged", "bare"}, names(fb.Groups[1].Products))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "One Piece", catalog.Label("one-piece", i18n.EN, false))
	assert.Equal(t, "Tea Ceremony Tools", catalog.Label("tea_ceremony TOOLS", i18n.EN, false))
	assert.Equal(t, "Other", catalog.Label("OTHER", i18n.EN, false))
	assert.Equal(t, "その他", catalog.Label("other", i18n.JA, false))
	assert.Equal(t, "Pokemon", catalog.Label("pokemon", i18n.EN, false))
	assert.Equal(t, "Pokémon Cards", catalog.Label("pokemon", i18n.EN, true))
	assert.Equal(t, "ポケモンカード", catalog.Label("Pokemon", i18n.JA, true))
}

func TestTitleize_CollapsesSeparators(t *testing.T) {
	assert.Equal(t, "Demon Slayer", catalog.Titleize("demon--slayer"))
	assert.Equal(t, "Édition Limitée", catalog.Titleize("édition-limitée"))
}

func TestFilterSubcategory(t *testing.T) {
	in := []domain.Product{
		{Name: "a", Category: "One-Piece"},
		{Name: "b", SubCategory: "one-piece"},
		{Name: "c", Category: "naruto"},
	}
	assert.Equal(t, []string{"a", "b"}, names(catalog.FilterSubcategory(in, "one-piece")))
	assert.Len(t, catalog.FilterSubcategory(in, ""), 3)

	withOther := append(in, domain.Product{Name: "d"}, domain.Product{Name: "e", Category: "other"})
	assert.Equal(t, []string{"d", "e"}, names(catalog.FilterSubcategory(withOther, "Other")))
}

func TestSortNewest(t *testing.T) {
	now := time.Now()
	in := []domain.Product{
		{Name: "old", CreatedAt: now.Add(-2 * time.Hour)},
		{Name: "none"},
		{Name: "new", CreatedAt: now},
	}
	catalog.SortNewest(in)
	assert.Equal(t, []string{"new", "old", "none"}, names(in))
}
