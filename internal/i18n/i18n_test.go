package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"taketora/internal/i18n"
)

func TestParse(t *testing.T) {
	l, ok := i18n.Parse("EN")
	assert.True(t, ok)
	assert.Equal(t, i18n.EN, l)

	_, ok = i18n.Parse("fr")
	assert.False(t, ok)
}

func TestDetect(t *testing.T) {
	assert.Equal(t, i18n.EN, i18n.Detect("en-US,en;q=0.9"))
	assert.Equal(t, i18n.JA, i18n.Detect("ja,en;q=0.5"))
	assert.Equal(t, i18n.JA, i18n.Detect(""))
	assert.Equal(t, i18n.JA, i18n.Detect("!!garbage"))
}

func TestT(t *testing.T) {
	assert.Equal(t, "ホーム", i18n.T(i18n.JA, "breadcrumbs.home"))
	assert.Equal(t, "Home", i18n.T(i18n.EN, "breadcrumbs.home"))
	assert.Equal(t, "Anime Figures", i18n.T(i18n.EN, "collection.productTypes.anime-figures"))
	assert.Equal(t, "no.such.key", i18n.T(i18n.EN, "no.such.key"))
}

func TestTfAndCount(t *testing.T) {
	assert.Equal(t, "6 min walk from Kiyomizu-dera", i18n.Tf(i18n.EN, "visit.minWalk", map[string]any{"mins": 6}))
	assert.Equal(t, "1 product", i18n.ProductCount(i18n.EN, 1))
	assert.Equal(t, "3 products", i18n.ProductCount(i18n.EN, 3))
	assert.Equal(t, "1点", i18n.ProductCount(i18n.JA, 1))
}

func TestYen(t *testing.T) {
	assert.Equal(t, "¥8,500", i18n.Yen(i18n.JA, 8500))
	assert.Equal(t, "¥45,000", i18n.Yen(i18n.EN, 45000))
	assert.Equal(t, "¥0", i18n.Yen(i18n.EN, 0))
}

func TestSwitchPath(t *testing.T) {
	assert.Equal(t, "/en/antique", i18n.SwitchPath("/ja/antique", i18n.EN))
	assert.Equal(t, "/ja", i18n.SwitchPath("/en", i18n.JA))
	assert.Equal(t, "/ja/blog/x", i18n.SwitchPath("/blog/x", i18n.JA))
	assert.Equal(t, "/en", i18n.SwitchPath("/", i18n.EN))
}
