// Package seo builds the metadata, structured data and crawler files for
// the public pages. All URLs are absolute against the configured base URL.
package seo

import (
	"net/url"
	"strings"

	"taketora/internal/domain"
	"taketora/internal/i18n"
)

const siteName = "たけとら Taketora"

type pageText struct{ Title, Description string }

var pageMeta = map[string]map[i18n.Locale]pageText{
	"home": {
		i18n.JA: {"たけとら（Taketora）｜京都・東山のアンティークショップ - 骨董品・古道具・コレクティブル",
			"京都・東山区五条坂のアンティークショップ「たけとら」。骨董品、古道具、アニメフィギュア、ポケモンカードなど厳選コレクションを販売。清水寺エリア。営業時間10:00〜20:00、英語対応可。"},
		i18n.EN: {"Taketora｜Antique Shop in Kyoto Higashiyama - Japanese Antiques & Collectibles",
			"Authentic antique shop in Kyoto's Higashiyama district near Kiyomizu-dera. Japanese antiques, traditional crafts, anime figures & Pokemon cards. Open daily 10AM-8PM. English spoken."},
	},
	"antique": {
		i18n.JA: {"京都の骨董品・古美術コレクション｜たけとら アンティークショップ 東山",
			"京都・東山で本物の骨董品・古美術品をお探しなら「たけとら」。陶磁器、茶道具、掛け軸、古民具など、日本の伝統工芸品を五条坂の店舗で販売。"},
		i18n.EN: {"Japanese Antiques & Traditional Crafts｜Taketora Kyoto Higashiyama",
			"Discover authentic Japanese antiques in Kyoto. Ceramics, tea ceremony tools, scrolls, and folk crafts. Each piece hand-selected from Kyoto and surrounding regions. Visit us on Gojo-zaka."},
	},
	"anime": {
		i18n.JA: {"アニメフィギュア販売｜京都 たけとら - 正規品・限定品取り扱い",
			"京都・東山のたけとらで本物のアニメフィギュアを。日本国内正規品、限定版、プレミアムコレクティブルを店舗販売。元箱付き・品質保証。"},
		i18n.EN: {"Anime Figures in Kyoto｜Taketora - Authentic Japanese Collectibles",
			"Buy authentic anime figures in Kyoto's Higashiyama. Premium collectibles from popular series, limited editions, original packaging. Direct from Japan."},
	},
	"pokemon": {
		i18n.JA: {"ポケモンカード販売｜京都 たけとら - シールド品・レアカード取り扱い",
			"京都・東山のたけとらでポケモンカードを購入。シールド済みブースターボックス、レアカード、日本限定商品を取り揃え。"},
		i18n.EN: {"Pokemon Cards in Kyoto｜Taketora - Sealed Boxes & Rare Cards",
			"Buy Japanese Pokemon cards in Kyoto. Sealed booster boxes, rare cards, Japan-exclusive products. Visit Taketora in Higashiyama, near Kiyomizu-dera."},
	},
	"collection": {
		i18n.JA: {"全商品一覧｜京都 たけとら - 骨董品・フィギュア・ポケモンカード",
			"京都・東山のアンティークショップたけとらの全商品。骨董品、古道具、アニメフィギュア、ポケモンカードなど厳選アイテム。"},
		i18n.EN: {"All Items｜Taketora Kyoto - Antiques, Figures & Pokemon Cards",
			"Browse Taketora's full collection. Japanese antiques, anime figures, Pokemon cards and more at our Kyoto Higashiyama shop."},
	},
	"visit": {
		i18n.JA: {"アクセス・営業時間｜京都・東山 たけとら アンティークショップ 五条坂",
			"京都・東山区五条坂のアンティークショップたけとらへのアクセス。清水五条駅から徒歩圏内。営業時間10:00-20:00、年中無休。英語対応可。"},
		i18n.EN: {"Visit Us｜Taketora Antique Shop - Kyoto Higashiyama, Gojo-zaka",
			"Find Taketora antique shop in Kyoto's Higashiyama, near Kiyomizu-dera temple on Gojo-zaka slope. Open daily 10AM-8PM. English & Japanese spoken. Map & directions."},
	},
	"blog": {
		i18n.JA: {"ブログ｜京都 たけとら - 骨董品・アンティーク・コレクティブル情報",
			"京都のアンティークショップたけとらのブログ。骨董品の知識、新入荷情報、京都のアンティーク文化について。"},
		i18n.EN: {"Blog｜Taketora Kyoto - Antiques, Collectibles & Japanese Culture",
			"Stories from Taketora antique shop in Kyoto. Discover Japanese antique culture, new arrivals, and collecting tips."},
	},
}

// PageMeta returns the fixed title and description for a static page.
// Unknown pages fall back to home.
func PageMeta(page string, loc i18n.Locale) (title, description string) {
	m, ok := pageMeta[page]
	if !ok {
		m = pageMeta["home"]
	}
	t, ok := m[loc]
	if !ok {
		t = m[i18n.Default]
	}
	return t.Title, t.Description
}

type Alternate struct {
	Hreflang string
	Href     string
}

// Meta is everything the layout writes into <head>.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	Alternates  []Alternate
	OGType      string
	OGLocale    string
	OGAltLocale string
	OGImage     string
	OGImageAlt  string
	SiteName    string
	TwitterCard string
	Robots      string
}

// LocalePath joins a locale and a locale-less path ("" is the home page).
func LocalePath(loc i18n.Locale, path string) string {
	path = strings.TrimRight(path, "/")
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return "/" + string(loc) + path
}

// Metadata builds canonical, hreflang alternates (x-default is Japanese),
// OpenGraph and Twitter fields for a locale-less path.
func Metadata(baseURL string, loc i18n.Locale, path, title, description string) Meta {
	ogImage := baseURL + "/static/img/og-image-ja.jpg"
	ogAlt := "京都・東山のアンティークショップ たけとら"
	if loc == i18n.EN {
		ogImage = baseURL + "/static/img/og-image-en.jpg"
		ogAlt = "Taketora antique shop in Kyoto Higashiyama"
	}
	alts := make([]Alternate, 0, 3)
	for _, l := range i18n.Supported() {
		alts = append(alts, Alternate{Hreflang: string(l), Href: baseURL + LocalePath(l, path)})
	}
	alts = append(alts, Alternate{Hreflang: "x-default", Href: baseURL + LocalePath(i18n.Default, path)})

	return Meta{
		Title:       title,
		Description: description,
		Canonical:   baseURL + LocalePath(loc, path),
		Alternates:  alts,
		OGType:      "website",
		OGLocale:    loc.OG(),
		OGAltLocale: loc.Other().OG(),
		OGImage:     ogImage,
		OGImageAlt:  ogAlt,
		SiteName:    siteName,
		TwitterCard: "summary_large_image",
	}
}

// ProductMeta is Metadata for a detail page; the product image replaces the
// site OpenGraph image when present.
func ProductMeta(baseURL string, loc i18n.Locale, categorySlug string, p domain.Product) Meta {
	title := p.Name + " | Taketora Kyoto"
	desc := p.Description
	if loc == i18n.JA {
		title = p.Name + " | 京都 たけとら"
		if desc == "" {
			desc = "京都・東山のたけとらで" + p.Name + "をお買い求めいただけます。"
		}
	} else if desc == "" {
		desc = "Authentic " + p.Name + " available at Taketora in Kyoto."
	}
	m := Metadata(baseURL, loc, "/"+categorySlug+"/"+url.PathEscape(p.Slug), title, desc)
	if p.Image != "" {
		m.OGImage = absolute(baseURL, p.Image)
		m.OGImageAlt = p.Name
	}
	return m
}

// NotFoundMeta keeps 404 pages out of the index.
func NotFoundMeta(loc i18n.Locale) Meta {
	return Meta{Title: i18n.T(loc, "notFound.title") + " | Taketora", Robots: "noindex", SiteName: siteName}
}

func absolute(baseURL, ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return baseURL + ref
}
