package seo

import (
	"encoding/json"
	"strings"
)

// Robots allows everything except the API and admin trees.
func Robots(baseURL string) string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /api/\n")
	b.WriteString("Disallow: /admin/\n")
	b.WriteString("\nSitemap: " + baseURL + "/sitemap.xml\n")
	return b.String()
}

type manifestIcon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type"`
}

type manifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Description     string         `json:"description"`
	StartURL        string         `json:"start_url"`
	Display         string         `json:"display"`
	BackgroundColor string         `json:"background_color"`
	ThemeColor      string         `json:"theme_color"`
	Icons           []manifestIcon `json:"icons"`
}

// Manifest is the web app manifest JSON.
func Manifest() ([]byte, error) {
	return json.Marshal(manifest{
		Name:            "たけとら - 京都・東山のアンティークショップ | Taketora Antique Shop Kyoto",
		ShortName:       "たけとら Taketora",
		Description:     "京都・東山区五条坂のアンティークショップ。骨董品、古道具、アニメフィギュア、ポケモンカード。Authentic antique shop in Kyoto Higashiyama.",
		StartURL:        "/ja",
		Display:         "standalone",
		BackgroundColor: "#fafaf7",
		ThemeColor:      "#1a1a2e",
		Icons: []manifestIcon{
			{Src: "/static/img/icon-192x192.png", Sizes: "192x192", Type: "image/png"},
			{Src: "/static/img/icon-512x512.png", Sizes: "512x512", Type: "image/png"},
		},
	})
}
