package seo

import (
	"encoding/json"
	"html/template"
	"net/url"
	"strings"

	"taketora/internal/domain"
	"taketora/internal/i18n"
)

const schemaContext = "https://schema.org"

type listItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item"`
}

type breadcrumbList struct {
	Context  string     `json:"@context"`
	Type     string     `json:"@type"`
	Elements []listItem `json:"itemListElement"`
}

// BreadcrumbJSONLD renders trail as a schema.org BreadcrumbList.
func BreadcrumbJSONLD(baseURL string, trail Trail) any {
	items := make([]listItem, len(trail))
	for i, c := range trail {
		items[i] = listItem{Type: "ListItem", Position: i + 1, Name: c.Label, Item: baseURL + c.Href}
	}
	return breadcrumbList{Context: schemaContext, Type: "BreadcrumbList", Elements: items}
}

type brand struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type offer struct {
	Type          string `json:"@type"`
	Price         int64  `json:"price"`
	PriceCurrency string `json:"priceCurrency"`
	Availability  string `json:"availability"`
	ItemCondition string `json:"itemCondition"`
	URL           string `json:"url,omitempty"`
}

type productLD struct {
	Context     string   `json:"@context"`
	Type        string   `json:"@type"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Image       []string `json:"image,omitempty"`
	SKU         string   `json:"sku,omitempty"`
	Brand       *brand   `json:"brand,omitempty"`
	Offers      offer    `json:"offers"`
}

// ProductJSONLD is the schema.org Product with one JPY Offer. Availability
// uses the product's derived flag, matching the page badge.
func ProductJSONLD(baseURL, categorySlug string, p domain.Product) any {
	ld := productLD{
		Context:     schemaContext,
		Type:        "Product",
		Name:        p.Name,
		Description: p.Description,
		SKU:         p.ID,
		Offers: offer{
			Type:          "Offer",
			Price:         p.Price,
			PriceCurrency: "JPY",
			Availability:  schemaContext + "/OutOfStock",
			ItemCondition: schemaContext + "/" + conditionName(p.Condition) + "Condition",
		},
	}
	if p.Available {
		ld.Offers.Availability = schemaContext + "/InStock"
	}
	if p.Linkable() {
		ld.Offers.URL = baseURL + LocalePath(i18n.Default, "/"+categorySlug+"/"+url.PathEscape(p.Slug))
	}
	if p.Image != "" {
		ld.Image = append(ld.Image, absolute(baseURL, p.Image))
	}
	for _, img := range p.Images {
		if u := absolute(baseURL, img); len(ld.Image) == 0 || u != ld.Image[0] {
			ld.Image = append(ld.Image, u)
		}
	}
	if p.Brand != "" {
		ld.Brand = &brand{Type: "Brand", Name: p.Brand}
	}
	return ld
}

// schema.org has New, Used, Refurbished and Damaged; "Mint" is sold as new.
func conditionName(c string) string {
	switch strings.ToLower(strings.TrimSpace(c)) {
	case "used":
		return "Used"
	default:
		return "New"
	}
}

// StoreJSONLD describes the shop itself; emitted on every page.
func StoreJSONLD(baseURL string, loc i18n.Locale) any {
	desc := "京都・東山のアンティークショップ。骨董品、古道具、アニメフィギュア、ポケモンカードなど厳選コレクションを販売。"
	if loc == i18n.EN {
		desc = "Authentic antique shop in Kyoto's Higashiyama district. Japanese antiques, traditional crafts, anime figures & Pokémon cards."
	}
	return map[string]any{
		"@context":      schemaContext,
		"@type":         "AntiqueStore",
		"name":          "たけとら (Taketora)",
		"alternateName": []string{"Taketora", "Taketora Antiques", "たけとら", "Taketora Antique Shop Kyoto"},
		"url":           baseURL,
		"logo":          baseURL + "/static/img/taketora_logo.png",
		"description":   desc,
		"address": map[string]any{
			"@type":           "PostalAddress",
			"streetAddress":   "五条橋東6丁目539-49",
			"addressLocality": "京都市東山区",
			"addressRegion":   "京都府",
			"postalCode":      "605-0848",
			"addressCountry":  "JP",
		},
		"geo": map[string]any{"@type": "GeoCoordinates", "latitude": 34.9948, "longitude": 135.7738},
		"openingHoursSpecification": map[string]any{
			"@type":     "OpeningHoursSpecification",
			"dayOfWeek": []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
			"opens":     "10:00",
			"closes":    "20:00",
		},
	}
}

// Script marshals v for a <script type="application/ld+json"> body.
// json.Marshal escapes <, > and &, so the result cannot close the tag.
func Script(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		return template.JS("{}")
	}
	return template.JS(b)
}
