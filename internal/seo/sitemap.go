package seo

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"time"

	"taketora/internal/domain"
	"taketora/internal/i18n"
)

type staticPage struct {
	Path       string
	ChangeFreq string
	Priority   float64
}

var staticPages = []staticPage{
	{"", "daily", 1.0},
	{"/antique", "weekly", 0.9},
	{"/anime-figures", "weekly", 0.8},
	{"/pokemon", "weekly", 0.8},
	{"/collection", "daily", 0.8},
	{"/visit", "monthly", 0.7},
	{"/blog", "weekly", 0.7},
}

// ProductRef is the slice of a product the sitemap needs.
type ProductRef struct {
	CategorySlug string
	Slug         string
	LastModified time.Time
}

type xhtmlLink struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

type sitemapURL struct {
	Loc        string      `xml:"loc"`
	LastMod    string      `xml:"lastmod,omitempty"`
	ChangeFreq string      `xml:"changefreq,omitempty"`
	Priority   string      `xml:"priority,omitempty"`
	Links      []xhtmlLink `xml:"xhtml:link"`
}

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	XHTML   string       `xml:"xmlns:xhtml,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap lists static pages, every linkable product and every blog post,
// once per locale, each with alternates for all locales. Missing
// timestamps use now.
func Sitemap(baseURL string, now time.Time, products []ProductRef, posts []domain.PostSummary) ([]byte, error) {
	set := urlset{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		XHTML: "http://www.w3.org/1999/xhtml",
	}
	add := func(path string, mod time.Time, freq string, prio float64) {
		if mod.IsZero() {
			mod = now
		}
		links := make([]xhtmlLink, 0, len(i18n.Supported()))
		for _, l := range i18n.Supported() {
			links = append(links, xhtmlLink{Rel: "alternate", Hreflang: string(l), Href: baseURL + LocalePath(l, path)})
		}
		for _, l := range i18n.Supported() {
			set.URLs = append(set.URLs, sitemapURL{
				Loc:        baseURL + LocalePath(l, path),
				LastMod:    mod.UTC().Format(time.RFC3339),
				ChangeFreq: freq,
				Priority:   fmt.Sprintf("%.1f", prio),
				Links:      links,
			})
		}
	}

	for _, p := range staticPages {
		add(p.Path, now, p.ChangeFreq, p.Priority)
	}
	for _, p := range products {
		if p.Slug == "" || p.CategorySlug == "" {
			continue
		}
		add("/"+p.CategorySlug+"/"+url.PathEscape(p.Slug), p.LastModified, "weekly", 0.7)
	}
	for _, post := range posts {
		if post.Slug == "" {
			continue
		}
		add("/blog/"+url.PathEscape(post.Slug), post.Date, "monthly", 0.6)
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
