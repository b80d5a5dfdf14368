package domain

import "time"

// Dimensions of a boxed item. Unit is "cm" or "inches".
type Dimensions struct {
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
	Unit   string  `json:"unit"`
}

// Product is one row of a category table after normalization. Price is JPY.
type Product struct {
	ID               string
	Table            string // source table, e.g. "animefigure"
	Slug             string
	Name             string
	Description      string
	Category         string
	SubCategory      string // legacy sub_category / subcategory, first non-empty
	Price            int64
	Image            string
	Images           []string
	Brand            string
	Stock            int
	Available        bool
	Condition        string // New | Used | Mint
	CopyrightSticker bool
	OriginalBox      bool
	Dimensions       *Dimensions
	Weight           int // grams, 0 when unknown
	Tags             []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Linkable reports whether the product can be deep-linked.
func (p Product) Linkable() bool { return p.Slug != "" }

// LastModified is updated_at, then created_at, then zero.
func (p Product) LastModified() time.Time {
	if !p.UpdatedAt.IsZero() {
		return p.UpdatedAt
	}
	return p.CreatedAt
}

// PostSummary is a blog list entry from the CMS.
type PostSummary struct {
	ID           string
	Title        string
	Slug         string
	Date         time.Time
	PreviewImage string
}

// Post is a single blog article. Content is CMS-authored HTML.
type Post struct {
	Title   string
	Slug    string
	Date    time.Time
	Content string
}
