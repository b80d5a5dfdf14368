package repos

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"

	"taketora/internal/domain"
	applog "taketora/internal/log"
)

// productRecord is the raw row shape shared by the SQL and REST stores. Every
// column is optional; the tables drifted through several migrations.
type productRecord struct {
	ID               text       `db:"id" json:"id"`
	Slug             text       `db:"slug" json:"slug"`
	Name             text       `db:"name" json:"name"`
	Description      text       `db:"description" json:"description"`
	Category         text       `db:"category" json:"category"`
	SubCategory      text       `db:"sub_category" json:"sub_category"`
	Subcategory      text       `db:"subcategory" json:"subcategory"`
	Price            number     `db:"price" json:"price"`
	ImageURL         text       `db:"image_url" json:"image_url"`
	Image            text       `db:"image" json:"image"`
	Images           stringList `db:"images" json:"images"`
	Brand            text       `db:"brand" json:"brand"`
	Stock            number     `db:"stock" json:"stock"`
	InStock          flag       `db:"instock" json:"instock"`
	InStockAlt       flag       `db:"in_stock" json:"in_stock"`
	IsInStock        flag       `db:"is_in_stock" json:"is_in_stock"`
	Available        flag       `db:"available" json:"available"`
	IsAvailable      flag       `db:"is_available" json:"is_available"`
	Condition        text       `db:"condition" json:"condition"`
	CopyrightSticker flag       `db:"copyright_sticker" json:"copyright_sticker"`
	OriginalBox      flag       `db:"original_box" json:"original_box"`
	Dimensions       rawJSON    `db:"dimensions" json:"dimensions"`
	Weight           number     `db:"weight" json:"weight"`
	Tags             stringList `db:"tags" json:"tags"`
	CreatedAt        timestamp  `db:"created_at" json:"created_at"`
	UpdatedAt        timestamp  `db:"updated_at" json:"updated_at"`
}

func (r productRecord) signals() domain.StockSignals {
	return domain.StockSignals{
		InStock:     bool(r.InStock),
		InStockAlt:  bool(r.InStockAlt),
		IsInStock:   bool(r.IsInStock),
		Available:   bool(r.Available),
		IsAvailable: bool(r.IsAvailable),
		Stock:       int(r.Stock),
	}
}

func (r productRecord) toProduct(t Table, lg *applog.Logger) domain.Product {
	p := domain.Product{
		ID:               string(r.ID),
		Table:            string(t),
		Slug:             strings.TrimSpace(string(r.Slug)),
		Name:             string(r.Name),
		Description:      string(r.Description),
		Category:         string(r.Category),
		SubCategory:      firstNonEmpty(string(r.SubCategory), string(r.Subcategory)),
		Price:            int64(math.Round(float64(r.Price))),
		Image:            firstNonEmpty(string(r.ImageURL), string(r.Image)),
		Images:           []string(r.Images),
		Brand:            string(r.Brand),
		Stock:            int(r.Stock),
		Available:        r.signals().Derive(),
		Condition:        string(r.Condition),
		CopyrightSticker: bool(r.CopyrightSticker),
		OriginalBox:      bool(r.OriginalBox),
		Weight:           int(r.Weight),
		Tags:             []string(r.Tags),
		CreatedAt:        time.Time(r.CreatedAt),
		UpdatedAt:        time.Time(r.UpdatedAt),
	}
	if p.Image == "" && len(p.Images) > 0 {
		p.Image = p.Images[0]
	}
	dims, err := decodeDimensions(r.Dimensions)
	if err != nil {
		lg.Warn("product.dimensions.invalid", map[string]any{"table": string(t), "id": p.ID, "err": err.Error()})
	}
	p.Dimensions = dims
	return p
}

// decodeDimensions accepts a JSON object or a JSON string holding one.
// Anything unparseable is reported and treated as absent.
func decodeDimensions(raw rawJSON) (*domain.Dimensions, error) {
	b := bytes.TrimSpace(raw)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil, nil
	}
	if b[0] == '"' {
		var inner string
		if err := json.Unmarshal(b, &inner); err != nil {
			return nil, err
		}
		b = bytes.TrimSpace([]byte(inner))
		if len(b) == 0 {
			return nil, nil
		}
	}
	var d domain.Dimensions
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("dimensions: %w", err)
	}
	if d.Height == 0 && d.Width == 0 && d.Depth == 0 {
		return nil, nil
	}
	if d.Unit == "" {
		d.Unit = "cm"
	}
	return &d, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// text scans any scalar column into a string; NULL becomes "".
type text string

func (t *text) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = ""
	case string:
		*t = text(v)
	case []byte:
		*t = text(v)
	case int64:
		*t = text(strconv.FormatInt(v, 10))
	case float64:
		*t = text(strconv.FormatFloat(v, 'f', -1, 64))
	case bool:
		*t = text(strconv.FormatBool(v))
	case time.Time:
		*t = text(v.Format(time.RFC3339))
	default:
		return fmt.Errorf("text: unsupported %T", src)
	}
	return nil
}

func (t *text) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*t = ""
	case string:
		*t = text(x)
	case float64:
		*t = text(strconv.FormatFloat(x, 'f', -1, 64))
	case bool:
		*t = text(strconv.FormatBool(x))
	default:
		return fmt.Errorf("text: unsupported json %T", v)
	}
	return nil
}

// flag is a tolerant boolean: NULL, 0 and unparseable strings are false.
type flag bool

func parseFlag(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}

func (f *flag) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*f = false
	case bool:
		*f = flag(v)
	case int64:
		*f = v != 0
	case float64:
		*f = v != 0
	case string:
		*f = flag(parseFlag(v))
	case []byte:
		*f = flag(parseFlag(string(v)))
	default:
		return fmt.Errorf("flag: unsupported %T", src)
	}
	return nil
}

func (f *flag) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case bool:
		*f = flag(x)
	case float64:
		*f = x != 0
	case string:
		*f = flag(parseFlag(x))
	default:
		*f = false
	}
	return nil
}

// number covers integer, float and Postgres numeric (delivered as text).
type number float64

func (n *number) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*n = 0
	case int64:
		*n = number(v)
	case float64:
		*n = number(v)
	case []byte:
		return n.parse(string(v))
	case string:
		return n.parse(v)
	default:
		return fmt.Errorf("number: unsupported %T", src)
	}
	return nil
}

func (n *number) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("number: %w", err)
	}
	*n = number(f)
	return nil
}

func (n *number) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*n = 0
	case float64:
		*n = number(x)
	case string:
		return n.parse(x)
	default:
		return fmt.Errorf("number: unsupported json %T", v)
	}
	return nil
}

// stringList reads Postgres text[] ("{a,b}"), a JSON array, or a JSON array
// stored in a text column.
type stringList []string

func (l *stringList) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("stringList: unsupported %T", src)
	}
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		*l = nil
	case strings.HasPrefix(s, "["):
		var out []string
		if err := json.Unmarshal([]byte(s), &out); err != nil {
			return fmt.Errorf("stringList: %w", err)
		}
		*l = out
	case strings.HasPrefix(s, "{"):
		var arr pq.StringArray
		if err := arr.Scan([]byte(s)); err != nil {
			return fmt.Errorf("stringList: %w", err)
		}
		*l = stringList(arr)
	default:
		*l = stringList{s}
	}
	return nil
}

func (l *stringList) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*l = nil
	case string:
		return l.Scan(x)
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		*l = out
	default:
		return fmt.Errorf("stringList: unsupported json %T", v)
	}
	return nil
}

// timestamp tolerates the formats Postgres, SQLite and PostgREST emit. An
// unparseable value is zero rather than an error.
type timestamp time.Time

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999-07:00",
	"2006-01-02 15:04:05.999999-07",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (ts *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*ts = timestamp{}
	case time.Time:
		*ts = timestamp(v)
	case string:
		*ts = timestamp(parseTime(v))
	case []byte:
		*ts = timestamp(parseTime(string(v)))
	default:
		*ts = timestamp{}
	}
	return nil
}

func (ts *timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*ts = timestamp{}
		return nil
	}
	*ts = timestamp(parseTime(s))
	return nil
}

// rawJSON keeps a column's bytes for a decode after the row is read.
type rawJSON []byte

func (r *rawJSON) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*r = nil
	case []byte:
		*r = append(rawJSON(nil), v...)
	case string:
		*r = rawJSON(v)
	default:
		return fmt.Errorf("rawJSON: unsupported %T", src)
	}
	return nil
}

func (r *rawJSON) UnmarshalJSON(b []byte) error {
	*r = append(rawJSON(nil), b...)
	return nil
}
