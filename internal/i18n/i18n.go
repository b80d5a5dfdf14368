// Package i18n holds the two UI locales, their message catalogs, and the
// helpers templates use to localize strings and numbers. Product data is not
// translated.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Locale string

const (
	JA Locale = "ja"
	EN Locale = "en"

	Default = JA
)

//go:embed messages/*.json
var catalogs embed.FS

var (
	supported = []Locale{JA, EN}
	tags      = map[Locale]language.Tag{JA: language.Japanese, EN: language.English}
	matcher   = language.NewMatcher([]language.Tag{language.Japanese, language.English})
	messages  = map[Locale]map[string]string{}
)

func init() {
	for _, l := range supported {
		raw, err := catalogs.ReadFile("messages/" + string(l) + ".json")
		if err != nil {
			panic(fmt.Sprintf("i18n: missing catalog %s: %v", l, err))
		}
		var nested map[string]any
		if err := json.Unmarshal(raw, &nested); err != nil {
			panic(fmt.Sprintf("i18n: bad catalog %s: %v", l, err))
		}
		flat := map[string]string{}
		flatten("", nested, flat)
		messages[l] = flat
	}
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch vv := v.(type) {
		case string:
			out[key] = vv
		case map[string]any:
			flatten(key, vv, out)
		}
	}
}

// Supported returns the locales in canonical order (default first).
func Supported() []Locale {
	out := make([]Locale, len(supported))
	copy(out, supported)
	return out
}

// Parse accepts "ja" or "en" (any case).
func Parse(s string) (Locale, bool) {
	switch Locale(strings.ToLower(strings.TrimSpace(s))) {
	case JA:
		return JA, true
	case EN:
		return EN, true
	}
	return "", false
}

// Detect picks a locale from an Accept-Language header, falling back to
// Default.
func Detect(acceptLanguage string) Locale {
	if strings.TrimSpace(acceptLanguage) == "" {
		return Default
	}
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(prefs...)
	if conf == language.No {
		return Default
	}
	return supported[idx]
}

// T looks up key; a missing key renders as the key itself.
func T(l Locale, key string) string {
	if m, ok := messages[l]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	if s, ok := messages[Default][key]; ok {
		return s
	}
	return key
}

// Has reports whether key exists for l.
func Has(l Locale, key string) bool {
	_, ok := messages[l][key]
	return ok
}

// Tf is T with {name} placeholders substituted from vars.
func Tf(l Locale, key string, vars map[string]any) string {
	s := T(l, key)
	for k, v := range vars {
		s = strings.ReplaceAll(s, "{"+k+"}", fmt.Sprint(v))
	}
	return s
}

// Yen formats a JPY amount with grouping, e.g. ¥8,500.
func Yen(l Locale, amount int64) string {
	return message.NewPrinter(l.Tag()).Sprintf("¥%d", amount)
}

// Tag is the BCP 47 tag for l.
func (l Locale) Tag() language.Tag {
	if t, ok := tags[l]; ok {
		return t
	}
	return tags[Default]
}

// OG is the OpenGraph locale form (ja_JP, en_US).
func (l Locale) OG() string {
	if l == EN {
		return "en_US"
	}
	return "ja_JP"
}

// Other returns the opposite locale, used by the language toggle.
func (l Locale) Other() Locale {
	if l == JA {
		return EN
	}
	return JA
}

// SwitchPath rewrites path onto locale to. Paths without a locale prefix get
// one.
func SwitchPath(path string, to Locale) string {
	parts := strings.Split(path, "/")
	if len(parts) > 1 {
		if _, ok := Parse(parts[1]); ok {
			parts[1] = string(to)
			return strings.Join(parts, "/")
		}
	}
	if path == "/" || path == "" {
		return "/" + string(to)
	}
	return "/" + string(to) + path
}

// ProductCount renders "{n} products" with English singular handling.
func ProductCount(l Locale, n int) string {
	if n == 1 && Has(l, "product.countOne") {
		return T(l, "product.countOne")
	}
	return Tf(l, "product.count", map[string]any{"count": n})
}
