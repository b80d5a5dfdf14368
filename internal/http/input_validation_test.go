package httpserver_test

import (
	"net/http"
	"strings"
	"testing"

	httpserver "taketora/internal/http"
)

// reject malformed inputs early
func TestValidationBadInputs(t *testing.T) {
	ta := newTestApp(t, httpserver.Options{})

	cases := []struct {
		path string
		want int
	}{
		{"/api/v1/availability?category=antique&slug=bad%00slug", http.StatusBadRequest},
		{"/api/v1/shipping?weight=-1", http.StatusBadRequest},
		{"/api/v1/currency?amount=1e9", http.StatusBadRequest},
		{"/en/blog/%3Cscript%3E", http.StatusNotFound},
		{"/en/antique/..%2F..%2Fetc", http.StatusNotFound},
	}
	for _, tc := range cases {
		resp, body := ta.get(t, tc.path)
		if resp.StatusCode != tc.want {
			t.Fatalf("%s: expected %d, got %d body=%s", tc.path, tc.want, resp.StatusCode, body)
		}
	}

	// a junk subcategory filter is dropped, not an error
	resp, body := ta.get(t, "/en/collection?subcategory=%3Cscript%3E")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("collection with junk filter expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Imari Plate") {
		t.Fatalf("dropped filter should show every product")
	}
}

// templates auto-escape untrusted text
func TestTemplateAutoEscape(t *testing.T) {
	ta := newTestApp(t, httpserver.Options{})
	// Insert a product with XSS-y fields
	_, err := ta.db.Exec(`
		INSERT INTO antique(id,slug,name,description,category,price,stock,available,condition)
		VALUES('xss-1','xss-item','<script>alert(1)</script>','<b>desc</b>','ceramics',100,1,1,'Used')
	`)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	resp, body := ta.get(t, "/en/antique/xss-item")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if strings.Contains(body, "<script>alert(1)</script>") {
		t.Fatalf("found unescaped script tag in output")
	}
	if !strings.Contains(body, "&lt;script&gt;alert(1)&lt;/script&gt;") {
		t.Fatalf("escaped script not found; output=%s", body)
	}
	if strings.Contains(body, "<b>desc</b>") {
		t.Fatalf("description rendered as HTML")
	}
	// JSON-LD carries the name with HTML-significant runes escaped
	if !strings.Contains(body, `\u003cscript\u003ealert(1)`) {
		t.Fatalf("JSON-LD name not escaped")
	}
}
