package httpserver_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpserver "taketora/internal/http"
)

// rejected input and blocked form posts are logged as security events
func TestSecurityEventsLogged(t *testing.T) {
	ta := newTestApp(t, httpserver.Options{})

	entries := captureLogs(t, func() {
		ta.get(t, "/api/v1/currency?amount=abc")
	})
	e, ok := hasAction(entries, "validation.fail")
	if !ok {
		t.Fatalf("expected validation.fail log")
	}
	if e.Level != "warn" || e.Fields["field"] != "amount" {
		t.Fatalf("unexpected entry %+v", e)
	}

	entries = captureLogs(t, func() {
		ta.get(t, "/en/antique/bad%00slug")
	})
	e, ok = hasAction(entries, "validation.fail")
	if !ok {
		t.Fatalf("expected validation.fail log for product slug")
	}
	if e.Locale != "en" {
		t.Fatalf("locale missing from log entry: %+v", e)
	}

	entries = captureLogs(t, func() {
		form := strings.NewReader("category=antique&slug=imari-plate&qty=1")
		req := httptest.NewRequest(http.MethodPost, "/en/cart", form)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		resp, _ := ta.do(t, req)
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("missing csrf expected 403, got %d", resp.StatusCode)
		}
	})
	if _, ok := hasAction(entries, "csrf.fail"); !ok {
		t.Fatalf("expected csrf.fail log")
	}
}

func TestRedirectAndCartLogged(t *testing.T) {
	ta := newTestApp(t, httpserver.Options{})

	entries := captureLogs(t, func() {
		ta.get(t, "/visit")
	})
	e, ok := hasAction(entries, "locale.redirect")
	if !ok {
		t.Fatalf("expected locale.redirect log")
	}
	if e.Fields["to"] != "/ja/visit" {
		t.Fatalf("unexpected redirect target %v", e.Fields["to"])
	}

	entries = captureLogs(t, func() {
		postJSON(t, ta, "/api/v1/cart", `{"category":"pokemon","slug":"mew-vintage","qty":1}`)
	})
	if _, ok := hasAction(entries, "cart.add.unavailable"); !ok {
		t.Fatalf("expected cart.add.unavailable log")
	}
}
