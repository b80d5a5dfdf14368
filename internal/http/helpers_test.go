package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"taketora/internal/cache"
	"taketora/internal/cms"
	"taketora/internal/config"
	"taketora/internal/domain"
	httpserver "taketora/internal/http"
	applog "taketora/internal/log"
	"taketora/internal/repos"
	"taketora/internal/services"
)

const testBase = "https://taketora.test"

// fakeCMS stands in for WordPress.
type fakeCMS struct {
	posts []domain.Post
	down  bool
}

func (f *fakeCMS) ListPosts(context.Context) ([]domain.PostSummary, error) {
	if f.down {
		return nil, cms.ErrNotConfigured
	}
	out := make([]domain.PostSummary, len(f.posts))
	for i, p := range f.posts {
		out[i] = domain.PostSummary{ID: p.Slug, Title: p.Title, Slug: p.Slug, Date: p.Date}
	}
	return out, nil
}

func (f *fakeCMS) PostSlugs(ctx context.Context) ([]domain.PostSummary, error) {
	return f.ListPosts(ctx)
}

func (f *fakeCMS) GetPost(_ context.Context, slug string) (domain.Post, error) {
	if f.down {
		return domain.Post{}, cms.ErrNotConfigured
	}
	for _, p := range f.posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return domain.Post{}, cms.ErrNotFound
}

func samplePosts() *fakeCMS {
	return &fakeCMS{posts: []domain.Post{{
		Title:   "Imari ware basics",
		Slug:    "imari-basics",
		Date:    time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC),
		Content: "<p>Blue and <em>white</em>.</p>",
	}}}
}

type testApp struct {
	app *fiber.App
	db  *sqlx.DB
}

// newTestApp serves the seeded sqlite catalog and a fake CMS. Limits are
// high unless opts sets them.
func newTestApp(t *testing.T, opts httpserver.Options) *testApp {
	t.Helper()
	db, err := repos.OpenDB("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if opts.Config.BaseURL == "" {
		opts.Config = config.Config{Env: "test", BaseURL: testBase}
	}
	if opts.Catalog == nil {
		opts.Catalog = services.NewCatalogService(repos.NewProductRepo(db, applog.Discard()), applog.Discard())
	}
	if opts.Blog == nil {
		opts.Blog = services.NewBlogService(samplePosts(), cache.NewMemory(), applog.Discard())
	}
	if opts.PageLimit == 0 {
		opts.PageLimit = 1000
	}
	if opts.APILimit == 0 {
		opts.APILimit = 1000
	}
	return &testApp{app: httpserver.New(opts), db: db}
}

func (a *testApp) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := a.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL, err)
	}
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func (a *testApp) get(t *testing.T, target string) (*http.Response, string) {
	t.Helper()
	return a.do(t, httptest.NewRequest(http.MethodGet, target, nil))
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	Locale string         `json:"locale"`
	Fields map[string]any `json:"fields"`
}

type lockedBuf struct {
	b  *bytes.Buffer
	mu *sync.Mutex
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

// captureLogs collects the JSON lines written through the std logger.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	oldW := log.Writer()
	oldFlags := log.Flags()
	log.SetOutput(&lockedBuf{b: &buf, mu: &mu})
	log.SetFlags(0)
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func hasAction(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
