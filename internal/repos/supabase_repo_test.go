package repos_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applog "taketora/internal/log"
	"taketora/internal/repos"
)

func signedKey(t *testing.T, role string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": role,
		"iss":  "supabase",
		"exp":  exp.Unix(),
	})
	s, err := tok.SignedString([]byte("not-the-real-secret"))
	require.NoError(t, err)
	return s
}

const postgrestRows = `[
  {"id": 7, "slug": "charizard-base-set", "name": "Charizard", "category": "popular",
   "price": "85000.00", "image": "/img/c.jpg", "images": ["/img/c.jpg", "/img/c2.jpg"],
   "in_stock": null, "is_in_stock": "true", "stock": 0,
   "dimensions": {"height": 8.8, "width": 6.3, "depth": 0.1},
   "created_at": "2025-05-01T09:00:00.123456+00:00"},
  {"id": 8, "slug": null, "name": "Energy", "subcategory": "bulk", "price": 100,
   "dimensions": "{bad", "tags": "[\"a\",\"b\"]"}
]`

func TestSupabaseRepo_ListBuildsPostgrestQuery(t *testing.T) {
	key := signedKey(t, "anon", time.Now().Add(time.Hour))
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(postgrestRows))
	}))
	defer srv.Close()

	r, err := repos.NewSupabaseRepo(srv.URL, key, srv.Client(), applog.Discard())
	require.NoError(t, err)

	out, err := r.List(context.Background(), repos.Pokemon, repos.ListOptions{
		Category: "popular", OrderBy: "created_at", Desc: true, Limit: 10,
	})
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "/rest/v1/pokemon", got.URL.Path)
	q := got.URL.Query()
	assert.Equal(t, "*", q.Get("select"))
	assert.Equal(t, "eq.popular", q.Get("category"))
	assert.Equal(t, "created_at.desc", q.Get("order"))
	assert.Equal(t, "10", q.Get("limit"))
	assert.Equal(t, key, got.Header.Get("apikey"))
	assert.Equal(t, "Bearer "+key, got.Header.Get("Authorization"))

	require.Len(t, out, 2)
	c := out[0]
	assert.Equal(t, "7", c.ID)
	assert.Equal(t, int64(85000), c.Price)
	assert.True(t, c.Available)
	assert.Equal(t, "/img/c.jpg", c.Image)
	require.NotNil(t, c.Dimensions)
	assert.Equal(t, 8.8, c.Dimensions.Height)
	assert.Equal(t, 2025, c.CreatedAt.Year())

	e := out[1]
	assert.False(t, e.Linkable())
	assert.False(t, e.Available)
	assert.Nil(t, e.Dimensions)
	assert.Equal(t, "bulk", e.SubCategory)
	assert.Equal(t, []string{"a", "b"}, e.Tags)
}

func TestSupabaseRepo_GetBySlug(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("slug") == "eq.charizard-base-set" {
			_, _ = w.Write([]byte(postgrestRows))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	r, err := repos.NewSupabaseRepo(srv.URL, signedKey(t, "anon", time.Now().Add(time.Hour)), srv.Client(), nil)
	require.NoError(t, err)

	p, err := r.GetBySlug(context.Background(), repos.Pokemon, "charizard-base-set")
	require.NoError(t, err)
	assert.Equal(t, "Charizard", p.Name)

	_, err = r.GetBySlug(context.Background(), repos.Pokemon, "missing")
	assert.True(t, errors.Is(err, repos.ErrNotFound))
}

func TestSupabaseRepo_UpstreamErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"relation does not exist"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	r, err := repos.NewSupabaseRepo(srv.URL, "opaque-key", srv.Client(), nil)
	require.NoError(t, err)

	_, err = r.List(context.Background(), repos.Antique, repos.ListOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.False(t, errors.Is(err, repos.ErrNotFound))
}

func TestNewSupabaseRepo_RefusesServiceRole(t *testing.T) {
	_, err := repos.NewSupabaseRepo("https://x.supabase.co", signedKey(t, "service_role", time.Now().Add(time.Hour)), nil, nil)
	assert.ErrorIs(t, err, repos.ErrServiceKey)

	_, err = repos.NewSupabaseRepo("", "", nil, nil)
	assert.Error(t, err)
}

func TestNewSupabaseRepo_ExpiredKeyStillServes(t *testing.T) {
	r, err := repos.NewSupabaseRepo("https://x.supabase.co", signedKey(t, "anon", time.Now().Add(-time.Hour)), nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, r)
}

func TestSupabaseRepo_EscapesFilterValues(t *testing.T) {
	var raw string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	r, err := repos.NewSupabaseRepo(srv.URL, "k", srv.Client(), nil)
	require.NoError(t, err)
	_, _ = r.GetBySlug(context.Background(), repos.Antique, "a&b=c")

	q, err := url.ParseQuery(raw)
	require.NoError(t, err)
	assert.Equal(t, "eq.a&b=c", q.Get("slug"))
}
