package repos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"taketora/internal/domain"
	applog "taketora/internal/log"
)

// ErrServiceKey rejects a privileged key where only the public anon key
// belongs.
var ErrServiceKey = errors.New("supabase: service_role key must not be used by the site")

// SupabaseRepo reads the product tables through the PostgREST API.
type SupabaseRepo struct {
	baseURL string
	key     string
	http    *http.Client
	log     *applog.Logger
}

type supabaseClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// NewSupabaseRepo checks the key's claims (without verifying the signature,
// the secret lives with Supabase) and refuses a service_role key.
func NewSupabaseRepo(baseURL, anonKey string, client *http.Client, lg *applog.Logger) (*SupabaseRepo, error) {
	if baseURL == "" || anonKey == "" {
		return nil, errors.New("supabase: SUPABASE_URL and SUPABASE_ANON_KEY are required")
	}
	lg = lg.With("repos.supabase")

	var claims supabaseClaims
	if _, _, err := jwt.NewParser().ParseUnverified(anonKey, &claims); err != nil {
		lg.Warn("supabase.key.unparsed", map[string]any{"err": err.Error()})
	} else {
		if claims.Role == "service_role" {
			return nil, ErrServiceKey
		}
		if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
			lg.Warn("supabase.key.expired", map[string]any{"exp": claims.ExpiresAt.Time.Format(time.RFC3339)})
		}
	}

	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &SupabaseRepo{baseURL: baseURL, key: anonKey, http: client, log: lg}, nil
}

func (r *SupabaseRepo) List(ctx context.Context, t Table, opts ListOptions) ([]domain.Product, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unknown table %q", t)
	}
	q := url.Values{"select": {"*"}}
	if opts.Category != "" {
		q.Set("category", "eq."+opts.Category)
	}
	if col := opts.orderColumn(); col != "" {
		dir := "asc"
		if opts.Desc {
			dir = "desc"
		}
		q.Set("order", col+"."+dir)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	return r.fetch(ctx, t, q)
}

func (r *SupabaseRepo) GetBySlug(ctx context.Context, t Table, slug string) (domain.Product, error) {
	if !t.Valid() {
		return domain.Product{}, fmt.Errorf("unknown table %q", t)
	}
	q := url.Values{"select": {"*"}, "slug": {"eq." + slug}, "limit": {"1"}}
	out, err := r.fetch(ctx, t, q)
	if err != nil {
		return domain.Product{}, err
	}
	if len(out) == 0 {
		return domain.Product{}, ErrNotFound
	}
	return out[0], nil
}

func (r *SupabaseRepo) fetch(ctx context.Context, t Table, q url.Values) ([]domain.Product, error) {
	endpoint := r.baseURL + "/rest/v1/" + url.PathEscape(string(t)) + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", r.key)
	req.Header.Set("Authorization", "Bearer "+r.key)
	req.Header.Set("Accept", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("supabase %s: %w", t, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("supabase %s: status %d: %s", t, resp.StatusCode, body)
	}

	var rows []productRecord
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("supabase %s: decode: %w", t, err)
	}
	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toProduct(t, r.log))
	}
	return out, nil
}
