// Package cms reads blog content from the WordPress GraphQL endpoint.
package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"taketora/internal/config"
	"taketora/internal/domain"
)

var (
	ErrNotFound      = errors.New("cms: post not found")
	ErrNotConfigured = errors.New("cms: WORDPRESS_GRAPHQL_ENDPOINT is not set")
)

const (
	listQuery = `query GetAllBlogs {
  allBlog {
    nodes {
      id
      title
      slug
      date
      blogs { blogpreview { node { sourceUrl } } }
    }
  }
}`
	postQuery = `query GetBlog($slug: ID!) {
  blog(id: $slug, idType: SLUG) {
    title
    date
    content
  }
}`
	slugsQuery = `query GetBlogSlugs { allBlog { nodes { slug date } } }`
)

// Client is a minimal GraphQL-over-HTTP client for the blog content type.
type Client struct {
	Endpoint string
	HTTP     *http.Client
}

func New(endpoint string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{Endpoint: config.NormalizeEndpoint(endpoint), HTTP: hc}
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

type gqlResponse[T any] struct {
	Data   T          `json:"data"`
	Errors []gqlError `json:"errors"`
}

type blogNode struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
	Date  string `json:"date"`
	Blogs *struct {
		BlogPreview *struct {
			Node *struct {
				SourceURL string `json:"sourceUrl"`
			} `json:"node"`
		} `json:"blogpreview"`
	} `json:"blogs"`
}

func (n blogNode) previewImage() string {
	if n.Blogs == nil || n.Blogs.BlogPreview == nil || n.Blogs.BlogPreview.Node == nil {
		return ""
	}
	return n.Blogs.BlogPreview.Node.SourceURL
}

type allBlogData struct {
	AllBlog *struct {
		Nodes []blogNode `json:"nodes"`
	} `json:"allBlog"`
}

// ListPosts returns every post in CMS order.
func (c *Client) ListPosts(ctx context.Context) ([]domain.PostSummary, error) {
	var resp gqlResponse[allBlogData]
	if err := do(ctx, c, gqlRequest{Query: listQuery}, &resp); err != nil {
		return nil, err
	}
	if resp.Data.AllBlog == nil {
		return nil, errors.New("cms: response missing allBlog")
	}
	out := make([]domain.PostSummary, 0, len(resp.Data.AllBlog.Nodes))
	for _, n := range resp.Data.AllBlog.Nodes {
		out = append(out, domain.PostSummary{
			ID:           n.ID,
			Title:        n.Title,
			Slug:         n.Slug,
			Date:         parseDate(n.Date),
			PreviewImage: n.previewImage(),
		})
	}
	return out, nil
}

// PostSlugs is the lighter query the sitemap needs.
func (c *Client) PostSlugs(ctx context.Context) ([]domain.PostSummary, error) {
	var resp gqlResponse[allBlogData]
	if err := do(ctx, c, gqlRequest{Query: slugsQuery}, &resp); err != nil {
		return nil, err
	}
	if resp.Data.AllBlog == nil {
		return nil, errors.New("cms: response missing allBlog")
	}
	out := make([]domain.PostSummary, 0, len(resp.Data.AllBlog.Nodes))
	for _, n := range resp.Data.AllBlog.Nodes {
		if n.Slug == "" {
			continue
		}
		out = append(out, domain.PostSummary{Slug: n.Slug, Date: parseDate(n.Date)})
	}
	return out, nil
}

// GetPost fetches one post by slug. A null result is ErrNotFound.
func (c *Client) GetPost(ctx context.Context, slug string) (domain.Post, error) {
	var resp gqlResponse[struct {
		Blog *struct {
			Title   string `json:"title"`
			Date    string `json:"date"`
			Content string `json:"content"`
		} `json:"blog"`
	}]
	req := gqlRequest{Query: postQuery, Variables: map[string]any{"slug": slug}}
	if err := do(ctx, c, req, &resp); err != nil {
		return domain.Post{}, err
	}
	b := resp.Data.Blog
	if b == nil {
		return domain.Post{}, ErrNotFound
	}
	return domain.Post{Title: b.Title, Slug: slug, Date: parseDate(b.Date), Content: b.Content}, nil
}

func do[T any](ctx context.Context, c *Client, body gqlRequest, out *gqlResponse[T]) error {
	if c == nil || strings.TrimSpace(c.Endpoint) == "" {
		return ErrNotConfigured
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("cms: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("cms: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("cms: status %d: %s", resp.StatusCode, snippet)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("cms: decode: %w", err)
	}
	if len(out.Errors) > 0 {
		msgs := make([]string, len(out.Errors))
		for i, e := range out.Errors {
			msgs[i] = e.Message
		}
		return fmt.Errorf("cms: graphql: %s", strings.Join(msgs, "; "))
	}
	return nil
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}

func parseDate(s string) time.Time {
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, strings.TrimSpace(s)); err == nil {
			return t
		}
	}
	return time.Time{}
}
