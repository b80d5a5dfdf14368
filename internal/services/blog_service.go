package services

import (
	"context"
	"errors"
	"time"

	"taketora/internal/cache"
	"taketora/internal/cms"
	"taketora/internal/domain"
	applog "taketora/internal/log"
	"taketora/internal/metrics"
)

// PostSource is satisfied by *cms.Client.
type PostSource interface {
	ListPosts(ctx context.Context) ([]domain.PostSummary, error)
	PostSlugs(ctx context.Context) ([]domain.PostSummary, error)
	GetPost(ctx context.Context, slug string) (domain.Post, error)
}

// ErrPostNotFound covers both a missing post and an unreachable CMS.
var ErrPostNotFound = errors.New("post not found")

const (
	PostTTL  = 60 * time.Second
	SlugsTTL = time.Hour
)

type BlogService struct {
	CMS     PostSource
	Cache   cache.Store
	Log     *applog.Logger
	PostTTL time.Duration
}

func NewBlogService(src PostSource, store cache.Store, lg *applog.Logger) *BlogService {
	if store == nil {
		store = cache.NewMemory()
	}
	return &BlogService{CMS: src, Cache: store, Log: lg.With("services.blog"), PostTTL: PostTTL}
}

func (s *BlogService) ttl() time.Duration {
	if s.PostTTL > 0 {
		return s.PostTTL
	}
	return PostTTL
}

func (s *BlogService) fail(action string, err error, fields map[string]any) {
	metrics.Upstream("cms")
	s.Log.Error(action, err, fields)
}

// List returns every post, or an empty list when the CMS is unset or down.
func (s *BlogService) List(ctx context.Context) []domain.PostSummary {
	var out []domain.PostSummary
	if s.Cache.Get(ctx, "blog:list", &out) {
		metrics.Cache("posts", true)
		return out
	}
	metrics.Cache("posts", false)

	out, err := s.CMS.ListPosts(ctx)
	if err != nil {
		s.fail("blog.list.fail", err, nil)
		return nil
	}
	if err := s.Cache.Set(ctx, "blog:list", out, s.ttl()); err != nil {
		s.Log.Warn("blog.cache.set.fail", map[string]any{"err": err.Error()})
	}
	return out
}

// Post fetches one article. Every failure surfaces as ErrPostNotFound;
// upstream errors are logged first.
func (s *BlogService) Post(ctx context.Context, slug string) (domain.Post, error) {
	key := "blog:post:" + slug
	var p domain.Post
	if s.Cache.Get(ctx, key, &p) {
		metrics.Cache("post", true)
		return p, nil
	}
	metrics.Cache("post", false)

	p, err := s.CMS.GetPost(ctx, slug)
	if err != nil {
		if !errors.Is(err, cms.ErrNotFound) {
			s.fail("blog.post.fail", err, map[string]any{"slug": slug})
		}
		return domain.Post{}, ErrPostNotFound
	}
	if err := s.Cache.Set(ctx, key, p, s.ttl()); err != nil {
		s.Log.Warn("blog.cache.set.fail", map[string]any{"err": err.Error()})
	}
	return p, nil
}

// Slugs feeds the sitemap, cached for an hour.
func (s *BlogService) Slugs(ctx context.Context) []domain.PostSummary {
	var out []domain.PostSummary
	if s.Cache.Get(ctx, "blog:slugs", &out) {
		metrics.Cache("slugs", true)
		return out
	}
	metrics.Cache("slugs", false)

	out, err := s.CMS.PostSlugs(ctx)
	if err != nil {
		s.fail("blog.slugs.fail", err, nil)
		return nil
	}
	_ = s.Cache.Set(ctx, "blog:slugs", out, SlugsTTL)
	return out
}
