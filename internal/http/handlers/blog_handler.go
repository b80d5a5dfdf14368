package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"taketora/internal/domain"
	"taketora/internal/seo"
	"taketora/internal/services"
)

type BlogHandler struct {
	Blog    *services.BlogService
	BaseURL string
}

// List renders the index. An unreachable CMS shows the empty state.
func (h *BlogHandler) List(c *fiber.Ctx) error {
	loc := Locale(c)
	trail := seo.NewTrail(loc, seo.Labeled(loc, "breadcrumbs.blog", "/blog"))
	title, desc := seo.PageMeta("blog", loc)
	return render(c, "blog", fiber.Map{
		"Meta":   seo.Metadata(h.BaseURL, loc, "/blog", title, desc),
		"JSONLD": scripts(seo.BreadcrumbJSONLD(h.BaseURL, trail)),
		"Trail":  trail,
		"Posts":  h.Blog.List(c.UserContext()),
	})
}

func (h *BlogHandler) Post(c *fiber.Ctx) error {
	var (
		post domain.Post
		err  = services.ErrPostNotFound
	)
	for _, slug := range slugKeys(c, "slug") {
		if post, err = h.Blog.Post(c.UserContext(), slug); err == nil {
			break
		}
	}
	if err != nil {
		return NotFound(c)
	}

	loc := Locale(c)
	path := "/blog/" + url.PathEscape(post.Slug)
	trail := seo.NewTrail(loc,
		seo.Labeled(loc, "breadcrumbs.blog", "/blog"),
		seo.Named(post.Title, path),
	)
	_, desc := seo.PageMeta("blog", loc)
	return render(c, "blog_post", fiber.Map{
		"Meta":   seo.Metadata(h.BaseURL, loc, path, post.Title+" | Taketora", desc),
		"JSONLD": scripts(seo.BreadcrumbJSONLD(h.BaseURL, trail)),
		"Trail":  trail,
		"Post":   post,
	})
}
