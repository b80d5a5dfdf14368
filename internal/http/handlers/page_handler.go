package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taketora/internal/domain"
	"taketora/internal/i18n"
	"taketora/internal/seo"
)

type shopView struct {
	Name, Address, Directions, Walk string
}

type attractionView struct {
	Name, Desc string
}

type PageHandler struct {
	BaseURL string
}

func (h *PageHandler) Visit(c *fiber.Ctx) error {
	loc := Locale(c)
	var shops []shopView
	for _, s := range domain.Shops() {
		name, addr := s.NameEN, s.AddressEN
		if loc == i18n.JA {
			name, addr = s.NameJA, s.AddressJA
		}
		shops = append(shops, shopView{
			Name:       name,
			Address:    addr,
			Directions: s.DirectionsURL(name, addr),
			Walk:       i18n.Tf(loc, "visit.minWalk", map[string]any{"mins": s.WalkMins}),
		})
	}
	var sights []attractionView
	for _, a := range domain.Attractions() {
		if loc == i18n.JA {
			sights = append(sights, attractionView{a.NameJA, a.DescJA})
		} else {
			sights = append(sights, attractionView{a.NameEN, a.DescEN})
		}
	}

	trail := seo.NewTrail(loc, seo.Labeled(loc, "breadcrumbs.visit", "/visit"))
	title, desc := seo.PageMeta("visit", loc)
	return render(c, "visit", fiber.Map{
		"Meta":        seo.Metadata(h.BaseURL, loc, "/visit", title, desc),
		"JSONLD":      scripts(seo.StoreJSONLD(h.BaseURL, loc), seo.BreadcrumbJSONLD(h.BaseURL, trail)),
		"Trail":       trail,
		"Shops":       shops,
		"Attractions": sights,
	})
}
