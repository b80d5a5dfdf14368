package handlers

import (
	"taketora/internal/config"
	"taketora/internal/services"
)

type Deps struct {
	CatalogHandler   *CatalogHandler
	ProductHandler   *ProductHandler
	InventoryHandler *InventoryHandler
	CartHandler      *CartHandler
	BlogHandler      *BlogHandler
	PageHandler      *PageHandler
	SEOHandler       *SEOHandler
	APIHandler       *APIHandler
}

func NewDeps(cfg config.Config, catalogSvc *services.CatalogService, blogSvc *services.BlogService) *Deps {
	cartSvc := services.NewCartService(catalogSvc)
	base := cfg.BaseURL

	return &Deps{
		CatalogHandler:   &CatalogHandler{Catalog: catalogSvc, BaseURL: base},
		ProductHandler:   &ProductHandler{Catalog: catalogSvc, BaseURL: base},
		InventoryHandler: &InventoryHandler{Catalog: catalogSvc},
		CartHandler:      &CartHandler{Cart: cartSvc},
		BlogHandler:      &BlogHandler{Blog: blogSvc, BaseURL: base},
		PageHandler:      &PageHandler{BaseURL: base},
		SEOHandler:       &SEOHandler{Catalog: catalogSvc, Blog: blogSvc, BaseURL: base},
		APIHandler:       &APIHandler{},
	}
}
