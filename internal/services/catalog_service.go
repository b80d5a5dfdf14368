package services

import (
	"context"
	"errors"
	"sync"

	"taketora/internal/catalog"
	"taketora/internal/domain"
	applog "taketora/internal/log"
	"taketora/internal/metrics"
	"taketora/internal/repos"
	"taketora/internal/seo"
)

// ProductStore is satisfied by repos.ProductRepo and repos.SupabaseRepo.
type ProductStore interface {
	List(ctx context.Context, t repos.Table, opts repos.ListOptions) ([]domain.Product, error)
	GetBySlug(ctx context.Context, t repos.Table, slug string) (domain.Product, error)
}

type CatalogService struct {
	Store ProductStore
	Log   *applog.Logger
}

func NewCatalogService(store ProductStore, lg *applog.Logger) *CatalogService {
	return &CatalogService{Store: store, Log: lg.With("services.catalog")}
}

// list reads one table. A failure is logged and counted, and the table
// reads as empty so the page still renders.
func (s *CatalogService) list(ctx context.Context, t repos.Table, opts repos.ListOptions) []domain.Product {
	out, err := s.Store.List(ctx, t, opts)
	if err != nil {
		metrics.Upstream(string(t))
		s.Log.Error("catalog.fetch.fail", err, map[string]any{"table": string(t)})
		return nil
	}
	return out
}

// listAll fetches several tables concurrently. One table failing never
// cancels the others.
func (s *CatalogService) listAll(ctx context.Context, tables []repos.Table, opts repos.ListOptions) [][]domain.Product {
	results := make([][]domain.Product, len(tables))
	var wg sync.WaitGroup
	for i, t := range tables {
		wg.Add(1)
		go func(i int, t repos.Table) {
			defer wg.Done()
			results[i] = s.list(ctx, t, opts)
		}(i, t)
	}
	wg.Wait()
	return results
}

// Category is the listing page for one table, grouped by category.
func (s *CatalogService) Category(ctx context.Context, t repos.Table) catalog.Grouping {
	return catalog.GroupProducts(s.list(ctx, t, repos.ListOptions{OrderBy: "category"}))
}

type Filter struct {
	Category    string // table slug or alias
	Subcategory string
}

// Section is one table's block on the collection page.
type Section struct {
	Table    repos.Table
	Grouping catalog.Grouping
}

// Collection joins all three tables. An unknown Category filter matches
// nothing. Tables with no products after filtering are left out.
func (s *CatalogService) Collection(ctx context.Context, f Filter) []Section {
	tables := []repos.Table{repos.AnimeFigure, repos.Pokemon, repos.Antique}
	if f.Category != "" {
		t, ok := repos.TableForSlug(f.Category)
		if !ok {
			return nil
		}
		tables = []repos.Table{t}
	}

	results := s.listAll(ctx, tables, repos.ListOptions{OrderBy: "category"})
	var out []Section
	for i, t := range tables {
		products := catalog.FilterSubcategory(results[i], f.Subcategory)
		if len(products) == 0 {
			continue
		}
		out = append(out, Section{Table: t, Grouping: catalog.GroupWithFallback(products, catalog.OtherKey)})
	}
	return out
}

// Latest returns the n newest products across every table.
func (s *CatalogService) Latest(ctx context.Context, n int) []domain.Product {
	if n <= 0 {
		return nil
	}
	opts := repos.ListOptions{OrderBy: "created_at", Desc: true, Limit: 10}
	var merged []domain.Product
	for _, rows := range s.listAll(ctx, repos.Tables(), opts) {
		merged = append(merged, rows...)
	}
	catalog.SortNewest(merged)
	if len(merged) > n {
		merged = merged[:n]
	}
	return merged
}

// Product resolves a detail page. Anything other than a clean hit is
// reported as repos.ErrNotFound; non-404 causes are logged first.
func (s *CatalogService) Product(ctx context.Context, t repos.Table, slug string) (domain.Product, error) {
	p, err := s.Store.GetBySlug(ctx, t, slug)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repos.ErrNotFound) {
		metrics.Upstream(string(t))
		s.Log.Error("catalog.product.fail", err, map[string]any{"table": string(t), "slug": slug})
	}
	return domain.Product{}, repos.ErrNotFound
}

// Availability is the API view of one product's stock.
func (s *CatalogService) Availability(ctx context.Context, t repos.Table, slug string) (domain.Availability, error) {
	p, err := s.Product(ctx, t, slug)
	if err != nil {
		return domain.Availability{}, err
	}
	return domain.AvailabilityOf(p), nil
}

// SitemapProducts lists every linkable product across the tables.
func (s *CatalogService) SitemapProducts(ctx context.Context) []seo.ProductRef {
	tables := repos.Tables()
	var out []seo.ProductRef
	for i, rows := range s.listAll(ctx, tables, repos.ListOptions{}) {
		for _, p := range rows {
			if !p.Linkable() {
				continue
			}
			out = append(out, seo.ProductRef{
				CategorySlug: tables[i].Slug(),
				Slug:         p.Slug,
				LastModified: p.LastModified(),
			})
		}
	}
	return out
}
