package services

import (
	"context"
	"errors"

	"taketora/internal/domain"
	"taketora/internal/repos"
)

// ErrUnavailable means the product exists but nothing derived from its
// stock signals says it can be sold.
var ErrUnavailable = errors.New("product unavailable")

const maxQtyWithoutStock = 99

// CartLine is what an add-to-cart request resolves to. Nothing is stored;
// checkout happens in the shop.
type CartLine struct {
	Table    repos.Table `json:"category"`
	Slug     string      `json:"slug"`
	Name     string      `json:"name"`
	Qty      int         `json:"qty"`
	Price    int64       `json:"price"`
	Subtotal int64       `json:"subtotal"`
}

type CartService struct {
	Catalog *CatalogService
}

func NewCartService(cat *CatalogService) *CartService {
	return &CartService{Catalog: cat}
}

// Add validates a request against the current product row. qty is clamped
// to [1, stock], or [1, 99] when the row carries no count.
func (s *CartService) Add(ctx context.Context, t repos.Table, slug string, qty int) (CartLine, error) {
	p, err := s.Catalog.Product(ctx, t, slug)
	if err != nil {
		return CartLine{}, err
	}
	if !p.Available {
		return CartLine{}, ErrUnavailable
	}
	qty = ClampQty(p, qty)
	return CartLine{
		Table:    t,
		Slug:     p.Slug,
		Name:     p.Name,
		Qty:      qty,
		Price:    p.Price,
		Subtotal: p.Price * int64(qty),
	}, nil
}

// ClampQty bounds a requested quantity by what the product row allows.
func ClampQty(p domain.Product, qty int) int {
	max := maxQtyWithoutStock
	if p.Stock > 0 {
		max = p.Stock
	}
	if qty < 1 {
		qty = 1
	}
	if qty > max {
		qty = max
	}
	return qty
}
