package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taketora/internal/domain"
	"taketora/internal/repos"
	"taketora/internal/services"
)

func TestCartAdd_ClampsToStock(t *testing.T) {
	cat, _ := newCatalog(sampleStore())
	cart := services.NewCartService(cat)

	line, err := cart.Add(context.Background(), repos.Pokemon, "pikachu", 5)
	require.NoError(t, err)
	assert.Equal(t, 2, line.Qty)
	assert.Equal(t, "Pikachu", line.Name)
}

func TestCartAdd_RefusesUnavailable(t *testing.T) {
	cat, _ := newCatalog(sampleStore())
	_, err := services.NewCartService(cat).Add(context.Background(), repos.AnimeFigure, "zoro", 1)
	assert.ErrorIs(t, err, services.ErrUnavailable)
}

func TestCartAdd_UnknownProduct(t *testing.T) {
	cat, _ := newCatalog(sampleStore())
	_, err := services.NewCartService(cat).Add(context.Background(), repos.Antique, "nope", 1)
	assert.ErrorIs(t, err, repos.ErrNotFound)
}

func TestClampQty(t *testing.T) {
	noCount := domain.Product{Available: true}
	assert.Equal(t, 1, services.ClampQty(noCount, 0))
	assert.Equal(t, 1, services.ClampQty(noCount, -4))
	assert.Equal(t, 99, services.ClampQty(noCount, 500))
	assert.Equal(t, 3, services.ClampQty(domain.Product{Stock: 3}, 3))
	assert.Equal(t, 3, services.ClampQty(domain.Product{Stock: 3}, 4))
}
