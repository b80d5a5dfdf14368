package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"taketora/internal/domain"
)

func TestDerive_AllFalsyIsUnavailable(t *testing.T) {
	assert.False(t, domain.StockSignals{}.Derive())
}

func TestDerive_StockAloneMakesAvailable(t *testing.T) {
	s := domain.StockSignals{}
	s.Stock = 1
	assert.True(t, s.Derive())
}

func TestDerive_EachSignalIsSufficient(t *testing.T) {
	flips := map[string]func(*domain.StockSignals){
		"instock":      func(s *domain.StockSignals) { s.InStock = true },
		"in_stock":     func(s *domain.StockSignals) { s.InStockAlt = true },
		"is_in_stock":  func(s *domain.StockSignals) { s.IsInStock = true },
		"available":    func(s *domain.StockSignals) { s.Available = true },
		"is_available": func(s *domain.StockSignals) { s.IsAvailable = true },
		"stock":        func(s *domain.StockSignals) { s.Stock = 3 },
	}
	for name, flip := range flips {
		t.Run(name, func(t *testing.T) {
			var s domain.StockSignals
			assert.False(t, s.Derive())
			flip(&s)
			assert.True(t, s.Derive())
		})
	}
}

func TestDerive_NegativeStockIsNotPositive(t *testing.T) {
	assert.False(t, domain.StockSignals{Stock: -2}.Derive())
}

func TestAvailabilityOf(t *testing.T) {
	a := domain.AvailabilityOf(domain.Product{Available: true, Stock: 4})
	assert.Equal(t, domain.Availability{Status: "IN_STOCK", Available: true, Qty: 4}, a)

	a = domain.AvailabilityOf(domain.Product{})
	assert.Equal(t, "OUT_OF_STOCK", a.Status)
	assert.False(t, a.Available)
}
