package domain

// StockSignals gathers every stock indicator a stored row may carry. The five
// flags are aliases left over from schema migrations; only the data-access
// layer builds this value.
type StockSignals struct {
	InStock     bool // instock
	InStockAlt  bool // in_stock
	IsInStock   bool // is_in_stock
	Available   bool // available
	IsAvailable bool // is_available
	Stock       int
}

// Derive is the single availability rule: any flag set or a positive count.
func (s StockSignals) Derive() bool {
	return s.InStock || s.InStockAlt || s.IsInStock || s.Available || s.IsAvailable || s.Stock > 0
}

// Availability is the JSON view returned by the availability API.
type Availability struct {
	Status    string `json:"status"` // IN_STOCK | OUT_OF_STOCK
	Available bool   `json:"available"`
	Qty       int    `json:"qty,omitempty"`
}

// AvailabilityOf maps a product onto the API view.
func AvailabilityOf(p Product) Availability {
	a := Availability{Status: "OUT_OF_STOCK", Available: p.Available, Qty: p.Stock}
	if p.Available {
		a.Status = "IN_STOCK"
	}
	return a
}
