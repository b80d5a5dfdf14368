// Package shipping estimates international shipping for a parcel.
package shipping

// FreeShippingThreshold is advertised on product pages. Calculate does not
// apply it.
const FreeShippingThreshold int64 = 10000

const basePrice = 1500

// Option is one shipping service quote. Price is JPY.
type Option struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Price         int64  `json:"price"`
	EstimatedDays int    `json:"estimatedDays"`
}

// Country is a calculator destination.
type Country struct {
	Code string
	Name string
}

type tier struct {
	maxGrams int // inclusive; 0 means unbounded
	standard float64
	express  float64
}

var tiers = []tier{
	{maxGrams: 500, standard: 1, express: 3},
	{maxGrams: 2000, standard: 1.5, express: 4},
	{maxGrams: 0, standard: 2, express: 5},
}

// Calculate returns Standard then Express for a parcel of weightGrams.
// country does not affect price yet.
func Calculate(weightGrams int, country string) []Option {
	if weightGrams < 0 {
		weightGrams = 0
	}
	t := tierFor(weightGrams)
	return []Option{
		{
			Name:          "Standard Shipping",
			Description:   "7-14 business days",
			Price:         int64(basePrice * t.standard),
			EstimatedDays: 10,
		},
		{
			Name:          "Express Shipping",
			Description:   "3-5 business days",
			Price:         int64(basePrice * t.express),
			EstimatedDays: 4,
		},
	}
}

func tierFor(w int) tier {
	for _, t := range tiers {
		if t.maxGrams == 0 || w <= t.maxGrams {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

// Countries lists the destinations offered by the calculator form.
func Countries() []Country {
	return []Country{
		{Code: "US", Name: "United States"},
		{Code: "GB", Name: "United Kingdom"},
		{Code: "CA", Name: "Canada"},
		{Code: "AU", Name: "Australia"},
		{Code: "DE", Name: "Germany"},
		{Code: "FR", Name: "France"},
	}
}
