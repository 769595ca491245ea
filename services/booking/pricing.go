package booking

import (
	"sort"
	"strings"
)

// Catalogue is the fixed service price list. Lookups are case-insensitive.
type Catalogue struct {
	prices map[string]float64
}

// NewCatalogue builds a Catalogue from a service name to price map.
func NewCatalogue(services map[string]float64) Catalogue {
	prices := make(map[string]float64, len(services))
	for name, price := range services {
		prices[strings.ToLower(name)] = price
	}
	return Catalogue{prices: prices}
}

// PriceFor returns the price for a service name, case-insensitively.
func (c Catalogue) PriceFor(service string) (float64, bool) {
	price, ok := c.prices[strings.ToLower(service)]
	return price, ok
}

// ServiceNames returns the known service names, title-cased and sorted.
func (c Catalogue) ServiceNames() []string {
	names := make([]string, 0, len(c.prices))
	for name := range c.prices {
		names = append(names, titleCase(name))
	}
	sort.Strings(names)
	return names
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
