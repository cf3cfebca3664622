package models

import "sort"

type TickSizeSchemeElement struct {
	HighPrice float64 `json:"HighPrice"`
	TickSize  float64 `json:"TickSize"`
}

type TickSizeScheme struct {
	DefaultTickSize float64                 `json:"DefaultTickSize"`
	Elements        []TickSizeSchemeElement `json:"Elements"`
}

// TickSizeFor returns the tick size of the first element whose HighPrice is at
// or above the price, scanning in ascending HighPrice order. Prices above every
// element use DefaultTickSize.
func (s TickSizeScheme) TickSizeFor(price float64) float64 {
	elements := make([]TickSizeSchemeElement, len(s.Elements))
	copy(elements, s.Elements)

	sort.SliceStable(elements, func(i, j int) bool {
		return elements[i].HighPrice < elements[j].HighPrice
	})

	for _, e := range elements {
		if price <= e.HighPrice {
			return e.TickSize
		}
	}

	return s.DefaultTickSize
}
