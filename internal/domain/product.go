package domain

import "time"

// Product is the catalog aggregate.
type Product struct {
	ID              int64
	Name            string
	Description     string
	ActualPrice     float64
	DiscountedPrice float64
	Images          []ProductImage
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EffectivePrice returns the price used when placing an order: the
// discounted price when one is set, otherwise the actual price.
func (p Product) EffectivePrice() float64 {
	if p.DiscountedPrice > 0 {
		return p.DiscountedPrice
	}
	return p.ActualPrice
}
