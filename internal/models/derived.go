package models

import "github.com/shopspring/decimal"

// ProductView is a product as returned to clients, with its derived fields.
type ProductView struct {
	Product
	DiscountedPrice *float64 `json:"discounted_price,omitempty"`
	VolumeCM3       float64  `json:"volume_cm3"`
}

var hundred = decimal.NewFromInt(100)

// DiscountedPrice returns price minus the discount, rounded half-up to
// cents. ok is false when the product carries no discount.
func DiscountedPrice(p Product) (price float64, ok bool) {
	if p.DiscountPercent == nil {
		return 0, false
	}
	base := decimal.NewFromFloat(p.Price)
	off := base.Mul(decimal.NewFromFloat(*p.DiscountPercent)).Div(hundred)
	return base.Sub(off).Round(2).InexactFloat64(), true
}

// Volume returns length×width×height rounded half-up to two places.
func Volume(d Dimensions) float64 {
	return decimal.NewFromFloat(d.Length).
		Mul(decimal.NewFromFloat(d.Width)).
		Mul(decimal.NewFromFloat(d.Height)).
		Round(2).
		InexactFloat64()
}

// View computes the derived fields of p. Nothing is cached: call it at
// every serialization boundary.
func View(p Product) ProductView {
	v := ProductView{Product: p, VolumeCM3: Volume(p.Dimensions)}
	if dp, ok := DiscountedPrice(p); ok {
		v.DiscountedPrice = &dp
	}
	return v
}

// Views maps View over products, keeping order.
func Views(products []Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, View(p))
	}
	return views
}
