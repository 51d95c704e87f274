package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Currency is the ISO code a price is expressed in.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyINR Currency = "INR"
	CurrencyGBP Currency = "GBP"
)

// Dimensions holds the physical size of a product in centimeters.
type Dimensions struct {
	Length float64 `json:"length" validate:"gte=0"`
	Width  float64 `json:"width" validate:"gte=0"`
	Height float64 `json:"height" validate:"gte=0"`
}

// Seller is the storefront offering a product.
type Seller struct {
	SellerID uuid.UUID `json:"seller_id" validate:"required"`
	Name     string    `json:"name" validate:"required,min=1,max=50"`
	Email    string    `json:"email" validate:"required,email,seller_domain"`
	Website  string    `json:"website" validate:"required,url"`
}

// Product is a catalog record as stored.
type Product struct {
	ID              uuid.UUID  `json:"id"`
	SKU             string     `json:"sku" validate:"required,min=8,max=20"`
	Name            string     `json:"name" validate:"required,min=1,max=50"`
	Description     string     `json:"description,omitempty" validate:"max=500"`
	Category        string     `json:"category" validate:"required,min=1,max=30"`
	Brand           string     `json:"brand,omitempty" validate:"max=30"`
	Price           float64    `json:"price" validate:"gte=0"`
	Currency        Currency   `json:"currency" validate:"required,oneof=USD EUR INR GBP"`
	DiscountPercent *float64   `json:"discount_percent,omitempty" validate:"omitempty,gte=0"`
	Stock           int        `json:"stock" validate:"gte=0"`
	IsActive        bool       `json:"is_active"`
	Rating          *float64   `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	Tags            Tags       `json:"tags,omitempty"`
	ImageURL        string     `json:"image_url,omitempty" validate:"omitempty,url"`
	Dimensions      Dimensions `json:"dimensions_cm"`
	Seller          Seller     `json:"seller"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Clone returns a copy that shares no mutable state with p.
func (p Product) Clone() Product {
	c := p
	if p.DiscountPercent != nil {
		d := *p.DiscountPercent
		c.DiscountPercent = &d
	}
	if p.Rating != nil {
		r := *p.Rating
		c.Rating = &r
	}
	if p.Tags != nil {
		c.Tags = append(Tags(nil), p.Tags...)
	}
	return c
}

// Tags is an ordered tag list. It decodes from a JSON list or from a
// comma-separated string.
type Tags []string

// UnmarshalJSON accepts either ["a","b"] or "a, b".
func (t *Tags) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = nil
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = list
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("tags must be a list of strings or a comma-separated string")
	}
	*t = SplitTags(s)
	return nil
}

// SplitTags turns "a, b,,c" into [a b c].
func SplitTags(s string) Tags {
	parts := strings.Split(s, ",")
	tags := make(Tags, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
