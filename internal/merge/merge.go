// Package merge applies sparse product updates to stored records.
//
// Scalars and lists in the update replace the stored value wholesale. The
// two nested objects, seller and dimensions, merge field by field so that
// fields the caller did not mention survive. A nil field never clears
// anything.
package merge

import (
	"catalog/internal/models"
	"catalog/internal/validation"

	"github.com/google/uuid"
)

// Apply returns a copy of stored with u merged in. stored is not modified.
func Apply(stored models.Product, u models.ProductUpdate) (models.Product, error) {
	out := stored.Clone()

	setIf(&out.Name, u.Name)
	setIf(&out.Description, u.Description)
	setIf(&out.Category, u.Category)
	setIf(&out.Brand, u.Brand)
	setIf(&out.Price, u.Price)
	setIf(&out.Currency, u.Currency)
	setIf(&out.Stock, u.Stock)
	setIf(&out.IsActive, u.IsActive)
	setIf(&out.ImageURL, u.ImageURL)

	if u.DiscountPercent != nil {
		d := *u.DiscountPercent
		out.DiscountPercent = &d
	}
	if u.Rating != nil {
		r := *u.Rating
		out.Rating = &r
	}
	if u.Tags != nil {
		out.Tags = append(models.Tags{}, u.Tags...)
	}
	if u.Dimensions != nil {
		out.Dimensions = Dimensions(out.Dimensions, *u.Dimensions)
	}
	if u.Seller != nil {
		s, err := Seller(out.Seller, *u.Seller)
		if err != nil {
			return stored, err
		}
		out.Seller = s
	}
	return out, nil
}

// Dimensions merges the present fields of u into d.
func Dimensions(d models.Dimensions, u models.DimensionsUpdate) models.Dimensions {
	setIf(&d.Length, u.Length)
	setIf(&d.Width, u.Width)
	setIf(&d.Height, u.Height)
	return d
}

// Seller merges the present fields of u into s.
func Seller(s models.Seller, u models.SellerUpdate) (models.Seller, error) {
	if u.SellerID != nil {
		id, err := validation.ParseID("seller.seller_id", *u.SellerID)
		if err != nil {
			return s, err
		}
		s.SellerID = id
	}
	setIf(&s.Name, u.Name)
	setIf(&s.Email, u.Email)
	setIf(&s.Website, u.Website)
	return s, nil
}

// TargetsID reports whether u may be applied to the product identified by
// id. An update that carries no id targets whatever it is applied to.
func TargetsID(u models.ProductUpdate, id uuid.UUID) (bool, error) {
	if u.ID == nil {
		return true, nil
	}
	got, err := validation.ParseID("id", *u.ID)
	if err != nil {
		return false, err
	}
	return got == id, nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
