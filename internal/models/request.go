package models

// DimensionsInput is the dimensions block of a creation payload.
type DimensionsInput struct {
	Length *float64 `json:"length" validate:"required,gte=0"`
	Width  *float64 `json:"width" validate:"required,gte=0"`
	Height *float64 `json:"height" validate:"required,gte=0"`
}

// SellerInput is the seller block of a creation payload.
type SellerInput struct {
	SellerID string `json:"seller_id" validate:"required,uuid"`
	Name     string `json:"name" validate:"required,min=1,max=50"`
	Email    string `json:"email" validate:"required,email,seller_domain"`
	Website  string `json:"website" validate:"required,url"`
}

// CreateProductRequest is the full payload accepted when creating a product.
// Pointer fields distinguish "missing" from a zero value.
type CreateProductRequest struct {
	SKU             string           `json:"sku" validate:"required,min=8,max=20"`
	Name            string           `json:"name" validate:"required,min=1,max=50"`
	Description     string           `json:"description" validate:"max=500"`
	Category        string           `json:"category" validate:"required,min=1,max=30"`
	Brand           string           `json:"brand" validate:"max=30"`
	Price           *float64         `json:"price" validate:"required,gte=0"`
	Currency        Currency         `json:"currency" validate:"required,oneof=USD EUR INR GBP"`
	DiscountPercent *float64         `json:"discount_percent" validate:"omitempty,gte=0"`
	Stock           *int             `json:"stock" validate:"required,gte=0"`
	IsActive        *bool            `json:"is_active"`
	Rating          *float64         `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Tags            Tags             `json:"tags"`
	ImageURL        string           `json:"image_url" validate:"omitempty,url"`
	Dimensions      *DimensionsInput `json:"dimensions_cm" validate:"required"`
	Seller          *SellerInput     `json:"seller" validate:"required"`
}

// DimensionsUpdate carries the dimension fields a caller wants to change.
type DimensionsUpdate struct {
	Length *float64 `json:"length" validate:"omitempty,gte=0"`
	Width  *float64 `json:"width" validate:"omitempty,gte=0"`
	Height *float64 `json:"height" validate:"omitempty,gte=0"`
}

// SellerUpdate carries the seller fields a caller wants to change.
type SellerUpdate struct {
	SellerID *string `json:"seller_id" validate:"omitempty,uuid"`
	Name     *string `json:"name" validate:"omitempty,min=1,max=50"`
	Email    *string `json:"email" validate:"omitempty,email,seller_domain"`
	Website  *string `json:"website" validate:"omitempty,url"`
}

// ProductUpdate is a sparse update: nil means "leave unchanged". It backs
// both PUT and PATCH. SKU and creation time are fixed at creation and have
// no field here; ID, when sent, must name the product being updated.
type ProductUpdate struct {
	ID              *string           `json:"id" validate:"omitempty,uuid"`
	Name            *string           `json:"name" validate:"omitempty,min=1,max=50"`
	Description     *string           `json:"description" validate:"omitempty,max=500"`
	Category        *string           `json:"category" validate:"omitempty,min=1,max=30"`
	Brand           *string           `json:"brand" validate:"omitempty,max=30"`
	Price           *float64          `json:"price" validate:"omitempty,gte=0"`
	Currency        *Currency         `json:"currency" validate:"omitempty,oneof=USD EUR INR GBP"`
	DiscountPercent *float64          `json:"discount_percent" validate:"omitempty,gte=0"`
	Stock           *int              `json:"stock" validate:"omitempty,gte=0"`
	IsActive        *bool             `json:"is_active"`
	Rating          *float64          `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Tags            Tags              `json:"tags"`
	ImageURL        *string           `json:"image_url" validate:"omitempty,url"`
	Dimensions      *DimensionsUpdate `json:"dimensions_cm"`
	Seller          *SellerUpdate     `json:"seller"`
}
