package repositories

import (
	"catalog/internal/models"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product data access.
//
// GetAll returns products in insertion order. Create fails with a
// catalogerr conflict when the SKU is taken; GetByID, GetBySKU, Update and
// Delete fail with catalogerr not-found for unknown records.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id uuid.UUID) (*models.Product, error)
	GetBySKU(sku string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uuid.UUID) (*models.Product, error)
}
