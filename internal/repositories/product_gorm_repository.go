package repositories

import (
	"errors"
	"fmt"
	"time"

	"catalog/internal/catalogerr"
	"catalog/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// productRecord is the row layout of the products table. Seq preserves
// insertion order; id and sku carry unique indexes.
type productRecord struct {
	Seq             uint              `gorm:"primaryKey;autoIncrement"`
	ID              string            `gorm:"uniqueIndex;type:varchar(36);not null"`
	SKU             string            `gorm:"uniqueIndex;type:varchar(20);not null"`
	Name            string            `gorm:"type:varchar(50);not null"`
	Description     string            `gorm:"type:varchar(500)"`
	Category        string            `gorm:"type:varchar(30);not null"`
	Brand           string            `gorm:"type:varchar(30)"`
	Price           float64           `gorm:"not null"`
	Currency        string            `gorm:"type:varchar(3);not null"`
	DiscountPercent *float64
	Stock           int `gorm:"not null"`
	IsActive        bool
	Rating          *float64
	Tags            []string          `gorm:"serializer:json"`
	ImageURL        string
	Dimensions      models.Dimensions `gorm:"embedded;embeddedPrefix:dim_"`
	SellerID        string            `gorm:"type:varchar(36)"`
	SellerName      string            `gorm:"type:varchar(50)"`
	SellerEmail     string
	SellerWebsite   string
	CreatedAt       time.Time
}

func (productRecord) TableName() string { return "products" }

func toRecord(p *models.Product) productRecord {
	c := p.Clone()
	return productRecord{
		ID:              c.ID.String(),
		SKU:             c.SKU,
		Name:            c.Name,
		Description:     c.Description,
		Category:        c.Category,
		Brand:           c.Brand,
		Price:           c.Price,
		Currency:        string(c.Currency),
		DiscountPercent: c.DiscountPercent,
		Stock:           c.Stock,
		IsActive:        c.IsActive,
		Rating:          c.Rating,
		Tags:            c.Tags,
		ImageURL:        c.ImageURL,
		Dimensions:      c.Dimensions,
		SellerID:        c.Seller.SellerID.String(),
		SellerName:      c.Seller.Name,
		SellerEmail:     c.Seller.Email,
		SellerWebsite:   c.Seller.Website,
		CreatedAt:       c.CreatedAt,
	}
}

func (rec productRecord) toProduct() (models.Product, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return models.Product{}, fmt.Errorf("stored product has invalid id %q: %w", rec.ID, err)
	}
	sellerID, err := uuid.Parse(rec.SellerID)
	if err != nil {
		return models.Product{}, fmt.Errorf("stored product %s has invalid seller id %q: %w", rec.ID, rec.SellerID, err)
	}
	return models.Product{
		ID:              id,
		SKU:             rec.SKU,
		Name:            rec.Name,
		Description:     rec.Description,
		Category:        rec.Category,
		Brand:           rec.Brand,
		Price:           rec.Price,
		Currency:        models.Currency(rec.Currency),
		DiscountPercent: rec.DiscountPercent,
		Stock:           rec.Stock,
		IsActive:        rec.IsActive,
		Rating:          rec.Rating,
		Tags:            rec.Tags,
		ImageURL:        rec.ImageURL,
		Dimensions:      rec.Dimensions,
		Seller: models.Seller{
			SellerID: sellerID,
			Name:     rec.SellerName,
			Email:    rec.SellerEmail,
			Website:  rec.SellerWebsite,
		},
		CreatedAt: rec.CreatedAt.UTC(),
	}, nil
}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database in insertion order.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var records []productRecord
	if err := r.db.Order("seq asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	products := make([]models.Product, 0, len(records))
	for _, rec := range records {
		p, err := rec.toProduct()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id uuid.UUID) (*models.Product, error) {
	return r.first(r.db, "id = ?", id.String(), id.String())
}

// GetBySKU retrieves a single product by its SKU from the database.
func (r *GORMProductRepository) GetBySKU(sku string) (*models.Product, error) {
	return r.first(r.db, "sku = ?", sku, "for SKU "+sku)
}

func (r *GORMProductRepository) first(db *gorm.DB, query, arg, label string) (*models.Product, error) {
	var rec productRecord
	if err := db.First(&rec, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalogerr.NotFound(label)
		}
		return nil, fmt.Errorf("failed to get product %s: %w", label, err)
	}
	p, err := rec.toProduct()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&productRecord{}).Where("sku = ?", product.SKU).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check SKU %s: %w", product.SKU, err)
		}
		if count > 0 {
			return catalogerr.Conflict(product.SKU)
		}
		rec := toRecord(product)
		if err := tx.Create(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return catalogerr.Conflict(product.SKU)
			}
			return fmt.Errorf("failed to create product: %w", err)
		}
		return nil
	})
}

// Update updates an existing product in the database.
func (r *GORMProductRepository) Update(product *models.Product) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing productRecord
		if err := tx.First(&existing, "id = ?", product.ID.String()).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return catalogerr.NotFound(product.ID.String())
			}
			return fmt.Errorf("failed to load product %s for update: %w", product.ID, err)
		}
		rec := toRecord(product)
		rec.Seq = existing.Seq
		// Save writes every column, including zero values.
		if err := tx.Save(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return catalogerr.Conflict(product.SKU)
			}
			return fmt.Errorf("failed to update product: %w", err)
		}
		return nil
	})
}

// Delete deletes a product by its ID from the database and returns it.
func (r *GORMProductRepository) Delete(id uuid.UUID) (*models.Product, error) {
	var deleted *models.Product
	err := r.db.Transaction(func(tx *gorm.DB) error {
		p, err := r.first(tx, "id = ?", id.String(), id.String())
		if err != nil {
			return err
		}
		if err := tx.Delete(&productRecord{}, "id = ?", id.String()).Error; err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		deleted = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}
