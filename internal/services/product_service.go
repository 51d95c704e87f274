package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"catalog/internal/catalogerr"
	"catalog/internal/merge"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/validation"
	"catalog/pkg/logger"

	"github.com/google/uuid"
)

// Routing keys for product lifecycle events.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// EventPublisher sends an encoded event under a routing key.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// ProductEvent is the message body published for every product mutation.
type ProductEvent struct {
	Event      string             `json:"event"`
	ProductID  uuid.UUID          `json:"product_id"`
	SKU        string             `json:"sku"`
	OccurredAt time.Time          `json:"occurred_at"`
	Product    models.ProductView `json:"product"`
}

// ListQuery filters, sorts and pages a product listing.
type ListQuery struct {
	Name        string   `query:"name" json:"name" validate:"omitempty,min=1,max=50"`
	MinPrice    *float64 `query:"min_price" json:"min_price" validate:"omitempty,gte=0"`
	MaxPrice    *float64 `query:"max_price" json:"max_price" validate:"omitempty,gte=0"`
	SortByPrice bool     `query:"sort_by_price" json:"sort_by_price"`
	Order       string   `query:"order" json:"order" validate:"omitempty,oneof=asc desc"`
	Limit       int      `query:"limit" json:"limit" validate:"gte=1,lte=100"`
	Offset      int      `query:"offset" json:"offset" validate:"gte=0"`
}

// DefaultListQuery returns the listing parameters used when a caller sends none.
func DefaultListQuery() ListQuery {
	return ListQuery{Order: "asc", Limit: 10}
}

// ListResult is one page of products plus the number of matches before paging.
type ListResult struct {
	Total int                  `json:"total"`
	Items []models.ProductView `json:"items"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	validator *validation.Validator
	events    EventPublisher
	now       func() time.Time
	// mu serializes every mutation so the SKU check and the write are atomic.
	mu sync.Mutex
}

// NewProductService creates a new ProductService. events may be nil.
func NewProductService(repo repositories.ProductRepository, v *validation.Validator, events EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		validator: v,
		events:    events,
		now:       time.Now,
	}
}

// ListProducts returns the products matching q, sorted and paged.
func (s *ProductService) ListProducts(q ListQuery) (*ListResult, error) {
	if err := s.validator.Struct(&q); err != nil {
		return nil, err
	}
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return nil, catalogerr.FieldErrors{catalogerr.Constraint("min_price", "must not exceed max_price")}
	}

	products, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if q.Name != "" {
		needle := strings.ToLower(strings.TrimSpace(q.Name))
		products = filter(products, func(p models.Product) bool {
			return strings.Contains(strings.ToLower(p.Name), needle)
		})
		if len(products) == 0 {
			return nil, fmt.Errorf("no product found with name=%s: %w", q.Name, catalogerr.ErrNotFound)
		}
	}
	if q.MinPrice != nil {
		lo := *q.MinPrice
		products = filter(products, func(p models.Product) bool { return p.Price >= lo })
	}
	if q.MaxPrice != nil {
		hi := *q.MaxPrice
		products = filter(products, func(p models.Product) bool { return p.Price <= hi })
	}

	if q.SortByPrice {
		desc := q.Order == "desc"
		sort.SliceStable(products, func(i, j int) bool {
			if desc {
				return products[i].Price > products[j].Price
			}
			return products[i].Price < products[j].Price
		})
	}

	total := len(products)
	start := min(q.Offset, total)
	end := min(start+q.Limit, total)

	return &ListResult{
		Total: total,
		Items: models.Views(products[start:end]),
	}, nil
}

// GetProduct retrieves a single product by its identifier.
func (s *ProductService) GetProduct(id string) (*models.ProductView, error) {
	pid, err := validation.ParseID("id", id)
	if err != nil {
		return nil, err
	}
	product, err := s.repo.GetByID(pid)
	if err != nil {
		return nil, err
	}
	view := models.View(*product)
	return &view, nil
}

// CreateProduct validates req, assigns an identifier and creation time, and
// stores the new product.
func (s *ProductService) CreateProduct(req *models.CreateProductRequest) (*models.ProductView, error) {
	if err := s.validator.ValidateCreate(req); err != nil {
		return nil, err
	}
	sellerID, err := validation.ParseID("seller.seller_id", req.Seller.SellerID)
	if err != nil {
		return nil, err
	}

	product := models.Product{
		SKU:             req.SKU,
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		Brand:           req.Brand,
		Price:           *req.Price,
		Currency:        req.Currency,
		DiscountPercent: req.DiscountPercent,
		Stock:           *req.Stock,
		IsActive:        true,
		Rating:          req.Rating,
		ImageURL:        req.ImageURL,
		Dimensions: models.Dimensions{
			Length: *req.Dimensions.Length,
			Width:  *req.Dimensions.Width,
			Height: *req.Dimensions.Height,
		},
		Seller: models.Seller{
			SellerID: sellerID,
			Name:     req.Seller.Name,
			Email:    req.Seller.Email,
			Website:  req.Seller.Website,
		},
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.Tags != nil {
		product.Tags = append(models.Tags{}, req.Tags...)
	}
	product = product.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.repo.GetBySKU(product.SKU); err == nil {
		return nil, catalogerr.Conflict(product.SKU)
	} else if !errors.Is(err, catalogerr.ErrNotFound) {
		return nil, fmt.Errorf("failed to check SKU %s: %w", product.SKU, err)
	}

	product.ID = uuid.New()
	product.CreatedAt = s.now().UTC().Truncate(time.Microsecond)
	if err := s.repo.Create(&product); err != nil {
		return nil, err
	}

	view := models.View(product)
	s.publish(EventProductCreated, view)
	return &view, nil
}

// UpdateProduct merges u into the stored product. PUT and PATCH share it:
// only fields present in u change, and nested seller and dimensions merge
// field by field.
func (s *ProductService) UpdateProduct(id string, u *models.ProductUpdate) (*models.ProductView, error) {
	pid, err := validation.ParseID("id", id)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateUpdate(u); err != nil {
		return nil, err
	}
	ok, err := merge.TargetsID(*u, pid)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, catalogerr.FieldErrors{catalogerr.Constraint("id", "does not match the product being updated")}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.repo.GetByID(pid)
	if err != nil {
		return nil, err
	}
	merged, err := merge.Apply(*stored, *u)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateProduct(&merged); err != nil {
		return nil, err
	}
	if err := s.repo.Update(&merged); err != nil {
		return nil, err
	}

	view := models.View(merged)
	s.publish(EventProductUpdated, view)
	return &view, nil
}

// DeleteProduct removes a product and returns it as it was.
func (s *ProductService) DeleteProduct(id string) (*models.ProductView, error) {
	pid, err := validation.ParseID("id", id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	deleted, err := s.repo.Delete(pid)
	if err != nil {
		return nil, err
	}

	view := models.View(*deleted)
	s.publish(EventProductDeleted, view)
	return &view, nil
}

// publish emits a lifecycle event. Delivery failures are logged; the
// mutation has already been stored.
func (s *ProductService) publish(event string, view models.ProductView) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(ProductEvent{
		Event:      event,
		ProductID:  view.ID,
		SKU:        view.SKU,
		OccurredAt: s.now().UTC(),
		Product:    view,
	})
	if err != nil {
		logger.Error().Err(err).Str("event", event).Msg("failed to encode product event")
		return
	}
	if err := s.events.Publish(event, body); err != nil {
		logger.Warn().Err(err).Str("event", event).Str("product_id", view.ID.String()).Msg("failed to publish product event")
	}
}

func filter(products []models.Product, keep func(models.Product) bool) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
