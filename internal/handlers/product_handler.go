package handlers

import (
	"bytes"

	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	productService *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// RegisterRoutes registers the product routes. guards run before every
// mutating route.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, guards ...fiber.Handler) {
	guarded := func(handler fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, guards...), handler)
	}

	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.ListProducts)
	productRoutes.Get("/export", h.ExportProducts)
	productRoutes.Get("/:id", h.GetProduct)
	productRoutes.Post("/", guarded(h.CreateProduct)...)
	productRoutes.Put("/:id", guarded(h.UpdateProduct)...)
	productRoutes.Patch("/:id", guarded(h.UpdateProduct)...)
	productRoutes.Delete("/:id", guarded(h.DeleteProduct)...)
}

// ListProducts handles GET /products.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	q := services.DefaultListQuery()
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid query parameters",
			"error":   err.Error(),
		})
	}

	result, err := h.productService.ListProducts(q)
	if err != nil {
		return respondError(c, "Failed to list products", err)
	}
	return c.JSON(result)
}

// ExportProducts handles GET /products/export.
func (h *ProductHandler) ExportProducts(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.productService.ExportProducts(&buf); err != nil {
		return respondError(c, "Failed to export products", err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="products.xlsx"`)
	return c.Send(buf.Bytes())
}

// GetProduct handles GET /products/:id.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.productService.GetProduct(c.Params("id"))
	if err != nil {
		return respondError(c, "Product is unavailable", err)
	}
	return c.JSON(product)
}

// CreateProduct handles POST /products.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req models.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	product, err := h.productService.CreateProduct(&req)
	if err != nil {
		return respondError(c, "Failed to create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// UpdateProduct handles PUT and PATCH /products/:id. Both merge the body
// into the stored product.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	var update models.ProductUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	product, err := h.productService.UpdateProduct(c.Params("id"), &update)
	if err != nil {
		return respondError(c, "Failed to update product", err)
	}
	return c.JSON(product)
}

// DeleteProduct handles DELETE /products/:id.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	product, err := h.productService.DeleteProduct(c.Params("id"))
	if err != nil {
		return respondError(c, "Failed to delete product", err)
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
		"product": product,
	})
}
