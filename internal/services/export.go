package services

import (
	"fmt"
	"io"
	"strings"
	"time"

	"catalog/internal/models"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Products"

var exportHeader = []any{
	"ID", "SKU", "Name", "Category", "Brand", "Price", "Currency",
	"Discount %", "Discounted Price", "Stock", "Active", "Rating", "Tags",
	"Volume (cm3)", "Seller", "Seller Email", "Created At",
}

// ExportProducts writes the whole catalog, in insertion order, to w as an
// XLSX workbook with one row per product.
func (s *ProductService) ExportProducts(w io.Writer) error {
	products, err := s.repo.GetAll()
	if err != nil {
		return fmt.Errorf("failed to load products for export: %w", err)
	}
	return WriteProductsXLSX(w, models.Views(products))
}

// WriteProductsXLSX renders views into a single-sheet workbook.
func WriteProductsXLSX(w io.Writer, views []models.ProductView) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("failed to name export sheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}

	for i, v := range views {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		row := exportRow(v)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write product %s: %w", v.ID, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func exportRow(v models.ProductView) []any {
	return []any{
		v.ID.String(),
		v.SKU,
		v.Name,
		v.Category,
		v.Brand,
		v.Price,
		string(v.Currency),
		optional(v.DiscountPercent),
		optional(v.DiscountedPrice),
		v.Stock,
		v.IsActive,
		optional(v.Rating),
		strings.Join(v.Tags, ", "),
		v.VolumeCM3,
		v.Seller.Name,
		v.Seller.Email,
		v.CreatedAt.Format(time.RFC3339),
	}
}

// optional leaves the cell blank for an absent value.
func optional(f *float64) any {
	if f == nil {
		return ""
	}
	return *f
}
