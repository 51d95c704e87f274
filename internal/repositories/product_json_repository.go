package repositories

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"catalog/internal/models"

	"github.com/google/uuid"
)

// JSONProductRepository keeps the catalog in a single JSON array file.
// The file is read once at open; lookups are served from an in-memory
// index and every mutation rewrites the whole file through a temp file
// and rename. A failed write leaves both the file and the index untouched.
type JSONProductRepository struct {
	path  string
	index *productIndex
	mu    sync.RWMutex
}

// NewJSONProductRepository opens the catalog file at path. A missing file
// is an empty catalog; it is created on the first write.
func NewJSONProductRepository(path string) (*JSONProductRepository, error) {
	r := &JSONProductRepository{
		path:  path,
		index: newProductIndex(),
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

// Path returns the backing file location.
func (r *JSONProductRepository) Path() string {
	return r.path
}

// GetAll returns all products in insertion order.
func (r *JSONProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.index.all(), nil
}

// GetByID returns a product by its ID.
func (r *JSONProductRepository) GetByID(id uuid.UUID) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.index.get(id)
}

// GetBySKU returns a product by its SKU.
func (r *JSONProductRepository) GetBySKU(sku string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.index.getBySKU(sku)
}

// Create appends a new product and rewrites the file.
func (r *JSONProductRepository) Create(product *models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	return r.mutate(func(ix *productIndex) error {
		return ix.create(*product)
	})
}

// Update replaces an existing product and rewrites the file.
func (r *JSONProductRepository) Update(product *models.Product) error {
	return r.mutate(func(ix *productIndex) error {
		return ix.update(*product)
	})
}

// Delete removes a product, rewrites the file, and returns the removed record.
func (r *JSONProductRepository) Delete(id uuid.UUID) (*models.Product, error) {
	var deleted *models.Product
	err := r.mutate(func(ix *productIndex) error {
		p, err := ix.delete(id)
		deleted = p
		return err
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (r *JSONProductRepository) mutate(fn func(ix *productIndex) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.index.clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := r.save(next.all()); err != nil {
		return err
	}
	r.index = next
	return nil
}

func (r *JSONProductRepository) load() error {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read product file %s: %w", r.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return fmt.Errorf("failed to decode product file %s: %w", r.path, err)
	}
	for _, p := range products {
		if err := r.index.create(p); err != nil {
			return fmt.Errorf("invalid product file %s: %w", r.path, err)
		}
	}
	return nil
}

func (r *JSONProductRepository) save(products []models.Product) error {
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode products: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".products-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp product file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write products: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp product file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("failed to replace product file %s: %w", r.path, err)
	}
	return nil
}
