package repositories

import (
	"catalog/internal/catalogerr"
	"catalog/internal/models"

	"github.com/google/uuid"
)

// productIndex keeps products by id, a SKU → id secondary index, and the
// insertion order. It is not safe for concurrent use; owners lock around it.
type productIndex struct {
	order []uuid.UUID
	byID  map[uuid.UUID]models.Product
	bySKU map[string]uuid.UUID
}

func newProductIndex() *productIndex {
	return &productIndex{
		byID:  make(map[uuid.UUID]models.Product),
		bySKU: make(map[string]uuid.UUID),
	}
}

func (ix *productIndex) all() []models.Product {
	products := make([]models.Product, 0, len(ix.order))
	for _, id := range ix.order {
		products = append(products, ix.byID[id].Clone())
	}
	return products
}

func (ix *productIndex) get(id uuid.UUID) (*models.Product, error) {
	p, ok := ix.byID[id]
	if !ok {
		return nil, catalogerr.NotFound(id.String())
	}
	c := p.Clone()
	return &c, nil
}

func (ix *productIndex) getBySKU(sku string) (*models.Product, error) {
	id, ok := ix.bySKU[sku]
	if !ok {
		return nil, catalogerr.NotFound("for SKU " + sku)
	}
	return ix.get(id)
}

func (ix *productIndex) create(p models.Product) error {
	if _, taken := ix.bySKU[p.SKU]; taken {
		return catalogerr.Conflict(p.SKU)
	}
	if _, taken := ix.byID[p.ID]; taken {
		return catalogerr.Constraint("id", "identifier already assigned")
	}
	ix.order = append(ix.order, p.ID)
	ix.byID[p.ID] = p.Clone()
	ix.bySKU[p.SKU] = p.ID
	return nil
}

func (ix *productIndex) update(p models.Product) error {
	old, ok := ix.byID[p.ID]
	if !ok {
		return catalogerr.NotFound(p.ID.String())
	}
	if old.SKU != p.SKU {
		if owner, taken := ix.bySKU[p.SKU]; taken && owner != p.ID {
			return catalogerr.Conflict(p.SKU)
		}
		delete(ix.bySKU, old.SKU)
		ix.bySKU[p.SKU] = p.ID
	}
	ix.byID[p.ID] = p.Clone()
	return nil
}

func (ix *productIndex) delete(id uuid.UUID) (*models.Product, error) {
	p, ok := ix.byID[id]
	if !ok {
		return nil, catalogerr.NotFound(id.String())
	}
	delete(ix.byID, id)
	delete(ix.bySKU, p.SKU)
	for i, oid := range ix.order {
		if oid == id {
			ix.order = append(ix.order[:i:i], ix.order[i+1:]...)
			break
		}
	}
	return &p, nil
}

func (ix *productIndex) clone() *productIndex {
	c := &productIndex{
		order: append([]uuid.UUID(nil), ix.order...),
		byID:  make(map[uuid.UUID]models.Product, len(ix.byID)),
		bySKU: make(map[string]uuid.UUID, len(ix.bySKU)),
	}
	for id, p := range ix.byID {
		c.byID[id] = p
	}
	for sku, id := range ix.bySKU {
		c.bySKU[sku] = id
	}
	return c
}
