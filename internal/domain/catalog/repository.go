// internal/domain/catalog/repository.go
package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

//go:embed catalog.json
var seedData []byte

// Repository provides read access to the product catalog. The catalog is an
// ordered sequence; List must return products in their original catalog
// order so that stable sorts can preserve it.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (*Product, error)
}

// ErrProductNotFound is returned by Get for an unknown product id.
var ErrProductNotFound = fmt.Errorf("product not found")

// Seed decodes the embedded sample catalog. Position is assigned from the
// order of entries in the file.
func Seed() ([]Product, error) {
	var products []Product
	if err := json.Unmarshal(seedData, &products); err != nil {
		return nil, fmt.Errorf("failed to decode seed catalog: %w", err)
	}
	for i := range products {
		products[i].Position = i
	}
	return products, nil
}

// MemoryRepository serves the catalog from an in-memory slice. It is the
// default data source and is also used as the test double everywhere a
// Repository is needed.
type MemoryRepository struct {
	products []Product
}

// NewMemoryRepository creates a repository over the given products.
func NewMemoryRepository(products []Product) *MemoryRepository {
	return &MemoryRepository{products: products}
}

// NewSeededRepository creates a memory repository over the embedded sample
// catalog.
func NewSeededRepository() (*MemoryRepository, error) {
	products, err := Seed()
	if err != nil {
		return nil, err
	}
	return NewMemoryRepository(products), nil
}

// List returns a copy of the catalog so callers can never mutate the source.
func (r *MemoryRepository) List(ctx context.Context) ([]Product, error) {
	out := make([]Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// Get returns the product with the given id.
func (r *MemoryRepository) Get(ctx context.Context, id string) (*Product, error) {
	for i := range r.products {
		if r.products[i].ID == id {
			p := r.products[i]
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

// GormRepository serves the catalog from a database. It satisfies the same
// contract as MemoryRepository, so a real backend can be substituted
// without touching the query engine or the cart ledger.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a database-backed catalog repository.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// List returns all products in catalog order.
func (r *GormRepository) List(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := r.db.WithContext(ctx).Order("position ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve catalog: %w", err)
	}
	return products, nil
}

// Get returns the product with the given id.
func (r *GormRepository) Get(ctx context.Context, id string) (*Product, error) {
	var product Product
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&product)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}
	return &product, nil
}
