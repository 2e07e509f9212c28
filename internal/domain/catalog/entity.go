// internal/domain/catalog/entity.go
package catalog

import (
	"github.com/shopspring/decimal"
)

// Product represents a catalog entry. The catalog is immutable for the
// lifetime of the process; products are never created, updated or deleted
// through this service.
type Product struct {
	ID          string          `gorm:"primaryKey;size:64" json:"id"`
	Name        string          `gorm:"not null;size:255" json:"name"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Category    Category        `gorm:"not null;size:100;index" json:"category"`
	Description string          `gorm:"type:text" json:"description"`
	Featured    bool            `gorm:"default:false" json:"featured"`
	New         bool            `gorm:"column:is_new;default:false" json:"new"`
	Position    int             `gorm:"not null;default:0" json:"-"` // original catalog order
}

// TableName overrides the table name
func (Product) TableName() string {
	return "products"
}

// Category is one of a fixed enumerated set of product categories.
type Category string

const (
	// CategoryAll is the wildcard matching every product.
	CategoryAll        Category = "All"
	CategoryWallArt    Category = "Wall Art"
	CategorySculptures Category = "Sculptures"
	CategoryTextiles   Category = "Textiles"
)

// Categories lists the concrete (non-wildcard) categories in display order.
func Categories() []Category {
	return []Category{CategoryWallArt, CategorySculptures, CategoryTextiles}
}

// Valid reports whether c is a known concrete category.
func (c Category) Valid() bool {
	switch c {
	case CategoryWallArt, CategorySculptures, CategoryTextiles:
		return true
	}
	return false
}

// ParseCategory maps an arbitrary string onto a category filter. Unknown
// values fall back to the wildcard so that a stale or mistyped filter never
// turns into an error for the caller.
func ParseCategory(s string) Category {
	c := Category(s)
	if c.Valid() {
		return c
	}
	return CategoryAll
}

// SortKey selects the ordering applied to query results.
type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceAsc  SortKey = "priceAsc"
	SortPriceDesc SortKey = "priceDesc"
	SortNameAsc   SortKey = "nameAsc"
	SortNameDesc  SortKey = "nameDesc"
)

// ParseSortKey maps an arbitrary string onto a sort key. Unknown values
// fall back to the featured ordering.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(s); k {
	case SortFeatured, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc:
		return k
	}
	return SortFeatured
}
