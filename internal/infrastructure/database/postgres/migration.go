// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/ethereal-designs/storefront-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	models := []interface{}{
		&catalog.Product{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	log.Println("✅ Database migrations completed")
	return nil
}

// SeedCatalog loads the embedded sample catalog into the products table if
// it is empty. The seed is the same data the memory repository serves, so
// switching CATALOG_SOURCE does not change query results.
func (m *Migration) SeedCatalog() error {
	var count int64
	if err := m.db.Model(&catalog.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to inspect products table: %w", err)
	}
	if count > 0 {
		log.Printf("Catalog already seeded (%d products), skipping", count)
		return nil
	}

	products, err := catalog.Seed()
	if err != nil {
		return err
	}

	if err := m.db.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	log.Printf("✅ Seeded catalog with %d products", len(products))
	return nil
}
