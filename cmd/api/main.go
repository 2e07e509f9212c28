// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereal-designs/storefront-backend/internal/config"
	"github.com/ethereal-designs/storefront-backend/internal/domain/catalog"
	"github.com/ethereal-designs/storefront-backend/internal/infrastructure/database/postgres"
	"github.com/ethereal-designs/storefront-backend/internal/infrastructure/database/redis"
	"github.com/ethereal-designs/storefront-backend/internal/interfaces/http"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("🚀 Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	// Connect to Redis (session carts, rate limiting)
	redisClient, err := redis.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	if err := redisClient.Health(); err != nil {
		log.Fatalf("Redis health check failed: %v", err)
	}

	// Build the catalog repository from the configured source
	catalogRepo, gormDB, err := buildCatalogRepository(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize catalog: %v", err)
	}

	log.Println("✅ All systems operational!")

	// Create and start HTTP server
	server := http.NewServer(cfg, catalogRepo, gormDB, redisClient.GetClient())

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("👋 Shutting down gracefully...")

	// Give server 30 seconds to shutdown gracefully
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.Printf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	log.Println("✅ Server shutdown completed")
}

// buildCatalogRepository selects the catalog data source. The default is the
// embedded sample catalog; "postgres" migrates and seeds a database-backed
// repository serving the exact same contract.
func buildCatalogRepository(cfg *config.Config) (catalog.Repository, *gorm.DB, error) {
	if cfg.Catalog.Source != "postgres" {
		repo, err := catalog.NewSeededRepository()
		if err != nil {
			return nil, nil, err
		}
		log.Println("📦 Serving embedded catalog")
		return repo, nil, nil
	}

	db, err := postgres.NewConnection(cfg)
	if err != nil {
		return nil, nil, err
	}

	migration := postgres.NewMigration(db.GetDB())
	if err := migration.RunAutoMigrations(); err != nil {
		return nil, nil, err
	}
	if err := migration.SeedCatalog(); err != nil {
		return nil, nil, err
	}

	log.Println("📦 Serving database-backed catalog")
	return catalog.NewGormRepository(db.GetDB()), db.GetDB(), nil
}
