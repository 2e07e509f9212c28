// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/ethereal-designs/storefront-backend/internal/config"
	"github.com/ethereal-designs/storefront-backend/internal/domain/catalog"
	"github.com/ethereal-designs/storefront-backend/internal/interfaces/http/handlers"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// SetupRoutes wires every API route group
func SetupRoutes(rg *gin.RouterGroup, catalogRepo catalog.Repository, redisClient *redis.Client, cfg *config.Config) {
	SetupProductRoutes(rg, catalogRepo)
	SetupCartRoutes(rg, catalogRepo, redisClient, cfg)
}

// SetupProductRoutes sets up catalog related routes
func SetupProductRoutes(rg *gin.RouterGroup, catalogRepo catalog.Repository) {
	productHandler := handlers.NewProductHandler(catalogRepo)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/categories", productHandler.GetCategories)
		products.GET("/:id", productHandler.GetProduct)
	}
}

// SetupCartRoutes sets up cart related routes. Carts are keyed by a session
// cookie, so no authentication is involved.
func SetupCartRoutes(rg *gin.RouterGroup, catalogRepo catalog.Repository, redisClient *redis.Client, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(redisClient, catalogRepo, cfg)

	cart := rg.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.DELETE("", cartHandler.ClearCart)

		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveFromCart)

		cart.POST("/promo", cartHandler.ApplyPromo)
		cart.DELETE("/promo", cartHandler.RemovePromo)

		cart.GET("/shipping-options", cartHandler.GetShippingOptions)
		cart.PUT("/shipping", cartHandler.SelectShipping)

		cart.POST("/checkout", cartHandler.BeginCheckout)
		cart.DELETE("/checkout", cartHandler.CancelCheckout)
	}
}
