package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ruchelocale/marketplace-api/internal/config"
	"github.com/ruchelocale/marketplace-api/internal/handler/http/middleware"
	"github.com/ruchelocale/marketplace-api/internal/service"
)

// Services bundles everything the router needs.
type Services struct {
	Auth     *service.AuthService
	Product  *service.ProductService
	Category *service.CategoryService
	Shop     *service.ShopService
	Order    *service.OrderService
}

// SetupRouter configures all HTTP routes.
func SetupRouter(services Services, pool *pgxpool.Pool, cfg *config.Config, logger *zap.Logger) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.CorsMiddleware())
	router.Use(middleware.MetricsMiddleware())

	errorMapper := NewErrorMapper(logger, cfg.IsDevelopment())
	authHandler := NewAuthHandler(services.Auth, errorMapper, logger)
	productHandler := NewProductHandler(services.Product, errorMapper)
	categoryHandler := NewCategoryHandler(services.Category, errorMapper)
	shopHandler := NewShopHandler(services.Shop, errorMapper)
	orderHandler := NewOrderHandler(services.Order, errorMapper)
	healthHandler := NewHealthHandler(pool)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", healthHandler.Health)
	router.GET("/readiness", healthHandler.Readiness)

	authRequired := middleware.AuthMiddleware(services.Auth, errorMapper.Write, logger)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authRequired, authHandler.Logout)
			auth.GET("/me", authRequired, authHandler.Me)
		}

		products := api.Group("/products")
		{
			products.GET("", productHandler.List)
			products.GET("/:id", productHandler.Get)
			products.POST("", authRequired, productHandler.Create)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", categoryHandler.List)
			categories.GET("/:slug", categoryHandler.Get)
		}

		shops := api.Group("/shops")
		{
			shops.GET("", shopHandler.List)
			shops.GET("/:slug", shopHandler.Get)
			shops.GET("/:slug/products", shopHandler.Products)
		}

		orders := api.Group("/orders")
		orders.Use(authRequired)
		{
			orders.POST("", orderHandler.Create)
			orders.GET("", orderHandler.List)
			orders.GET("/:id", orderHandler.Get)
			orders.PATCH("/:id/status", orderHandler.UpdateStatus)
		}
	}

	return router
}
