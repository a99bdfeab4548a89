package handler

import (
	"net/http"

	"sweetshop/pkg/logger"
	"sweetshop/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes настраивает все маршруты Inventory Service с использованием Gin
// Ролевые ограничения: delete, restock и полный отчёт - только admin,
// остальные операции - любой аутентифицированный вызывающий
func SetupRoutes(inventoryHandler *InventoryHandler, reportHandler *ReportHandler, authMiddleware *AuthMiddleware) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("inventory-service"))

	// CORS настройки
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint - публичный, без аутентификации
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "inventory-service",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Sweets endpoints - все требуют аутентификации
	sweets := router.Group("/api/sweets")
	sweets.Use(authMiddleware.Authenticate())
	{
		sweets.GET("", inventoryHandler.GetAllSweets)
		sweets.GET("/search", inventoryHandler.SearchSweets)
		sweets.GET("/:id", inventoryHandler.GetSweet)
		sweets.GET("/:id/prices", inventoryHandler.GetTierPrices)
		sweets.POST("", inventoryHandler.CreateSweet)
		sweets.PUT("/:id", inventoryHandler.UpdateSweet)
		sweets.POST("/:id/purchase", inventoryHandler.PurchaseSweet)

		// Удаление и пополнение склада - только admin
		sweets.DELETE("/:id", authMiddleware.RequireRole("admin"), inventoryHandler.DeleteSweet)
		sweets.POST("/:id/restock", authMiddleware.RequireRole("admin"), inventoryHandler.RestockSweet)
	}

	// Orders endpoints - отчётность по журналу покупок
	orders := router.Group("/api/orders")
	orders.Use(authMiddleware.Authenticate())
	{
		orders.GET("/my", reportHandler.GetMyOrders)

		// Полный журнал и разрез по сладости - только admin
		orders.GET("", authMiddleware.RequireRole("admin"), reportHandler.GetAllOrders)
		orders.GET("/sweet/:id", authMiddleware.RequireRole("admin"), reportHandler.GetOrdersBySweet)
	}

	return router
}
