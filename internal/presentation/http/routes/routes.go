package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockroom-api/internal/config"
	"github.com/sangkips/stockroom-api/internal/domain/enum"
	domainRepo "github.com/sangkips/stockroom-api/internal/domain/repository"
	"github.com/sangkips/stockroom-api/internal/presentation/http/handler"
	"github.com/sangkips/stockroom-api/internal/presentation/http/middleware"
	"github.com/sangkips/stockroom-api/pkg/logger"
	"github.com/sangkips/stockroom-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Health          *handler.HealthHandler
	Auth            *handler.AuthHandler
	Category        *handler.CategoryHandler
	Supplier        *handler.SupplierHandler
	Product         *handler.ProductHandler
	Customer        *handler.CustomerHandler
	PriceList       *handler.PriceListHandler
	Return          *handler.ReturnHandler
	Stock           *handler.StockHandler
	PurchaseRequest *handler.PurchaseRequestHandler
	Sale            *handler.SaleHandler
	Report          *handler.ReportHandler
	Dashboard       *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager  *utils.JWTManager
	Revoked     domainRepo.TokenRevocationStore
	RateLimiter *middleware.ClientRateLimiter
	Logger      *logger.Logger
	Cfg         *config.Config
}

var managers = []enum.Role{enum.RoleAdmin, enum.RoleManager}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error(c.Request.Context(), "panic recovered", "panic", recovered)
		c.AbortWithStatus(500)
	}))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))
	router.Use(middleware.SecureHeaders(deps.Cfg.App.IsProduction()))

	router.GET("/health", h.Health.Live)
	router.GET("/ready", h.Health.Ready)

	limit := func(c *gin.Context) { c.Next() }
	if deps.RateLimiter != nil {
		limit = deps.RateLimiter.Middleware()
	}

	v1 := router.Group("/api/v1")
	{
		// Public routes are limited per client IP
		v1.POST("/auth/login", limit, h.Auth.Login)

		// Protected routes are limited per user
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager, deps.Revoked), limit)

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	auth := protected.Group("/auth")
	{
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/me", h.Auth.Me)
		auth.GET("/check", h.Auth.Check)
		auth.PUT("/password", h.Auth.ChangePassword)
	}

	protected.GET("/dashboard", middleware.RequireRole(managers...), h.Dashboard.GetStats)

	registerCatalogRoutes(protected, h)
	registerStockRoutes(protected, h)
	registerPurchaseRequestRoutes(protected, h)
	registerSaleRoutes(protected, h)
	registerReturnRoutes(protected, h)

	reports := protected.Group("/reports")
	reports.Use(middleware.RequireRole(managers...))
	{
		reports.GET("/stock", h.Report.Stock)
		reports.GET("/stock/export", h.Report.ExportStock)
	}
}

func registerCatalogRoutes(protected *gin.RouterGroup, h *Handlers) {
	categories := protected.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.POST("", h.Category.Create)
		categories.GET("/:id", h.Category.Get)
		categories.PUT("/:id", h.Category.Update)
		categories.DELETE("/:id", h.Category.Delete)
	}

	suppliers := protected.Group("/suppliers")
	{
		suppliers.GET("", h.Supplier.List)
		suppliers.POST("", h.Supplier.Create)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.PUT("/:id", h.Supplier.Update)
		suppliers.DELETE("/:id", h.Supplier.Delete)
	}

	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
		products.GET("/:id/stock", h.Product.Stock)
		products.GET("/:id/latest-batch-price", h.Product.LatestBatchPrice)
	}

	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}

	prices := protected.Group("/price-lists")
	{
		prices.GET("", h.PriceList.List)
		prices.GET("/:id", h.PriceList.Get)
		prices.POST("", middleware.RequireRole(managers...), h.PriceList.Create)
		prices.PUT("/:id", middleware.RequireRole(managers...), h.PriceList.Update)
		prices.DELETE("/:id", middleware.RequireRole(managers...), h.PriceList.Delete)
	}
}

func registerStockRoutes(protected *gin.RouterGroup, h *Handlers) {
	batches := protected.Group("/batches")
	{
		batches.GET("", h.Stock.ListBatches)
		batches.POST("", h.Stock.CreateBatch)
		batches.GET("/:id", h.Stock.GetBatch)
		batches.DELETE("/:id", middleware.RequireRole(managers...), h.Stock.DeleteBatch)
	}

	adjustments := protected.Group("/stock-adjustments")
	{
		adjustments.GET("", h.Stock.ListAdjustments)
		adjustments.POST("", h.Stock.CreateAdjustment)
	}

	protected.GET("/stock-movements", h.Stock.ListMovements)
}

func registerPurchaseRequestRoutes(protected *gin.RouterGroup, h *Handlers) {
	prs := protected.Group("/purchase-requests")
	{
		prs.GET("", h.PurchaseRequest.List)
		prs.POST("", h.PurchaseRequest.Create)
		prs.GET("/:id", h.PurchaseRequest.Get)
		prs.PUT("/:id", h.PurchaseRequest.Update)
		prs.DELETE("/:id", h.PurchaseRequest.Delete)
		prs.POST("/:id/submit", h.PurchaseRequest.Submit)
		prs.POST("/:id/approve", middleware.RequireRole(managers...), h.PurchaseRequest.Approve)
		prs.POST("/:id/reject", middleware.RequireRole(managers...), h.PurchaseRequest.Reject)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers) {
	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.POST("", h.Sale.Create)
		sales.DELETE("/payments/:id", h.Sale.DeletePayment)
		sales.GET("/:id", h.Sale.Get)
		sales.DELETE("/:id", h.Sale.Delete)
		sales.PUT("/:id/status", h.Sale.UpdateStatus)
		sales.GET("/:id/payments", h.Sale.ListPayments)
		sales.POST("/:id/payments", h.Sale.RecordPayment)
	}
}

func registerReturnRoutes(protected *gin.RouterGroup, h *Handlers) {
	returns := protected.Group("/returns")
	{
		returns.GET("", h.Return.List)
		returns.POST("", h.Return.Create)
		returns.GET("/:id", h.Return.Get)
		returns.PUT("/:id", h.Return.Update)
		returns.DELETE("/:id", h.Return.Delete)
		returns.POST("/:id/approve", middleware.RequireRole(managers...), h.Return.Approve)
		returns.POST("/:id/reject", middleware.RequireRole(managers...), h.Return.Reject)
	}
}
