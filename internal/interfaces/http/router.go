package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/orders"
	"github.com/jhoicas/almacen-api/internal/application/reports"
	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC    *usecase.ProductUseCase
	SupplierUC   *usecase.SupplierUseCase
	CategoryUC   *usecase.CategoryUseCase
	DashboardUC  *usecase.DashboardUseCase
	AdjusterUC   *stock.AdjusterUseCase
	StockQueries *stock.QueryUseCase
	PurchaseUC   *orders.PurchaseUseCase
	SalesUC      *orders.SalesUseCase
	StockReport  *reports.StockReportUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/out-of-stock", productHandler.ListOutOfStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Stock: ajustes manuales + ledger (protegido)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.AdjusterUC, deps.StockQueries)
	stockGroup.Post("/add", stockHandler.AddStock)
	stockGroup.Post("/remove", stockHandler.RemoveStock)
	stockGroup.Post("/adjust", stockHandler.Adjust)
	stockGroup.Get("/transactions", stockHandler.ListTransactions)
	stockGroup.Get("/availability/:id", stockHandler.Availability)

	// Purchase orders (protegido)
	purchases := protected.Group("/purchase-orders")
	purchaseHandler := NewPurchaseOrderHandler(deps.PurchaseUC)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Post("/:id/complete", purchaseHandler.Complete)
	purchases.Post("/:id/cancel", purchaseHandler.Cancel)
	purchases.Delete("/:id", purchaseHandler.Delete)

	// Sales orders (protegido)
	sales := protected.Group("/sales-orders")
	salesHandler := NewSalesOrderHandler(deps.SalesUC)
	sales.Post("/", salesHandler.Create)
	sales.Get("/", salesHandler.List)
	sales.Get("/:id", salesHandler.GetByID)
	sales.Post("/:id/complete", salesHandler.Complete)
	sales.Post("/:id/cancel", salesHandler.Cancel)
	sales.Delete("/:id", salesHandler.Delete)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Summary)

	// Reports (protegido)
	reportHandler := NewReportHandler(deps.StockReport)
	protected.Get("/reports/stock", reportHandler.StockReport)
}
