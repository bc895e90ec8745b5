package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturacion-api/internal/application/auth"
	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/inventory"
	"github.com/jhoicas/Facturacion-api/internal/application/usecase"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC      *usecase.ProductUseCase
	CategoryUC     *usecase.CategoryUseCase
	WarehouseUC    *usecase.WarehouseUseCase
	CounterpartyUC *usecase.CounterpartyUseCase
	Ledger         *inventory.LedgerUseCase
	StockQueries   *inventory.StockQueryUseCase
	Valuation      *inventory.ValuationUseCase
	InvoiceUC      *billing.InvoiceUseCase
	AuthUC         *auth.AuthUseCase
	JWTSecret      string
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

	adminOnly := RequireRole(entity.RoleAdmin)
	canAdjust := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	canInvoice := RequireRole(entity.RoleAdmin, entity.RoleVendedor)

	// Products (protegido; escritura solo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", adminOnly, productHandler.Update)

	// Categories (protegido; escritura solo admin)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", adminOnly, categoryHandler.Create)
	categories.Get("/", categoryHandler.List)

	// Warehouses (protegido; escritura solo admin)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", adminOnly, warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", adminOnly, warehouseHandler.Update)

	// Counterparties (protegido)
	counterparties := protected.Group("/counterparties")
	counterpartyHandler := NewCounterpartyHandler(deps.CounterpartyUC)
	counterparties.Post("/", counterpartyHandler.Create)
	counterparties.Get("/", counterpartyHandler.List)
	counterparties.Get("/:id", counterpartyHandler.GetByID)
	counterparties.Put("/:id", counterpartyHandler.Update)

	// Inventory (protegido; ajustes solo admin/bodeguero)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.StockQueries, deps.Valuation)
	invGroup.Post("/adjustments", canAdjust, inventoryHandler.RegisterAdjustment)
	invGroup.Get("/stock", inventoryHandler.GetStock)
	invGroup.Get("/stock/total", inventoryHandler.GetTotalStock)
	invGroup.Get("/warehouses/:id/stock", inventoryHandler.ListStockByWarehouse)
	invGroup.Get("/movements", inventoryHandler.ListMovements)

	// Reports (protegido)
	reports := protected.Group("/reports")
	reports.Get("/valuation", inventoryHandler.Valuation)
	reports.Get("/low-stock", inventoryHandler.LowStock)

	// Invoices (protegido; emisión y anulación solo admin/vendedor)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.StockQueries)
	invoices.Post("/sales", canInvoice, invoiceHandler.CreateSale)
	invoices.Post("/purchases", canInvoice, invoiceHandler.CreatePurchase)
	invoices.Post("/:id/cancel", canInvoice, invoiceHandler.Cancel)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/movements", invoiceHandler.Movements)
}
