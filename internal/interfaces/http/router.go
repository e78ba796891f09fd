package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/analytics"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/application/report"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName          string
	ProductUC        *usecase.ProductUseCase
	ImportProducts   *inventory.ImportProductsUseCase
	SupplierUC       *usecase.SupplierUseCase
	ClientUC         *usecase.ClientUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	MovementQuery    *usecase.MovementQueryUseCase
	TransportUC      *usecase.TransportUseCase
	PurchaseOrders   *inventory.PurchaseOrderUseCase
	LogUC            *usecase.LogUseCase
	AnalyticsUC      *analytics.UseCase
	StockReport      *report.StockReportUseCase
	StockPDF         StockPDFRenderer
	// Ping verifica el almacenamiento desde /health; nil se reporta como ok.
	Ping func(ctx context.Context) error
	// Con JWTSecret vacío las rutas /api quedan abiertas.
	JWTSecret string
	JWTIssuer string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps.AppName, deps.Ping))

	api := app.Group("/api")
	if deps.JWTSecret != "" {
		api.Use(AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	}

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.ImportProducts)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Post("/import", productHandler.Import)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	clients := api.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Get("/", clientHandler.List)
	clients.Post("/", clientHandler.Create)
	clients.Get("/:id", clientHandler.GetDetail)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.MovementQuery, deps.PurchaseOrders)
	movements := api.Group("/movements")
	movements.Get("/", inventoryHandler.ListMovements)
	movements.Post("/", inventoryHandler.RegisterMovement)
	movements.Get("/:id", inventoryHandler.GetMovement)

	orders := api.Group("/purchase-orders")
	orders.Get("/", inventoryHandler.ListPurchaseOrders)
	orders.Post("/", inventoryHandler.CreatePurchaseOrder)
	orders.Patch("/", inventoryHandler.UpdatePurchaseOrderStatus)

	transports := api.Group("/transports")
	transportHandler := NewTransportHandler(deps.TransportUC)
	transports.Get("/", transportHandler.List)
	transports.Post("/", transportHandler.Create)
	transports.Get("/:id", transportHandler.GetByID)
	transports.Put("/:id", transportHandler.Update)
	transports.Delete("/:id", transportHandler.Delete)

	logs := api.Group("/logs")
	logHandler := NewLogHandler(deps.LogUC)
	logs.Get("/", logHandler.List)
	logs.Post("/", logHandler.Create)

	analyticsGroup := api.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	analyticsGroup.Get("/margins", analyticsHandler.GetMargins)
	analyticsGroup.Get("/movements", analyticsHandler.GetMovements)
	analyticsGroup.Get("/suppliers", analyticsHandler.GetSuppliers)
	analyticsGroup.Get("/value", analyticsHandler.GetValue)
	analyticsGroup.Get("/overview", analyticsHandler.GetOverview)

	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.StockReport, deps.StockPDF)
	reports.Get("/stock.csv", reportHandler.StockCSV)
	reports.Get("/stock.pdf", reportHandler.StockPDF)
}

// healthHandler responde 503 si el almacenamiento no contesta.
func healthHandler(service string, ping func(ctx context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "service": service, "error": err.Error()})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": service})
	}
}
