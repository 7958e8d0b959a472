package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DonnyDianderas/dcp-inventory-api/internal/application/auth"
	"github.com/DonnyDianderas/dcp-inventory-api/internal/application/ledger"
	"github.com/DonnyDianderas/dcp-inventory-api/internal/application/report"
	"github.com/DonnyDianderas/dcp-inventory-api/internal/application/usecase"
	"github.com/DonnyDianderas/dcp-inventory-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	StockLedger *ledger.StockLedger
	StockReport *report.StockReportUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren sesión válida)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Log)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:product_id", productHandler.GetByProductID)
	products.Put("/:product_id", productHandler.Update)
	products.Delete("/:product_id", productHandler.Delete)
	products.Delete("/", productHandler.DeleteAll)

	// Movements + stock (protegido)
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.StockLedger, deps.Log)
	movements.Post("/", movementHandler.Create)
	movements.Get("/", movementHandler.List)
	// /stock antes que /:id para que no lo capture el parámetro
	movements.Get("/stock/:product_id", movementHandler.StockByProduct)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Put("/:id", movementHandler.Update)
	movements.Delete("/:id", movementHandler.Delete)
	movements.Delete("/", movementHandler.DeleteAll)

	// Reports (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.StockReport, deps.Log)
	reports.Get("/stock", reportHandler.Stock)
}
