package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/suministros-api/internal/application/auth"
	"github.com/tu-usuario/suministros-api/internal/application/supply"
	"github.com/tu-usuario/suministros-api/internal/application/usecase"
	"github.com/tu-usuario/suministros-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	SupplyUC   *supply.UseCase
	ProductUC  *usecase.ProductUseCase
	ContractUC *usecase.ContractUseCase
	StockUC    *usecase.StockUseCase
	Sessions   auth.SessionStore
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (registro y login públicos; logout requiere sesión)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token con sesión viva)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Sessions))
	requireCompany := RequireRole(entity.RoleCompany)
	requireSupplier := RequireRole(entity.RoleSupplier)

	protected.Post("/auth/logout", authHandler.Logout)

	// Supplies (protegido)
	supplies := protected.Group("/supplies")
	supplyHandler := NewSupplyHandler(deps.SupplyUC)
	supplies.Post("/", requireCompany, supplyHandler.Create)
	supplies.Get("/", supplyHandler.List)
	supplies.Patch("/:id", requireSupplier, supplyHandler.Decide)
	supplies.Patch("/:id/status", requireSupplier, supplyHandler.UpdateStatus)
	supplies.Delete("/:id", supplyHandler.Delete)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", requireSupplier, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", requireSupplier, productHandler.Update)
	products.Delete("/:id", requireSupplier, productHandler.Delete)

	// Contracts (protegido)
	contracts := protected.Group("/contracts")
	contractHandler := NewContractHandler(deps.ContractUC)
	contracts.Post("/", requireCompany, contractHandler.Create)
	contracts.Get("/", contractHandler.List)
	contracts.Delete("/:id", contractHandler.Delete)

	// Stock (protegido)
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stock.Get("/supplier", requireSupplier, stockHandler.ListSupplier)
	stock.Get("/company", requireCompany, stockHandler.ListCompany)
	stock.Patch("/supplier/:product_id", requireSupplier, stockHandler.UpdateQuantity)
}
