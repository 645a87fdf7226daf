package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jcastro/stockflow-api/internal/application/auth"
	"github.com/jcastro/stockflow-api/internal/application/fulfillment"
	"github.com/jcastro/stockflow-api/internal/application/usecase"
	"github.com/jcastro/stockflow-api/pkg/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.UseCase
	FulfillmentUC  *fulfillment.UseCase
	StockUC        *usecase.StockUseCase
	CategoryUC     *usecase.CategoryUseCase
	ManufacturerUC *usecase.ManufacturerUseCase
	UnitUC         *usecase.UnitOfMeasureUseCase
	LocationUC     *usecase.LocationUseCase
	SupplierUC     *usecase.SupplierUseCase
	CustomerUC     *usecase.CustomerUseCase
	ProductUC      *usecase.ProductUseCase
	JWTCfg         config.JWTConfig
	SecureCookies  bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Infra (público)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.JWTCfg, deps.SecureCookies)
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)
	authGroup.Get("/verify-email", authHandler.VerifyEmail)

	// Rutas protegidas (Bearer o cookie accessToken)
	protected := api.Group("/", AuthMiddleware(deps.JWTCfg.AccessSecret))

	// Cuenta (protegido)
	protected.Get("/auth/me", authHandler.Me)
	protected.Patch("/auth/full-name", authHandler.ChangeFullName)
	protected.Patch("/auth/password", authHandler.ChangePassword)

	// Catálogo (protegido)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := protected.Group("/categories")
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	manufacturerHandler := NewManufacturerHandler(deps.ManufacturerUC)
	manufacturers := protected.Group("/manufacturers")
	manufacturers.Post("/", manufacturerHandler.Create)
	manufacturers.Get("/", manufacturerHandler.List)
	manufacturers.Get("/:id", manufacturerHandler.GetByID)
	manufacturers.Put("/:id", manufacturerHandler.Update)
	manufacturers.Delete("/:id", manufacturerHandler.Delete)

	unitHandler := NewUnitHandler(deps.UnitUC)
	units := protected.Group("/units")
	units.Post("/", unitHandler.Create)
	units.Get("/", unitHandler.List)
	units.Get("/:id", unitHandler.GetByID)
	units.Put("/:id", unitHandler.Update)
	units.Delete("/:id", unitHandler.Delete)

	locationHandler := NewLocationHandler(deps.LocationUC)
	locations := protected.Group("/locations")
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", locationHandler.Update)
	locations.Delete("/:id", locationHandler.Delete)

	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers := protected.Group("/suppliers")
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers := protected.Group("/customers")
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Productos y variantes (protegido)
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Put("/variants/:variantId", productHandler.UpdateVariant)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Stock (protegido)
	stockHandler := NewStockHandler(deps.FulfillmentUC, deps.StockUC)
	stock := protected.Group("/stock")
	stock.Post("/adjust", stockHandler.Adjust)
	stock.Get("/location/:locationId", stockHandler.GetByLocation)
	stock.Get("/movements", stockHandler.GetMovements)

	// Órdenes de compra (protegido)
	poHandler := NewPurchaseOrderHandler(deps.FulfillmentUC)
	purchaseOrders := protected.Group("/purchase-orders")
	purchaseOrders.Post("/", poHandler.Create)
	purchaseOrders.Get("/", poHandler.List)
	purchaseOrders.Get("/:id", poHandler.GetByID)
	purchaseOrders.Post("/:id/receive", poHandler.Receive)

	// Ventas (protegido)
	saleHandler := NewSaleHandler(deps.FulfillmentUC)
	sales := protected.Group("/sales")
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)

	// Devoluciones (protegido)
	returnHandler := NewReturnHandler(deps.FulfillmentUC)
	returns := protected.Group("/returns")
	returns.Post("/", returnHandler.Create)
	returns.Get("/", returnHandler.List)
}
