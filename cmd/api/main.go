package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jcastro/stockflow-api/internal/application/auth"
	"github.com/jcastro/stockflow-api/internal/application/fulfillment"
	"github.com/jcastro/stockflow-api/internal/application/usecase"
	"github.com/jcastro/stockflow-api/internal/infrastructure/mail"
	"github.com/jcastro/stockflow-api/internal/infrastructure/metrics"
	"github.com/jcastro/stockflow-api/internal/infrastructure/postgres"
	httpRouter "github.com/jcastro/stockflow-api/internal/interfaces/http"
	"github.com/jcastro/stockflow-api/pkg/config"
	"github.com/jcastro/stockflow-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.DB.Migrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	manufacturerRepo := postgres.NewManufacturerRepository(pool)
	unitRepo := postgres.NewUnitOfMeasureRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	stockRepo := postgres.NewStockLevelRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)
	poRepo := postgres.NewPurchaseOrderRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	returnRepo := postgres.NewReturnOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	mailer := mail.NewSMTPMailer(cfg.SMTP)
	authUC := auth.NewUseCase(userRepo, mailer, auth.JWTConfig{
		AccessSecret:      cfg.JWT.AccessSecret,
		RefreshSecret:     cfg.JWT.RefreshSecret,
		AccessExpMinutes:  cfg.JWT.AccessExpMinutes,
		RefreshExpMinutes: cfg.JWT.RefreshExpMinutes,
		Issuer:            cfg.JWT.Issuer,
	}, cfg.App.FrontendURL)

	fulfillmentUC := fulfillment.NewUseCase(
		txRunner, productRepo, locationRepo, supplierRepo,
		poRepo, saleRepo, returnRepo, metrics.New(),
	)

	deps := httpRouter.RouterDeps{
		AuthUC:         authUC,
		FulfillmentUC:  fulfillmentUC,
		StockUC:        usecase.NewStockUseCase(stockRepo, movRepo, locationRepo),
		CategoryUC:     usecase.NewCategoryUseCase(categoryRepo),
		ManufacturerUC: usecase.NewManufacturerUseCase(manufacturerRepo),
		UnitUC:         usecase.NewUnitOfMeasureUseCase(unitRepo),
		LocationUC:     usecase.NewLocationUseCase(locationRepo),
		SupplierUC:     usecase.NewSupplierUseCase(supplierRepo),
		CustomerUC:     usecase.NewCustomerUseCase(customerRepo),
		ProductUC:      usecase.NewProductUseCase(productRepo),
		JWTCfg:         cfg.JWT,
		SecureCookies:  cfg.App.Env != "development",
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "StockFlow API",
	}))

	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor HTTP")
	}
}
