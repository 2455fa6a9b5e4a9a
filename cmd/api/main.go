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
	"github.com/tu-usuario/suministros-api/internal/application/auth"
	"github.com/tu-usuario/suministros-api/internal/application/supply"
	"github.com/tu-usuario/suministros-api/internal/application/usecase"
	"github.com/tu-usuario/suministros-api/internal/infrastructure/postgres"
	infraredis "github.com/tu-usuario/suministros-api/internal/infrastructure/redis"
	httpRouter "github.com/tu-usuario/suministros-api/internal/interfaces/http"
	"github.com/tu-usuario/suministros-api/pkg/config"
	"github.com/tu-usuario/suministros-api/pkg/logger"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	sessions, err := infraredis.NewSessionStore(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer sessions.Close()

	organizerRepo := postgres.NewOrganizerRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	contractRepo := postgres.NewContractRepository(pool)
	supplierStockRepo := postgres.NewSupplierStockRepository(pool)
	companyStockRepo := postgres.NewCompanyStockRepository(pool)
	supplyRepo := postgres.NewSupplyRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	supplyUC := supply.NewUseCase(txRunner, contractRepo, supplyRepo, organizerRepo)
	productUC := usecase.NewProductUseCase(txRunner, productRepo)
	contractUC := usecase.NewContractUseCase(contractRepo, organizerRepo)
	stockUC := usecase.NewStockUseCase(supplierStockRepo, companyStockRepo)
	authUC := auth.NewAuthUseCase(userRepo, organizerRepo, sessions, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Suministros API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		SupplyUC:   supplyUC,
		ProductUC:  productUC,
		ContractUC: contractUC,
		StockUC:    stockUC,
		Sessions:   sessions,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
