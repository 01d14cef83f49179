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
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/swaggo/swag"

	"github.com/jhoicas/kiosk-redistribution-api/docs"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/auth"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/inventory"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/ledger"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/redistribution"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/kiosk-redistribution-api/internal/infrastructure/pdf"
	"github.com/jhoicas/kiosk-redistribution-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/kiosk-redistribution-api/internal/interfaces/http"
	"github.com/jhoicas/kiosk-redistribution-api/pkg/config"
	"github.com/jhoicas/kiosk-redistribution-api/pkg/logger"
	"github.com/jhoicas/kiosk-redistribution-api/pkg/metrics"
)

// @title        Kiosk Redistribution API
// @version      1.0
// @description  Redistribución de inventario entre kioscos: catálogo, stock por kiosco, solicitudes y libro de transacciones.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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

	if cfg.DB.AutoMigrate {
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
		log.Info().Msg("esquema aplicado")
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	kioskRepo := postgres.NewKioskRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	invRepo := postgres.NewKioskInventoryRepository(pool)
	redisRepo := postgres.NewRedistributionRepository(pool)
	txRepo := postgres.NewTransactionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	m := metrics.New(cfg.App.Name)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	kioskUC := usecase.NewKioskUseCase(kioskRepo)
	inventoryUC := inventory.NewKioskInventoryUseCase(txRunner, invRepo, kioskRepo, productRepo, m, log)
	redistributionUC := redistribution.NewUseCase(
		txRunner, redisRepo, kioskRepo, productRepo, invRepo,
		redistribution.NewSettler(), m, log,
	)

	// PDF: reporte del libro de transacciones
	pdfGenerator := infrapdf.NewLedgerPDFGenerator()
	ledgerUC := ledger.NewUseCase(txRepo, companyRepo, kioskRepo, productRepo, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, kioskRepo, auth.JWTConfig{
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
	app.Use(requestid.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    docs.SwaggerInfo.Title,
	}))
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(doc)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:        companyUC,
		ProductUC:        productUC,
		KioskUC:          kioskUC,
		InventoryUC:      inventoryUC,
		RedistributionUC: redistributionUC,
		LedgerUC:         ledgerUC,
		AuthUC:           authUC,
		Metrics:          m,
		JWTSecret:        cfg.JWT.Secret,
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
