package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/auth"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/inventory"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/ledger"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/redistribution"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/usecase"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/entity"
	"github.com/jhoicas/kiosk-redistribution-api/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC        *usecase.CompanyUseCase
	ProductUC        *usecase.ProductUseCase
	KioskUC          *usecase.KioskUseCase
	InventoryUC      *inventory.KioskInventoryUseCase
	RedistributionUC *redistribution.UseCase
	LedgerUC         *ledger.UseCase
	AuthUC           *auth.AuthUseCase
	Metrics          *metrics.Metrics // opcional
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Use(MetricsMiddleware(deps.Metrics))
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api")
	adminOnly := RequireRole(entity.RoleAdmin)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleKioskUser)

	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Alta de empresa (público): bootstrap del tenant y su primer admin.
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.AuthUC)
	api.Post("/companies", companyHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Post("/auth/register", adminOnly, authHandler.Register)
	protected.Get("/companies/me", anyRole, companyHandler.Me)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/", anyRole, productHandler.List)
	products.Get("/:id", anyRole, productHandler.GetByID)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Put("/:id/eligibility", adminOnly, productHandler.SetEligibility)
	products.Get("/:id/analysis", adminOnly, productHandler.Analysis)

	// Kiosks + inventario por kiosco
	kiosks := protected.Group("/kiosks")
	kioskHandler := NewKioskHandler(deps.KioskUC)
	kiosks.Post("/", adminOnly, kioskHandler.Create)
	kiosks.Get("/", adminOnly, kioskHandler.List)
	kiosks.Get("/:id", anyRole, RequireKioskScope("id"), kioskHandler.GetByID)
	kiosks.Put("/:id", adminOnly, kioskHandler.Update)
	kiosks.Post("/:id/activate", adminOnly, kioskHandler.Activate)
	kiosks.Post("/:id/deactivate", adminOnly, kioskHandler.Deactivate)

	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inv := kiosks.Group("/:id/inventory", anyRole, RequireKioskScope("id"))
	inv.Get("/", inventoryHandler.List)
	inv.Get("/surplus", inventoryHandler.Surplus)
	inv.Put("/:productId", inventoryHandler.SetQuantity)
	inv.Put("/:productId/settings", inventoryHandler.UpdateSettings)

	// Redistributions
	reds := protected.Group("/redistributions")
	redHandler := NewRedistributionHandler(deps.RedistributionUC)
	reds.Get("/stats", adminOnly, redHandler.Stats)
	reds.Post("/surplus", anyRole, redHandler.SubmitSurplus)
	reds.Post("/", anyRole, redHandler.Create)
	reds.Get("/", anyRole, redHandler.List)
	reds.Get("/:id", anyRole, redHandler.GetByID)
	reds.Post("/:id/approve", adminOnly, redHandler.Approve)
	reds.Post("/:id/reject", adminOnly, redHandler.Reject)

	// Ledger
	txs := protected.Group("/transactions", anyRole)
	txHandler := NewTransactionHandler(deps.LedgerUC)
	txs.Get("/", txHandler.List)
	txs.Get("/report.pdf", txHandler.ExportPDF)
	txs.Get("/:txId", txHandler.GetByTxID)
}
