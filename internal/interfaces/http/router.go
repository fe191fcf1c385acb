package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/easyrewardph/bayani/internal/application/auth"
	"github.com/easyrewardph/bayani/internal/application/scanning"
	"github.com/easyrewardph/bayani/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SnapshotUC   *scanning.SnapshotUseCase
	ScanUC       *scanning.ScanUseCase
	BatchUC      *scanning.BatchUseCase
	ComplianceUC *scanning.ComplianceUseCase
	ExpiryUC     *scanning.ExpiryUseCase
	HistoryUC    *scanning.HistoryUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público; el alta de terminales exige supervisor)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/devices",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(entity.DeviceRoleSupervisor),
		authHandler.RegisterDevice,
	)

	// Rutas protegidas (requieren Bearer Token de terminal)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	scanHandler := NewScanHandler(deps.SnapshotUC, deps.ScanUC, deps.BatchUC, deps.ComplianceUC, deps.ExpiryUC, deps.HistoryUC)

	// Transferencias (protegido)
	transfers := protected.Group("/transfers")
	transfers.Get("/:id/snapshot", scanHandler.GetSnapshot)
	transfers.Post("/:id/scan", scanHandler.ScanProduct)
	transfers.Post("/:id/batch", scanHandler.ProcessBatch)
	transfers.Get("/:id/audit", scanHandler.GetAuditTrail)

	// El cierre lo decide un supervisor
	transfers.Post("/:id/finalize", RequireRole(entity.DeviceRoleSupervisor), scanHandler.FinalizeTransfer)

	// Productos (protegido)
	products := protected.Group("/products")
	products.Get("/:id/nearest-expiry", scanHandler.GetNearestExpiryLot)
}
