package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Pedidos-api/internal/application/analytics"
	"github.com/jhoicas/Pedidos-api/internal/application/backup"
	"github.com/jhoicas/Pedidos-api/internal/application/ledger"
	"github.com/jhoicas/Pedidos-api/internal/application/receipt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Store       *ledger.Store
	DashboardUC *appanalytics.DashboardUseCase
	BackupUC    *backup.UseCase
	ReceiptUC   *receipt.UseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Clients
	clients := api.Group("/clients")
	clientHandler := NewClientHandler(deps.Store)
	clients.Get("/", clientHandler.List)
	clients.Post("/", clientHandler.Create)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)
	clients.Get("/:id/orders", clientHandler.Orders)

	// Orders
	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.Store, deps.ReceiptUC)
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", orderHandler.Update)
	orders.Delete("/:id", orderHandler.Delete)
	orders.Get("/:id/receipt", orderHandler.Receipt)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/summary", dashboardHandler.GetSummary)

	// Backup
	backupGroup := api.Group("/backup")
	backupHandler := NewBackupHandler(deps.BackupUC)
	backupGroup.Get("/export", backupHandler.Export)
	backupGroup.Post("/import", backupHandler.Import)
}
