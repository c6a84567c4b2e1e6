package dto

import "github.com/jhoicas/Pedidos-api/internal/domain/entity"

// SnapshotDTO archivo de respaldo (export/import).
type SnapshotDTO struct {
	Version    string          `json:"version"`
	ExportDate string          `json:"exportDate"` // ISO-8601 UTC
	Clients    []entity.Client `json:"clients"`
	Orders     []entity.Order  `json:"orders"`
}

// ImportResult resumen de una importación aplicada.
type ImportResult struct {
	Mode           string `json:"mode"`
	ClientsAdded   int    `json:"clients_added"`
	OrdersAdded    int    `json:"orders_added"`
	ClientsSkipped int    `json:"clients_skipped"` // ids ya existentes (solo merge)
	OrdersSkipped  int    `json:"orders_skipped"`
	OrphanOrders   int    `json:"orphan_orders"` // pedidos cuyo clientId no existe tras importar
	StorageWarning string `json:"storage_warning,omitempty"`
}
