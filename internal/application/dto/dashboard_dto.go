package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Todos los importes van como string con exactamente 2 decimales.
type DashboardSummaryDTO struct {
	TotalPaid    string `json:"total_paid"`    // pedidos pagados (histórico)
	TotalUnpaid  string `json:"total_unpaid"`  // pedidos con pago diferido
	TodayRevenue string `json:"today_revenue"` // pagados creados hoy (00:00 – 24:00 local)
	TotalOrders  int    `json:"total_orders"`

	// Últimos 7 días, del más antiguo al más reciente; el último es hoy.
	WeeklySeries []DailyRevenueDTO `json:"weekly_series"`

	SkippedOrders int    `json:"skipped_orders"` // pedidos con importe inválido, excluidos de las sumas
	GeneratedAt   string `json:"generated_at"`
}

// DailyRevenueDTO ingreso pagado de un día calendario.
type DailyRevenueDTO struct {
	Date    string `json:"date"`  // 2006-01-02
	Label   string `json:"label"` // "Hoy" o "16 oct"
	Revenue string `json:"revenue"`
}
