package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Pedidos-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve totales cobrados/pendientes, ingreso de hoy y la serie de 7 días.
// GET /api/dashboard/summary
//
// No requiere parámetros; las fechas se calculan en el servidor con LEDGER_TIMEZONE.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
