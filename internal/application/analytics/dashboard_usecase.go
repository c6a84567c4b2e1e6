package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// OrderLister fuente de pedidos del dashboard (el Record Store).
type OrderLister interface {
	ListOrders() []entity.Order
}

// DashboardUseCase genera el resumen del dashboard desde el estado actual.
type DashboardUseCase struct {
	orders OrderLister
	loc    *time.Location
	now    func() time.Time
}

// NewDashboardUseCase construye el caso de uso. loc nil = hora local del proceso.
func NewDashboardUseCase(orders OrderLister, loc *time.Location) *DashboardUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardUseCase{orders: orders, loc: loc, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary construye el DashboardSummaryDTO con "ahora" en la zona configurada.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	summary := Summarize(uc.orders.ListOrders(), uc.now().In(uc.loc))
	return &summary, nil
}

// LoadLocation resuelve LEDGER_TIMEZONE; "" y "Local" devuelven time.Local.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}
