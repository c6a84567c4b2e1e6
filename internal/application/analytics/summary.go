// Package analytics contiene el Dashboard Aggregator: totales de cobro y la
// serie de ingresos de los últimos 7 días, calculados desde los pedidos.
package analytics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// WeekDays número de días de la serie semanal (incluye hoy).
const WeekDays = 7

const dayKeyLayout = "2006-01-02"

var monthAbbr = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"}

// Summarize calcula el resumen del dashboard. Los días del calendario se toman
// en now.Location(). Los pedidos con importe inválido no suman en ningún total.
func Summarize(orders []entity.Order, now time.Time) dto.DashboardSummaryDTO {
	loc := now.Location()
	todayStart := startOfDay(now)

	// ── Ventana semanal ──────────────────────────────────────────────────────
	// Claves por día calendario local, de hoy-6 a hoy.
	days := make([]time.Time, WeekDays)
	perDay := make(map[string]decimal.Decimal, WeekDays)
	for i := range WeekDays {
		d := time.Date(todayStart.Year(), todayStart.Month(), todayStart.Day()-(WeekDays-1-i), 0, 0, 0, 0, loc)
		days[i] = d
		perDay[d.Format(dayKeyLayout)] = decimal.Zero
	}

	totalPaid := decimal.Zero
	totalUnpaid := decimal.Zero
	todayRevenue := decimal.Zero
	skipped := 0
	todayKey := todayStart.Format(dayKeyLayout)

	for _, o := range orders {
		if !o.Amount.Valid {
			skipped++
			continue
		}
		switch o.PaymentStatus {
		case entity.PaymentStatusPaid:
			totalPaid = totalPaid.Add(o.Amount.Value)
			key := o.CreatedTime(loc).Format(dayKeyLayout)
			if sum, ok := perDay[key]; ok {
				perDay[key] = sum.Add(o.Amount.Value)
			}
			if key == todayKey {
				todayRevenue = todayRevenue.Add(o.Amount.Value)
			}
		case entity.PaymentStatusDeferred:
			totalUnpaid = totalUnpaid.Add(o.Amount.Value)
		}
	}

	series := make([]dto.DailyRevenueDTO, 0, WeekDays)
	for i, d := range days {
		key := d.Format(dayKeyLayout)
		series = append(series, dto.DailyRevenueDTO{
			Date:    key,
			Label:   dayLabel(d, i == WeekDays-1),
			Revenue: perDay[key].StringFixed(2),
		})
	}

	return dto.DashboardSummaryDTO{
		TotalPaid:     totalPaid.StringFixed(2),
		TotalUnpaid:   totalUnpaid.StringFixed(2),
		TodayRevenue:  todayRevenue.StringFixed(2),
		TotalOrders:   len(orders),
		WeeklySeries:  series,
		SkippedOrders: skipped,
		GeneratedAt:   now.Format(time.RFC3339),
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// dayLabel "Hoy" para el día actual; el resto como "16 oct".
func dayLabel(d time.Time, today bool) string {
	if today {
		return "Hoy"
	}
	return fmt.Sprintf("%d %s", d.Day(), monthAbbr[d.Month()-1])
}
