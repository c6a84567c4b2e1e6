package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/receipt"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	"github.com/jhoicas/Pedidos-api/pkg/currency"
)

// DashboardMarkdown resumen del dashboard como documento markdown.
func DashboardMarkdown(s *dto.DashboardSummaryDTO, money currency.Formatter) string {
	var b strings.Builder
	b.WriteString("# Dashboard\n\n")
	b.WriteString("| Indicador | Valor |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Cobrado | %s |\n", fmtAmount(s.TotalPaid, money))
	fmt.Fprintf(&b, "| Pendiente de cobro | %s |\n", fmtAmount(s.TotalUnpaid, money))
	fmt.Fprintf(&b, "| Ingreso de hoy | %s |\n", fmtAmount(s.TodayRevenue, money))
	fmt.Fprintf(&b, "| Pedidos | %d |\n", s.TotalOrders)

	b.WriteString("\n## Últimos 7 días\n\n")
	b.WriteString("| Día | Ingreso |\n|---|---:|\n")
	for _, d := range s.WeeklySeries {
		fmt.Fprintf(&b, "| %s | %s |\n", d.Label, fmtAmount(d.Revenue, money))
	}
	if s.SkippedOrders > 0 {
		fmt.Fprintf(&b, "\n> %d pedido(s) con importe inválido no se sumaron.\n", s.SkippedOrders)
	}
	return b.String()
}

// ClientsMarkdown tabla de clientes con su cantidad de pedidos.
func ClientsMarkdown(clients []entity.Client, orderCount map[string]int, loc *time.Location) string {
	var b strings.Builder
	b.WriteString("# Clientes\n\n")
	if len(clients) == 0 {
		b.WriteString("_Sin clientes._\n")
		return b.String()
	}
	b.WriteString("| Id | Nombre | Teléfono | Pedidos | Alta |\n|---|---|---|---:|---|\n")
	for _, c := range clients {
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %s |\n",
			c.ID, cell(c.Name), cell(c.Phone), orderCount[c.ID],
			time.UnixMilli(c.CreatedAt).In(loc).Format("2006-01-02"))
	}
	return b.String()
}

// OrdersMarkdown tabla de pedidos; clientNames resuelve el nombre de cada cliente.
func OrdersMarkdown(orders []entity.Order, clientNames map[string]string, money currency.Formatter, loc *time.Location) string {
	var b strings.Builder
	b.WriteString("# Pedidos\n\n")
	if len(orders) == 0 {
		b.WriteString("_Sin pedidos._\n")
		return b.String()
	}
	b.WriteString("| Id | Cliente | Detalle | Importe | Pago | Estado | Etapa | Fecha |\n|---|---|---|---:|---|---|---|---|\n")
	for _, o := range orders {
		name, ok := clientNames[o.ClientID]
		if !ok {
			name = receipt.UnknownClient
		}
		amount := "—"
		if o.Amount.Valid {
			amount = money.Format(o.Amount.Value)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			o.ID, cell(name), cell(o.Details), amount,
			o.PaymentMethod.Label(), o.PaymentStatus.Label(), o.OrderStage.Label(),
			o.CreatedTime(loc).Format("2006-01-02 15:04"))
	}
	return b.String()
}

// totalsDiff describe las diferencias entre el resumen en memoria y lo persistido.
func totalsDiff(s *dto.DashboardSummaryDTO, p repository.OrderTotals) []string {
	var out []string
	if got := p.Paid.StringFixed(2); got != s.TotalPaid {
		out = append(out, fmt.Sprintf("cobrado %s en memoria, %s persistido", s.TotalPaid, got))
	}
	if got := p.Unpaid.StringFixed(2); got != s.TotalUnpaid {
		out = append(out, fmt.Sprintf("pendiente %s en memoria, %s persistido", s.TotalUnpaid, got))
	}
	if p.Orders != s.TotalOrders {
		out = append(out, fmt.Sprintf("%d pedidos en memoria, %d persistidos", s.TotalOrders, p.Orders))
	}
	return out
}

func fmtAmount(s string, money currency.Formatter) string {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return money.Format(d)
}

// cell escapa el contenido de una celda de tabla markdown.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
