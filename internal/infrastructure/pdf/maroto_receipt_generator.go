// Package pdf implementa el comprobante de pedido en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Comprobante de pedido  │  N° Pedido + Fecha         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + teléfono                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DETALLE del pedido                                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL + medio de pago / estado / etapa                      │
//	│  FOOTER: QR con el id + fecha de emisión                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Pedidos-api/internal/application/receipt"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const dateLayout = "02/01/2006 15:04"

var _ receipt.Generator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa receipt.Generator usando Maroto v2.
type MarotoReceiptGenerator struct {
	business string
}

// NewMarotoReceiptGenerator construye el generador; business aparece como autor y encabezado.
func NewMarotoReceiptGenerator(business string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{business: business}
}

// GenerateOrderReceipt genera el PDF y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateOrderReceipt(_ context.Context, data receipt.Data) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de pedido", true).
		WithAuthor(nonEmpty(g.business, "Pedidos"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.business, data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(detailRows(data.Order.Details)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(data))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: negocio (izq) y N° pedido + fecha (der).
func headerRow(business string, data receipt.Data) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(business, "Pedidos"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("COMPROBANTE DE PEDIDO", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PEDIDO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(data.Order.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+data.CreatedAt.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// clientRow: nombre y teléfono del cliente.
func clientRow(data receipt.Data) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(data.ClientName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("Tel: "+nonEmpty(data.ClientPhone, "—"), props.Text{
				Size: 8, Top: 11, Color: colorGray,
			}),
		),
	)
}

// detailRows: una fila por línea del detalle.
func detailRows(details string) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("DETALLE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
	}
	for _, l := range strings.Split(details, "\n") {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(l, props.Text{Size: 9, Top: 0.5, Left: 2}),
		)))
	}
	return rows
}

// totalRow: importe destacado y estado del pedido.
func totalRow(data receipt.Data) core.Row {
	o := data.Order
	return row.New(20).Add(
		col.New(6).Add(
			text.New("Medio de pago: "+o.PaymentMethod.Label(), props.Text{Size: 9, Top: 1}),
			text.New("Estado de pago: "+o.PaymentStatus.Label(), props.Text{Size: 9, Top: 7}),
			text.New("Etapa: "+o.OrderStage.Label(), props.Text{Size: 9, Top: 13}),
		),
		col.New(3).Add(
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 1,
			}),
		),
		col.New(3).Add(
			text.New(data.AmountText, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 1,
			}),
		),
	)
}

// footerRow: QR con el id completo del pedido y fecha de emisión.
func footerRow(data receipt.Data) core.Row {
	return row.New(35).Add(
		col.New(3).Add(code.NewQr(data.Order.ID, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Id: "+data.Order.ID, props.Text{Size: 7, Top: 4, Left: 3, Color: colorGray}),
			text.New("Emitido: "+data.IssuedAt.Format(dateLayout), props.Text{Size: 7, Top: 10, Left: 3, Color: colorGray}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortID primeros 8 caracteres del id para el encabezado.
func shortID(id string) string {
	if len(id) <= 8 {
		return strings.ToUpper(id)
	}
	return strings.ToUpper(id[:8])
}
