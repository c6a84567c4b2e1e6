// Package receipt genera el comprobante PDF de un pedido.
package receipt

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/pkg/currency"
)

// UnknownClient nombre mostrado cuando el pedido referencia un cliente inexistente.
const UnknownClient = "Cliente desconocido"

// Data datos ya resueltos para dibujar el comprobante.
type Data struct {
	Order       entity.Order
	ClientName  string
	ClientPhone string
	AmountText  string // importe formateado con símbolo de moneda
	CreatedAt   time.Time
	IssuedAt    time.Time
}

// Generator puerto del renderizador PDF.
type Generator interface {
	GenerateOrderReceipt(ctx context.Context, data Data) ([]byte, error)
}

// Finder lecturas del Record Store que necesita el caso de uso.
type Finder interface {
	FindOrderByID(id string) (entity.Order, bool)
	FindClientByID(id string) (entity.Client, bool)
}

// UseCase arma y genera comprobantes de pedido.
type UseCase struct {
	store     Finder
	generator Generator
	money     currency.Formatter
	loc       *time.Location
	now       func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(store Finder, generator Generator, money currency.Formatter, loc *time.Location) *UseCase {
	if loc == nil {
		loc = time.Local
	}
	return &UseCase{store: store, generator: generator, money: money, loc: loc, now: time.Now}
}

// OrderReceiptPDF devuelve el PDF y el nombre de archivo sugerido.
//
// Retorna domain.ErrNotFound si el pedido no existe.
func (uc *UseCase) OrderReceiptPDF(ctx context.Context, orderID string) (pdfBytes []byte, filename string, err error) {
	order, ok := uc.store.FindOrderByID(orderID)
	if !ok {
		return nil, "", fmt.Errorf("pedido %q: %w", orderID, domain.ErrNotFound)
	}

	data := Data{
		Order:      order,
		ClientName: UnknownClient,
		AmountText: "—",
		CreatedAt:  order.CreatedTime(uc.loc),
		IssuedAt:   uc.now().In(uc.loc),
	}
	if c, ok := uc.store.FindClientByID(order.ClientID); ok {
		data.ClientName = c.Name
		data.ClientPhone = c.Phone
	}
	if order.Amount.Valid {
		data.AmountText = uc.money.Format(order.Amount.Value)
	}

	pdfBytes, err = uc.generator.GenerateOrderReceipt(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: generar pdf: %w", err)
	}
	return pdfBytes, fmt.Sprintf("pedido-%s.pdf", order.ID), nil
}
