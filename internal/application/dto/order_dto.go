package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// OrderInput datos editables de un pedido (alta y edición).
type OrderInput struct {
	ClientID      string               `json:"clientId" validate:"required"`
	Details       string               `json:"details" validate:"required"`
	Amount        *decimal.Decimal     `json:"amount" validate:"required,gte=0"` // nil = ausente
	PaymentMethod entity.PaymentMethod `json:"paymentMethod" validate:"required,oneof=cash app"`
	PaymentStatus entity.PaymentStatus `json:"paymentStatus" validate:"required,oneof=paid deferred"`
	OrderStage    entity.OrderStage    `json:"orderStage" validate:"required,oneof=pending ready received"`
}
