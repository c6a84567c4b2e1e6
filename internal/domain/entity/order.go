package entity

import "time"

// PaymentMethod medio de pago del pedido.
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodApp  PaymentMethod = "app"
)

// PaymentStatus estado de pago del pedido.
type PaymentStatus string

const (
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusDeferred PaymentStatus = "deferred" // pago diferido (fiado)
)

// OrderStage etapa de preparación/entrega del pedido.
type OrderStage string

const (
	OrderStagePending  OrderStage = "pending"
	OrderStageReady    OrderStage = "ready"
	OrderStageReceived OrderStage = "received"
)

// Order representa un pedido de un cliente.
type Order struct {
	ID            string        `json:"id"`
	ClientID      string        `json:"clientId"`
	Details       string        `json:"details"`
	Amount        Amount        `json:"amount"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	OrderStage    OrderStage    `json:"orderStage"`
	CreatedAt     int64         `json:"createdAt"`
}

// CreatedTime devuelve CreatedAt como time.Time en la zona indicada.
func (o Order) CreatedTime(loc *time.Location) time.Time {
	return time.UnixMilli(o.CreatedAt).In(loc)
}

// Label nombre para mostrar (recibo PDF, CLI).
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentMethodCash:
		return "Efectivo"
	case PaymentMethodApp:
		return "App"
	}
	return string(m)
}

// Label nombre para mostrar.
func (s PaymentStatus) Label() string {
	switch s {
	case PaymentStatusPaid:
		return "Pagado"
	case PaymentStatusDeferred:
		return "Diferido"
	}
	return string(s)
}

// Label nombre para mostrar.
func (s OrderStage) Label() string {
	switch s {
	case OrderStagePending:
		return "Pendiente"
	case OrderStageReady:
		return "Listo"
	case OrderStageReceived:
		return "Entregado"
	}
	return string(s)
}
