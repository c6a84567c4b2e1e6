package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrQuotaExceeded lo devuelven los adaptadores cuando el medio rechaza una
// escritura por capacidad (cuota, tamaño máximo de ítem, disco lleno).
var ErrQuotaExceeded = errors.New("cuota de almacenamiento excedida")

// KeyValueStore define el puerto del almacenamiento durable: bytes por nombre,
// con alcance limitado a la instancia de la aplicación.
//
//go:generate mockgen -source=kv_store.go -destination=mocks/mock_kv_store.go -package=mocks
type KeyValueStore interface {
	// Get devuelve (nil, false, nil) si la clave no existe.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// BatchWriter lo implementan los stores capaces de escribir varias claves de forma atómica.
type BatchWriter interface {
	SetBatch(ctx context.Context, entries map[string][]byte) error
}

// OrderTotals sumas de una entrada de pedidos. Los importes inválidos no suman
// pero sí cuentan en Orders.
type OrderTotals struct {
	Paid   decimal.Decimal
	Unpaid decimal.Decimal
	Orders int
}

// TotalsReader lo implementan los stores que pueden sumar una entrada de
// pedidos sin devolverla (ej. PostgreSQL con jsonb).
type TotalsReader interface {
	OrderTotals(ctx context.Context, key string) (OrderTotals, error)
}
