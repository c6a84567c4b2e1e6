package entity

import (
	"bytes"

	"github.com/shopspring/decimal"
)

// AmountPlaces decimales con los que se guarda y serializa un importe.
const AmountPlaces = 2

// Amount importe monetario de un pedido, siempre redondeado a AmountPlaces.
//
// Valid=false cuando el valor persistido o importado no es numérico. Un importe
// inválido no impide leer la colección completa; se serializa como null y el
// dashboard lo excluye de las sumas.
type Amount struct {
	Value decimal.Decimal
	Valid bool
}

// NewAmount construye un importe válido redondeado a 2 decimales, de modo que
// 12.5 y 12.50 tienen la misma representación en memoria y en JSON.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Value: d.Round(AmountPlaces), Valid: true}
}

// MarshalJSON escribe el importe como número JSON con 2 decimales (12.50).
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return []byte(a.Value.StringFixed(AmountPlaces)), nil
}

// UnmarshalJSON acepta números y strings numéricos; cualquier otro valor deja el importe inválido.
func (a *Amount) UnmarshalJSON(b []byte) error {
	s := bytes.TrimSpace(b)
	s = bytes.Trim(s, `"`)
	if len(s) == 0 || string(s) == "null" {
		*a = Amount{}
		return nil
	}
	d, err := decimal.NewFromString(string(s))
	if err != nil {
		*a = Amount{}
		return nil
	}
	*a = NewAmount(d)
	return nil
}

// String representación con 2 decimales ("" si es inválido).
func (a Amount) String() string {
	if !a.Valid {
		return ""
	}
	return a.Value.StringFixed(AmountPlaces)
}
