// Package currency formatea importes para mostrar (recibos, CLI).
package currency

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Formatter formatea importes decimales en una moneda ISO 4217.
type Formatter struct {
	code string
}

// NewFormatter construye el formateador. Un código vacío o desconocido usa USD.
func NewFormatter(code string) Formatter {
	if code == "" || money.GetCurrency(code) == nil {
		code = money.USD
	}
	return Formatter{code: code}
}

// Code código ISO de la moneda.
func (f Formatter) Code() string { return f.code }

// Format devuelve el importe con símbolo y decimales de la moneda, ej: "$50.00".
func (f Formatter) Format(d decimal.Decimal) string {
	cur := money.GetCurrency(f.code)
	minor := d.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, f.code).Display()
}
