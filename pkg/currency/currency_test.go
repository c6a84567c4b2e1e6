package currency_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Pedidos-api/pkg/currency"
)

func TestFormat_USD(t *testing.T) {
	f := currency.NewFormatter("USD")
	assert.Equal(t, "$50.00", f.Format(decimal.NewFromInt(50)))
	assert.Equal(t, "$12.35", f.Format(decimal.RequireFromString("12.345")))
	assert.Equal(t, "$1,234.50", f.Format(decimal.RequireFromString("1234.5")))
}

func TestNewFormatter_CodigoDesconocidoUsaUSD(t *testing.T) {
	assert.Equal(t, "USD", currency.NewFormatter("XXX_NOPE").Code())
	assert.Equal(t, "USD", currency.NewFormatter("").Code())
}
