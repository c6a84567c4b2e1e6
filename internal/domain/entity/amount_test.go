package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

func TestAmount_JSON(t *testing.T) {
	b, err := json.Marshal(entity.NewAmount(decimal.RequireFromString("12.50")))
	require.NoError(t, err)
	assert.Equal(t, "12.50", string(b))

	b, err = json.Marshal(entity.Amount{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestAmount_IdaYVueltaIdentica(t *testing.T) {
	cases := []string{"12.5", "12.50", "0", "1234.567", "7"}
	for _, in := range cases {
		orig := entity.NewAmount(decimal.RequireFromString(in))
		b, err := json.Marshal(orig)
		require.NoError(t, err, in)

		var back entity.Amount
		require.NoError(t, json.Unmarshal(b, &back), in)
		assert.True(t, orig.Value.Equal(back.Value), in)
		assert.Equal(t, orig.Value.Exponent(), back.Value.Exponent(), in)

		again, err := json.Marshal(back)
		require.NoError(t, err, in)
		assert.Equal(t, string(b), string(again), in)
	}

	b, _ := json.Marshal(entity.NewAmount(decimal.RequireFromString("1234.567")))
	assert.Equal(t, "1234.57", string(b))
}

func TestAmount_UnmarshalTolerante(t *testing.T) {
	cases := map[string]struct {
		valid bool
		fixed string
	}{
		`50`:      {true, "50.00"},
		`"30.25"`: {true, "30.25"},
		`null`:    {false, ""},
		`"abc"`:   {false, ""},
		`""`:      {false, ""},
	}
	for in, want := range cases {
		var a entity.Amount
		require.NoError(t, json.Unmarshal([]byte(in), &a), in)
		assert.Equal(t, want.valid, a.Valid, in)
		assert.Equal(t, want.fixed, a.String(), in)
	}
}

func TestOrder_Labels(t *testing.T) {
	assert.Equal(t, "Efectivo", entity.PaymentMethodCash.Label())
	assert.Equal(t, "Diferido", entity.PaymentStatusDeferred.Label())
	assert.Equal(t, "Entregado", entity.OrderStageReceived.Label())
	assert.Equal(t, "otro", entity.OrderStage("otro").Label())
}
