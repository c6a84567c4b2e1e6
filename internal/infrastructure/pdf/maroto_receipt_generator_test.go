package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/application/receipt"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/infrastructure/pdf"
)

func TestMarotoReceiptGenerator_GeneraPDF(t *testing.T) {
	now := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	data := receipt.Data{
		Order: entity.Order{
			ID: "0192a6c4-7f3e-7000-8000-000000000001", ClientID: "c1",
			Details:       "2 tortas\n1 pie de limón",
			Amount:        entity.NewAmount(decimal.RequireFromString("50")),
			PaymentMethod: entity.PaymentMethodCash,
			PaymentStatus: entity.PaymentStatusPaid,
			OrderStage:    entity.OrderStageReady,
		},
		ClientName: "Ana",
		AmountText: "$50.00",
		CreatedAt:  now,
		IssuedAt:   now,
	}

	b, err := pdf.NewMarotoReceiptGenerator("Pastelería").GenerateOrderReceipt(context.Background(), data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}
