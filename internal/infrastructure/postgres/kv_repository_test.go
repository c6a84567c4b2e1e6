package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rowQuerier responde QueryRow con valores fijos y registra los argumentos.
type rowQuerier struct {
	sql  string
	args []any
	vals []any
	err  error
}

func (q *rowQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (q *rowQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("no usado")
}

func (q *rowQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.sql, q.args = sql, args
	return fixedRow{vals: q.vals, err: q.err}
}

type fixedRow struct {
	vals []any
	err  error
}

func (r fixedRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *decimal.Decimal:
			*p = r.vals[i].(decimal.Decimal)
		case *int64:
			*p = r.vals[i].(int64)
		}
	}
	return nil
}

func TestKVRepository_OrderTotals(t *testing.T) {
	q := &rowQuerier{vals: []any{decimal.RequireFromString("80.50"), decimal.RequireFromString("30.00"), int64(3)}}
	r := &KVRepository{q: q, namespace: "tienda"}

	got, err := r.OrderTotals(context.Background(), "ordersDB")
	require.NoError(t, err)
	assert.Equal(t, []any{"tienda", "ordersDB"}, q.args)
	assert.Contains(t, q.sql, "jsonb_array_elements")
	assert.Equal(t, "80.50", got.Paid.StringFixed(2))
	assert.Equal(t, "30.00", got.Unpaid.StringFixed(2))
	assert.Equal(t, 3, got.Orders)

	q.err = errors.New("conexión cerrada")
	_, err = r.OrderTotals(context.Background(), "ordersDB")
	assert.ErrorIs(t, err, q.err)
}
