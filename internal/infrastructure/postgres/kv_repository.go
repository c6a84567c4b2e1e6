package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var (
	_ repository.KeyValueStore = (*KVRepository)(nil)
	_ repository.BatchWriter   = (*KVRepository)(nil)
	_ repository.TotalsReader  = (*KVRepository)(nil)
)

const schemaKV = `
	CREATE TABLE IF NOT EXISTS kv_entries (
		namespace  TEXT        NOT NULL,
		key        TEXT        NOT NULL,
		value      BYTEA       NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (namespace, key)
	)`

const upsertKV = `
	INSERT INTO kv_entries (namespace, key, value, updated_at)
	VALUES ($1, $2, $3, now())
	ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

// orderTotalsKV suma en el servidor los importes de una entrada de pedidos
// (arreglo JSON). Los importes que no son número JSON no suman.
const orderTotalsKV = `
	SELECT
		COALESCE(SUM(CASE WHEN jsonb_typeof(o->'amount') = 'number' AND o->>'paymentStatus' = 'paid'
			THEN (o->>'amount')::numeric END), 0)::numeric(20,2),
		COALESCE(SUM(CASE WHEN jsonb_typeof(o->'amount') = 'number' AND o->>'paymentStatus' = 'deferred'
			THEN (o->>'amount')::numeric END), 0)::numeric(20,2),
		COUNT(o)
	FROM kv_entries e
	CROSS JOIN LATERAL jsonb_array_elements(convert_from(e.value, 'UTF8')::jsonb) AS o
	WHERE e.namespace = $1 AND e.key = $2`

// KVRepository almacenamiento clave-valor sobre la tabla kv_entries, aislado por namespace.
type KVRepository struct {
	q         Querier
	tx        *TxRunner
	namespace string
}

// NewKVRepository construye el adaptador sobre el pool.
func NewKVRepository(pool *pgxpool.Pool, namespace string) *KVRepository {
	return &KVRepository{q: pool, tx: NewTxRunner(pool), namespace: namespace}
}

// EnsureSchema crea la tabla si no existe.
func (r *KVRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, schemaKV); err != nil {
		return fmt.Errorf("crear kv_entries: %w", err)
	}
	return nil
}

// Get obtiene el valor de una clave del namespace.
func (r *KVRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := r.q.QueryRow(ctx,
		`SELECT value FROM kv_entries WHERE namespace = $1 AND key = $2`,
		r.namespace, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get kv %q: %w", key, err)
	}
	return value, true, nil
}

// Set inserta o reemplaza el valor.
func (r *KVRepository) Set(ctx context.Context, key string, value []byte) error {
	return wrapWrite(key, setWith(ctx, r.q, r.namespace, key, value))
}

// Remove elimina la clave; no falla si no existe.
func (r *KVRepository) Remove(ctx context.Context, key string) error {
	if _, err := r.q.Exec(ctx,
		`DELETE FROM kv_entries WHERE namespace = $1 AND key = $2`,
		r.namespace, key,
	); err != nil {
		return fmt.Errorf("delete kv %q: %w", key, err)
	}
	return nil
}

// SetBatch escribe todas las entradas en una sola transacción.
func (r *KVRepository) SetBatch(ctx context.Context, entries map[string][]byte) error {
	return r.tx.Run(ctx, func(q Querier) error {
		for key, value := range entries {
			if err := wrapWrite(key, setWith(ctx, q, r.namespace, key, value)); err != nil {
				return err
			}
		}
		return nil
	})
}

// OrderTotals suma la entrada key en PostgreSQL. Los NUMERIC se leen como
// decimal.Decimal con el codec registrado en NewPool.
func (r *KVRepository) OrderTotals(ctx context.Context, key string) (repository.OrderTotals, error) {
	var t repository.OrderTotals
	var n int64
	if err := r.q.QueryRow(ctx, orderTotalsKV, r.namespace, key).Scan(&t.Paid, &t.Unpaid, &n); err != nil {
		return repository.OrderTotals{}, fmt.Errorf("totales kv %q: %w", key, err)
	}
	t.Orders = int(n)
	return t, nil
}

func setWith(ctx context.Context, q Querier, namespace, key string, value []byte) error {
	_, err := q.Exec(ctx, upsertKV, namespace, key, value)
	return err
}

func wrapWrite(key string, err error) error {
	if err == nil {
		return nil
	}
	if isCapacityError(err) {
		return fmt.Errorf("upsert kv %q: %w: %v", key, repository.ErrQuotaExceeded, err)
	}
	return fmt.Errorf("upsert kv %q: %w", key, err)
}
