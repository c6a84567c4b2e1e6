// Package storage implementa el Persistence Gateway: las dos colecciones del
// Record Store guardadas como arreglos JSON en un almacenamiento clave-valor.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
)

// Nombres de las entradas durables.
const (
	ClientsKey = "clientsDB"
	OrdersKey  = "ordersDB"
)

// DefaultMaxBytes cuota por defecto de ambas entradas juntas (5 MiB).
const DefaultMaxBytes int64 = 5 << 20

var _ repository.SnapshotRepository = (*Gateway)(nil)

// Gateway lee y escribe el estado completo sobre un KeyValueStore.
type Gateway struct {
	kv       repository.KeyValueStore
	maxBytes int64
	log      *logger.Logger
}

// GatewayOption configura el Gateway.
type GatewayOption func(*Gateway)

// WithMaxBytes fija la cuota; 0 o negativo desactiva el límite.
func WithMaxBytes(n int64) GatewayOption {
	return func(g *Gateway) { g.maxBytes = n }
}

// WithLogger usa l para las advertencias de carga y escritura.
func WithLogger(l *logger.Logger) GatewayOption {
	return func(g *Gateway) { g.log = l }
}

// NewGateway construye el gateway sobre kv.
func NewGateway(kv repository.KeyValueStore, opts ...GatewayOption) *Gateway {
	g := &Gateway{kv: kv, maxBytes: DefaultMaxBytes, log: logger.Nop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Load lee ambas entradas. Una entrada ausente es una colección vacía; una
// que no se puede decodificar también, pero además se reporta con un error que
// envuelve domain.ErrCorruptData. Nunca devuelve colecciones nil.
//
// Si el medio falla al leer, devuelve un error que envuelve
// domain.ErrStorageUnavailable y colecciones vacías que no representan el
// estado persistido.
func (g *Gateway) Load(ctx context.Context) ([]entity.Client, []entity.Order, error) {
	rawClients, errClients := readEntry(ctx, g.kv, ClientsKey)
	rawOrders, errOrders := readEntry(ctx, g.kv, OrdersKey)
	if err := errors.Join(errClients, errOrders); err != nil {
		g.log.Error().Err(err).Msg("storage: no se pudo leer el estado persistido")
		return []entity.Client{}, []entity.Order{}, err
	}

	clients, errClients := decodeEntry[entity.Client](ClientsKey, rawClients)
	orders, errOrders := decodeEntry[entity.Order](OrdersKey, rawOrders)
	err := errors.Join(errClients, errOrders)
	if err != nil {
		g.log.Warn().Err(err).Msg("storage: estado persistido ilegible, se usa vacío")
	}
	return clients, orders, err
}

func readEntry(ctx context.Context, kv repository.KeyValueStore, key string) ([]byte, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: leer %s: %w", domain.ErrStorageUnavailable, key, err)
	}
	if !ok {
		return nil, nil
	}
	return raw, nil
}

func decodeEntry[T any](key string, raw []byte) ([]T, error) {
	if len(raw) == 0 {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return []T{}, fmt.Errorf("%w: %s: %v", domain.ErrCorruptData, key, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Save serializa y escribe ambas colecciones. Cualquier fallo (cuota propia,
// rechazo del medio) se devuelve envolviendo domain.ErrStorageFull.
func (g *Gateway) Save(ctx context.Context, clients []entity.Client, orders []entity.Order) error {
	if clients == nil {
		clients = []entity.Client{}
	}
	if orders == nil {
		orders = []entity.Order{}
	}
	cb, err := json.Marshal(clients)
	if err != nil {
		return fmt.Errorf("%w: serializar clientes: %v", domain.ErrStorageFull, err)
	}
	ob, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("%w: serializar pedidos: %v", domain.ErrStorageFull, err)
	}

	if size := int64(len(cb) + len(ob)); g.maxBytes > 0 && size > g.maxBytes {
		g.log.Warn().Int64("bytes", size).Int64("max_bytes", g.maxBytes).Msg("storage: cuota excedida")
		return fmt.Errorf("%w: %d bytes superan la cuota de %d", domain.ErrStorageFull, size, g.maxBytes)
	}

	if bw, ok := g.kv.(repository.BatchWriter); ok {
		err = bw.SetBatch(ctx, map[string][]byte{ClientsKey: cb, OrdersKey: ob})
	} else {
		err = g.kv.Set(ctx, ClientsKey, cb)
		if err == nil {
			err = g.kv.Set(ctx, OrdersKey, ob)
		}
	}
	if err != nil {
		g.log.Error().Err(err).Bool("quota", errors.Is(err, repository.ErrQuotaExceeded)).Msg("storage: escritura rechazada")
		return fmt.Errorf("%w: %v", domain.ErrStorageFull, err)
	}
	return nil
}

// PersistedTotals suma los pedidos tal como están persistidos, sin pasar por
// el Record Store. Si el medio sabe sumar (repository.TotalsReader) la suma se
// hace ahí; si no, se decodifica ordersDB.
func (g *Gateway) PersistedTotals(ctx context.Context) (repository.OrderTotals, error) {
	if tr, ok := g.kv.(repository.TotalsReader); ok {
		t, err := tr.OrderTotals(ctx, OrdersKey)
		if err != nil {
			return repository.OrderTotals{}, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
		}
		return t, nil
	}

	raw, err := readEntry(ctx, g.kv, OrdersKey)
	if err != nil {
		return repository.OrderTotals{}, err
	}
	orders, err := decodeEntry[entity.Order](OrdersKey, raw)
	if err != nil {
		return repository.OrderTotals{}, err
	}
	t := repository.OrderTotals{Orders: len(orders)}
	for _, o := range orders {
		if !o.Amount.Valid {
			continue
		}
		switch o.PaymentStatus {
		case entity.PaymentStatusPaid:
			t.Paid = t.Paid.Add(o.Amount.Value)
		case entity.PaymentStatusDeferred:
			t.Unpaid = t.Unpaid.Add(o.Amount.Value)
		}
	}
	return t, nil
}

// Reset elimina ambas entradas del namespace (ledgerctl reset).
func (g *Gateway) Reset(ctx context.Context) error {
	if err := g.kv.Remove(ctx, ClientsKey); err != nil {
		return err
	}
	return g.kv.Remove(ctx, OrdersKey)
}
