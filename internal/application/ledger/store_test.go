package ledger_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/ledger"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/infrastructure/kvstore"
	"github.com/jhoicas/Pedidos-api/internal/infrastructure/storage"
)

// seqIDs devuelve ids en secuencia; los primeros pueden repetirse a propósito.
type seqIDs struct {
	ids []string
	n   int
}

func (s *seqIDs) NewID() string {
	if s.n < len(s.ids) {
		id := s.ids[s.n]
		s.n++
		return id
	}
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

var fixedNow = time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

func newStore(t *testing.T, opts ...storage.GatewayOption) (*ledger.Store, *storage.Gateway) {
	t.Helper()
	gw := storage.NewGateway(kvstore.NewMemory(), opts...)
	s := ledger.NewStore(gw,
		ledger.WithIDGenerator(&seqIDs{}),
		ledger.WithClock(func() time.Time { return fixedNow }),
	)
	require.NoError(t, s.Load(context.Background()))
	return s, gw
}

func orderIn(clientID string, amount string) dto.OrderInput {
	d := decimal.RequireFromString(amount)
	return dto.OrderInput{
		ClientID:      clientID,
		Details:       "Pedido de prueba",
		Amount:        &d,
		PaymentMethod: entity.PaymentMethodCash,
		PaymentStatus: entity.PaymentStatusPaid,
		OrderStage:    entity.OrderStagePending,
	}
}

func TestStore_AddClient(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	c, err := s.AddClient(ctx, dto.ClientInput{Name: "  Ana  ", Phone: "555-1234"})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Ana", c.Name)
	assert.Equal(t, fixedNow.UnixMilli(), c.CreatedAt)

	got, ok := s.FindClientByID(c.ID)
	require.True(t, ok)
	assert.Equal(t, c, got)
	assert.Len(t, s.ListClients(), 1)
}

func TestStore_AddClient_NormalizaNFC(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	// "José" con la tilde como marca combinante (NFD).
	c, err := s.AddClient(ctx, dto.ClientInput{Name: "Jose\u0301"})
	require.NoError(t, err)
	assert.Equal(t, "Jos\u00e9", c.Name)
}

func TestStore_AddClient_NombreVacio(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.AddClient(context.Background(), dto.ClientInput{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, s.ListClients())
}

func TestStore_IdsRepetidosSeReintentan(t *testing.T) {
	ctx := context.Background()
	gw := storage.NewGateway(kvstore.NewMemory())
	s := ledger.NewStore(gw, ledger.WithIDGenerator(&seqIDs{ids: []string{"a", "a", "", "b"}}))

	c1, err := s.AddClient(ctx, dto.ClientInput{Name: "Uno"})
	require.NoError(t, err)
	c2, err := s.AddClient(ctx, dto.ClientInput{Name: "Dos"})
	require.NoError(t, err)
	assert.Equal(t, "a", c1.ID)
	assert.Equal(t, "b", c2.ID)
}

func TestStore_UpdateClient_ConservaIDyCreatedAt(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	c, _ := s.AddClient(ctx, dto.ClientInput{Name: "Ana"})

	u, err := s.UpdateClient(ctx, c.ID, dto.ClientInput{Name: "Ana María"})
	require.NoError(t, err)
	assert.Equal(t, c.ID, u.ID)
	assert.Equal(t, c.CreatedAt, u.CreatedAt)
	assert.Equal(t, "Ana María", u.Name)
	assert.Empty(t, u.Phone)
}

func TestStore_UpdateClient_Errores(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	_, err := s.UpdateClient(ctx, "nope", dto.ClientInput{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	c, _ := s.AddClient(ctx, dto.ClientInput{Name: "Ana"})
	_, err = s.UpdateClient(ctx, c.ID, dto.ClientInput{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	got, _ := s.FindClientByID(c.ID)
	assert.Equal(t, "Ana", got.Name)
}

func TestStore_DeleteClient_Cascada(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	ana, _ := s.AddClient(ctx, dto.ClientInput{Name: "Ana"})
	beto, _ := s.AddClient(ctx, dto.ClientInput{Name: "Beto"})
	for range 3 {
		_, err := s.AddOrder(ctx, orderIn(ana.ID, "10"))
		require.NoError(t, err)
	}
	keep, err := s.AddOrder(ctx, orderIn(beto.ID, "5"))
	require.NoError(t, err)

	removed, err := s.DeleteClient(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	orders := s.ListOrders()
	require.Len(t, orders, 1)
	assert.Equal(t, keep.ID, orders[0].ID)
	for _, o := range orders {
		assert.NotEqual(t, ana.ID, o.ClientID)
	}
	_, ok := s.FindClientByID(ana.ID)
	assert.False(t, ok)
}

func TestStore_DeleteClient_SinPedidos(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	c, _ := s.AddClient(ctx, dto.ClientInput{Name: "Ana"})
	removed, err := s.DeleteClient(ctx, c.ID)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestStore_DeleteAusente(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	_, err := s.DeleteClient(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, s.DeleteOrder(ctx, "nope"), domain.ErrNotFound)
}

func TestStore_AddOrder_Validacion(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	c, _ := s.AddClient(ctx, dto.ClientInput{Name: "Ana"})

	cases := map[string]func(in *dto.OrderInput){
		"cliente inexistente": func(in *dto.OrderInput) { in.ClientID = "nope" },
		"cliente vacío":       func(in *dto.OrderInput) { in.ClientID = "" },
		"detalle vacío":       func(in *dto.OrderInput) { in.Details = "  " },
		"importe negativo": func(in *dto.OrderInput) {
			neg := decimal.NewFromInt(-1)
			in.Amount = &neg
		},
		"importe ausente": func(in *dto.OrderInput) { in.Amount = nil },
		"método inválido":     func(in *dto.OrderInput) { in.PaymentMethod = "card" },
		"estado inválido":     func(in *dto.OrderInput) { in.PaymentStatus = "" },
		"etapa inválida":      func(in *dto.OrderInput) { in.OrderStage = "shipped" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := orderIn(c.ID, "10")
			mutate(&in)
			_, err := s.AddOrder(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Empty(t, s.ListOrders())
}

func TestStore_AddOrder_ImporteCero(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	c, _ := s.AddClient(ctx, dto.ClientInput{Name: "Ana"})
	o, err := s.AddOrder(ctx, orderIn(c.ID, "0"))
	require.NoError(t, err)
	assert.Equal(t, "0.00", o.Amount.String())
}

func TestStore_UpdateOrder(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	ana, _ := s.AddClient(ctx, dto.ClientInput{Name: "Ana"})
	beto, _ := s.AddClient(ctx, dto.ClientInput{Name: "Beto"})
	o, _ := s.AddOrder(ctx, orderIn(ana.ID, "10"))

	in := orderIn(beto.ID, "12.5")
	in.PaymentStatus = entity.PaymentStatusDeferred
	in.OrderStage = entity.OrderStageReceived
	u, err := s.UpdateOrder(ctx, o.ID, in)
	require.NoError(t, err)
	assert.Equal(t, o.ID, u.ID)
	assert.Equal(t, o.CreatedAt, u.CreatedAt)
	assert.Equal(t, beto.ID, u.ClientID)
	assert.Equal(t, "12.50", u.Amount.String())
	assert.Equal(t, entity.PaymentStatusDeferred, u.PaymentStatus)

	_, err = s.UpdateOrder(ctx, "nope", in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.UpdateOrder(ctx, o.ID, orderIn("nope", "1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_DeleteOrder(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	c, _ := s.AddClient(ctx, dto.ClientInput{Name: "Ana"})
	o, _ := s.AddOrder(ctx, orderIn(c.ID, "10"))

	require.NoError(t, s.DeleteOrder(ctx, o.ID))
	_, ok := s.FindOrderByID(o.ID)
	assert.False(t, ok)
}

func TestStore_OrdersByClient(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	ana, _ := s.AddClient(ctx, dto.ClientInput{Name: "Ana"})
	beto, _ := s.AddClient(ctx, dto.ClientInput{Name: "Beto"})
	_, _ = s.AddOrder(ctx, orderIn(ana.ID, "1"))
	_, _ = s.AddOrder(ctx, orderIn(beto.ID, "2"))
	_, _ = s.AddOrder(ctx, orderIn(ana.ID, "3"))

	assert.Len(t, s.OrdersByClient(ana.ID), 2)
	assert.NotNil(t, s.OrdersByClient("nope"))
	assert.Empty(t, s.OrdersByClient("nope"))
}

func TestStore_ListasSonCopias(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	c, _ := s.AddClient(ctx, dto.ClientInput{Name: "Ana"})

	list := s.ListClients()
	list[0].Name = "Otro"
	got, _ := s.FindClientByID(c.ID)
	assert.Equal(t, "Ana", got.Name)
	assert.NotNil(t, s.ListOrders())
}

func TestStore_PersisteCadaMutacion(t *testing.T) {
	ctx := context.Background()
	s, gw := newStore(t)
	c, _ := s.AddClient(ctx, dto.ClientInput{Name: "Ana"})
	_, _ = s.AddOrder(ctx, orderIn(c.ID, "10"))

	clients, orders, err := gw.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, clients, 1)
	assert.Len(t, orders, 1)

	reloaded := ledger.NewStore(gw)
	require.NoError(t, reloaded.Load(ctx))
	assert.Len(t, reloaded.ListOrders(), 1)
}

func TestStore_AlmacenamientoLlenoNoRevierte(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t, storage.WithMaxBytes(1))

	c, err := s.AddClient(ctx, dto.ClientInput{Name: "Ana"})
	assert.ErrorIs(t, err, domain.ErrStorageFull)
	assert.NotEmpty(t, c.ID)
	_, ok := s.FindClientByID(c.ID)
	assert.True(t, ok)
}

func TestStore_Subscribe(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	var got []ledger.Change
	s.Subscribe(func(c ledger.Change) {
		got = append(got, c)
		// los suscriptores pueden leer el Store sin bloquearse
		_ = s.ListOrders()
	})

	c, _ := s.AddClient(ctx, dto.ClientInput{Name: "Ana"})
	_, _ = s.AddOrder(ctx, orderIn(c.ID, "1"))
	_, _ = s.DeleteClient(ctx, c.ID)

	kinds := make([]ledger.ChangeKind, 0, len(got))
	for _, ch := range got {
		kinds = append(kinds, ch.Kind)
	}
	assert.Equal(t, []ledger.ChangeKind{
		ledger.ChangeClients, ledger.ChangeOrders, ledger.ChangeClients, ledger.ChangeOrders,
	}, kinds)
}

func TestStore_LoadNotificaUnaVez(t *testing.T) {
	gw := storage.NewGateway(kvstore.NewMemory())
	s := ledger.NewStore(gw)
	n := 0
	s.Subscribe(func(c ledger.Change) {
		if c.Kind == ledger.ChangeLoaded {
			n++
		}
	})
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, 1, n)
}

func TestStore_Replace(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	_, _ = s.AddClient(ctx, dto.ClientInput{Name: "Viejo"})

	err := s.Replace(ctx,
		[]entity.Client{{ID: "c1", Name: "Ana", CreatedAt: 1}},
		[]entity.Order{{ID: "o1", ClientID: "c1", Details: "x", CreatedAt: 2}, {ID: "o2", ClientID: "ghost", Details: "y", CreatedAt: 3}},
	)
	require.NoError(t, err)
	clients := s.ListClients()
	require.Len(t, clients, 1)
	assert.Equal(t, "c1", clients[0].ID)
	assert.Len(t, s.ListOrders(), 2)
	assert.Equal(t, 1, s.CountOrphanOrders())

	require.NoError(t, s.Replace(ctx, nil, nil))
	assert.Empty(t, s.ListClients())
	assert.NotNil(t, s.ListOrders())
}

func TestStore_Merge(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	require.NoError(t, s.Replace(ctx, []entity.Client{{ID: "c1", Name: "Ana", CreatedAt: 1}}, nil))

	res, err := s.Merge(ctx,
		[]entity.Client{{ID: "c1", Name: "Pisado", CreatedAt: 9}, {ID: "c2", Name: "Beto", CreatedAt: 2}, {ID: "c2", Name: "Dup", CreatedAt: 3}},
		[]entity.Order{{ID: "o1", ClientID: "c2", Details: "x", CreatedAt: 4}},
	)
	require.NoError(t, err)
	assert.Equal(t, ledger.MergeResult{ClientsAdded: 1, ClientsSkipped: 2, OrdersAdded: 1}, res)

	c1, _ := s.FindClientByID("c1")
	assert.Equal(t, "Ana", c1.Name)
	c2, _ := s.FindClientByID("c2")
	assert.Equal(t, "Beto", c2.Name)
	assert.Len(t, s.ListClients(), 2)
}

// flakyKV falla las lecturas mientras readErr no sea nil.
type flakyKV struct {
	*kvstore.Memory
	readErr error
}

func (f *flakyKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if f.readErr != nil {
		return nil, false, f.readErr
	}
	return f.Memory.Get(ctx, key)
}

func TestStore_LoadIlegibleNoPisaLoPersistido(t *testing.T) {
	ctx := context.Background()
	kv := &flakyKV{Memory: kvstore.NewMemory()}
	gw := storage.NewGateway(kv)
	require.NoError(t, gw.Save(ctx, []entity.Client{
		{ID: "c1", Name: "Ana", CreatedAt: 1},
		{ID: "c2", Name: "Beto", CreatedAt: 2},
	}, nil))

	kv.readErr = errors.New("connection reset")
	s := ledger.NewStore(gw, ledger.WithIDGenerator(&seqIDs{}))
	err := s.Load(ctx)
	require.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.NotErrorIs(t, err, domain.ErrCorruptData)

	// El medio se recupera, pero el Store sigue sin el estado real.
	kv.readErr = nil
	_, err = s.AddClient(ctx, dto.ClientInput{Name: "Nuevo"})
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	_, err = s.Merge(ctx, []entity.Client{{ID: "c3", Name: "Carla"}}, nil)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.ErrorIs(t, s.Replace(ctx, nil, nil), domain.ErrStorageUnavailable)

	persisted, _, err := gw.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, persisted, 2)

	require.NoError(t, s.Load(ctx))
	_, err = s.AddClient(ctx, dto.ClientInput{Name: "Nuevo"})
	require.NoError(t, err)
	persisted, _, err = gw.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, persisted, 3)
}
