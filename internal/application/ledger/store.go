// Package ledger contiene el Record Store: la copia autoritativa en memoria de
// clientes y pedidos, con sus reglas de integridad.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	"github.com/jhoicas/Pedidos-api/pkg/idgen"
)

// Store mantiene ambas colecciones y persiste después de cada mutación.
//
// Las mutaciones se serializan con un RWMutex; la escritura en el repositorio
// ocurre dentro del lock para que lo persistido siempre corresponda a un
// estado completo. Un fallo de persistencia no revierte la mutación: la
// operación devuelve el registro aplicado junto con un error que envuelve
// domain.ErrStorageFull.
type Store struct {
	repo repository.SnapshotRepository
	ids  idgen.Generator
	now  func() time.Time

	mu      sync.RWMutex
	clients []entity.Client
	orders  []entity.Order
	// readErr bloquea las mutaciones mientras el estado persistido no se pudo leer.
	readErr error

	lmu       sync.Mutex
	listeners []func(Change)
}

// Option configura el Store.
type Option func(*Store)

// WithIDGenerator reemplaza el generador de ids (por defecto UUIDv7).
func WithIDGenerator(g idgen.Generator) Option {
	return func(s *Store) { s.ids = g }
}

// WithClock reemplaza el reloj usado para CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore construye un Store vacío. Llamar Load para leer el estado persistido.
func NewStore(repo repository.SnapshotRepository, opts ...Option) *Store {
	s := &Store{
		repo: repo,
		ids:  idgen.Default,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reemplaza el contenido en memoria con el estado persistido y notifica
// ChangeLoaded una sola vez. Un error que envuelve domain.ErrCorruptData es
// una advertencia: el Store queda utilizable con lo que se pudo leer.
//
// Si el repositorio no se pudo leer (domain.ErrStorageUnavailable) el contenido
// en memoria no cambia y toda mutación falla hasta que un Load posterior tenga
// éxito.
func (s *Store) Load(ctx context.Context) error {
	clients, orders, err := s.repo.Load(ctx)
	if err != nil && !errors.Is(err, domain.ErrCorruptData) {
		err = fmt.Errorf("ledger: cargar estado: %w", err)
		s.mu.Lock()
		s.readErr = err
		s.mu.Unlock()
		return err
	}
	s.mu.Lock()
	s.clients = slices.Clone(clients)
	s.orders = slices.Clone(orders)
	s.readErr = nil
	s.mu.Unlock()

	s.notify(Change{Kind: ChangeLoaded})
	return err
}

// ── Clientes ─────────────────────────────────────────────────────────────────

// AddClient crea un cliente con id nuevo y CreatedAt = ahora.
func (s *Store) AddClient(ctx context.Context, in dto.ClientInput) (entity.Client, error) {
	in = normalizeClient(in)
	if err := validateInput(in); err != nil {
		return entity.Client{}, err
	}

	s.mu.Lock()
	if err := s.writableLocked(); err != nil {
		s.mu.Unlock()
		return entity.Client{}, err
	}
	c := entity.Client{
		ID:        s.newID(s.clientIndex),
		Name:      in.Name,
		Phone:     in.Phone,
		CreatedAt: s.now().UnixMilli(),
	}
	s.clients = append(s.clients, c)
	err := s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify(Change{Kind: ChangeClients, ID: c.ID})
	return c, err
}

// UpdateClient reemplaza nombre y teléfono; conserva ID y CreatedAt.
func (s *Store) UpdateClient(ctx context.Context, id string, in dto.ClientInput) (entity.Client, error) {
	in = normalizeClient(in)

	s.mu.Lock()
	if err := s.writableLocked(); err != nil {
		s.mu.Unlock()
		return entity.Client{}, err
	}
	i := s.clientIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return entity.Client{}, fmt.Errorf("cliente %q: %w", id, domain.ErrNotFound)
	}
	if err := validateInput(in); err != nil {
		s.mu.Unlock()
		return entity.Client{}, err
	}
	c := s.clients[i]
	c.Name = in.Name
	c.Phone = in.Phone
	s.clients[i] = c
	err := s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify(Change{Kind: ChangeClients, ID: c.ID})
	return c, err
}

// DeleteClient elimina el cliente y, en cascada, todos sus pedidos.
// Devuelve cuántos pedidos se eliminaron.
func (s *Store) DeleteClient(ctx context.Context, id string) (int, error) {
	s.mu.Lock()
	if err := s.writableLocked(); err != nil {
		s.mu.Unlock()
		return 0, err
	}
	i := s.clientIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return 0, fmt.Errorf("cliente %q: %w", id, domain.ErrNotFound)
	}
	s.clients = slices.Delete(s.clients, i, i+1)
	before := len(s.orders)
	s.orders = slices.DeleteFunc(s.orders, func(o entity.Order) bool { return o.ClientID == id })
	removed := before - len(s.orders)
	err := s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify(Change{Kind: ChangeClients, ID: id})
	if removed > 0 {
		s.notify(Change{Kind: ChangeOrders})
	}
	return removed, err
}

// FindClientByID devuelve una copia del cliente.
func (s *Store) FindClientByID(id string) (entity.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.clientIndex(id); i >= 0 {
		return s.clients[i], true
	}
	return entity.Client{}, false
}

// ListClients devuelve una copia de la colección en orden de alta.
func (s *Store) ListClients() []entity.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneOrEmpty(s.clients)
}

// ── Pedidos ──────────────────────────────────────────────────────────────────

// AddOrder crea un pedido para un cliente existente.
func (s *Store) AddOrder(ctx context.Context, in dto.OrderInput) (entity.Order, error) {
	in = normalizeOrder(in)
	if err := validateInput(in); err != nil {
		return entity.Order{}, err
	}

	s.mu.Lock()
	if err := s.writableLocked(); err != nil {
		s.mu.Unlock()
		return entity.Order{}, err
	}
	if s.clientIndex(in.ClientID) < 0 {
		s.mu.Unlock()
		return entity.Order{}, fmt.Errorf("%w: el cliente %q no existe", domain.ErrInvalidInput, in.ClientID)
	}
	o := orderFromInput(in)
	o.ID = s.newID(s.orderIndex)
	o.CreatedAt = s.now().UnixMilli()
	s.orders = append(s.orders, o)
	err := s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify(Change{Kind: ChangeOrders, ID: o.ID})
	return o, err
}

// UpdateOrder reemplaza los campos editables; conserva ID y CreatedAt.
func (s *Store) UpdateOrder(ctx context.Context, id string, in dto.OrderInput) (entity.Order, error) {
	in = normalizeOrder(in)

	s.mu.Lock()
	if err := s.writableLocked(); err != nil {
		s.mu.Unlock()
		return entity.Order{}, err
	}
	i := s.orderIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return entity.Order{}, fmt.Errorf("pedido %q: %w", id, domain.ErrNotFound)
	}
	if err := validateInput(in); err != nil {
		s.mu.Unlock()
		return entity.Order{}, err
	}
	if s.clientIndex(in.ClientID) < 0 {
		s.mu.Unlock()
		return entity.Order{}, fmt.Errorf("%w: el cliente %q no existe", domain.ErrInvalidInput, in.ClientID)
	}
	o := orderFromInput(in)
	o.ID = s.orders[i].ID
	o.CreatedAt = s.orders[i].CreatedAt
	s.orders[i] = o
	err := s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify(Change{Kind: ChangeOrders, ID: o.ID})
	return o, err
}

// DeleteOrder elimina un pedido.
func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	s.mu.Lock()
	if err := s.writableLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	i := s.orderIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("pedido %q: %w", id, domain.ErrNotFound)
	}
	s.orders = slices.Delete(s.orders, i, i+1)
	err := s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify(Change{Kind: ChangeOrders, ID: id})
	return err
}

// FindOrderByID devuelve una copia del pedido.
func (s *Store) FindOrderByID(id string) (entity.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.orderIndex(id); i >= 0 {
		return s.orders[i], true
	}
	return entity.Order{}, false
}

// ListOrders devuelve una copia de la colección en orden de alta.
func (s *Store) ListOrders() []entity.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneOrEmpty(s.orders)
}

// OrdersByClient devuelve los pedidos de un cliente.
func (s *Store) OrdersByClient(clientID string) []entity.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Order, 0)
	for _, o := range s.orders {
		if o.ClientID == clientID {
			out = append(out, o)
		}
	}
	return out
}

// CountOrphanOrders cuenta pedidos cuyo clientId no corresponde a ningún cliente.
// Solo pueden aparecer tras una importación (no se revalida la integridad).
func (s *Store) CountOrphanOrders() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	known := make(map[string]struct{}, len(s.clients))
	for _, c := range s.clients {
		known[c.ID] = struct{}{}
	}
	n := 0
	for _, o := range s.orders {
		if _, ok := known[o.ClientID]; !ok {
			n++
		}
	}
	return n
}

// ── helpers ──────────────────────────────────────────────────────────────────

func orderFromInput(in dto.OrderInput) entity.Order {
	return entity.Order{
		ClientID:      in.ClientID,
		Details:       in.Details,
		Amount:        entity.NewAmount(*in.Amount),
		PaymentMethod: in.PaymentMethod,
		PaymentStatus: in.PaymentStatus,
		OrderStage:    in.OrderStage,
	}
}

func (s *Store) clientIndex(id string) int {
	return slices.IndexFunc(s.clients, func(c entity.Client) bool { return c.ID == id })
}

func (s *Store) orderIndex(id string) int {
	return slices.IndexFunc(s.orders, func(o entity.Order) bool { return o.ID == id })
}

// newID genera ids hasta obtener uno libre en la colección.
func (s *Store) newID(index func(string) int) string {
	for {
		id := s.ids.NewID()
		if id != "" && index(id) < 0 {
			return id
		}
	}
}

// writableLocked rechaza mutaciones tras un Load fallido. Requiere s.mu tomado.
func (s *Store) writableLocked() error {
	return s.readErr
}

// persistLocked escribe el estado actual. Requiere s.mu tomado.
func (s *Store) persistLocked(ctx context.Context) error {
	err := s.repo.Save(ctx, cloneOrEmpty(s.clients), cloneOrEmpty(s.orders))
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrStorageFull) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrStorageFull, err)
}

func cloneOrEmpty[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
