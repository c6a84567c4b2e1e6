package ledger

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// MergeResult cuántos registros se agregaron y cuántos se descartaron por id repetido.
type MergeResult struct {
	ClientsAdded   int
	ClientsSkipped int
	OrdersAdded    int
	OrdersSkipped  int
}

// Replace descarta ambas colecciones y las reemplaza por las dadas (nil = vacía).
// No revalida la integridad referencial.
func (s *Store) Replace(ctx context.Context, clients []entity.Client, orders []entity.Order) error {
	s.mu.Lock()
	if err := s.writableLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.clients = cloneOrEmpty(clients)
	s.orders = cloneOrEmpty(orders)
	err := s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify(Change{Kind: ChangeImported})
	return err
}

// Merge agrega los registros cuyo id no existe todavía. Los existentes nunca se
// sobrescriben; los ids repetidos (contra el Store o dentro del mismo lote) se
// descartan en silencio.
func (s *Store) Merge(ctx context.Context, clients []entity.Client, orders []entity.Order) (MergeResult, error) {
	var res MergeResult

	s.mu.Lock()
	if err := s.writableLocked(); err != nil {
		s.mu.Unlock()
		return res, err
	}
	clientIDs := make(map[string]struct{}, len(s.clients)+len(clients))
	for _, c := range s.clients {
		clientIDs[c.ID] = struct{}{}
	}
	for _, c := range clients {
		if _, dup := clientIDs[c.ID]; dup {
			res.ClientsSkipped++
			continue
		}
		clientIDs[c.ID] = struct{}{}
		s.clients = append(s.clients, c)
		res.ClientsAdded++
	}

	orderIDs := make(map[string]struct{}, len(s.orders)+len(orders))
	for _, o := range s.orders {
		orderIDs[o.ID] = struct{}{}
	}
	for _, o := range orders {
		if _, dup := orderIDs[o.ID]; dup {
			res.OrdersSkipped++
			continue
		}
		orderIDs[o.ID] = struct{}{}
		s.orders = append(s.orders, o)
		res.OrdersAdded++
	}
	err := s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify(Change{Kind: ChangeImported})
	return res, err
}
