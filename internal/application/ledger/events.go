package ledger

// ChangeKind tipo de cambio notificado a los suscriptores.
type ChangeKind string

const (
	ChangeLoaded   ChangeKind = "loaded"   // estado inicial leído del almacenamiento
	ChangeClients  ChangeKind = "clients"  // alta, edición o baja de cliente
	ChangeOrders   ChangeKind = "orders"   // alta, edición o baja de pedido
	ChangeImported ChangeKind = "imported" // reemplazo o merge desde un respaldo
)

// Change evento "datos cambiados". ID vacío cuando afecta a toda la colección.
type Change struct {
	Kind ChangeKind
	ID   string
}

// Subscribe registra fn para recibir cada cambio. fn se invoca fuera del lock
// del Store, de modo que puede leer el Store (por ejemplo, recalcular el dashboard).
func (s *Store) Subscribe(fn func(Change)) {
	s.lmu.Lock()
	defer s.lmu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify(c Change) {
	s.lmu.Lock()
	listeners := cloneOrEmpty(s.listeners)
	s.lmu.Unlock()
	for _, fn := range listeners {
		fn(c)
	}
}
