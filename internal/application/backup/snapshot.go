package backup

import (
	"encoding/json"
	"fmt"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

var (
	clientFields = []string{"id", "name", "createdAt"}
	orderFields  = []string{"id", "clientId", "details", "amount", "paymentMethod", "paymentStatus", "orderStage", "createdAt"}
)

type parsedSnapshot struct {
	Clients []entity.Client
	Orders  []entity.Order
}

func formatErr(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrInvalidFormat}, args...)...)
}

// parseSnapshot valida en orden: objeto raíz, arreglos clients/orders y
// campos requeridos de cada entrada. Además exige que los valores tengan los
// tipos del formato exportado y que los ids no estén vacíos; con uniqueIDs
// también rechaza ids repetidos dentro de un arreglo (merge ya los descarta).
func parseSnapshot(raw []byte, uniqueIDs bool) (*parsedSnapshot, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(raw, &root); err != nil || root == nil {
		return nil, formatErr("el respaldo no es un objeto JSON")
	}

	clientsRaw, err := requireArray(root, "clients")
	if err != nil {
		return nil, err
	}
	ordersRaw, err := requireArray(root, "orders")
	if err != nil {
		return nil, err
	}

	if err := requireFields(clientsRaw, "clients", clientFields); err != nil {
		return nil, err
	}
	if err := requireFields(ordersRaw, "orders", orderFields); err != nil {
		return nil, err
	}

	clients := make([]entity.Client, len(clientsRaw))
	for i, item := range clientsRaw {
		if err := json.Unmarshal(item, &clients[i]); err != nil {
			return nil, formatErr("clients[%d]: tipo de valor distinto al del formato exportado: %v", i, err)
		}
	}
	orders := make([]entity.Order, len(ordersRaw))
	for i, item := range ordersRaw {
		if err := json.Unmarshal(item, &orders[i]); err != nil {
			return nil, formatErr("orders[%d]: tipo de valor distinto al del formato exportado: %v", i, err)
		}
	}

	if err := checkIDs("clients", clients, uniqueIDs, func(c entity.Client) string { return c.ID }); err != nil {
		return nil, err
	}
	if err := checkIDs("orders", orders, uniqueIDs, func(o entity.Order) string { return o.ID }); err != nil {
		return nil, err
	}
	return &parsedSnapshot{Clients: clients, Orders: orders}, nil
}

func requireArray(root map[string]json.RawMessage, name string) ([]json.RawMessage, error) {
	v, ok := root[name]
	if !ok {
		return nil, formatErr("falta el arreglo %q", name)
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(v, &arr); err != nil || arr == nil {
		return nil, formatErr("%q no es un arreglo", name)
	}
	return arr, nil
}

func requireFields(items []json.RawMessage, name string, fields []string) error {
	for i, item := range items {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(item, &obj); err != nil || obj == nil {
			return formatErr("%s[%d] no es un objeto", name, i)
		}
		for _, f := range fields {
			if _, ok := obj[f]; !ok {
				return formatErr("%s[%d]: falta %q", name, i, f)
			}
		}
	}
	return nil
}

func checkIDs[T any](name string, items []T, unique bool, id func(T) string) error {
	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		k := id(it)
		if k == "" {
			return formatErr("%s[%d]: id vacío", name, i)
		}
		if _, dup := seen[k]; dup && unique {
			return formatErr("%s[%d]: id %q repetido; replace exige ids únicos en cada arreglo", name, i, k)
		}
		seen[k] = struct{}{}
	}
	return nil
}
