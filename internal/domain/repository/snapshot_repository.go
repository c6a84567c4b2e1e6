package repository

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// SnapshotRepository define el puerto de persistencia del Record Store: lee y
// escribe ambas colecciones completas.
type SnapshotRepository interface {
	// Load nunca falla de forma fatal: ante entradas corruptas devuelve
	// colecciones vacías y un error que envuelve domain.ErrCorruptData.
	Load(ctx context.Context) ([]entity.Client, []entity.Order, error)
	// Save devuelve un error que envuelve domain.ErrStorageFull si el medio rechaza la escritura.
	Save(ctx context.Context, clients []entity.Client, orders []entity.Order) error
}
