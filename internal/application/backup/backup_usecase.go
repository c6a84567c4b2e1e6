// Package backup implementa el Import/Export Engine: respaldo completo del
// Record Store en un archivo JSON portable y su restauración.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/ledger"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
)

// FormatVersion versión del formato de respaldo.
const FormatVersion = "1.0"

// exportDateLayout ISO-8601 en UTC con milisegundos (2026-10-16T15:04:05.000Z).
const exportDateLayout = "2006-01-02T15:04:05.000Z07:00"

// DefaultMaxImportBytes tamaño máximo aceptado de un archivo de respaldo.
const DefaultMaxImportBytes int64 = 10 << 20

// Mode estrategia de importación.
type Mode string

const (
	ModeReplace Mode = "replace" // descarta el estado actual
	ModeMerge   Mode = "merge"   // agrega solo ids nuevos
)

// ParseMode interpreta el modo; "" equivale a merge.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeReplace:
		return ModeReplace, nil
	case ModeMerge, "":
		return ModeMerge, nil
	}
	return "", fmt.Errorf("%w: modo de importación %q (replace|merge)", domain.ErrInvalidInput, s)
}

// Store operaciones del Record Store que usa el motor.
type Store interface {
	ListClients() []entity.Client
	ListOrders() []entity.Order
	Replace(ctx context.Context, clients []entity.Client, orders []entity.Order) error
	Merge(ctx context.Context, clients []entity.Client, orders []entity.Order) (ledger.MergeResult, error)
	CountOrphanOrders() int
}

// UseCase exporta e importa respaldos.
type UseCase struct {
	store    Store
	log      *logger.Logger
	now      func() time.Time
	maxBytes int64

	importing atomic.Bool
}

// NewUseCase construye el motor. maxBytes <= 0 usa DefaultMaxImportBytes.
func NewUseCase(store Store, log *logger.Logger, maxBytes int64) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImportBytes
	}
	return &UseCase{store: store, log: log, now: time.Now, maxBytes: maxBytes}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// ── Export ───────────────────────────────────────────────────────────────────

// Export arma el snapshot del estado actual.
func (uc *UseCase) Export(_ context.Context) dto.SnapshotDTO {
	return dto.SnapshotDTO{
		Version:    FormatVersion,
		ExportDate: uc.now().UTC().Format(exportDateLayout),
		Clients:    uc.store.ListClients(),
		Orders:     uc.store.ListOrders(),
	}
}

// WriteExport escribe el snapshot indentado con 2 espacios.
func (uc *UseCase) WriteExport(ctx context.Context, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(uc.Export(ctx)); err != nil {
		return fmt.Errorf("backup: escribir respaldo: %w", err)
	}
	return nil
}

// ExportFilename nombre sugerido del archivo: client-order-backup-<ms>.json.
func (uc *UseCase) ExportFilename() string {
	return fmt.Sprintf("client-order-backup-%d.json", uc.now().UnixMilli())
}

// ── Import ───────────────────────────────────────────────────────────────────

// Import valida r y lo aplica en el modo indicado. Cualquier problema de
// formato devuelve un error que envuelve domain.ErrInvalidFormat y deja el
// Store intacto. Solo se admite una importación a la vez.
//
// Si la persistencia falla tras aplicar, el resultado se devuelve igual junto
// con el error (envuelve domain.ErrStorageFull).
func (uc *UseCase) Import(ctx context.Context, r io.Reader, mode Mode) (*dto.ImportResult, error) {
	if !uc.importing.CompareAndSwap(false, true) {
		return nil, domain.ErrImportInProgress
	}
	defer uc.importing.Store(false)

	if mode != ModeReplace && mode != ModeMerge {
		return nil, fmt.Errorf("%w: modo de importación %q", domain.ErrInvalidInput, mode)
	}

	raw, err := io.ReadAll(io.LimitReader(r, uc.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("backup: leer archivo: %w", err)
	}
	if int64(len(raw)) > uc.maxBytes {
		return nil, fmt.Errorf("%w: el archivo supera %d bytes", domain.ErrInvalidFormat, uc.maxBytes)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap, err := parseSnapshot(raw, mode == ModeReplace)
	if err != nil {
		uc.log.Warn().Err(err).Str("mode", string(mode)).Msg("backup: importación rechazada")
		return nil, err
	}

	res := &dto.ImportResult{Mode: string(mode)}
	var applyErr error
	switch mode {
	case ModeReplace:
		applyErr = uc.store.Replace(ctx, snap.Clients, snap.Orders)
		res.ClientsAdded = len(snap.Clients)
		res.OrdersAdded = len(snap.Orders)
	case ModeMerge:
		var mr ledger.MergeResult
		mr, applyErr = uc.store.Merge(ctx, snap.Clients, snap.Orders)
		res.ClientsAdded, res.ClientsSkipped = mr.ClientsAdded, mr.ClientsSkipped
		res.OrdersAdded, res.OrdersSkipped = mr.OrdersAdded, mr.OrdersSkipped
	}
	if applyErr != nil && !errors.Is(applyErr, domain.ErrStorageFull) {
		uc.log.Error().Err(applyErr).Str("mode", string(mode)).Msg("backup: importación no aplicada")
		return nil, applyErr
	}
	res.OrphanOrders = uc.store.CountOrphanOrders()

	ev := uc.log.Info()
	if res.OrphanOrders > 0 {
		ev = uc.log.Warn()
	}
	ev.Str("mode", res.Mode).
		Int("clients_added", res.ClientsAdded).
		Int("orders_added", res.OrdersAdded).
		Int("clients_skipped", res.ClientsSkipped).
		Int("orders_skipped", res.OrdersSkipped).
		Int("orphan_orders", res.OrphanOrders).
		Msg("backup: importación aplicada")

	if applyErr != nil {
		res.StorageWarning = applyErr.Error()
		return res, applyErr
	}
	return res, nil
}
