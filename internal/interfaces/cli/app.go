// Package cli implementa los subcomandos de ledgerctl sobre el mismo Record
// Store que usa la API.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	appanalytics "github.com/jhoicas/Pedidos-api/internal/application/analytics"
	"github.com/jhoicas/Pedidos-api/internal/application/backup"
	"github.com/jhoicas/Pedidos-api/internal/application/ledger"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/infrastructure/storage"
	"github.com/jhoicas/Pedidos-api/pkg/config"
	"github.com/jhoicas/Pedidos-api/pkg/currency"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
)

// Ledger dependencias ya construidas que usan los subcomandos.
type Ledger struct {
	Store     *ledger.Store
	Gateway   *storage.Gateway
	Dashboard *appanalytics.DashboardUseCase
	Backup    *backup.UseCase
	Money     currency.Formatter
	Loc       *time.Location
}

// Opener abre el ledger; close libera el almacenamiento.
type Opener func(ctx context.Context) (l *Ledger, closeFn func(), err error)

// App estado compartido por los subcomandos.
type App struct {
	Open Opener
	Out  io.Writer
	Err  io.Writer
	// Plain desactiva el render con glamour (salida redirigida, tests).
	Plain bool
}

// Register registra los subcomandos.
func Register(c *subcommands.Commander, app *App) {
	c.Register(&dashboardCmd{app: app}, "reports")
	c.Register(&clientsCmd{app: app}, "reports")
	c.Register(&ordersCmd{app: app}, "reports")

	c.Register(&exportCmd{app: app}, "backup")
	c.Register(&importCmd{app: app}, "backup")
	c.Register(&resetCmd{app: app}, "backup")
}

// ConfigOpener abre el ledger con la configuración de la aplicación (STORAGE_DRIVER, etc.).
func ConfigOpener(cfg *config.Config, log *logger.Logger) Opener {
	return func(ctx context.Context) (*Ledger, func(), error) {
		loc, err := appanalytics.LoadLocation(cfg.Ledger.Timezone)
		if err != nil {
			return nil, nil, fmt.Errorf("zona horaria %q: %w", cfg.Ledger.Timezone, err)
		}
		kv, closeKV, err := storage.Open(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		gw := storage.NewGateway(kv, storage.WithMaxBytes(cfg.Storage.MaxBytes), storage.WithLogger(log))
		l := NewLedger(gw, log, loc, currency.NewFormatter(cfg.Ledger.Currency), cfg.Ledger.MaxImportBytes)
		if err := l.Load(ctx); err != nil {
			closeKV()
			return nil, nil, err
		}
		return l, closeKV, nil
	}
}

// Load carga el estado persistido. Una entrada corrupta solo se advierte; un
// almacenamiento ilegible (domain.ErrStorageUnavailable) es un error.
func (l *Ledger) Load(ctx context.Context) error {
	err := l.Store.Load(ctx)
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrStorageUnavailable) || !errors.Is(err, domain.ErrCorruptData) {
		return err
	}
	return nil
}

// NewLedger arma los casos de uso sobre un gateway. No carga el estado.
func NewLedger(gw *storage.Gateway, log *logger.Logger, loc *time.Location, money currency.Formatter, maxImportBytes int64) *Ledger {
	store := ledger.NewStore(gw)
	return &Ledger{
		Store:     store,
		Gateway:   gw,
		Dashboard: appanalytics.NewDashboardUseCase(store, loc),
		Backup:    backup.NewUseCase(store, log, maxImportBytes),
		Money:     money,
		Loc:       loc,
	}
}

// open abre el ledger o reporta el error en Err.
func (a *App) open(ctx context.Context) (*Ledger, func(), subcommands.ExitStatus) {
	l, closeFn, err := a.Open(ctx)
	if err != nil {
		fmt.Fprintf(a.Err, "Error: %v\n", err)
		return nil, nil, subcommands.ExitFailure
	}
	return l, closeFn, subcommands.ExitSuccess
}

// warn imprime la advertencia de almacenamiento lleno sin fallar el comando.
func (a *App) warn(err error) bool {
	if errors.Is(err, domain.ErrStorageFull) {
		fmt.Fprintf(a.Err, "Advertencia: %v\n", err)
		return true
	}
	return false
}

// printMarkdown renderiza md con glamour; si falla, imprime el markdown crudo.
func (a *App) printMarkdown(md string) {
	if a.Plain {
		fmt.Fprint(a.Out, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(a.Out, out)
			return
		}
	}
	fmt.Fprint(a.Out, md)
}
