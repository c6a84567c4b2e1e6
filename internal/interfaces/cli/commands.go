package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/jhoicas/Pedidos-api/internal/application/backup"
)

// ── dashboard ────────────────────────────────────────────────────────────────

type dashboardCmd struct {
	app   *App
	check bool
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "muestra cobrado, pendiente, ingreso de hoy y los últimos 7 días" }
func (*dashboardCmd) Usage() string {
	return `ledgerctl dashboard [-check]

  Muestra el resumen del dashboard calculado desde los pedidos guardados.
  Con -check compara los totales con los que suma el almacenamiento.
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.check, "check", false, "verificar los totales contra lo persistido")
}

func (c *dashboardCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, closeFn, st := c.app.open(ctx)
	if st != subcommands.ExitSuccess {
		return st
	}
	defer closeFn()

	summary, err := l.Dashboard.GetSummary(ctx)
	if err != nil {
		fmt.Fprintf(c.app.Err, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	c.app.printMarkdown(DashboardMarkdown(summary, l.Money))
	if !c.check {
		return subcommands.ExitSuccess
	}

	persisted, err := l.Gateway.PersistedTotals(ctx)
	if err != nil {
		fmt.Fprintf(c.app.Err, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if diffs := totalsDiff(summary, persisted); len(diffs) > 0 {
		for _, d := range diffs {
			fmt.Fprintf(c.app.Err, "Advertencia: %s\n", d)
		}
		return subcommands.ExitFailure
	}
	fmt.Fprintln(c.app.Out, "Totales verificados contra el almacenamiento.")
	return subcommands.ExitSuccess
}

// ── clients ──────────────────────────────────────────────────────────────────

type clientsCmd struct{ app *App }

func (*clientsCmd) Name() string     { return "clients" }
func (*clientsCmd) Synopsis() string { return "lista los clientes" }
func (*clientsCmd) Usage() string {
	return `ledgerctl clients

  Lista los clientes con su cantidad de pedidos.
`
}
func (*clientsCmd) SetFlags(*flag.FlagSet) {}

func (c *clientsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, closeFn, st := c.app.open(ctx)
	if st != subcommands.ExitSuccess {
		return st
	}
	defer closeFn()

	counts := make(map[string]int)
	for _, o := range l.Store.ListOrders() {
		counts[o.ClientID]++
	}
	c.app.printMarkdown(ClientsMarkdown(l.Store.ListClients(), counts, l.Loc))
	return subcommands.ExitSuccess
}

// ── orders ───────────────────────────────────────────────────────────────────

type ordersCmd struct {
	app      *App
	clientID string
}

func (*ordersCmd) Name() string     { return "orders" }
func (*ordersCmd) Synopsis() string { return "lista los pedidos" }
func (*ordersCmd) Usage() string {
	return `ledgerctl orders [-client <id>]

  Lista los pedidos, opcionalmente solo los de un cliente.
`
}

func (c *ordersCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.clientID, "client", "", "id del cliente")
}

func (c *ordersCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, closeFn, st := c.app.open(ctx)
	if st != subcommands.ExitSuccess {
		return st
	}
	defer closeFn()

	orders := l.Store.ListOrders()
	if c.clientID != "" {
		orders = l.Store.OrdersByClient(c.clientID)
	}
	names := make(map[string]string)
	for _, cl := range l.Store.ListClients() {
		names[cl.ID] = cl.Name
	}
	c.app.printMarkdown(OrdersMarkdown(orders, names, l.Money, l.Loc))
	return subcommands.ExitSuccess
}

// ── export ───────────────────────────────────────────────────────────────────

type exportCmd struct {
	app  *App
	out  string
	auto bool
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "exporta un respaldo JSON completo" }
func (*exportCmd) Usage() string {
	return `ledgerctl export [-o <archivo>] [-auto]

  Escribe el respaldo en stdout, en -o, o con -auto en client-order-backup-<ms>.json.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.out, "o", "", "archivo de salida (por defecto stdout)")
	f.BoolVar(&c.auto, "auto", false, "usar el nombre client-order-backup-<ms>.json")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, closeFn, st := c.app.open(ctx)
	if st != subcommands.ExitSuccess {
		return st
	}
	defer closeFn()

	path := c.out
	if path == "" && c.auto {
		path = l.Backup.ExportFilename()
	}
	if path == "" {
		if err := l.Backup.WriteExport(ctx, c.app.Out); err != nil {
			fmt.Fprintf(c.app.Err, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(c.app.Err, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := l.Backup.WriteExport(ctx, f); err != nil {
		f.Close()
		fmt.Fprintf(c.app.Err, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(c.app.Err, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(c.app.Err, "Respaldo escrito en %s\n", path)
	return subcommands.ExitSuccess
}

// ── import ───────────────────────────────────────────────────────────────────

type importCmd struct {
	app  *App
	mode string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "importa un respaldo JSON (merge o replace)" }
func (*importCmd) Usage() string {
	return `ledgerctl import [-mode merge|replace] <archivo>

  merge agrega solo los registros con id nuevo; replace descarta los datos actuales.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.mode, "mode", string(backup.ModeMerge), "merge | replace")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(c.app.Err, c.Usage())
		return subcommands.ExitUsageError
	}
	mode, err := backup.ParseMode(c.mode)
	if err != nil {
		fmt.Fprintf(c.app.Err, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	file, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(c.app.Err, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	l, closeFn, st := c.app.open(ctx)
	if st != subcommands.ExitSuccess {
		return st
	}
	defer closeFn()

	res, err := l.Backup.Import(ctx, file, mode)
	if err != nil && !c.app.warn(err) {
		fmt.Fprintf(c.app.Err, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(c.app.Out, "Importación (%s): %d clientes y %d pedidos agregados, %d clientes y %d pedidos omitidos.\n",
		res.Mode, res.ClientsAdded, res.OrdersAdded, res.ClientsSkipped, res.OrdersSkipped)
	if res.OrphanOrders > 0 {
		fmt.Fprintf(c.app.Err, "Advertencia: %d pedido(s) sin cliente existente.\n", res.OrphanOrders)
	}
	return subcommands.ExitSuccess
}

// ── reset ────────────────────────────────────────────────────────────────────

type resetCmd struct {
	app *App
	yes bool
}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "elimina los datos guardados del namespace" }
func (*resetCmd) Usage() string {
	return `ledgerctl reset -yes

  Elimina clientsDB y ordersDB del almacenamiento configurado. Requiere -yes.
`
}

func (c *resetCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "yes", false, "confirmar la eliminación")
}

func (c *resetCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.yes {
		fmt.Fprint(c.app.Err, c.Usage())
		return subcommands.ExitUsageError
	}
	l, closeFn, st := c.app.open(ctx)
	if st != subcommands.ExitSuccess {
		return st
	}
	defer closeFn()

	if err := l.Gateway.Reset(ctx); err != nil {
		fmt.Fprintf(c.app.Err, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(c.app.Out, "Datos eliminados.")
	return subcommands.ExitSuccess
}
