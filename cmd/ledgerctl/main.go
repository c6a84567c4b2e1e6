package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/jhoicas/Pedidos-api/internal/interfaces/cli"
	"github.com/jhoicas/Pedidos-api/pkg/config"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
)

func main() {
	plain := flag.Bool("plain", false, "imprimir markdown sin formato")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("cargar configuración: " + err.Error() + "\n")
		os.Exit(int(subcommands.ExitFailure))
	}
	// Los logs van a stderr para no mezclarse con la salida de export.
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Out: os.Stderr})

	app := &cli.App{
		Open: cli.ConfigOpener(cfg, log),
		Out:  os.Stdout,
		Err:  os.Stderr,
	}
	cli.Register(commander, app)

	flag.Parse()
	app.Plain = *plain
	os.Exit(int(commander.Execute(context.Background())))
}
