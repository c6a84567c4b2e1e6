package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/Pedidos-api/internal/application/analytics"
	"github.com/jhoicas/Pedidos-api/internal/application/backup"
	"github.com/jhoicas/Pedidos-api/internal/application/ledger"
	"github.com/jhoicas/Pedidos-api/internal/application/receipt"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	infrapdf "github.com/jhoicas/Pedidos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Pedidos-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Pedidos-api/internal/interfaces/http"
	"github.com/jhoicas/Pedidos-api/pkg/config"
	"github.com/jhoicas/Pedidos-api/pkg/currency"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Str("namespace", cfg.Storage.Namespace).
		Msg("iniciando aplicación")

	loc, err := appanalytics.LoadLocation(cfg.Ledger.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Ledger.Timezone).Msg("zona horaria inválida")
	}

	ctx := context.Background()
	kv, closeKV, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer closeKV()

	gateway := storage.NewGateway(kv,
		storage.WithMaxBytes(cfg.Storage.MaxBytes),
		storage.WithLogger(log),
	)
	store := ledger.NewStore(gateway)
	dashboardUC := appanalytics.NewDashboardUseCase(store, loc)

	// El dashboard se recalcula con cada cambio; el primero llega con ChangeLoaded.
	store.Subscribe(func(ch ledger.Change) {
		summary, err := dashboardUC.GetSummary(ctx)
		if err != nil {
			return
		}
		log.Debug().
			Str("change", string(ch.Kind)).
			Str("id", ch.ID).
			Str("total_paid", summary.TotalPaid).
			Str("total_unpaid", summary.TotalUnpaid).
			Str("today_revenue", summary.TodayRevenue).
			Msg("dashboard recalculado")
	})

	if err := store.Load(ctx); err != nil {
		if errors.Is(err, domain.ErrStorageUnavailable) || !errors.Is(err, domain.ErrCorruptData) {
			log.Fatal().Err(err).Msg("cargar estado")
		}
		log.Warn().Err(err).Msg("estado persistido ilegible, se inicia vacío")
	}
	log.Info().
		Int("clients", len(store.ListClients())).
		Int("orders", len(store.ListOrders())).
		Msg("estado cargado")

	backupUC := backup.NewUseCase(store, log, cfg.Ledger.MaxImportBytes)
	receiptUC := receipt.NewUseCase(
		store,
		infrapdf.NewMarotoReceiptGenerator(cfg.App.Name),
		currency.NewFormatter(cfg.Ledger.Currency),
		loc,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    int(cfg.Ledger.MaxImportBytes) + 1<<20,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs (solo si existe el archivo)
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Pedidos API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Store:       store,
		DashboardUC: dashboardUC,
		BackupUC:    backupUC,
		ReceiptUC:   receiptUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
