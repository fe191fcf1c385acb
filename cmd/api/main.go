package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/easyrewardph/bayani/internal/application/auth"
	"github.com/easyrewardph/bayani/internal/application/scanning"
	"github.com/easyrewardph/bayani/internal/infrastructure/postgres"
	"github.com/easyrewardph/bayani/internal/infrastructure/rabbitmq"
	"github.com/easyrewardph/bayani/internal/infrastructure/scanlog"
	httpRouter "github.com/easyrewardph/bayani/internal/interfaces/http"
	"github.com/easyrewardph/bayani/pkg/config"
	"github.com/easyrewardph/bayani/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	transferRepo := postgres.NewTransferRepository(pool)
	lineRepo := postgres.NewPlannedLineRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	lotRepo := postgres.NewLotRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	deviceRepo := postgres.NewDeviceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Broker opcional: RABBIT_URL vacío publica como no-op.
	publisher, err := rabbitmq.NewPublisher(cfg.Rabbit.URL, cfg.Rabbit.Exchange)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a RabbitMQ")
	}
	defer publisher.Close()

	sink := scanlog.NewFileSink(cfg.ScanLog.Dir, log)

	policy := scanning.Policy{
		SingleDestination:  cfg.Scan.SingleDestination,
		EnforceLotTracking: cfg.Scan.EnforceLotTracking,
	}

	scanUC := scanning.NewScanUseCase(
		txRunner, transferRepo, lineRepo, productRepo,
		lotRepo, locationRepo, auditRepo,
		publisher, sink, policy,
	)
	snapshotUC := scanning.NewSnapshotUseCase(
		transferRepo, lineRepo, productRepo, lotRepo, locationRepo, stockRepo,
	)
	batchUC := scanning.NewBatchUseCase(scanUC, transferRepo, auditRepo)
	complianceUC := scanning.NewComplianceUseCase(
		transferRepo, lineRepo, auditRepo, publisher, policy,
	)
	expiryUC := scanning.NewExpiryUseCase(productRepo, stockRepo)
	historyUC := scanning.NewHistoryUseCase(transferRepo, auditRepo)

	authUC := auth.NewAuthUseCase(deviceRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Bayani Scan API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SnapshotUC:   snapshotUC,
		ScanUC:       scanUC,
		BatchUC:      batchUC,
		ComplianceUC: complianceUC,
		ExpiryUC:     expiryUC,
		HistoryUC:    historyUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
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
