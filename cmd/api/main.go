// @title                       Lácteos API
// @version                     1.0
// @description                 API de gestión de una empresa láctea: pedidos, inventario, lotes, facturas y hato.
// @BasePath                    /api/v1
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	appanalytics "github.com/jhoicas/lacteos-api/internal/application/analytics"
	"github.com/jhoicas/lacteos-api/internal/application/auth"
	"github.com/jhoicas/lacteos-api/internal/application/batches"
	"github.com/jhoicas/lacteos-api/internal/application/billing"
	"github.com/jhoicas/lacteos-api/internal/application/herd"
	"github.com/jhoicas/lacteos-api/internal/application/orders"
	"github.com/jhoicas/lacteos-api/internal/application/usecase"
	"github.com/jhoicas/lacteos-api/internal/infrastructure/excel"
	"github.com/jhoicas/lacteos-api/internal/infrastructure/herdstore"
	"github.com/jhoicas/lacteos-api/internal/infrastructure/idempotency"
	"github.com/jhoicas/lacteos-api/internal/infrastructure/jobs"
	"github.com/jhoicas/lacteos-api/internal/infrastructure/numbering"
	infrapdf "github.com/jhoicas/lacteos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/lacteos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/lacteos-api/internal/infrastructure/realtime"
	"github.com/jhoicas/lacteos-api/internal/infrastructure/xmlexport"
	httpRouter "github.com/jhoicas/lacteos-api/internal/interfaces/http"
	"github.com/jhoicas/lacteos-api/pkg/config"
	"github.com/jhoicas/lacteos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	numbers, err := numbering.NewGenerator(cfg.NodeID)
	if err != nil {
		log.Fatal().Err(err).Msg("generador de números de documento")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool, cfg.DB)

	hub := realtime.NewHub(log)
	go hub.Run(ctx)

	// Idempotencia de creación de pedidos: solo con Redis configurado.
	var idemStore orders.IdempotencyStore
	if cfg.Redis.Address != "" {
		rdb, err := idempotency.Connect(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Address).Msg("conexión a Redis")
		}
		defer rdb.Close()
		idemStore = idempotency.NewStore(rdb, cfg.Redis.IdempotencyTTL, log)
	} else {
		log.Warn().Msg("REDIS_ADDRESS vacío: Idempotency-Key deshabilitado")
	}

	// Hato: segundo backend (MySQL/gorm), opcional.
	var herdUC *herd.UseCase
	var herdStats appanalytics.HerdStats
	if cfg.HerdDB.Enabled() {
		herdDB, err := herdstore.Open(cfg.HerdDB, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a la base del hato")
		}
		if sqlDB, err := herdDB.DB(); err == nil {
			defer sqlDB.Close()
		}
		herdUC = herd.NewUseCase(herdstore.NewRepository(herdDB))
		herdStats = herdUC
	} else {
		log.Info().Msg("HERD_DB_DSN vacío: módulo de hato deshabilitado")
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo)
	productUC := usecase.NewProductUseCase(productRepo, log)
	clientUC := usecase.NewClientUseCase(clientRepo)
	ordersUC := orders.NewUseCase(orders.Deps{
		Orders:      orderRepo,
		Products:    productRepo,
		Clients:     clientRepo,
		Users:       userRepo,
		Tx:          txRunner,
		Idempotency: idemStore,
		Notifier:    hub,
		Numbers:     numbers,
	}, orders.Config{
		TaxRate:           cfg.Orders.TaxRate,
		StrictTransitions: cfg.Orders.StrictTransitions,
	}, log)
	batchesUC := batches.NewUseCase(batchRepo, productRepo, txRunner, numbers, log)
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo, orderRepo, txRunner, numbers, log)
	documentUC := billing.NewDocumentUseCase(invoiceRepo, clientRepo, billing.Issuer{
		Name:    cfg.Issuer.Name,
		TaxID:   cfg.Issuer.TaxID,
		Address: cfg.Issuer.Address,
		Phone:   cfg.Issuer.Phone,
	}, infrapdf.NewMarotoPDFGenerator(), xmlexport.NewInvoiceExporter())
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, herdStats, log)
	reportsUC := appanalytics.NewReportsUseCase(analyticsRepo, excel.NewSalesExporter())

	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler, err = jobs.New(cfg.Jobs, invoiceUC, productUC, log)
		if err != nil {
			log.Fatal().Err(err).Msg("tareas programadas")
		}
		scheduler.Start()
	}

	docsPath, err := swaggerFile(cfg.App.DocsPath)
	if err != nil {
		log.Warn().Err(err).Msg("swagger no disponible, /docs deshabilitado")
		docsPath = ""
	}
	app := httpRouter.NewApp(httpRouter.AppOptions{
		Name:       cfg.App.Name,
		HTTP:       cfg.HTTP,
		SwaggerDoc: docsPath,
		Logger:     log,
	})
	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		ProductUC:   productUC,
		ClientUC:    clientUC,
		OrdersUC:    ordersUC,
		BatchesUC:   batchesUC,
		InvoiceUC:   invoiceUC,
		DocumentUC:  documentUC,
		DashboardUC: dashboardUC,
		ReportsUC:   reportsUC,
		HerdUC:      herdUC,
		HerdModule:  cfg.HerdDB,
		Hub:         hub,
		JWTSecret:   cfg.JWT.Secret,
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
	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	stop()

	log.Info().Msg("aplicación detenida")
}
