package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/config"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/metrics"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/repository/gormstore"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/repository/memory"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/repository/mongodb"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/repository/sheets"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/scheduler"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/server/handlers"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/server/router"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/service/inventory"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/service/orders"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/service/procedures"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/service/reporting"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/pkg/clients/webhook"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/pkg/logger"
)

// stores bundles the persistence backends selected by DB_DRIVER.
type stores struct {
	inventory  inventory.Store
	procedures procedures.Store
	orders     orders.Store
	movements  interface {
		inventory.MovementRecorder
		handlers.MovementReader
	}
	close func() error
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	st, err := openStores(cfg.Database, baseLogger.Named("repo.db"))
	if err != nil {
		baseLogger.Fatal("failed to init store", zap.Error(err))
	}
	defer func() {
		if err := st.close(); err != nil {
			baseLogger.Error("failed to close database", zap.Error(err))
		}
	}()

	recorder := inventory.MovementRecorder(st.movements)
	if cfg.MongoDB.URI != "" {
		connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		mongoRepo, err := mongodb.NewMovementRepository(connectCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		cancel()
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		recorder = inventory.Recorders{st.movements, mongoRepo}
		baseLogger.Info("mongodb movement audit enabled", zap.String("db", cfg.MongoDB.DBName))
	}

	m := metrics.New()
	ledger := inventory.NewLedger(st.inventory, recorder, m, inventory.Options{
		LockTimeout:      cfg.Ledger.LockTimeout,
		BootstrapPercent: cfg.Ledger.BootstrapPercent,
	}, baseLogger.Named("svc.inventory"))
	catalog := procedures.NewService(st.procedures, ledger, baseLogger.Named("svc.procedures"))
	orderSvc := orders.NewService(st.orders, ledger, baseLogger.Named("svc.orders"))

	var rowWriter sheets.RowWriter
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		rowWriter = sheetsRepo
	} else {
		baseLogger.Warn("google sheets not configured, snapshot export disabled")
	}

	loc, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		baseLogger.Fatal("invalid timezone", zap.Error(err))
	}
	reportingSvc := reporting.NewService(ledger, rowWriter, cfg.Sheets.Range, loc, baseLogger.Named("svc.reporting"))

	if cfg.SeedDemoData {
		if err := seedDemoData(context.Background(), ledger, catalog, baseLogger.Named("seed")); err != nil {
			baseLogger.Fatal("failed to seed demo data", zap.Error(err))
		}
	}

	var notifier webhook.Client
	if cfg.Notify.WebhookURL != "" {
		notifier = webhook.NewClient(cfg.Notify)
	} else {
		baseLogger.Warn("notify webhook missing, stock reports are only logged")
	}

	sched, err := scheduler.NewScheduler(cfg.Reporting, reportingSvc, notifier, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	engine := router.New(router.Handlers{
		Inventory:  handlers.NewInventoryHandler(ledger, st.movements, baseLogger.Named("handlers.inventory")),
		Procedures: handlers.NewProcedureHandler(catalog, baseLogger.Named("handlers.procedures")),
		Orders:     handlers.NewOrderHandler(orderSvc, baseLogger.Named("handlers.orders")),
		Reports:    handlers.NewReportHandler(reportingSvc, baseLogger.Named("handlers.reports")),
	}, m.Handler(), baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("db_driver", cfg.Database.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func openStores(cfg config.DatabaseConfig, log *zap.Logger) (*stores, error) {
	if cfg.Driver == "memory" {
		log.Warn("using in-memory store, data is lost on restart")
		return &stores{
			inventory:  memory.NewInventoryStore(),
			procedures: memory.NewProcedureStore(),
			orders:     memory.NewOrderStore(),
			movements:  memory.NewMovementLog(),
			close:      func() error { return nil },
		}, nil
	}

	db, err := gormstore.Open(cfg.Driver, cfg.DSN, log)
	if err != nil {
		return nil, err
	}
	return &stores{
		inventory:  gormstore.NewInventoryStore(db),
		procedures: gormstore.NewProcedureStore(db),
		orders:     gormstore.NewOrderStore(db),
		movements:  gormstore.NewMovementStore(db),
		close:      func() error { return gormstore.Close(db) },
	}, nil
}
