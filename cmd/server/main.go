package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/shopdesk/internal/config"
	"github.com/mamadbah2/shopdesk/internal/repository"
	"github.com/mamadbah2/shopdesk/internal/repository/memory"
	"github.com/mamadbah2/shopdesk/internal/repository/mongodb"
	"github.com/mamadbah2/shopdesk/internal/repository/sheets"
	"github.com/mamadbah2/shopdesk/internal/scheduler"
	"github.com/mamadbah2/shopdesk/internal/server/handlers"
	"github.com/mamadbah2/shopdesk/internal/server/router"
	exportsvc "github.com/mamadbah2/shopdesk/internal/service/export"
	reportingsvc "github.com/mamadbah2/shopdesk/internal/service/reporting"
	salesvc "github.com/mamadbah2/shopdesk/internal/service/sale"
	stocksvc "github.com/mamadbah2/shopdesk/internal/service/stock"
	"github.com/mamadbah2/shopdesk/pkg/clients/notify"
	"github.com/mamadbah2/shopdesk/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(os.Getenv("APP_ENV") == "development"))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var store repository.Store
	var loader repository.BulkLoader

	switch cfg.Store.Backend {
	case config.BackendSheets:
		sheetStore, err := sheets.NewSheetStore(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets store", zap.Error(err))
		}
		store = sheetStore
	default:
		memStore := memory.NewStore()
		store = memStore
		loader = memStore
	}
	baseLogger.Info("store backend selected", zap.String("backend", cfg.Store.Backend))

	var notifier notify.Client
	if cfg.Alerts.WebhookURL != "" {
		notifier = notify.NewWebhookClient(cfg.Alerts.WebhookURL)
		baseLogger.Info("low stock alerts enabled", zap.Int("threshold", cfg.Alerts.LowStockThreshold))
	} else {
		baseLogger.Warn("alert webhook url missing, low stock alerts disabled")
	}

	stockSvc := stocksvc.NewService(store, baseLogger.Named("svc.stock"))
	saleSvc := salesvc.NewService(store, notifier, cfg.Alerts.LowStockThreshold, baseLogger.Named("svc.sale"))
	reportingSvc := reportingsvc.NewService(store, baseLogger.Named("svc.reporting"))
	csvSvc := exportsvc.NewService(store, loader, baseLogger.Named("svc.export"))

	engine := router.New(router.Handlers{
		Stock:  handlers.NewStockHandler(stockSvc, baseLogger.Named("handlers.stock")),
		Sale:   handlers.NewSaleHandler(saleSvc, baseLogger.Named("handlers.sale")),
		Report: handlers.NewReportHandler(reportingSvc, baseLogger.Named("handlers.report")),
		Export: handlers.NewExportHandler(csvSvc, baseLogger.Named("handlers.export")),
	}, baseLogger.Named("router"))

	// The snapshot archive is optional; without MongoDB the dashboard still
	// serves live reports.
	if cfg.MongoDB.URI != "" {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()

		sched := scheduler.NewScheduler(cfg.Snapshot, reportingSvc, mongoRepo, baseLogger.Named("scheduler"))
		sched.Start()
		defer sched.Stop()
	} else {
		baseLogger.Warn("mongodb uri missing, daily snapshot archive disabled")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
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
