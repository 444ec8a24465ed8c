package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/agridesk/farmbook/internal/config"
	"github.com/agridesk/farmbook/internal/domain/validation"
	"github.com/agridesk/farmbook/internal/repository/mongodb"
	"github.com/agridesk/farmbook/internal/repository/sheets"
	"github.com/agridesk/farmbook/internal/scheduler"
	"github.com/agridesk/farmbook/internal/server/handlers"
	"github.com/agridesk/farmbook/internal/server/router"
	cropsvc "github.com/agridesk/farmbook/internal/service/crops"
	farmersvc "github.com/agridesk/farmbook/internal/service/farmers"
	reportingsvc "github.com/agridesk/farmbook/internal/service/reporting"
	txnsvc "github.com/agridesk/farmbook/internal/service/transactions"
	"github.com/agridesk/farmbook/pkg/clients/webhook"
	"github.com/agridesk/farmbook/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	if err := validation.RegisterBindingRules(); err != nil {
		baseLogger.Fatal("failed to register validation rules", zap.Error(err))
	}

	repo, err := mongodb.NewRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	// Spreadsheet export is optional; the handlers and reporting service
	// treat a nil repository as export-disabled.
	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		sheetsRepo, err = sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		baseLogger.Info("spreadsheet export enabled")
	} else {
		baseLogger.Warn("spreadsheet export disabled, sheets credentials missing")
	}

	var webhookClient webhook.Client
	if cfg.Webhook.Enabled() {
		webhookClient = webhook.NewClient(cfg.Webhook)
		baseLogger.Info("daily report webhook enabled")
	}

	farmerSvc := farmersvc.NewService(repo, baseLogger.Named("svc.farmers"))
	cropSvc := cropsvc.NewService(repo, baseLogger.Named("svc.crops"))
	transactionSvc := txnsvc.NewService(repo, baseLogger.Named("svc.transactions"))
	reportingSvc := reportingsvc.NewService(repo, sheetsRepo, webhookClient, baseLogger.Named("svc.reporting"))

	engine := router.New(router.Handlers{
		Farmers:      handlers.NewFarmerHandler(farmerSvc, baseLogger.Named("handlers.farmers")),
		Crops:        handlers.NewCropHandler(cropSvc, sheetsRepo, baseLogger.Named("handlers.crops")),
		Transactions: handlers.NewTransactionHandler(transactionSvc, baseLogger.Named("handlers.transactions")),
		Reports:      handlers.NewReportHandler(reportingSvc, baseLogger.Named("handlers.reports")),
	}, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Reporting, reportingSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

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
