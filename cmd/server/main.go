package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/farmtrack/internal/config"
	"github.com/mamadbah2/farmtrack/internal/repository/mongodb"
	"github.com/mamadbah2/farmtrack/internal/repository/sheets"
	"github.com/mamadbah2/farmtrack/internal/scheduler"
	"github.com/mamadbah2/farmtrack/internal/server/handlers"
	"github.com/mamadbah2/farmtrack/internal/server/router"
	accesscodesvc "github.com/mamadbah2/farmtrack/internal/service/accesscodes"
	authsvc "github.com/mamadbah2/farmtrack/internal/service/auth"
	dailylogsvc "github.com/mamadbah2/farmtrack/internal/service/dailylogs"
	pensvc "github.com/mamadbah2/farmtrack/internal/service/pens"
	recordsvc "github.com/mamadbah2/farmtrack/internal/service/records"
	reportingsvc "github.com/mamadbah2/farmtrack/internal/service/reporting"
	"github.com/mamadbah2/farmtrack/pkg/clients/notify"
	"github.com/mamadbah2/farmtrack/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(os.Getenv("APP_DEBUG") != ""))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	repo, err := mongodb.NewRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	if err := repo.EnsureIndexes(context.Background()); err != nil {
		baseLogger.Fatal("failed to ensure mongodb indexes", zap.Error(err))
	}

	codesSvc := accesscodesvc.NewService(repo, repo, baseLogger.Named("svc.accesscodes"))
	authService := authsvc.NewService(repo, codesSvc, cfg.Auth, baseLogger.Named("svc.auth"))
	penService := pensvc.NewService(repo, baseLogger.Named("svc.pens"))
	recordService := recordsvc.NewService(repo, repo, baseLogger.Named("svc.records"))
	dailyLogService := dailylogsvc.NewService(repo, repo, repo, baseLogger.Named("svc.dailylogs"))
	reportingService := reportingsvc.NewService(repo, repo, repo, repo, baseLogger.Named("svc.reporting"))

	var sheetsRepo sheets.Repository
	if cfg.SheetsEnabled() {
		sheetsRepo, err = sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		baseLogger.Info("google sheets report sync enabled")
	}

	var notifier notify.Client
	if cfg.Notify.WebhookURL != "" {
		notifier = notify.NewClient(cfg.Notify)
		baseLogger.Info("report webhook push enabled")
	}

	h := router.Handlers{
		Auth:        handlers.NewAuthHandler(authService, baseLogger.Named("handlers.auth")),
		Pens:        handlers.NewPenHandler(penService, baseLogger.Named("handlers.pens")),
		Records:     handlers.NewRecordHandler(recordService, baseLogger.Named("handlers.records")),
		DailyLogs:   handlers.NewDailyLogHandler(dailyLogService, baseLogger.Named("handlers.dailylogs")),
		AccessCodes: handlers.NewAccessCodeHandler(codesSvc, baseLogger.Named("handlers.accesscodes")),
		Reports:     handlers.NewReportHandler(reportingService, baseLogger.Named("handlers.reports")),
	}
	engine := router.New(h, authService, cfg.Auth.JWTSecret, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Reporting, repo, reportingService, repo, sheetsRepo, notifier, baseLogger.Named("scheduler"))
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
