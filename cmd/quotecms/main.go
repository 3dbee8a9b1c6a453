package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gauravitis/quotecms/internal/app"
	"github.com/gauravitis/quotecms/internal/clients"
	"github.com/gauravitis/quotecms/internal/companies"
	"github.com/gauravitis/quotecms/internal/docgen"
	"github.com/gauravitis/quotecms/internal/employees"
	"github.com/gauravitis/quotecms/internal/items"
	"github.com/gauravitis/quotecms/internal/platform/cache"
	"github.com/gauravitis/quotecms/internal/platform/db"
	"github.com/gauravitis/quotecms/internal/quotations"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	companyRepo := companies.NewRepository(dbpool)
	companyService := companies.NewService(companyRepo)
	companyHandler := companies.NewHandler(logger, companyService)

	clientRepo := clients.NewRepository(dbpool)
	clientService := clients.NewService(clientRepo, companyRepo)
	clientHandler := clients.NewHandler(logger, clientService)

	employeeRepo := employees.NewRepository(dbpool)
	employeeService := employees.NewService(employeeRepo)
	employeeHandler := employees.NewHandler(logger, employeeService)

	itemRepo := items.NewRepository(dbpool)
	itemService := items.NewService(itemRepo)
	itemHandler := items.NewHandler(logger, itemService)

	seals := docgen.NewSealSource(cfg.SealBaseDir, cfg.SealFetchTimeout)
	assembler := docgen.NewAssembler(logger, seals)
	artifacts := quotations.NewArtifactStore(redisClient, cfg.DocumentTTL)

	quotationRepo := quotations.NewRepository(dbpool)
	quotationService := quotations.NewService(
		logger, quotationRepo, companyRepo, clientRepo, employeeRepo, itemRepo,
		assembler, artifacts,
	)
	quotationHandler := quotations.NewHandler(logger, quotationService)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		CompaniesHandler:  companyHandler,
		ClientsHandler:    clientHandler,
		EmployeesHandler:  employeeHandler,
		ItemsHandler:      itemHandler,
		QuotationsHandler: quotationHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
