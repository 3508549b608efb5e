package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KevTop1c/alx-travel-app-0x04/internal/application/services"
	"github.com/KevTop1c/alx-travel-app-0x04/internal/config"
	"github.com/KevTop1c/alx-travel-app-0x04/internal/domain"
	"github.com/KevTop1c/alx-travel-app-0x04/internal/infrastructure/chapa"
	"github.com/KevTop1c/alx-travel-app-0x04/internal/infrastructure/notify"
	"github.com/KevTop1c/alx-travel-app-0x04/internal/infrastructure/persistence/postgres"
	"github.com/KevTop1c/alx-travel-app-0x04/internal/interfaces/rest/handlers"
	"github.com/KevTop1c/alx-travel-app-0x04/internal/interfaces/rest/middleware"
	"github.com/KevTop1c/alx-travel-app-0x04/internal/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting travel payment service",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
	)

	ctx := context.Background()
	db, err := postgres.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	paymentRepo := postgres.NewPaymentRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	txCoordinator := postgres.NewTransactionCoordinator(db)

	chapaClient := chapa.NewClient(cfg.Chapa)
	gateway := chapa.NewRetryClient(chapaClient, cfg.Retry)

	var sender notify.EmailSender
	if cfg.Notifier.SMTPHost != "" {
		sender = notify.NewSMTPSender(cfg.Notifier)
	} else {
		sender = notify.NewLogSender(logger)
	}
	dispatcher := notify.NewDispatcher(paymentRepo, bookingRepo, sender, cfg.Notifier, logger)

	currency := domain.Currency(cfg.Chapa.Currency)
	if currency == "" {
		currency = domain.CurrencyETB
	}
	checkoutURLs := services.CheckoutURLs{
		Callback: cfg.Chapa.CallbackURL,
		Return:   cfg.Chapa.ReturnURL,
	}

	bookingService := services.NewBookingService(bookingRepo, paymentRepo, dispatcher, logger)
	initiateService := services.NewInitiateService(paymentRepo, bookingRepo, gateway, checkoutURLs, currency, logger)
	reconcileService := services.NewReconcileService(paymentRepo, gateway, txCoordinator, dispatcher, logger)
	retryService := services.NewRetryService(paymentRepo, bookingRepo, initiateService, logger)
	cancelService := services.NewCancelService(paymentRepo, bookingRepo, txCoordinator, logger)
	queryService := services.NewQueryService(paymentRepo, bookingRepo)

	h := handlers.NewHandlers(
		bookingService,
		initiateService,
		reconcileService,
		retryService,
		cancelService,
		queryService,
		logger,
	)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	handler := middleware.Recovery(logger)(http.Handler(mux))
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(cfg.Server.ReadTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	sweepWorker := worker.NewSweepWorker(
		paymentRepo,
		reconcileService,
		cfg.Worker.Interval,
		cfg.Worker.StaleAfter,
		cfg.Worker.BatchSize,
		logger,
	)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	go dispatcher.Start(workerCtx)
	go sweepWorker.Start(workerCtx)

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	cancelWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
