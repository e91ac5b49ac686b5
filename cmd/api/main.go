package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quadra_billing/internal/adapter/http/handlers"
	"quadra_billing/internal/adapter/http/routes"
	"quadra_billing/internal/config"
	"quadra_billing/internal/infrastructure/logger"
	"quadra_billing/internal/infrastructure/tasks"
	"quadra_billing/internal/usecase"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

// @title           Quadra Billing API
// @version         1.0
// @description     Payments, rateio and reservation billing for court bookings.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("Failed to startup the application")
	}
}

func run(cfg config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer repos.close()

	gateway, err := newGateway(cfg, log)
	if err != nil {
		return err
	}

	coord, err := newCoordination(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer coord.close()

	notify, err := newNotifier(ctx, cfg, repos.templates, log)
	if err != nil {
		return err
	}
	defer notify.close()

	pool := tasks.NewPool(tasks.Options{
		Workers:   cfg.NotifyWorkers,
		QueueSize: cfg.NotifyQueueSize,
		Timeout:   cfg.NotifyTimeout,
		Logger:    log,
	})

	reconciler := usecase.NewPaymentReconcilerUseCase(repos.payments, repos.reservations, notify.dispatcher, pool, usecase.ReconcilerOptions{
		Locker:             coord.locker,
		OrphanAlertEnabled: cfg.OrphanAlertEnabled,
		Logger:             log,
	})
	webhookUseCase := usecase.NewWebhookUseCase(cfg.WebhookSecret, reconciler, coord.deduper, log)
	paymentUseCase := usecase.NewPaymentUseCase(repos.payments, repos.reservations, gateway, log)
	reservationUseCase := usecase.NewReservationUseCase(repos.reservations)
	rateioUseCase := usecase.NewRateioUseCase(repos.reservations, nil, log)
	templateUseCase := usecase.NewTemplateUseCase(repos.templates)

	if cfg.WebhookSecret == "" {
		log.Warn("WEBHOOK_SECRET is empty, every webhook will be rejected")
	}

	router := routes.NewRouter(routes.Handlers{
		Webhook:     handlers.NewWebhookHandler(webhookUseCase),
		Payment:     handlers.NewPaymentHandler(paymentUseCase),
		Reservation: handlers.NewReservationHandler(reservationUseCase),
		Rateio:      handlers.NewRateioHandler(rateioUseCase),
		Template:    handlers.NewTemplateHandler(templateUseCase),
	}, log)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"port":     cfg.Port,
			"store":    cfg.StoreDriver,
			"provider": cfg.PaymentProvider,
		}).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("http server shutdown")
	}
	// Pending notifications drain after the last webhook has been answered.
	if err := pool.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("task pool shutdown")
	}
	log.Info("bye")
	return nil
}
