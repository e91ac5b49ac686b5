package main

import (
	"context"
	"fmt"
	"time"

	"quadra_billing/internal/adapter/persistence/repository"
	"quadra_billing/internal/config"
	"quadra_billing/internal/infrastructure/cache"
	"quadra_billing/internal/infrastructure/database"
	"quadra_billing/internal/infrastructure/notifications"
	"quadra_billing/internal/infrastructure/payments"
	"quadra_billing/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

type store struct {
	payments     interfaces.IPaymentRepository
	reservations interfaces.IReservationRepository
	templates    interfaces.ITemplateRepository
	close        func()
}

func openStore(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (store, error) {
	switch cfg.StoreDriver {
	case config.StoreSQLite:
		db, err := database.InitSQLite(cfg.SQLitePath)
		if err != nil {
			return store{}, fmt.Errorf("init sqlite: %w", err)
		}
		log.WithField("dsn", cfg.SQLitePath).Info("using sqlite store")
		return store{
			payments:     repository.NewPaymentSQLiteRepository(db),
			reservations: repository.NewReservationSQLiteRepository(db),
			templates:    repository.NewTemplateSQLiteRepository(db),
			close:        func() { _ = db.Close() },
		}, nil
	case config.StoreDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, database.DynamoDBOptions{
			Region:   cfg.AWSRegion,
			Endpoint: cfg.DynamoDBEndpoint,
		})
		if err != nil {
			return store{}, err
		}
		log.WithFields(logrus.Fields{"region": cfg.AWSRegion, "endpoint": cfg.DynamoDBEndpoint}).Info("using dynamodb store")
		return store{
			payments:     repository.NewPaymentDynamoRepository(ddb, cfg.PaymentsTable),
			reservations: repository.NewReservationDynamoRepository(ddb, cfg.ReservationsTable, cfg.ParticipantsTable),
			templates:    repository.NewTemplateDynamoRepository(ddb, cfg.TemplatesTable),
			close:        func() {},
		}, nil
	default:
		return store{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

func newGateway(cfg config.Config, log logrus.FieldLogger) (interfaces.IPaymentGateway, error) {
	retry := payments.DefaultRetryPolicy()
	retry.MaxRetries = cfg.GatewayMaxRetries

	switch cfg.PaymentProvider {
	case config.ProviderAsaas:
		return payments.NewAsaasGateway(payments.AsaasOptions{
			BaseURL:     cfg.AsaasAPIURL,
			AccessToken: cfg.AsaasAccessToken,
			Timeout:     cfg.GatewayTimeout,
			Retry:       retry,
			Logger:      log,
		})
	case config.ProviderMercadoPago:
		return payments.NewMercadoPagoGateway(payments.MercadoPagoOptions{
			AccessToken: cfg.MercadoPagoAccessToken,
			Retry:       retry,
			Logger:      log,
			Mock:        cfg.PaymentGatewayMock,
		})
	default:
		return nil, fmt.Errorf("unknown PAYMENT_PROVIDER %q", cfg.PaymentProvider)
	}
}

// coordination holds the Redis-backed helpers. Both stay nil without
// REDIS_ADDRESS and the use cases run without dedup or locking.
type coordination struct {
	deduper interfaces.IEventDeduper
	locker  interfaces.ILocker
	close   func()
}

func newCoordination(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (coordination, error) {
	if cfg.RedisAddress == "" {
		log.Info("REDIS_ADDRESS not set, webhook dedup and payment locks disabled")
		return coordination{close: func() {}}, nil
	}
	rdb, err := cache.NewRedisClient(ctx, cfg.RedisAddress)
	if err != nil {
		return coordination{}, fmt.Errorf("connect redis: %w", err)
	}
	return coordination{
		deduper: cache.NewEventDeduper(rdb),
		locker:  cache.NewLocker(rdb),
		close:   func() { _ = rdb.Close() },
	}, nil
}

type notifier struct {
	dispatcher interfaces.INotificationDispatcher
	close      func()
}

func newNotifier(ctx context.Context, cfg config.Config, templates interfaces.ITemplateRepository, log logrus.FieldLogger) (notifier, error) {
	if cfg.PubSubProjectID == "" {
		log.Info("PUBSUB_PROJECT_ID not set, notifications are only logged")
		return notifier{
			dispatcher: notifications.NewLogNotifier(cfg.DefaultPhoneRegion, log),
			close:      func() {},
		}, nil
	}

	loc, err := time.LoadLocation(cfg.VenueTimezone)
	if err != nil {
		return notifier{}, fmt.Errorf("load VENUE_TIMEZONE %q: %w", cfg.VenueTimezone, err)
	}
	client, err := notifications.NewPubSubClient(ctx, cfg.PubSubProjectID, cfg.PubSubCredentialsJSON)
	if err != nil {
		return notifier{}, fmt.Errorf("create pubsub client: %w", err)
	}
	pub, err := notifications.NewTopicPublisher(ctx, client, cfg.NotificationsTopic)
	if err != nil {
		_ = client.Close()
		return notifier{}, err
	}
	return notifier{
		dispatcher: notifications.NewPubSubNotifier(pub, notifications.PubSubOptions{
			DefaultRegion: cfg.DefaultPhoneRegion,
			Location:      loc,
			Templates:     templates,
			Logger:        log,
		}),
		close: func() { _ = client.Close() },
	}, nil
}
