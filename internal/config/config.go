package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreDynamoDB = "dynamodb"
	StoreSQLite   = "sqlite"

	ProviderAsaas       = "asaas"
	ProviderMercadoPago = "mercadopago"
)

// Config is the service configuration read from the environment.
// A .env file is loaded first by the godotenv autoload import in cmd/api.
type Config struct {
	Port     int
	LogLevel string

	StoreDriver string
	SQLitePath  string

	AWSRegion         string
	DynamoDBEndpoint  string
	PaymentsTable     string
	ReservationsTable string
	ParticipantsTable string
	TemplatesTable    string

	PaymentProvider        string
	AsaasAPIURL            string
	AsaasAccessToken       string
	MercadoPagoAccessToken string
	PaymentGatewayMock     bool
	GatewayTimeout         time.Duration
	GatewayMaxRetries      int

	WebhookSecret string

	RedisAddress string

	PubSubProjectID       string
	PubSubCredentialsJSON string
	NotificationsTopic    string
	NotifyWorkers         int
	NotifyQueueSize       int
	NotifyTimeout         time.Duration
	OrphanAlertEnabled    bool
	DefaultPhoneRegion    string
	VenueTimezone         string
}

// Load reads the configuration, applying defaults for everything optional.
func Load() Config {
	return Config{
		Port:     getenvInt("PORT", 8080),
		LogLevel: getenvDefault("LOG_LEVEL", "info"),

		StoreDriver: strings.ToLower(getenvDefault("STORE_DRIVER", StoreDynamoDB)),
		SQLitePath:  getenvDefault("SQLITE_PATH", "file:quadra_billing.db"),

		AWSRegion:         getenvDefault("AWS_REGION", "us-east-1"),
		DynamoDBEndpoint:  os.Getenv("DYNAMODB_ENDPOINT"),
		PaymentsTable:     getenvDefault("PAYMENTS_TABLE", "payments"),
		ReservationsTable: getenvDefault("RESERVATIONS_TABLE", "reservations"),
		ParticipantsTable: getenvDefault("PARTICIPANTS_TABLE", "reservation_participants"),
		TemplatesTable:    getenvDefault("TEMPLATES_TABLE", "notification_templates"),

		PaymentProvider:        strings.ToLower(getenvDefault("PAYMENT_PROVIDER", ProviderAsaas)),
		AsaasAPIURL:            getenvDefault("ASAAS_API_URL", "https://sandbox.asaas.com/api"),
		AsaasAccessToken:       os.Getenv("ASAAS_ACCESS_TOKEN"),
		MercadoPagoAccessToken: os.Getenv("MERCADOPAGO_ACCESS_TOKEN"),
		PaymentGatewayMock:     getenvBool("PAYMENT_GATEWAY_MOCK", false),
		GatewayTimeout:         time.Duration(getenvInt("GATEWAY_TIMEOUT_SECONDS", 15)) * time.Second,
		GatewayMaxRetries:      getenvInt("GATEWAY_MAX_RETRIES", 2),

		WebhookSecret: os.Getenv("WEBHOOK_SECRET"),

		RedisAddress: os.Getenv("REDIS_ADDRESS"),

		PubSubProjectID:       os.Getenv("PUBSUB_PROJECT_ID"),
		PubSubCredentialsJSON: os.Getenv("PUBSUB_CREDENTIALS_JSON"),
		NotificationsTopic:    getenvDefault("NOTIFICATIONS_TOPIC", "notifications"),
		NotifyWorkers:         getenvInt("NOTIFY_WORKERS", 4),
		NotifyQueueSize:       getenvInt("NOTIFY_QUEUE_SIZE", 256),
		NotifyTimeout:         time.Duration(getenvInt("NOTIFY_TIMEOUT_SECONDS", 10)) * time.Second,
		OrphanAlertEnabled:    getenvBool("ORPHAN_ALERT_ENABLED", false),
		DefaultPhoneRegion:    getenvDefault("DEFAULT_PHONE_REGION", "BR"),
		VenueTimezone:         getenvDefault("VENUE_TIMEZONE", "America/Sao_Paulo"),
	}
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func getenvBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}
