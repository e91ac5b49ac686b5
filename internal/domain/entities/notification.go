package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// NotificationTemplate is a message template looked up by key. Rendering
// happens in the messaging service; this service only ships the body.
//
// Storage model (DynamoDB):
//   - PK: key
type NotificationTemplate struct {
	Key       string    `json:"key"`
	Channel   string    `json:"channel"`
	Body      string    `json:"body"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	TemplatePaymentConfirmed = "payment_confirmed"
	TemplateReminderPreGame  = "reminder_pre_game"
	TemplateReminderPostGame = "reminder_post_game"
	TemplateOperatorAlert    = "operator_alert"
)

// PaymentConfirmation are the facts sent to the payer when a charge settles.
type PaymentConfirmation struct {
	PaymentID         string          `json:"payment_id"`
	ProviderPaymentID string          `json:"provider_payment_id"`
	ReservationID     string          `json:"reservation_id,omitempty"`
	ParticipantName   string          `json:"participant_name,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	BillingMethod     BillingMethod   `json:"billing_method"`
	PaidAt            time.Time       `json:"paid_at"`
}

// ReminderRequest schedules the pre-game and post-game messages of a reservation.
type ReminderRequest struct {
	ReservationID    string   `json:"reservation_id"`
	Contact          string   `json:"contact"`
	Court            string   `json:"court"`
	Date             string   `json:"date"`
	Time             string   `json:"time"`
	ParticipantNames []string `json:"participant_names"`
}

// OperatorAlert surfaces a reconciliation gap for manual handling.
type OperatorAlert struct {
	Kind              string          `json:"kind"`
	ProviderPaymentID string          `json:"provider_payment_id"`
	ExternalReference string          `json:"external_reference,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	Message           string          `json:"message"`
}
