package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the local lifecycle of a charge.
//
// Statuses only move forward along the graph returned by AllowedPredecessors;
// refunded and cancelled are terminal.
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusConfirmed  PaymentStatus = "confirmed"
	PaymentStatusReceived   PaymentStatus = "received"
	PaymentStatusOverdue    PaymentStatus = "overdue"
	PaymentStatusRefunded   PaymentStatus = "refunded"
	PaymentStatusCancelled  PaymentStatus = "cancelled"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending:    {PaymentStatusProcessing, PaymentStatusConfirmed, PaymentStatusReceived, PaymentStatusOverdue, PaymentStatusCancelled},
	PaymentStatusProcessing: {PaymentStatusConfirmed, PaymentStatusReceived, PaymentStatusOverdue, PaymentStatusCancelled},
	PaymentStatusOverdue:    {PaymentStatusConfirmed, PaymentStatusReceived, PaymentStatusCancelled},
	PaymentStatusConfirmed:  {PaymentStatusReceived, PaymentStatusRefunded},
	PaymentStatusReceived:   {PaymentStatusRefunded},
}

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusProcessing, PaymentStatusConfirmed, PaymentStatusReceived,
		PaymentStatusOverdue, PaymentStatusRefunded, PaymentStatusCancelled:
		return true
	}
	return false
}

// IsOpen reports whether the payment still waits for the provider.
func (s PaymentStatus) IsOpen() bool {
	return s == PaymentStatusPending || s == PaymentStatusProcessing
}

// IsSuccess reports whether the provider settled the charge.
func (s PaymentStatus) IsSuccess() bool {
	return s == PaymentStatusConfirmed || s == PaymentStatusReceived
}

func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusRefunded || s == PaymentStatusCancelled
}

// CanTransitionTo reports whether moving from s to next changes state along the graph.
// A self transition is not a transition.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, to := range paymentTransitions[s] {
		if to == next {
			return true
		}
	}
	return false
}

// AllowedPredecessors lists every status from which target can be reached in one step.
// Stores use it as the condition of an atomic status update.
func AllowedPredecessors(target PaymentStatus) []PaymentStatus {
	var out []PaymentStatus
	for _, from := range []PaymentStatus{
		PaymentStatusPending, PaymentStatusProcessing, PaymentStatusOverdue,
		PaymentStatusConfirmed, PaymentStatusReceived,
	} {
		if from.CanTransitionTo(target) {
			out = append(out, from)
		}
	}
	return out
}

// BillingMethod is the closed set of provider billing types.
type BillingMethod string

const (
	BillingMethodPix        BillingMethod = "pix"
	BillingMethodCreditCard BillingMethod = "credit_card"
	BillingMethodBoleto     BillingMethod = "boleto"
)

func (m BillingMethod) Valid() bool {
	switch m {
	case BillingMethodPix, BillingMethodCreditCard, BillingMethodBoleto:
		return true
	}
	return false
}

// Payment is a charge originated by a reservation or credit purchase.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (provider_payment_id-index): provider_payment_id
//   - GSI2 (reservation_id-index): reservation_id, sorted by created_at
//
// ProviderPaymentID stays empty until the gateway answers or a webhook
// backfills it through the reservation fallback lookup.
type Payment struct {
	ID                string          `json:"id"`
	ProviderPaymentID string          `json:"provider_payment_id,omitempty"`
	CustomerID        string          `json:"customer_id,omitempty"`
	ReservationID     string          `json:"reservation_id,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	NetValue          decimal.Decimal `json:"net_value"`
	BillingMethod     BillingMethod   `json:"billing_method"`
	Status            PaymentStatus   `json:"status"`
	Metadata          map[string]any  `json:"metadata,omitempty"`
	DueDate           string          `json:"due_date,omitempty"`
	PaidAt            *time.Time      `json:"paid_at,omitempty"`
	ConfirmedAt       *time.Time      `json:"confirmed_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// MetadataString returns a string metadata value or "".
func (p Payment) MetadataString(key string) string {
	if p.Metadata == nil {
		return ""
	}
	if s, ok := p.Metadata[key].(string); ok {
		return s
	}
	return ""
}

// PaymentStatusUpdate describes a conditional status write.
//
// The store applies it only when the stored status is one of AllowedFrom,
// which makes redelivered events no-ops.
type PaymentStatusUpdate struct {
	Status      PaymentStatus
	AllowedFrom []PaymentStatus
	PaidAt      *time.Time
	ConfirmedAt *time.Time
	NetValue    *decimal.Decimal
	Metadata    map[string]any
}

// NewPaymentStatusUpdate builds an update whose condition is the status graph.
func NewPaymentStatusUpdate(target PaymentStatus) PaymentStatusUpdate {
	return PaymentStatusUpdate{Status: target, AllowedFrom: AllowedPredecessors(target)}
}
