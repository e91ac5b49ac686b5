package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReservationStatus represents the lifecycle of a court reservation.
//
// Domain notes:
//   - A reservation becomes confirmed only as a side effect of its payment
//     reaching confirmed/received.
//   - Reservations are never deleted.
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// Reservation is a time-boxed court booking.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Date is YYYY-MM-DD and StartTime is HH:MM in the venue timezone.
type Reservation struct {
	ID                 string            `json:"id"`
	Status             ReservationStatus `json:"status"`
	CancellationReason string            `json:"cancellation_reason,omitempty"`
	TotalValue         decimal.Decimal   `json:"total_value"`
	Rateio             *RateioConfig     `json:"rateio,omitempty"`
	CourtName          string            `json:"court_name"`
	Date               string            `json:"date"`
	StartTime          string            `json:"start_time"`
	Contact            string            `json:"contact"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// ParticipantPaymentStatus tracks what a participant already paid.
type ParticipantPaymentStatus string

const (
	ParticipantPaymentPending ParticipantPaymentStatus = "pending"
	ParticipantPaymentPartial ParticipantPaymentStatus = "partial"
	ParticipantPaymentPaid    ParticipantPaymentStatus = "paid"
)

// Participant belongs to a reservation and owes either a fixed amount or a
// percentage, depending on the rateio mode.
//
// Storage model (DynamoDB):
//   - PK: reservation_id
//   - SK: id
type Participant struct {
	ID            string                   `json:"id"`
	ReservationID string                   `json:"reservation_id"`
	Name          string                   `json:"name"`
	Contact       string                   `json:"contact"`
	PaymentStatus ParticipantPaymentStatus `json:"payment_status"`
	OwedAmount    *decimal.Decimal         `json:"owed_amount,omitempty"`
	OwedPercent   *decimal.Decimal         `json:"owed_percent,omitempty"`
}

// RateioMode selects how a reservation total is split.
type RateioMode string

const (
	RateioModeEqual   RateioMode = "equal"
	RateioModeFixed   RateioMode = "fixed"
	RateioModePercent RateioMode = "percent"
)

func (m RateioMode) Valid() bool {
	switch m {
	case RateioModeEqual, RateioModeFixed, RateioModePercent:
		return true
	}
	return false
}

// RateioShare is one participant's entry in a rateio configuration.
type RateioShare struct {
	ParticipantID string           `json:"participant_id"`
	Value         *decimal.Decimal `json:"value,omitempty"`
	Percent       *decimal.Decimal `json:"percent,omitempty"`
}

// RateioConfig is the accepted split of a reservation, in participant order.
type RateioConfig struct {
	Mode   RateioMode    `json:"mode"`
	Shares []RateioShare `json:"shares"`
}
