package interfaces

import (
	"context"
	"quadra_billing/internal/domain/entities"
)

// IReservationRepository abstracts persistence for Reservation and its participants.
//
// The billing-service must be able to:
//   - create a reservation on behalf of the booking flow
//   - confirm/cancel it as a side effect of payment reconciliation (conditional on current status)
//   - persist an accepted rateio configuration with the per-participant owed values

type IReservationRepository interface {
	Create(ctx context.Context, r entities.Reservation, participants []entities.Participant) (entities.Reservation, error)
	GetByID(ctx context.Context, id string) (entities.Reservation, error)
	UpdateStatus(ctx context.Context, id string, to entities.ReservationStatus, from []entities.ReservationStatus, reason string) error
	ListParticipants(ctx context.Context, reservationID string) ([]entities.Participant, error)
	UpdateParticipantPaymentStatus(ctx context.Context, reservationID, participantID string, status entities.ParticipantPaymentStatus) error
	SaveRateio(ctx context.Context, reservationID string, cfg entities.RateioConfig, participants []entities.Participant) error
}
