package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"quadra_billing/internal/domain/entities"
	"quadra_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrReservationNotFound    = errors.New("reservation not found")
	ErrInvalidReservationID   = errors.New("invalid reservation_id")
	ErrInvalidReservation     = errors.New("invalid reservation")
	ErrReservationNotPayable  = errors.New("reservation is not pending payment")
	ErrReservationCancelled   = errors.New("reservation cancelled")
	ErrUnknownParticipant     = errors.New("participant does not belong to reservation")
	ErrInvalidParticipantData = errors.New("invalid participant")
)

type ParticipantInput struct {
	Name    string
	Contact string
}

type CreateReservationInput struct {
	CourtName    string
	Date         string
	StartTime    string
	Contact      string
	TotalValue   decimal.Decimal
	Participants []ParticipantInput
}

// IReservationUseCase is the booking-side surface this service keeps: it
// creates reservations and reads them back. Confirmation and cancellation
// only happen through payment reconciliation.
type IReservationUseCase interface {
	Create(ctx context.Context, in CreateReservationInput) (entities.Reservation, []entities.Participant, error)
	GetByID(ctx context.Context, id string) (entities.Reservation, error)
	ListParticipants(ctx context.Context, reservationID string) ([]entities.Participant, error)
}

type ReservationUseCase struct {
	repo interfaces.IReservationRepository
	now  func() time.Time
}

var _ IReservationUseCase = (*ReservationUseCase)(nil)

func NewReservationUseCase(repo interfaces.IReservationRepository) *ReservationUseCase {
	return &ReservationUseCase{repo: repo, now: time.Now}
}

func (u *ReservationUseCase) Create(ctx context.Context, in CreateReservationInput) (entities.Reservation, []entities.Participant, error) {
	if err := validateReservationInput(in); err != nil {
		return entities.Reservation{}, nil, err
	}

	now := u.now().UTC()
	r := entities.Reservation{
		ID:         uuid.NewString(),
		Status:     entities.ReservationStatusPending,
		TotalValue: in.TotalValue.Round(2),
		CourtName:  strings.TrimSpace(in.CourtName),
		Date:       in.Date,
		StartTime:  in.StartTime,
		Contact:    strings.TrimSpace(in.Contact),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	participants := make([]entities.Participant, 0, len(in.Participants))
	for _, p := range in.Participants {
		participants = append(participants, entities.Participant{
			ID:            uuid.NewString(),
			ReservationID: r.ID,
			Name:          strings.TrimSpace(p.Name),
			Contact:       strings.TrimSpace(p.Contact),
			PaymentStatus: entities.ParticipantPaymentPending,
		})
	}

	created, err := u.repo.Create(ctx, r, participants)
	if err != nil {
		return entities.Reservation{}, nil, fmt.Errorf("create reservation: %w", err)
	}
	return created, participants, nil
}

func (u *ReservationUseCase) GetByID(ctx context.Context, id string) (entities.Reservation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Reservation{}, ErrInvalidReservationID
	}
	r, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Reservation{}, err
	}
	if r.ID == "" {
		return entities.Reservation{}, ErrReservationNotFound
	}
	return r, nil
}

func (u *ReservationUseCase) ListParticipants(ctx context.Context, reservationID string) ([]entities.Participant, error) {
	if _, err := u.GetByID(ctx, reservationID); err != nil {
		return nil, err
	}
	return u.repo.ListParticipants(ctx, strings.TrimSpace(reservationID))
}

func validateReservationInput(in CreateReservationInput) error {
	if strings.TrimSpace(in.CourtName) == "" {
		return fmt.Errorf("%w: court_name is required", ErrInvalidReservation)
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidReservation)
	}
	if _, err := time.Parse("15:04", in.StartTime); err != nil {
		return fmt.Errorf("%w: start_time must be HH:MM", ErrInvalidReservation)
	}
	if !in.TotalValue.IsPositive() {
		return fmt.Errorf("%w: total_value must be greater than zero", ErrInvalidReservation)
	}
	for i, p := range in.Participants {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("%w: participants[%d].name is required", ErrInvalidParticipantData, i)
		}
	}
	return nil
}
