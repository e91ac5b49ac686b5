package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"quadra_billing/internal/domain/entities"
	"quadra_billing/internal/infrastructure/logger"
	"quadra_billing/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var ErrRateioInvalid = errors.New("rateio configuration rejected")

// IRateioUseCase persists accepted split configurations.
type IRateioUseCase interface {
	Configure(ctx context.Context, reservationID string, in RateioInput) (RateioResult, error)
	Preview(total decimal.Decimal, in RateioInput) RateioResult
}

type RateioUseCase struct {
	reservations interfaces.IReservationRepository
	engine       *RateioEngine
	log          *logrus.Entry
}

var _ IRateioUseCase = (*RateioUseCase)(nil)

func NewRateioUseCase(reservations interfaces.IReservationRepository, engine *RateioEngine, log logrus.FieldLogger) *RateioUseCase {
	if engine == nil {
		engine = NewRateioEngine()
	}
	return &RateioUseCase{reservations: reservations, engine: engine, log: logger.Component(log, "rateio")}
}

// Configure validates in against the reservation total and, when accepted,
// stores the configuration and every participant's owed value. An equal
// split with no participants listed covers every participant of the
// reservation. A rejected configuration returns the result and ErrRateioInvalid.
func (u *RateioUseCase) Configure(ctx context.Context, reservationID string, in RateioInput) (RateioResult, error) {
	reservationID = strings.TrimSpace(reservationID)
	if reservationID == "" {
		return RateioResult{}, ErrInvalidReservationID
	}
	res, err := u.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return RateioResult{}, fmt.Errorf("load reservation: %w", err)
	}
	if res.ID == "" {
		return RateioResult{}, ErrReservationNotFound
	}
	if res.Status == entities.ReservationStatusCancelled {
		return RateioResult{}, ErrReservationCancelled
	}
	participants, err := u.reservations.ListParticipants(ctx, reservationID)
	if err != nil {
		return RateioResult{}, fmt.Errorf("load participants: %w", err)
	}

	known := make(map[string]int, len(participants))
	for i, p := range participants {
		known[p.ID] = i
	}
	if in.Mode == entities.RateioModeEqual && len(in.Participants) == 0 {
		for _, p := range participants {
			in.Participants = append(in.Participants, RateioParticipantInput{ID: p.ID})
		}
	}
	for _, p := range in.Participants {
		if _, ok := known[p.ID]; !ok && p.ID != "" {
			return RateioResult{}, fmt.Errorf("%w: %s", ErrUnknownParticipant, p.ID)
		}
	}

	result := u.engine.Compute(res.TotalValue, in)
	log := u.log.WithFields(logrus.Fields{"reservation_id": reservationID, "mode": in.Mode})
	if !result.Valid {
		log.WithField("violations", len(result.Violations)).Info("rateio rejected")
		return result, ErrRateioInvalid
	}

	updated := make([]entities.Participant, len(participants))
	for i, p := range participants {
		p.OwedAmount, p.OwedPercent = nil, nil
		updated[i] = p
	}
	for _, s := range result.Shares {
		p := &updated[known[s.ParticipantID]]
		amount, percent := s.Amount, s.Percent
		if in.Mode == entities.RateioModePercent {
			p.OwedPercent = &percent
		} else {
			p.OwedAmount = &amount
		}
	}

	if err := u.reservations.SaveRateio(ctx, reservationID, result.Config(), updated); err != nil {
		return RateioResult{}, fmt.Errorf("save rateio: %w", err)
	}
	log.WithField("remainder", result.Remainder.StringFixed(2)).Info("rateio configured")
	return result, nil
}

func (u *RateioUseCase) Preview(total decimal.Decimal, in RateioInput) RateioResult {
	return u.engine.Compute(total, in)
}
