package usecase

import (
	"context"
	"errors"
	"testing"

	"quadra_billing/internal/domain/entities"
	"quadra_billing/internal/infrastructure/logger"
	mock_interfaces "quadra_billing/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func TestRateioUseCase_Configure(t *testing.T) {
	participants := []entities.Participant{
		{ID: "a", ReservationID: "R1", Name: "Ana"},
		{ID: "b", ReservationID: "R1", Name: "Bia"},
		{ID: "c", ReservationID: "R1", Name: "Caio"},
	}

	newUC := func(t *testing.T) (*RateioUseCase, *mock_interfaces.MockIReservationRepository) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIReservationRepository(ctrl)
		return NewRateioUseCase(repo, nil, logger.Discard()), repo
	}

	t.Run("equal with no list covers every participant", func(t *testing.T) {
		uc, repo := newUC(t)
		repo.EXPECT().GetByID(gomock.Any(), "R1").Return(pendingReservation(), nil)
		repo.EXPECT().ListParticipants(gomock.Any(), "R1").Return(participants, nil)
		repo.EXPECT().SaveRateio(gomock.Any(), "R1", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, cfg entities.RateioConfig, ps []entities.Participant) error {
				if cfg.Mode != entities.RateioModeEqual || len(cfg.Shares) != 3 {
					t.Fatalf("unexpected config %+v", cfg)
				}
				for _, p := range ps {
					if p.OwedAmount == nil || !p.OwedAmount.Equal(decimal.NewFromInt(100)) {
						t.Fatalf("expected 100.00 owed by %s", p.ID)
					}
					if p.OwedPercent != nil {
						t.Fatalf("equal split must not store percentages")
					}
				}
				return nil
			})

		res, err := uc.Configure(context.Background(), "R1", RateioInput{Mode: entities.RateioModeEqual})
		if err != nil || !res.Valid {
			t.Fatalf("unexpected result %+v, %v", res, err)
		}
	})

	t.Run("percent stores percentages", func(t *testing.T) {
		uc, repo := newUC(t)
		repo.EXPECT().GetByID(gomock.Any(), "R1").Return(pendingReservation(), nil)
		repo.EXPECT().ListParticipants(gomock.Any(), "R1").Return(participants, nil)
		repo.EXPECT().SaveRateio(gomock.Any(), "R1", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ entities.RateioConfig, ps []entities.Participant) error {
				if ps[0].OwedPercent == nil || !ps[0].OwedPercent.Equal(decimal.NewFromInt(40)) {
					t.Fatalf("expected 40%% on first participant")
				}
				if ps[0].OwedAmount != nil {
					t.Fatalf("percent split must not store amounts")
				}
				return nil
			})

		_, err := uc.Configure(context.Background(), "R1", RateioInput{
			Mode: entities.RateioModePercent,
			Participants: []RateioParticipantInput{
				{ID: "a", Percentual: dec("40")},
				{ID: "b", Percentual: dec("35")},
				{ID: "c", Percentual: dec("25")},
			},
		})
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	})

	t.Run("rejected configuration is not saved", func(t *testing.T) {
		uc, repo := newUC(t)
		repo.EXPECT().GetByID(gomock.Any(), "R1").Return(pendingReservation(), nil)
		repo.EXPECT().ListParticipants(gomock.Any(), "R1").Return(participants, nil)

		res, err := uc.Configure(context.Background(), "R1", RateioInput{
			Mode: entities.RateioModeFixed,
			Participants: []RateioParticipantInput{
				{ID: "a", Valor: dec("150")},
				{ID: "b", Valor: dec("100")},
				{ID: "c", Valor: dec("60")},
			},
		})
		if !errors.Is(err, ErrRateioInvalid) {
			t.Fatalf("expected ErrRateioInvalid, got %v", err)
		}
		if !hasViolation(res, ViolationFixedSumExceedsTotal) {
			t.Fatalf("expected violations to be returned, got %+v", res)
		}
	})

	t.Run("unknown participant", func(t *testing.T) {
		uc, repo := newUC(t)
		repo.EXPECT().GetByID(gomock.Any(), "R1").Return(pendingReservation(), nil)
		repo.EXPECT().ListParticipants(gomock.Any(), "R1").Return(participants, nil)

		_, err := uc.Configure(context.Background(), "R1", RateioInput{
			Mode:         entities.RateioModeFixed,
			Participants: []RateioParticipantInput{{ID: "zz", Valor: dec("10")}},
		})
		if !errors.Is(err, ErrUnknownParticipant) {
			t.Fatalf("expected ErrUnknownParticipant, got %v", err)
		}
	})

	t.Run("cancelled reservation", func(t *testing.T) {
		uc, repo := newUC(t)
		r := pendingReservation()
		r.Status = entities.ReservationStatusCancelled
		repo.EXPECT().GetByID(gomock.Any(), "R1").Return(r, nil)

		if _, err := uc.Configure(context.Background(), "R1", RateioInput{Mode: entities.RateioModeEqual}); !errors.Is(err, ErrReservationCancelled) {
			t.Fatalf("expected ErrReservationCancelled, got %v", err)
		}
	})

	t.Run("missing reservation", func(t *testing.T) {
		uc, repo := newUC(t)
		repo.EXPECT().GetByID(gomock.Any(), "R2").Return(entities.Reservation{}, nil)

		if _, err := uc.Configure(context.Background(), "R2", RateioInput{Mode: entities.RateioModeEqual}); !errors.Is(err, ErrReservationNotFound) {
			t.Fatalf("expected ErrReservationNotFound, got %v", err)
		}
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		uc, repo := newUC(t)
		boom := errors.New("boom")
		repo.EXPECT().GetByID(gomock.Any(), "R1").Return(entities.Reservation{}, boom)

		if _, err := uc.Configure(context.Background(), "R1", RateioInput{Mode: entities.RateioModeEqual}); !errors.Is(err, boom) {
			t.Fatalf("expected wrapped store error, got %v", err)
		}
	})
}

func TestRateioUseCase_Preview(t *testing.T) {
	uc := NewRateioUseCase(nil, nil, logger.Discard())
	res := uc.Preview(decimal.NewFromInt(90), RateioInput{
		Mode:         entities.RateioModeEqual,
		Participants: []RateioParticipantInput{{ID: "a"}, {ID: "b"}},
	})
	if !res.Valid || !res.Shares[1].Amount.Equal(decimal.NewFromInt(45)) {
		t.Fatalf("unexpected preview %+v", res)
	}
}
