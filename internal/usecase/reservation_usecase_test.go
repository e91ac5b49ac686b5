package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"quadra_billing/internal/domain/entities"
	mock_interfaces "quadra_billing/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func TestReservationUseCase_Create(t *testing.T) {
	valid := CreateReservationInput{
		CourtName:  " Quadra 2 ",
		Date:       "2026-10-20",
		StartTime:  "18:30",
		Contact:    "+5511999990000",
		TotalValue: decimal.RequireFromString("240.004"),
		Participants: []ParticipantInput{
			{Name: "Ana", Contact: "+5511988887777"},
			{Name: "Bia"},
		},
	}

	t.Run("creates pending reservation with participants", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIReservationRepository(ctrl)
		uc := NewReservationUseCase(repo)
		uc.now = func() time.Time { return time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC) }

		repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r entities.Reservation, ps []entities.Participant) (entities.Reservation, error) {
				if len(ps) != 2 || ps[0].ReservationID != r.ID || ps[1].PaymentStatus != entities.ParticipantPaymentPending {
					t.Fatalf("unexpected participants %+v", ps)
				}
				return r, nil
			})

		r, ps, err := uc.Create(context.Background(), valid)
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if r.ID == "" || r.Status != entities.ReservationStatusPending || r.CourtName != "Quadra 2" {
			t.Fatalf("unexpected reservation %+v", r)
		}
		if !r.TotalValue.Equal(decimal.RequireFromString("240")) {
			t.Fatalf("expected total rounded to cents, got %s", r.TotalValue)
		}
		if len(ps) != 2 {
			t.Fatalf("expected 2 participants, got %d", len(ps))
		}
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		cases := map[string]func(in *CreateReservationInput){
			"court":  func(in *CreateReservationInput) { in.CourtName = "" },
			"date":   func(in *CreateReservationInput) { in.Date = "20/10/2026" },
			"time":   func(in *CreateReservationInput) { in.StartTime = "7pm" },
			"total":  func(in *CreateReservationInput) { in.TotalValue = decimal.Zero },
			"person": func(in *CreateReservationInput) { in.Participants = []ParticipantInput{{Name: " "}} },
		}
		for name, mutate := range cases {
			t.Run(name, func(t *testing.T) {
				uc := NewReservationUseCase(nil)
				in := valid
				mutate(&in)
				_, _, err := uc.Create(context.Background(), in)
				if !errors.Is(err, ErrInvalidReservation) && !errors.Is(err, ErrInvalidParticipantData) {
					t.Fatalf("expected validation error, got %v", err)
				}
			})
		}
	})
}

func TestReservationUseCase_Read(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIReservationRepository(ctrl)
	uc := NewReservationUseCase(repo)

	t.Run("not found", func(t *testing.T) {
		repo.EXPECT().GetByID(gomock.Any(), "R9").Return(entities.Reservation{}, nil)
		if _, err := uc.GetByID(context.Background(), "R9"); !errors.Is(err, ErrReservationNotFound) {
			t.Fatalf("expected ErrReservationNotFound, got %v", err)
		}
	})

	t.Run("blank id", func(t *testing.T) {
		if _, err := uc.GetByID(context.Background(), "  "); !errors.Is(err, ErrInvalidReservationID) {
			t.Fatalf("expected ErrInvalidReservationID, got %v", err)
		}
	})

	t.Run("participants", func(t *testing.T) {
		repo.EXPECT().GetByID(gomock.Any(), "R1").Return(pendingReservation(), nil)
		repo.EXPECT().ListParticipants(gomock.Any(), "R1").Return([]entities.Participant{{ID: "a"}}, nil)

		ps, err := uc.ListParticipants(context.Background(), "R1")
		if err != nil || len(ps) != 1 {
			t.Fatalf("unexpected participants %+v, %v", ps, err)
		}
	})
}
