package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"quadra_billing/internal/domain/entities"
	"quadra_billing/internal/infrastructure/database"
	"quadra_billing/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.InitSQLite("file::memory:")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedPayment(id, reservationID string, status entities.PaymentStatus, createdAt time.Time) entities.Payment {
	return entities.Payment{
		ID:            id,
		ReservationID: reservationID,
		Amount:        decimal.RequireFromString("120.00"),
		BillingMethod: entities.BillingMethodPix,
		Status:        status,
		Metadata:      map[string]any{"origin": "reservation"},
		DueDate:       "2026-10-20",
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
}

func TestPaymentSQLiteRepository(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	t.Run("create and lookups", func(t *testing.T) {
		repo := NewPaymentSQLiteRepository(openTestDB(t))
		if _, err := repo.Create(ctx, seedPayment("p1", "r1", entities.PaymentStatusPending, base)); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}

		got, err := repo.GetByID(ctx, "p1")
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if got.ID != "p1" || !got.Amount.Equal(decimal.RequireFromString("120")) || got.MetadataString("origin") != "reservation" {
			t.Fatalf("unexpected payment: %+v", got)
		}
		if !got.CreatedAt.Equal(base) {
			t.Fatalf("expected created_at %v, got %v", base, got.CreatedAt)
		}

		missing, err := repo.GetByID(ctx, "nope")
		if err != nil || missing.ID != "" {
			t.Fatalf("expected zero value for unknown id, got %+v / %v", missing, err)
		}

		if err := repo.SetProviderPaymentID(ctx, "p1", "pay_123"); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		byProvider, err := repo.GetByProviderPaymentID(ctx, "pay_123")
		if err != nil || byProvider.ID != "p1" {
			t.Fatalf("expected p1 by provider id, got %+v / %v", byProvider, err)
		}
	})

	t.Run("provider id is write once", func(t *testing.T) {
		repo := NewPaymentSQLiteRepository(openTestDB(t))
		_, _ = repo.Create(ctx, seedPayment("p1", "r1", entities.PaymentStatusPending, base))

		if err := repo.SetProviderPaymentID(ctx, "p1", "pay_1"); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if err := repo.SetProviderPaymentID(ctx, "p1", "pay_1"); err != nil {
			t.Fatalf("expected same id to be accepted again, got %v", err)
		}
		if err := repo.SetProviderPaymentID(ctx, "p1", "pay_2"); !errors.Is(err, interfaces.ErrNotApplied) {
			t.Fatalf("expected ErrNotApplied, got %v", err)
		}
	})

	t.Run("latest open and list order", func(t *testing.T) {
		repo := NewPaymentSQLiteRepository(openTestDB(t))
		_, _ = repo.Create(ctx, seedPayment("old", "r1", entities.PaymentStatusPending, base))
		_, _ = repo.Create(ctx, seedPayment("new", "r1", entities.PaymentStatusProcessing, base.Add(time.Minute)))
		_, _ = repo.Create(ctx, seedPayment("done", "r1", entities.PaymentStatusConfirmed, base.Add(2*time.Minute)))
		_, _ = repo.Create(ctx, seedPayment("other", "r2", entities.PaymentStatusPending, base.Add(3*time.Minute)))

		latest, err := repo.FindLatestOpenByReservationID(ctx, "r1")
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if latest.ID != "new" {
			t.Fatalf("expected new, got %s", latest.ID)
		}

		list, err := repo.ListByReservationID(ctx, "r1")
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if len(list) != 3 || list[0].ID != "old" || list[2].ID != "done" {
			t.Fatalf("unexpected list: %+v", list)
		}
	})

	t.Run("conditional status update is idempotent", func(t *testing.T) {
		repo := NewPaymentSQLiteRepository(openTestDB(t))
		repo.now = func() time.Time { return base.Add(time.Hour) }
		_, _ = repo.Create(ctx, seedPayment("p1", "r1", entities.PaymentStatusPending, base))

		paidAt := base.Add(30 * time.Minute)
		net := decimal.RequireFromString("117.60")
		upd := entities.NewPaymentStatusUpdate(entities.PaymentStatusConfirmed)
		upd.PaidAt = &paidAt
		upd.NetValue = &net
		upd.Metadata = map[string]any{"last_event": "PAYMENT_CONFIRMED"}

		got, err := repo.UpdateStatus(ctx, "p1", upd)
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if got.Status != entities.PaymentStatusConfirmed || got.PaidAt == nil || !got.PaidAt.Equal(paidAt) {
			t.Fatalf("unexpected payment after update: %+v", got)
		}
		if !got.NetValue.Equal(net) {
			t.Fatalf("expected net value %s, got %s", net, got.NetValue)
		}
		if got.MetadataString("origin") != "reservation" || got.MetadataString("last_event") != "PAYMENT_CONFIRMED" {
			t.Fatalf("expected merged metadata, got %v", got.Metadata)
		}

		if _, err := repo.UpdateStatus(ctx, "p1", upd); !errors.Is(err, interfaces.ErrNotApplied) {
			t.Fatalf("expected ErrNotApplied on redelivery, got %v", err)
		}
		if _, err := repo.UpdateStatus(ctx, "missing", upd); !errors.Is(err, interfaces.ErrNotApplied) {
			t.Fatalf("expected ErrNotApplied for unknown id, got %v", err)
		}
		if _, err := repo.UpdateStatus(ctx, "p1", entities.PaymentStatusUpdate{Status: entities.PaymentStatusPending}); !errors.Is(err, interfaces.ErrNotApplied) {
			t.Fatalf("expected ErrNotApplied without predecessors, got %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		repo := NewPaymentSQLiteRepository(openTestDB(t))
		_, _ = repo.Create(ctx, seedPayment("p1", "r1", entities.PaymentStatusPending, base))
		if err := repo.Delete(ctx, "p1"); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		got, _ := repo.GetByID(ctx, "p1")
		if got.ID != "" {
			t.Fatalf("expected payment to be gone, got %+v", got)
		}
	})
}

func TestReservationSQLiteRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	newRepo := func(t *testing.T) *ReservationSQLiteRepository {
		repo := NewReservationSQLiteRepository(openTestDB(t))
		repo.now = func() time.Time { return now }
		res := entities.Reservation{
			ID: "r1", Status: entities.ReservationStatusPending, TotalValue: decimal.RequireFromString("300"),
			CourtName: "Quadra 1", Date: "2026-10-20", StartTime: "19:00", Contact: "+5511999990000",
			CreatedAt: now, UpdatedAt: now,
		}
		participants := []entities.Participant{
			{ID: "b", ReservationID: "r1", Name: "Bia", PaymentStatus: entities.ParticipantPaymentPending},
			{ID: "a", ReservationID: "r1", Name: "Ana", PaymentStatus: entities.ParticipantPaymentPending},
		}
		if _, err := repo.Create(ctx, res, participants); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		return repo
	}

	t.Run("create keeps participant order", func(t *testing.T) {
		repo := newRepo(t)
		got, err := repo.GetByID(ctx, "r1")
		if err != nil || got.CourtName != "Quadra 1" || !got.TotalValue.Equal(decimal.RequireFromString("300")) {
			t.Fatalf("unexpected reservation: %+v / %v", got, err)
		}
		ps, err := repo.ListParticipants(ctx, "r1")
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if len(ps) != 2 || ps[0].ID != "b" || ps[1].ID != "a" {
			t.Fatalf("expected insertion order, got %+v", ps)
		}
	})

	t.Run("status update is conditional", func(t *testing.T) {
		repo := newRepo(t)
		from := []entities.ReservationStatus{entities.ReservationStatusPending}
		if err := repo.UpdateStatus(ctx, "r1", entities.ReservationStatusConfirmed, from, ""); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if err := repo.UpdateStatus(ctx, "r1", entities.ReservationStatusConfirmed, from, ""); !errors.Is(err, interfaces.ErrNotApplied) {
			t.Fatalf("expected ErrNotApplied, got %v", err)
		}

		err := repo.UpdateStatus(ctx, "r1", entities.ReservationStatusCancelled,
			[]entities.ReservationStatus{entities.ReservationStatusConfirmed}, "payment refunded")
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		got, _ := repo.GetByID(ctx, "r1")
		if got.Status != entities.ReservationStatusCancelled || got.CancellationReason != "payment refunded" {
			t.Fatalf("unexpected reservation: %+v", got)
		}
	})

	t.Run("save rateio", func(t *testing.T) {
		repo := newRepo(t)
		v := decimal.RequireFromString("200")
		w := decimal.RequireFromString("100")
		cfg := entities.RateioConfig{Mode: entities.RateioModeFixed, Shares: []entities.RateioShare{
			{ParticipantID: "b", Value: &v}, {ParticipantID: "a", Value: &w},
		}}
		ps := []entities.Participant{{ID: "b", OwedAmount: &v}, {ID: "a", OwedAmount: &w}}
		if err := repo.SaveRateio(ctx, "r1", cfg, ps); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}

		got, _ := repo.GetByID(ctx, "r1")
		if got.Rateio == nil || got.Rateio.Mode != entities.RateioModeFixed || len(got.Rateio.Shares) != 2 {
			t.Fatalf("unexpected rateio: %+v", got.Rateio)
		}
		stored, _ := repo.ListParticipants(ctx, "r1")
		if stored[0].OwedAmount == nil || !stored[0].OwedAmount.Equal(v) || stored[1].OwedPercent != nil {
			t.Fatalf("unexpected participants: %+v", stored)
		}

		err := repo.SaveRateio(ctx, "r1", cfg, []entities.Participant{{ID: "ghost"}})
		if !errors.Is(err, interfaces.ErrNotApplied) {
			t.Fatalf("expected ErrNotApplied for unknown participant, got %v", err)
		}
	})

	t.Run("participant payment status", func(t *testing.T) {
		repo := newRepo(t)
		if err := repo.UpdateParticipantPaymentStatus(ctx, "r1", "a", entities.ParticipantPaymentPaid); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if err := repo.UpdateParticipantPaymentStatus(ctx, "r1", "ghost", entities.ParticipantPaymentPaid); err == nil {
			t.Fatalf("expected error for unknown participant")
		}
		ps, _ := repo.ListParticipants(ctx, "r1")
		if ps[1].PaymentStatus != entities.ParticipantPaymentPaid {
			t.Fatalf("expected a to be paid, got %s", ps[1].PaymentStatus)
		}
	})
}

func TestTemplateSQLiteRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewTemplateSQLiteRepository(openTestDB(t))

	missing, err := repo.Get(ctx, entities.TemplatePaymentConfirmed)
	if err != nil || missing.Key != "" {
		t.Fatalf("expected zero value, got %+v / %v", missing, err)
	}

	at := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	for _, body := range []string{"Pagamento recebido", "Pagamento confirmado, {{name}}"} {
		_, err := repo.Upsert(ctx, entities.NotificationTemplate{
			Key: entities.TemplatePaymentConfirmed, Channel: "whatsapp", Body: body, UpdatedAt: at,
		})
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	}

	got, err := repo.Get(ctx, entities.TemplatePaymentConfirmed)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got.Body != "Pagamento confirmado, {{name}}" || !got.UpdatedAt.Equal(at) {
		t.Fatalf("unexpected template: %+v", got)
	}
}
