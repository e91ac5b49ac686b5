package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"quadra_billing/internal/domain/entities"
	"quadra_billing/internal/infrastructure/logger"
	mock_interfaces "quadra_billing/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

type recordingPublisher struct {
	msgs []Message
	err  error
}

func (p *recordingPublisher) Publish(_ context.Context, data []byte, attrs map[string]string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return "", err
	}
	if attrs["type"] != m.Type {
		return "", errors.New("type attribute mismatch")
	}
	p.msgs = append(p.msgs, m)
	return "msg-1", nil
}

func newTestNotifier(pub Publisher, opts PubSubOptions) *PubSubNotifier {
	opts.Logger = logger.Discard()
	n := NewPubSubNotifier(pub, opts)
	n.now = func() time.Time { return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC) }
	return n
}

func TestPubSubNotifier_NotifyPaymentConfirmed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	templates := mock_interfaces.NewMockITemplateRepository(ctrl)
	templates.EXPECT().Get(gomock.Any(), entities.TemplatePaymentConfirmed).
		Return(entities.NotificationTemplate{Key: entities.TemplatePaymentConfirmed, Channel: "whatsapp", Body: "Pago!"}, nil)

	pub := &recordingPublisher{}
	n := newTestNotifier(pub, PubSubOptions{Templates: templates})

	err := n.NotifyPaymentConfirmed(context.Background(), "11 98765-4321", entities.PaymentConfirmation{
		PaymentID: "local-1",
		Amount:    decimal.RequireFromString("150.00"),
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(pub.msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(pub.msgs))
	}
	m := pub.msgs[0]
	if m.Destination != "+5511987654321" || m.Template != "Pago!" || m.Channel != "whatsapp" {
		t.Fatalf("unexpected message %+v", m)
	}
}

func TestPubSubNotifier_InvalidDestination(t *testing.T) {
	pub := &recordingPublisher{}
	n := newTestNotifier(pub, PubSubOptions{})

	err := n.NotifyPaymentConfirmed(context.Background(), "nope", entities.PaymentConfirmation{})
	if !errors.Is(err, ErrInvalidDestination) {
		t.Fatalf("expected ErrInvalidDestination, got %v", err)
	}
	if len(pub.msgs) != 0 {
		t.Fatalf("expected nothing published")
	}
}

func TestPubSubNotifier_ScheduleReservationReminders(t *testing.T) {
	req := entities.ReminderRequest{
		ReservationID:    "R1",
		Contact:          "+5511987654321",
		Court:            "Quadra 1",
		Time:             "19:00",
		ParticipantNames: []string{"Ana", "Bia"},
	}

	t.Run("publishes pre and post game", func(t *testing.T) {
		pub := &recordingPublisher{}
		n := newTestNotifier(pub, PubSubOptions{})
		r := req
		r.Date = "2026-10-20"

		if err := n.ScheduleReservationReminders(context.Background(), r); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if len(pub.msgs) != 2 {
			t.Fatalf("expected two reminders, got %d", len(pub.msgs))
		}
		if pub.msgs[0].TemplateKey != entities.TemplateReminderPreGame || !pub.msgs[0].SendAt.Equal(time.Date(2026, 10, 20, 17, 0, 0, 0, time.UTC)) {
			t.Fatalf("unexpected pre-game reminder %+v", pub.msgs[0])
		}
		if pub.msgs[1].TemplateKey != entities.TemplateReminderPostGame {
			t.Fatalf("unexpected post-game reminder %+v", pub.msgs[1])
		}
	})

	t.Run("skips reminders in the past", func(t *testing.T) {
		pub := &recordingPublisher{}
		n := newTestNotifier(pub, PubSubOptions{})
		r := req
		r.Date = "2026-10-18"
		r.Time = "11:00"

		if err := n.ScheduleReservationReminders(context.Background(), r); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if len(pub.msgs) != 1 || pub.msgs[0].TemplateKey != entities.TemplateReminderPostGame {
			t.Fatalf("expected only the post-game reminder, got %+v", pub.msgs)
		}
	})

	t.Run("bad date", func(t *testing.T) {
		n := newTestNotifier(&recordingPublisher{}, PubSubOptions{})
		r := req
		r.Date = "20/10/2026"
		if err := n.ScheduleReservationReminders(context.Background(), r); err == nil {
			t.Fatalf("expected parse error")
		}
	})
}

func TestPubSubNotifier_PublishFailure(t *testing.T) {
	boom := errors.New("unavailable")
	n := newTestNotifier(&recordingPublisher{err: boom}, PubSubOptions{})
	err := n.NotifyOperator(context.Background(), entities.OperatorAlert{Kind: "orphan_payment", Message: "x"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected publish error, got %v", err)
	}
}

func TestPubSubNotifier_TemplateLookupFailureStillPublishes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	templates := mock_interfaces.NewMockITemplateRepository(ctrl)
	templates.EXPECT().Get(gomock.Any(), entities.TemplateOperatorAlert).Return(entities.NotificationTemplate{}, errors.New("throttled"))

	pub := &recordingPublisher{}
	n := newTestNotifier(pub, PubSubOptions{Templates: templates})
	if err := n.NotifyOperator(context.Background(), entities.OperatorAlert{Kind: "orphan_payment"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(pub.msgs) != 1 || pub.msgs[0].Template != "" {
		t.Fatalf("unexpected messages %+v", pub.msgs)
	}
}

func TestLogNotifier(t *testing.T) {
	n := NewLogNotifier("BR", logger.Discard())
	if err := n.NotifyPaymentConfirmed(context.Background(), "+5511987654321", entities.PaymentConfirmation{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := n.NotifyPaymentConfirmed(context.Background(), "x", entities.PaymentConfirmation{}); err == nil {
		t.Fatalf("expected invalid destination error")
	}
	if err := n.ScheduleReservationReminders(context.Background(), entities.ReminderRequest{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}
