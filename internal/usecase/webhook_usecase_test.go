package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"quadra_billing/internal/domain/entities"
	"quadra_billing/internal/infrastructure/logger"
	mock_interfaces "quadra_billing/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

const testWebhookSecret = "whsec_test"

// fakeReconciler records the calls it receives.
type fakeReconciler struct {
	calls    []entities.WebhookEventKind
	payments []entities.ProviderPayment
	err      error
	panic    bool
}

func (f *fakeReconciler) record(kind entities.WebhookEventKind, p entities.ProviderPayment) error {
	f.calls = append(f.calls, kind)
	f.payments = append(f.payments, p)
	if f.panic {
		panic("boom")
	}
	return f.err
}

func (f *fakeReconciler) HandleCreated(_ context.Context, p entities.ProviderPayment) error {
	return f.record(entities.EventPaymentCreated, p)
}
func (f *fakeReconciler) HandleAwaitingPayment(_ context.Context, p entities.ProviderPayment) error {
	return f.record(entities.EventPaymentAwaitingPayment, p)
}
func (f *fakeReconciler) HandleConfirmed(_ context.Context, p entities.ProviderPayment) error {
	return f.record(entities.EventPaymentConfirmed, p)
}
func (f *fakeReconciler) HandleReceived(_ context.Context, p entities.ProviderPayment) error {
	return f.record(entities.EventPaymentReceived, p)
}
func (f *fakeReconciler) HandleOverdue(_ context.Context, p entities.ProviderPayment) error {
	return f.record(entities.EventPaymentOverdue, p)
}
func (f *fakeReconciler) HandleRefunded(_ context.Context, p entities.ProviderPayment) error {
	return f.record(entities.EventPaymentRefunded, p)
}
func (f *fakeReconciler) HandleDeleted(_ context.Context, p entities.ProviderPayment) error {
	return f.record(entities.EventPaymentDeleted, p)
}

func sign(body string) string {
	return SignWebhookPayload([]byte(testWebhookSecret), []byte(body))
}

func TestWebhookUseCase_Dispatch(t *testing.T) {
	confirmed := `{"event":"PAYMENT_CONFIRMED","payment":{"id":"pay_1","status":"CONFIRMED","value":100,"externalReference":"R1"}}`

	t.Run("accepted routes to handler", func(t *testing.T) {
		rec := &fakeReconciler{}
		uc := NewWebhookUseCase(testWebhookSecret, rec, nil, logger.Discard())

		res := uc.Dispatch(context.Background(), "req-1", []byte(confirmed), sign(confirmed))
		if res.Outcome != OutcomeAccepted || res.RequestID != "req-1" || res.Event != entities.EventPaymentConfirmed {
			t.Fatalf("unexpected result %+v", res)
		}
		if len(rec.calls) != 1 || rec.calls[0] != entities.EventPaymentConfirmed {
			t.Fatalf("unexpected calls %v", rec.calls)
		}
	})

	t.Run("every known kind is routed", func(t *testing.T) {
		for _, kind := range []entities.WebhookEventKind{
			entities.EventPaymentCreated, entities.EventPaymentAwaitingPayment, entities.EventPaymentReceived,
			entities.EventPaymentConfirmed, entities.EventPaymentOverdue, entities.EventPaymentRefunded, entities.EventPaymentDeleted,
		} {
			rec := &fakeReconciler{}
			uc := NewWebhookUseCase(testWebhookSecret, rec, nil, logger.Discard())
			body := `{"event":"` + string(kind) + `","payment":{"id":"pay_1"}}`
			res := uc.Dispatch(context.Background(), "req", []byte(body), sign(body))
			if res.Outcome != OutcomeAccepted || len(rec.calls) != 1 || rec.calls[0] != kind {
				t.Fatalf("%s: unexpected result %+v calls %v", kind, res, rec.calls)
			}
		}
	})

	t.Run("tampered body is rejected before parsing", func(t *testing.T) {
		rec := &fakeReconciler{}
		uc := NewWebhookUseCase(testWebhookSecret, rec, nil, logger.Discard())
		tampered := []byte(confirmed)
		tampered[3] ^= 0x01

		res := uc.Dispatch(context.Background(), "req-2", tampered, sign(confirmed))
		if res.Outcome != OutcomeRejected || !errors.Is(res.Err, ErrSignatureInvalid) {
			t.Fatalf("expected rejection, got %+v", res)
		}
		if len(rec.calls) != 0 {
			t.Fatalf("handler must not run")
		}
	})

	t.Run("malformed json is invalid", func(t *testing.T) {
		uc := NewWebhookUseCase(testWebhookSecret, &fakeReconciler{}, nil, logger.Discard())
		body := `{"event":`
		res := uc.Dispatch(context.Background(), "req", []byte(body), sign(body))
		if res.Outcome != OutcomeInvalid || !errors.Is(res.Err, ErrInvalidWebhookPayload) {
			t.Fatalf("expected invalid, got %+v", res)
		}
	})

	t.Run("missing payment id and external reference is invalid", func(t *testing.T) {
		rec := &fakeReconciler{}
		uc := NewWebhookUseCase(testWebhookSecret, rec, nil, logger.Discard())
		body := `{"event":"PAYMENT_CONFIRMED","payment":{"id":"  ","status":"CONFIRMED"}}`
		res := uc.Dispatch(context.Background(), "req", []byte(body), sign(body))
		if res.Outcome != OutcomeInvalid || !errors.Is(res.Err, ErrInvalidWebhookPayload) || len(rec.calls) != 0 {
			t.Fatalf("expected invalid, got %+v calls %v", res, rec.calls)
		}
	})

	t.Run("external reference without payment id reaches handler", func(t *testing.T) {
		rec := &fakeReconciler{}
		uc := NewWebhookUseCase(testWebhookSecret, rec, nil, logger.Discard())
		body := `{"event":"PAYMENT_CONFIRMED","payment":{"status":"CONFIRMED","value":100,"externalReference":"R1"}}`
		res := uc.Dispatch(context.Background(), "req", []byte(body), sign(body))
		if res.Outcome != OutcomeAccepted {
			t.Fatalf("expected accepted, got %+v", res)
		}
		if len(rec.payments) != 1 || rec.payments[0].ID != "" || rec.payments[0].ExternalReference != "R1" {
			t.Fatalf("unexpected payments %+v", rec.payments)
		}
	})

	t.Run("unknown kind is accepted and ignored", func(t *testing.T) {
		rec := &fakeReconciler{}
		uc := NewWebhookUseCase(testWebhookSecret, rec, nil, logger.Discard())
		body := `{"event":"PAYMENT_CHARGEBACK_REQUESTED","payment":{"id":"pay_1"}}`
		res := uc.Dispatch(context.Background(), "req", []byte(body), sign(body))
		if res.Outcome != OutcomeAccepted || len(rec.calls) != 0 {
			t.Fatalf("unexpected result %+v calls %v", res, rec.calls)
		}
	})

	t.Run("handler error is errored", func(t *testing.T) {
		uc := NewWebhookUseCase(testWebhookSecret, &fakeReconciler{err: errors.New("store down")}, nil, logger.Discard())
		res := uc.Dispatch(context.Background(), "req-3", []byte(confirmed), sign(confirmed))
		if res.Outcome != OutcomeErrored || res.Err == nil || res.RequestID != "req-3" {
			t.Fatalf("expected errored, got %+v", res)
		}
	})

	t.Run("handler panic is contained", func(t *testing.T) {
		uc := NewWebhookUseCase(testWebhookSecret, &fakeReconciler{panic: true}, nil, logger.Discard())
		res := uc.Dispatch(context.Background(), "req-4", []byte(confirmed), sign(confirmed))
		if res.Outcome != OutcomeErrored || res.Err == nil {
			t.Fatalf("expected errored after panic, got %+v", res)
		}
	})

	t.Run("processing time is measured", func(t *testing.T) {
		uc := NewWebhookUseCase(testWebhookSecret, &fakeReconciler{}, nil, logger.Discard())
		base := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
		calls := 0
		uc.now = func() time.Time {
			calls++
			return base.Add(time.Duration(calls-1) * 7 * time.Millisecond)
		}
		res := uc.Dispatch(context.Background(), "req", []byte(confirmed), sign(confirmed))
		if res.ProcessingTime != 7*time.Millisecond {
			t.Fatalf("expected 7ms, got %s", res.ProcessingTime)
		}
	})
}

func TestWebhookUseCase_Dedupe(t *testing.T) {
	body := `{"event":"PAYMENT_CONFIRMED","payment":{"id":"pay_1"}}`
	key := "webhook:processed:PAYMENT_CONFIRMED:pay_1"

	t.Run("seen event short-circuits", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		deduper := mock_interfaces.NewMockIEventDeduper(ctrl)
		rec := &fakeReconciler{}
		uc := NewWebhookUseCase(testWebhookSecret, rec, deduper, logger.Discard())

		deduper.EXPECT().Seen(gomock.Any(), key).Return(true, nil)

		res := uc.Dispatch(context.Background(), "req", []byte(body), sign(body))
		if res.Outcome != OutcomeAccepted || !res.Deduplicated || len(rec.calls) != 0 {
			t.Fatalf("unexpected result %+v calls %v", res, rec.calls)
		}
	})

	t.Run("processed event is marked", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		deduper := mock_interfaces.NewMockIEventDeduper(ctrl)
		uc := NewWebhookUseCase(testWebhookSecret, &fakeReconciler{}, deduper, logger.Discard())

		deduper.EXPECT().Seen(gomock.Any(), key).Return(false, nil)
		deduper.EXPECT().Mark(gomock.Any(), key, processedEventTTL).Return(nil)

		if res := uc.Dispatch(context.Background(), "req", []byte(body), sign(body)); res.Outcome != OutcomeAccepted {
			t.Fatalf("unexpected result %+v", res)
		}
	})

	t.Run("dedupe failures never block processing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		deduper := mock_interfaces.NewMockIEventDeduper(ctrl)
		rec := &fakeReconciler{}
		uc := NewWebhookUseCase(testWebhookSecret, rec, deduper, logger.Discard())

		deduper.EXPECT().Seen(gomock.Any(), key).Return(false, errors.New("redis down"))
		deduper.EXPECT().Mark(gomock.Any(), key, processedEventTTL).Return(errors.New("redis down"))

		res := uc.Dispatch(context.Background(), "req", []byte(body), sign(body))
		if res.Outcome != OutcomeAccepted || len(rec.calls) != 1 {
			t.Fatalf("unexpected result %+v", res)
		}
	})

	t.Run("events without payment id are keyed by external reference", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		deduper := mock_interfaces.NewMockIEventDeduper(ctrl)
		uc := NewWebhookUseCase(testWebhookSecret, &fakeReconciler{}, deduper, logger.Discard())

		refBody := `{"event":"PAYMENT_CONFIRMED","payment":{"externalReference":"R1"}}`
		refKey := "webhook:processed:PAYMENT_CONFIRMED:ref:R1"
		deduper.EXPECT().Seen(gomock.Any(), refKey).Return(false, nil)
		deduper.EXPECT().Mark(gomock.Any(), refKey, processedEventTTL).Return(nil)

		if res := uc.Dispatch(context.Background(), "req", []byte(refBody), sign(refBody)); res.Outcome != OutcomeAccepted {
			t.Fatalf("unexpected result %+v", res)
		}
	})

	t.Run("failed event is not marked", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		deduper := mock_interfaces.NewMockIEventDeduper(ctrl)
		uc := NewWebhookUseCase(testWebhookSecret, &fakeReconciler{err: errors.New("x")}, deduper, logger.Discard())

		deduper.EXPECT().Seen(gomock.Any(), key).Return(false, nil)

		if res := uc.Dispatch(context.Background(), "req", []byte(body), sign(body)); res.Outcome != OutcomeErrored {
			t.Fatalf("unexpected result %+v", res)
		}
	})
}
