package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"quadra_billing/internal/domain/entities"
	"quadra_billing/internal/infrastructure/logger"
	"quadra_billing/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var ErrInvalidWebhookPayload = errors.New("invalid webhook payload")

// DispatchOutcome is the definite answer given to the provider.
type DispatchOutcome string

const (
	OutcomeAccepted DispatchOutcome = "accepted"
	OutcomeRejected DispatchOutcome = "rejected"
	OutcomeErrored  DispatchOutcome = "errored"
	OutcomeInvalid  DispatchOutcome = "invalid"
)

const processedEventTTL = 24 * time.Hour

type DispatchResult struct {
	Outcome        DispatchOutcome
	RequestID      string
	Event          entities.WebhookEventKind
	Deduplicated   bool
	ProcessingTime time.Duration
	Err            error
}

// IWebhookUseCase authenticates, parses and routes inbound provider events.
type IWebhookUseCase interface {
	Dispatch(ctx context.Context, requestID string, body []byte, signature string) DispatchResult
}

type eventHandler func(ctx context.Context, p entities.ProviderPayment) error

type WebhookUseCase struct {
	secret   []byte
	handlers map[entities.WebhookEventKind]eventHandler
	deduper  interfaces.IEventDeduper
	tracer   trace.Tracer
	log      *logrus.Entry
	now      func() time.Time
}

var _ IWebhookUseCase = (*WebhookUseCase)(nil)

// NewWebhookUseCase wires every known event kind to the reconciler. deduper
// may be nil.
func NewWebhookUseCase(secret string, reconciler IPaymentReconciler, deduper interfaces.IEventDeduper, log logrus.FieldLogger) *WebhookUseCase {
	return &WebhookUseCase{
		secret: []byte(secret),
		handlers: map[entities.WebhookEventKind]eventHandler{
			entities.EventPaymentCreated:         reconciler.HandleCreated,
			entities.EventPaymentAwaitingPayment: reconciler.HandleAwaitingPayment,
			entities.EventPaymentReceived:        reconciler.HandleReceived,
			entities.EventPaymentConfirmed:       reconciler.HandleConfirmed,
			entities.EventPaymentOverdue:         reconciler.HandleOverdue,
			entities.EventPaymentRefunded:        reconciler.HandleRefunded,
			entities.EventPaymentDeleted:         reconciler.HandleDeleted,
		},
		deduper: deduper,
		tracer:  otel.Tracer("quadra_billing/webhook"),
		log:     logger.Component(log, "webhook.dispatcher"),
		now:     time.Now,
	}
}

func (u *WebhookUseCase) Dispatch(ctx context.Context, requestID string, body []byte, signature string) DispatchResult {
	started := u.now()
	ctx, span := u.tracer.Start(ctx, "webhook.dispatch", trace.WithAttributes(attribute.String("request_id", requestID)))
	defer span.End()

	res := u.dispatch(ctx, requestID, body, signature)
	res.RequestID = requestID
	res.ProcessingTime = u.now().Sub(started)

	span.SetAttributes(attribute.String("outcome", string(res.Outcome)), attribute.String("event", string(res.Event)))
	if res.Err != nil && res.Outcome == OutcomeErrored {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, res.Err.Error())
	}
	return res
}

func (u *WebhookUseCase) dispatch(ctx context.Context, requestID string, body []byte, signature string) DispatchResult {
	log := u.log.WithField("request_id", requestID)

	if err := VerifyWebhookSignature(u.secret, body, signature); err != nil {
		log.Warn("webhook signature rejected")
		return DispatchResult{Outcome: OutcomeRejected, Err: err}
	}

	var ev entities.WebhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		log.WithError(err).Warn("webhook payload is not a valid envelope")
		return DispatchResult{Outcome: OutcomeInvalid, Err: fmt.Errorf("%w: %v", ErrInvalidWebhookPayload, err)}
	}
	ev.Event = entities.WebhookEventKind(strings.TrimSpace(string(ev.Event)))
	ev.Payment.ID = strings.TrimSpace(ev.Payment.ID)
	ev.Payment.ExternalReference = strings.TrimSpace(ev.Payment.ExternalReference)
	if ev.Event == "" || (ev.Payment.ID == "" && ev.Payment.ExternalReference == "") {
		log.Warn("webhook envelope without event or payment reference")
		return DispatchResult{Outcome: OutcomeInvalid, Event: ev.Event, Err: fmt.Errorf("%w: missing event or payment id and external reference", ErrInvalidWebhookPayload)}
	}

	log = log.WithFields(logrus.Fields{
		"event":               ev.Event,
		"provider_payment_id": ev.Payment.ID,
		"external_reference":  ev.Payment.ExternalReference,
	})

	handler, ok := u.handlers[ev.Event]
	if !ok {
		log.Info("ignoring unknown webhook event")
		return DispatchResult{Outcome: OutcomeAccepted, Event: ev.Event}
	}

	key := processedEventKey(ev)
	if u.deduper != nil {
		seen, err := u.deduper.Seen(ctx, key)
		if err != nil {
			log.WithError(err).Warn("event dedupe lookup failed")
		} else if seen {
			log.Info("webhook event already processed")
			return DispatchResult{Outcome: OutcomeAccepted, Event: ev.Event, Deduplicated: true}
		}
	}

	if err := runHandler(ctx, handler, ev.Payment); err != nil {
		log.WithError(err).Error("webhook handler failed")
		return DispatchResult{Outcome: OutcomeErrored, Event: ev.Event, Err: err}
	}

	if u.deduper != nil {
		if err := u.deduper.Mark(ctx, key, processedEventTTL); err != nil {
			log.WithError(err).Warn("event dedupe mark failed")
		}
	}
	log.Info("webhook event processed")
	return DispatchResult{Outcome: OutcomeAccepted, Event: ev.Event}
}

// runHandler is the single failure boundary: panics become errors.
func runHandler(ctx context.Context, h eventHandler, p entities.ProviderPayment) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("webhook handler panic: %v", r)
		}
	}()
	return h(ctx, p)
}

// processedEventKey falls back to the external reference for events that
// arrive without a provider payment id.
func processedEventKey(ev entities.WebhookEvent) string {
	if ev.Payment.ID == "" {
		return "webhook:processed:" + string(ev.Event) + ":ref:" + ev.Payment.ExternalReference
	}
	return "webhook:processed:" + string(ev.Event) + ":" + ev.Payment.ID
}
