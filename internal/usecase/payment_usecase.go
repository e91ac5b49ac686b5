package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"quadra_billing/internal/domain/entities"
	"quadra_billing/internal/infrastructure/logger"
	"quadra_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrPaymentNotFound             = errors.New("payment not found")
	ErrInvalidPaymentID            = errors.New("invalid payment id")
	ErrInvalidBillingMethod        = errors.New("invalid billing method")
	ErrInvalidChargeAmount         = errors.New("charge amount must be greater than zero")
	ErrMissingCustomer             = errors.New("customer_id, customer or payer_email is required")
	ErrPreAuthorizationUnsupported = errors.New("pre-authorization requires credit_card")
	ErrPaymentNotLinked            = errors.New("payment not yet linked to a provider payment")
	ErrPaymentNotCapturable        = errors.New("payment is not an open pre-authorization")
	ErrPaymentNotCancellable       = errors.New("payment cannot be cancelled in its current status")
	ErrPaymentNotRefundable        = errors.New("only confirmed or received payments can be refunded")
	ErrInvalidRefundAmount         = errors.New("refund amount must be positive and not exceed the payment amount")
	ErrArtifactUnavailable         = errors.New("artifact not available for this billing method")

	ErrPaymentProviderRejected     = errors.New("payment provider rejected the request")
	ErrPaymentProviderUnavailable  = errors.New("payment provider unavailable")
	ErrPaymentProviderUnauthorized = errors.New("payment provider unauthorized")
)

const (
	MetadataOrigin        = "origin"
	MetadataPreAuthorized = "pre_authorized"

	originReservation    = "reservation"
	originCreditPurchase = "credit_purchase"
	defaultDueDays       = 1
)

// ProviderFailure is a classified gateway failure. It matches its sentinel
// through errors.Is and keeps the message meant for the payer.
type ProviderFailure struct {
	Sentinel error
	Message  string
	Err      error
}

func (e *ProviderFailure) Error() string {
	return e.Sentinel.Error() + ": " + e.Message
}

func (e *ProviderFailure) Is(target error) bool { return target == e.Sentinel }

func (e *ProviderFailure) Unwrap() error { return e.Err }

// gatewayFailure is implemented by the payment gateway error type.
type gatewayFailure interface {
	error
	FailureKind() string
	UserMessage(def string) string
}

func mapGatewayError(err error, def string) error {
	var gf gatewayFailure
	if !errors.As(err, &gf) {
		return &ProviderFailure{Sentinel: ErrPaymentProviderUnavailable, Message: def, Err: err}
	}
	sentinel := ErrPaymentProviderUnavailable
	switch gf.FailureKind() {
	case "validation":
		sentinel = ErrPaymentProviderRejected
	case "auth":
		sentinel = ErrPaymentProviderUnauthorized
	}
	return &ProviderFailure{Sentinel: sentinel, Message: gf.UserMessage(def), Err: err}
}

// CreateChargeInput originates a charge. For reservation charges the amount
// defaults to the participant's owed value, then to the reservation total.
type CreateChargeInput struct {
	ReservationID string
	ParticipantID string
	CustomerID    string
	Customer      *entities.CustomerRequest
	BillingMethod entities.BillingMethod
	Amount        decimal.Decimal
	PayerContact  string
	PayerEmail    string
	Description   string
	DueDate       string
	Card          *entities.CardData
	CardToken     string
	RemoteIP      string
	PreAuthorize  bool
	Metadata      map[string]any
}

type ChargeResult struct {
	Payment entities.Payment
	Charge  entities.GatewayCharge
}

// IPaymentUseCase originates charges and proxies provider operations. It
// never changes a local status: that is left to webhook reconciliation.
type IPaymentUseCase interface {
	CreateReservationCharge(ctx context.Context, in CreateChargeInput) (ChargeResult, error)
	CreateCreditPurchase(ctx context.Context, in CreateChargeInput) (ChargeResult, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByReservationID(ctx context.Context, reservationID string) ([]entities.Payment, error)
	Capture(ctx context.Context, id string) (entities.GatewayCharge, error)
	Cancel(ctx context.Context, id string) (entities.GatewayCharge, error)
	Refund(ctx context.Context, id string, amount *decimal.Decimal, description string) (entities.GatewayCharge, error)
	GetPixQRCode(ctx context.Context, id string) (entities.PixQRCode, error)
	GetBoletoLink(ctx context.Context, id string) (entities.BoletoLink, error)
}

type PaymentUseCase struct {
	payments     interfaces.IPaymentRepository
	reservations interfaces.IReservationRepository
	gateway      interfaces.IPaymentGateway
	log          *logrus.Entry
	now          func() time.Time
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(payments interfaces.IPaymentRepository, reservations interfaces.IReservationRepository, gateway interfaces.IPaymentGateway, log logrus.FieldLogger) *PaymentUseCase {
	return &PaymentUseCase{
		payments:     payments,
		reservations: reservations,
		gateway:      gateway,
		log:          logger.Component(log, "payment.usecase"),
		now:          time.Now,
	}
}

func (u *PaymentUseCase) CreateReservationCharge(ctx context.Context, in CreateChargeInput) (ChargeResult, error) {
	in.ReservationID = strings.TrimSpace(in.ReservationID)
	if in.ReservationID == "" {
		return ChargeResult{}, ErrInvalidReservationID
	}
	res, err := u.reservations.GetByID(ctx, in.ReservationID)
	if err != nil {
		return ChargeResult{}, fmt.Errorf("load reservation: %w", err)
	}
	if res.ID == "" {
		return ChargeResult{}, ErrReservationNotFound
	}
	if res.Status != entities.ReservationStatusPending {
		return ChargeResult{}, ErrReservationNotPayable
	}

	amount := in.Amount
	if in.ParticipantID != "" {
		participants, err := u.reservations.ListParticipants(ctx, res.ID)
		if err != nil {
			return ChargeResult{}, fmt.Errorf("load participants: %w", err)
		}
		part, ok := findParticipant(participants, in.ParticipantID)
		if !ok {
			return ChargeResult{}, fmt.Errorf("%w: %s", ErrUnknownParticipant, in.ParticipantID)
		}
		if owed, ok := owedAmount(res, part); ok {
			amount = owed
		}
		if in.PayerContact == "" {
			in.PayerContact = part.Contact
		}
	}
	if !amount.IsPositive() {
		amount = res.TotalValue
	}
	if in.Description == "" {
		in.Description = fmt.Sprintf("Reservation %s %s %s", res.CourtName, res.Date, res.StartTime)
	}
	return u.originate(ctx, in, amount, originReservation)
}

func (u *PaymentUseCase) CreateCreditPurchase(ctx context.Context, in CreateChargeInput) (ChargeResult, error) {
	in.ReservationID = ""
	in.ParticipantID = ""
	if in.Description == "" {
		in.Description = "Credit purchase"
	}
	return u.originate(ctx, in, in.Amount, originCreditPurchase)
}

// originate inserts the local payment before calling the provider and
// deletes it again when the provider call fails.
func (u *PaymentUseCase) originate(ctx context.Context, in CreateChargeInput, amount decimal.Decimal, origin string) (ChargeResult, error) {
	if !in.BillingMethod.Valid() {
		return ChargeResult{}, fmt.Errorf("%w: %q", ErrInvalidBillingMethod, in.BillingMethod)
	}
	if in.PreAuthorize && in.BillingMethod != entities.BillingMethodCreditCard {
		return ChargeResult{}, ErrPreAuthorizationUnsupported
	}
	amount = amount.Round(2)
	if !amount.IsPositive() {
		return ChargeResult{}, ErrInvalidChargeAmount
	}
	if in.CustomerID == "" && in.Customer == nil && in.PayerEmail == "" {
		return ChargeResult{}, ErrMissingCustomer
	}

	log := u.log.WithFields(logrus.Fields{
		"origin":         origin,
		"reservation_id": in.ReservationID,
		"billing_method": in.BillingMethod,
		"amount":         amount.StringFixed(2),
	})

	customerID := in.CustomerID
	if customerID == "" && in.Customer != nil {
		customer, err := u.gateway.CreateCustomer(ctx, *in.Customer)
		if err != nil {
			log.WithError(err).Warn("customer creation failed")
			return ChargeResult{}, mapGatewayError(err, "could not register customer")
		}
		customerID = customer.ID
	}

	now := u.now().UTC()
	dueDate := in.DueDate
	if dueDate == "" {
		dueDate = now.AddDate(0, 0, defaultDueDays).Format("2006-01-02")
	}

	metadata := make(map[string]any, len(in.Metadata)+4)
	for k, v := range in.Metadata {
		metadata[k] = v
	}
	metadata[MetadataOrigin] = origin
	if in.ParticipantID != "" {
		metadata[MetadataParticipantID] = in.ParticipantID
	}
	if in.PayerContact != "" {
		metadata[MetadataPayerContact] = strings.TrimSpace(in.PayerContact)
	}
	if in.PreAuthorize {
		metadata[MetadataPreAuthorized] = true
	}

	local, err := u.payments.Create(ctx, entities.Payment{
		ID:            uuid.NewString(),
		CustomerID:    customerID,
		ReservationID: in.ReservationID,
		Amount:        amount,
		BillingMethod: in.BillingMethod,
		Status:        entities.PaymentStatusPending,
		Metadata:      metadata,
		DueDate:       dueDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return ChargeResult{}, fmt.Errorf("create payment: %w", err)
	}
	log = log.WithField("payment_id", local.ID)

	externalRef := in.ReservationID
	if externalRef == "" {
		externalRef = local.ID
	}
	req := entities.ChargeRequest{
		CustomerID:        customerID,
		BillingMethod:     in.BillingMethod,
		Amount:            amount,
		DueDate:           dueDate,
		Description:       in.Description,
		ExternalReference: externalRef,
		Card:              in.Card,
		CardToken:         in.CardToken,
		RemoteIP:          in.RemoteIP,
		PayerEmail:        in.PayerEmail,
	}

	var charge entities.GatewayCharge
	if in.PreAuthorize {
		charge, err = u.gateway.CreatePreAuthorization(ctx, req)
	} else {
		charge, err = u.gateway.CreatePayment(ctx, req)
	}
	if err != nil {
		log.WithError(err).Warn("gateway charge failed; rolling back local payment")
		if delErr := u.payments.Delete(context.WithoutCancel(ctx), local.ID); delErr != nil {
			log.WithError(delErr).Error("local payment rollback failed")
		}
		return ChargeResult{}, mapGatewayError(err, "could not create payment")
	}

	if charge.ProviderPaymentID != "" {
		// The webhook fallback lookup backfills the link when this write fails.
		if err := u.payments.SetProviderPaymentID(ctx, local.ID, charge.ProviderPaymentID); err != nil {
			log.WithError(err).Warn("provider payment id not stored")
		} else {
			local.ProviderPaymentID = charge.ProviderPaymentID
		}
	}
	log.WithFields(logrus.Fields{"provider_payment_id": charge.ProviderPaymentID, "provider_status": charge.Status}).Info("charge created")
	return ChargeResult{Payment: local, Charge: charge}, nil
}

func (u *PaymentUseCase) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}
	p, err := u.payments.GetByID(ctx, id)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return p, nil
}

func (u *PaymentUseCase) ListByReservationID(ctx context.Context, reservationID string) ([]entities.Payment, error) {
	reservationID = strings.TrimSpace(reservationID)
	if reservationID == "" {
		return nil, ErrInvalidReservationID
	}
	return u.payments.ListByReservationID(ctx, reservationID)
}

func (u *PaymentUseCase) Capture(ctx context.Context, id string) (entities.GatewayCharge, error) {
	p, err := u.linked(ctx, id)
	if err != nil {
		return entities.GatewayCharge{}, err
	}
	if p.BillingMethod != entities.BillingMethodCreditCard || !p.Status.IsOpen() {
		return entities.GatewayCharge{}, ErrPaymentNotCapturable
	}
	charge, err := u.gateway.CapturePreAuthorization(ctx, p.ProviderPaymentID)
	if err != nil {
		return entities.GatewayCharge{}, mapGatewayError(err, "could not capture payment")
	}
	return charge, nil
}

// Cancel voids an open charge at the provider. The local status follows
// when the provider reports the deletion.
func (u *PaymentUseCase) Cancel(ctx context.Context, id string) (entities.GatewayCharge, error) {
	p, err := u.linked(ctx, id)
	if err != nil {
		return entities.GatewayCharge{}, err
	}
	if !p.Status.IsOpen() && p.Status != entities.PaymentStatusOverdue {
		return entities.GatewayCharge{}, ErrPaymentNotCancellable
	}
	if preAuth, _ := p.Metadata[MetadataPreAuthorized].(bool); preAuth {
		charge, err := u.gateway.CancelPreAuthorization(ctx, p.ProviderPaymentID)
		if err != nil {
			return entities.GatewayCharge{}, mapGatewayError(err, "could not cancel pre-authorization")
		}
		return charge, nil
	}
	if err := u.gateway.CancelPayment(ctx, p.ProviderPaymentID); err != nil {
		return entities.GatewayCharge{}, mapGatewayError(err, "could not cancel payment")
	}
	return entities.GatewayCharge{ProviderPaymentID: p.ProviderPaymentID, Status: "DELETED", Amount: p.Amount}, nil
}

func (u *PaymentUseCase) Refund(ctx context.Context, id string, amount *decimal.Decimal, description string) (entities.GatewayCharge, error) {
	p, err := u.linked(ctx, id)
	if err != nil {
		return entities.GatewayCharge{}, err
	}
	if !p.Status.IsSuccess() {
		return entities.GatewayCharge{}, ErrPaymentNotRefundable
	}
	if amount != nil && (!amount.IsPositive() || amount.GreaterThan(p.Amount)) {
		return entities.GatewayCharge{}, ErrInvalidRefundAmount
	}
	charge, err := u.gateway.RefundPayment(ctx, p.ProviderPaymentID, amount, description)
	if err != nil {
		return entities.GatewayCharge{}, mapGatewayError(err, "could not refund payment")
	}
	return charge, nil
}

func (u *PaymentUseCase) GetPixQRCode(ctx context.Context, id string) (entities.PixQRCode, error) {
	p, err := u.linked(ctx, id)
	if err != nil {
		return entities.PixQRCode{}, err
	}
	if p.BillingMethod != entities.BillingMethodPix {
		return entities.PixQRCode{}, ErrArtifactUnavailable
	}
	qr, err := u.gateway.GetPixQRCode(ctx, p.ProviderPaymentID)
	if err != nil {
		return entities.PixQRCode{}, mapGatewayError(err, "could not fetch pix qr code")
	}
	return qr, nil
}

func (u *PaymentUseCase) GetBoletoLink(ctx context.Context, id string) (entities.BoletoLink, error) {
	p, err := u.linked(ctx, id)
	if err != nil {
		return entities.BoletoLink{}, err
	}
	if p.BillingMethod != entities.BillingMethodBoleto {
		return entities.BoletoLink{}, ErrArtifactUnavailable
	}
	link, err := u.gateway.GetBoletoLink(ctx, p.ProviderPaymentID)
	if err != nil {
		return entities.BoletoLink{}, mapGatewayError(err, "could not fetch boleto")
	}
	return link, nil
}

func (u *PaymentUseCase) linked(ctx context.Context, id string) (entities.Payment, error) {
	p, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ProviderPaymentID == "" {
		return entities.Payment{}, ErrPaymentNotLinked
	}
	return p, nil
}

func findParticipant(ps []entities.Participant, id string) (entities.Participant, bool) {
	for _, p := range ps {
		if p.ID == id {
			return p, true
		}
	}
	return entities.Participant{}, false
}

// owedAmount resolves a participant's share from the stored rateio values.
func owedAmount(r entities.Reservation, p entities.Participant) (decimal.Decimal, bool) {
	switch {
	case p.OwedAmount != nil:
		return *p.OwedAmount, true
	case p.OwedPercent != nil:
		return r.TotalValue.Mul(*p.OwedPercent).Div(hundred).Round(2), true
	}
	return decimal.Zero, false
}
