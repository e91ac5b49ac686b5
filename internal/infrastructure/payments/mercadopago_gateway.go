package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"quadra_billing/internal/domain/entities"
	"quadra_billing/internal/infrastructure/logger"
	"quadra_billing/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrMissingMercadoPagoAccessToken   = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
	ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")
	ErrOperationNotSupported           = errors.New("operation not supported by provider")
)

// MercadoPagoGateway is the alternative provider. It covers charge creation
// and the pre-authorization lifecycle; the remaining operations answer with a
// validation error.
type MercadoPagoGateway struct {
	client   payment.Client
	retrier  *Retrier
	log      *logrus.Entry
	mockMode bool
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

type MercadoPagoOptions struct {
	AccessToken string
	Retry       RetryPolicy
	Logger      logrus.FieldLogger
	// Mock answers every charge as approved without calling the provider.
	Mock bool
}

func NewMercadoPagoGateway(opts MercadoPagoOptions) (*MercadoPagoGateway, error) {
	log := logger.Component(opts.Logger, "payment.gateway.mercadopago")
	g := &MercadoPagoGateway{retrier: NewRetrier(opts.Retry, opts.Logger), log: log}
	if opts.Mock {
		log.Info("mock mode enabled")
		g.mockMode = true
		return g, nil
	}

	if strings.TrimSpace(opts.AccessToken) == "" {
		log.Warn("missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(opts.AccessToken)
	if err != nil {
		log.WithError(err).Error("failed creating sdk config")
		return nil, err
	}
	log.Info("Mercado Pago client initialized")

	g.client = payment.NewClient(cfg)
	return g, nil
}

func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, req entities.ChargeRequest) (entities.GatewayCharge, error) {
	return g.create(ctx, "create payment", req, true)
}

func (g *MercadoPagoGateway) CreatePreAuthorization(ctx context.Context, req entities.ChargeRequest) (entities.GatewayCharge, error) {
	if req.BillingMethod != entities.BillingMethodCreditCard {
		return entities.GatewayCharge{}, NewValidationError("create pre-authorization", fmt.Errorf("billing method %q cannot be pre-authorized", req.BillingMethod))
	}
	return g.create(ctx, "create pre-authorization", req, false)
}

func (g *MercadoPagoGateway) CapturePreAuthorization(ctx context.Context, providerPaymentID string) (entities.GatewayCharge, error) {
	return g.byID(ctx, "capture pre-authorization", providerPaymentID, "approved", func(ctx context.Context, id int) (*payment.Response, error) {
		return g.client.Capture(ctx, id)
	})
}

func (g *MercadoPagoGateway) CancelPreAuthorization(ctx context.Context, providerPaymentID string) (entities.GatewayCharge, error) {
	return g.byID(ctx, "cancel pre-authorization", providerPaymentID, "cancelled", func(ctx context.Context, id int) (*payment.Response, error) {
		return g.client.Cancel(ctx, id)
	})
}

func (g *MercadoPagoGateway) CancelPayment(ctx context.Context, providerPaymentID string) error {
	_, err := g.byID(ctx, "cancel payment", providerPaymentID, "cancelled", func(ctx context.Context, id int) (*payment.Response, error) {
		return g.client.Cancel(ctx, id)
	})
	return err
}

func (g *MercadoPagoGateway) CreateCustomer(context.Context, entities.CustomerRequest) (entities.GatewayCustomer, error) {
	return entities.GatewayCustomer{}, NewValidationError("create customer", ErrOperationNotSupported)
}

func (g *MercadoPagoGateway) UpdateCustomer(context.Context, string, entities.CustomerRequest) (entities.GatewayCustomer, error) {
	return entities.GatewayCustomer{}, NewValidationError("update customer", ErrOperationNotSupported)
}

func (g *MercadoPagoGateway) GetPixQRCode(context.Context, string) (entities.PixQRCode, error) {
	return entities.PixQRCode{}, NewValidationError("get pix qr code", ErrOperationNotSupported)
}

func (g *MercadoPagoGateway) GetBoletoLink(context.Context, string) (entities.BoletoLink, error) {
	return entities.BoletoLink{}, NewValidationError("get boleto link", ErrOperationNotSupported)
}

func (g *MercadoPagoGateway) RefundPayment(context.Context, string, *decimal.Decimal, string) (entities.GatewayCharge, error) {
	return entities.GatewayCharge{}, NewValidationError("refund payment", ErrOperationNotSupported)
}

func (g *MercadoPagoGateway) create(ctx context.Context, op string, req entities.ChargeRequest, capture bool) (entities.GatewayCharge, error) {
	reqMap, err := mercadoPagoRequestMap(req, capture)
	if err != nil {
		return entities.GatewayCharge{}, NewValidationError(op, err)
	}

	if g.mockMode {
		id := strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
		g.log.WithFields(logrus.Fields{"op": op, "provider_payment_id": id}).Info("mock create success")
		status := "approved"
		if !capture {
			status = "authorized"
		}
		return entities.GatewayCharge{ProviderPaymentID: id, Status: status, Amount: req.Amount, Raw: reqMap}, nil
	}
	if g.client == nil {
		return entities.GatewayCharge{}, NewValidationError(op, ErrMercadoPagoGatewayNotConfigured)
	}

	// payment.Request is built from the JSON form so optional fields stay unset.
	b, err := json.Marshal(reqMap)
	if err != nil {
		return entities.GatewayCharge{}, NewValidationError(op, err)
	}
	var sdkReq payment.Request
	if err := json.Unmarshal(b, &sdkReq); err != nil {
		return entities.GatewayCharge{}, NewValidationError(op, err)
	}
	g.log.WithFields(logrus.Fields{"op": op, "body": Redact(b)}).Debug("provider request")

	var resp *payment.Response
	err = g.retrier.Do(ctx, op, func(ctx context.Context) error {
		r, err := g.client.Create(ctx, sdkReq)
		if err != nil {
			return classifySDKError(op, err)
		}
		resp = r
		return nil
	})
	if err != nil {
		g.log.WithFields(logrus.Fields{"op": op, "error": err.Error()}).Warn("sdk create failed")
		return entities.GatewayCharge{}, err
	}
	g.log.WithFields(logrus.Fields{"op": op, "provider_payment_id": resp.ID, "provider_status": resp.Status}).Info("create success")

	return entities.GatewayCharge{ProviderPaymentID: strconv.Itoa(resp.ID), Status: resp.Status, Amount: req.Amount, Raw: reqMap}, nil
}

func (g *MercadoPagoGateway) byID(ctx context.Context, op, providerPaymentID, mockStatus string, fn func(ctx context.Context, id int) (*payment.Response, error)) (entities.GatewayCharge, error) {
	id, err := strconv.Atoi(strings.TrimSpace(providerPaymentID))
	if err != nil {
		return entities.GatewayCharge{}, NewValidationError(op, fmt.Errorf("invalid provider payment id %q", providerPaymentID))
	}
	if g.mockMode {
		return entities.GatewayCharge{ProviderPaymentID: providerPaymentID, Status: mockStatus}, nil
	}
	if g.client == nil {
		return entities.GatewayCharge{}, NewValidationError(op, ErrMercadoPagoGatewayNotConfigured)
	}

	var resp *payment.Response
	err = g.retrier.Do(ctx, op, func(ctx context.Context) error {
		r, err := fn(ctx, id)
		if err != nil {
			return classifySDKError(op, err)
		}
		resp = r
		return nil
	})
	if err != nil {
		return entities.GatewayCharge{}, err
	}
	return entities.GatewayCharge{ProviderPaymentID: strconv.Itoa(resp.ID), Status: resp.Status}, nil
}

func mercadoPagoRequestMap(req entities.ChargeRequest, capture bool) (map[string]any, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidChargeAmount
	}
	amount, _ := req.Amount.Round(2).Float64()
	m := map[string]any{
		"transaction_amount": amount,
		"description":        req.Description,
		"external_reference": req.ExternalReference,
	}
	if req.PayerEmail != "" {
		m["payer"] = map[string]any{"email": req.PayerEmail, "type": "customer"}
	}
	switch req.BillingMethod {
	case entities.BillingMethodPix:
		m["payment_method_id"] = "pix"
	case entities.BillingMethodBoleto:
		m["payment_method_id"] = "bolbradesco"
	case entities.BillingMethodCreditCard:
		if req.CardToken == "" {
			return nil, ErrMissingCardData
		}
		m["token"] = req.CardToken
		m["installments"] = 1
		m["capture"] = capture
	default:
		return nil, fmt.Errorf("unknown billing method %q", req.BillingMethod)
	}
	return m, nil
}

// classifySDKError maps SDK errors by the status markers found in their text.
func classifySDKError(op string, err error) *GatewayError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewTransportError(op, err)
	}
	msg := strings.ToLower(err.Error())
	for _, status := range []int{
		http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound,
		http.StatusRequestTimeout, http.StatusTooManyRequests, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout,
	} {
		if strings.Contains(msg, fmt.Sprintf("\"status\":%d", status)) {
			ge := NewStatusError(op, status, nil)
			ge.Err = err
			return ge
		}
	}
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "connection refused") {
		return NewTransportError(op, err)
	}
	return &GatewayError{Op: op, Kind: KindUnknown, Err: err}
}
