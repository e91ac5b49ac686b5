package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"quadra_billing/internal/domain/entities"
	"quadra_billing/internal/infrastructure/logger"
	"quadra_billing/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrMissingAsaasAccessToken = errors.New("missing ASAAS_ACCESS_TOKEN")
	ErrMissingCardData         = errors.New("credit card charge requires card data or card token")
	ErrInvalidChargeAmount     = errors.New("charge amount must be positive")
)

const asaasAccessTokenHeader = "access_token"

// AsaasGateway talks to the Asaas v3 REST API. Every call goes through the
// retrier and authenticates with the static access_token header.
type AsaasGateway struct {
	baseURL     string
	accessToken string
	http        *http.Client
	retrier     *Retrier
	log         *logrus.Entry
}

var _ interfaces.IPaymentGateway = (*AsaasGateway)(nil)

type AsaasOptions struct {
	BaseURL     string
	AccessToken string
	Timeout     time.Duration
	Retry       RetryPolicy
	Logger      logrus.FieldLogger
	HTTPClient  *http.Client
}

func NewAsaasGateway(opts AsaasOptions) (*AsaasGateway, error) {
	if strings.TrimSpace(opts.AccessToken) == "" {
		return nil, ErrMissingAsaasAccessToken
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &AsaasGateway{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		accessToken: opts.AccessToken,
		http:        client,
		retrier:     NewRetrier(opts.Retry, opts.Logger),
		log:         logger.Component(opts.Logger, "payment.gateway"),
	}, nil
}

type asaasCustomer struct {
	ID                string `json:"id,omitempty"`
	Name              string `json:"name"`
	CpfCnpj           string `json:"cpfCnpj,omitempty"`
	Email             string `json:"email,omitempty"`
	MobilePhone       string `json:"mobilePhone,omitempty"`
	ExternalReference string `json:"externalReference,omitempty"`
}

type asaasCreditCard struct {
	HolderName  string `json:"holderName"`
	Number      string `json:"number"`
	ExpiryMonth string `json:"expiryMonth"`
	ExpiryYear  string `json:"expiryYear"`
	CCV         string `json:"ccv"`
}

type asaasCardHolderInfo struct {
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	CpfCnpj       string `json:"cpfCnpj"`
	PostalCode    string `json:"postalCode"`
	AddressNumber string `json:"addressNumber"`
	Phone         string `json:"phone,omitempty"`
}

type asaasPaymentRequest struct {
	Customer             string               `json:"customer"`
	BillingType          string               `json:"billingType"`
	Value                json.Number          `json:"value"`
	DueDate              string               `json:"dueDate"`
	Description          string               `json:"description,omitempty"`
	ExternalReference    string               `json:"externalReference,omitempty"`
	CreditCard           *asaasCreditCard     `json:"creditCard,omitempty"`
	CreditCardHolderInfo *asaasCardHolderInfo `json:"creditCardHolderInfo,omitempty"`
	CreditCardToken      string               `json:"creditCardToken,omitempty"`
	RemoteIP             string               `json:"remoteIp,omitempty"`
	AuthorizeOnly        bool                 `json:"authorizeOnly,omitempty"`
}

type asaasPayment struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	Value       decimal.Decimal `json:"value"`
	InvoiceURL  string          `json:"invoiceUrl"`
	BankSlipURL string          `json:"bankSlipUrl"`
	CreditCard  *struct {
		CreditCardToken string `json:"creditCardToken"`
	} `json:"creditCard"`
}

type asaasRefundRequest struct {
	Value       *json.Number `json:"value,omitempty"`
	Description string       `json:"description,omitempty"`
}

type asaasErrorBody struct {
	Errors []ProviderErrorDetail `json:"errors"`
}

func (g *AsaasGateway) CreateCustomer(ctx context.Context, req entities.CustomerRequest) (entities.GatewayCustomer, error) {
	var out asaasCustomer
	if err := g.call(ctx, "create customer", http.MethodPost, "/v3/customers", toAsaasCustomer(req), &out); err != nil {
		return entities.GatewayCustomer{}, err
	}
	return entities.GatewayCustomer{ID: out.ID, Name: out.Name, Email: out.Email}, nil
}

func (g *AsaasGateway) UpdateCustomer(ctx context.Context, customerID string, req entities.CustomerRequest) (entities.GatewayCustomer, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return entities.GatewayCustomer{}, NewValidationError("update customer", errors.New("empty customer id"))
	}
	var out asaasCustomer
	if err := g.call(ctx, "update customer", http.MethodPut, "/v3/customers/"+url.PathEscape(customerID), toAsaasCustomer(req), &out); err != nil {
		return entities.GatewayCustomer{}, err
	}
	return entities.GatewayCustomer{ID: out.ID, Name: out.Name, Email: out.Email}, nil
}

func (g *AsaasGateway) CreatePayment(ctx context.Context, req entities.ChargeRequest) (entities.GatewayCharge, error) {
	return g.createCharge(ctx, "create payment", req, false)
}

func (g *AsaasGateway) CreatePreAuthorization(ctx context.Context, req entities.ChargeRequest) (entities.GatewayCharge, error) {
	if req.BillingMethod != entities.BillingMethodCreditCard {
		return entities.GatewayCharge{}, NewValidationError("create pre-authorization", fmt.Errorf("billing method %q cannot be pre-authorized", req.BillingMethod))
	}
	return g.createCharge(ctx, "create pre-authorization", req, true)
}

func (g *AsaasGateway) CapturePreAuthorization(ctx context.Context, providerPaymentID string) (entities.GatewayCharge, error) {
	return g.paymentAction(ctx, "capture pre-authorization", http.MethodPost, providerPaymentID, "/captureAuthorizedPayment", nil)
}

func (g *AsaasGateway) CancelPreAuthorization(ctx context.Context, providerPaymentID string) (entities.GatewayCharge, error) {
	if err := g.CancelPayment(ctx, providerPaymentID); err != nil {
		return entities.GatewayCharge{}, err
	}
	return entities.GatewayCharge{ProviderPaymentID: providerPaymentID, Status: "DELETED"}, nil
}

func (g *AsaasGateway) GetPixQRCode(ctx context.Context, providerPaymentID string) (entities.PixQRCode, error) {
	path, err := paymentPath("get pix qr code", providerPaymentID, "/pixQrCode")
	if err != nil {
		return entities.PixQRCode{}, err
	}
	var out struct {
		EncodedImage   string `json:"encodedImage"`
		Payload        string `json:"payload"`
		ExpirationDate string `json:"expirationDate"`
	}
	if err := g.call(ctx, "get pix qr code", http.MethodGet, path, nil, &out); err != nil {
		return entities.PixQRCode{}, err
	}
	return entities.PixQRCode{EncodedImage: out.EncodedImage, Payload: out.Payload, ExpirationDate: out.ExpirationDate}, nil
}

func (g *AsaasGateway) GetBoletoLink(ctx context.Context, providerPaymentID string) (entities.BoletoLink, error) {
	path, err := paymentPath("get boleto link", providerPaymentID, "")
	if err != nil {
		return entities.BoletoLink{}, err
	}
	var p asaasPayment
	if err := g.call(ctx, "get boleto link", http.MethodGet, path, nil, &p); err != nil {
		return entities.BoletoLink{}, err
	}
	var field struct {
		IdentificationField string `json:"identificationField"`
		BarCode             string `json:"barCode"`
	}
	if err := g.call(ctx, "get boleto identification field", http.MethodGet, path+"/identificationField", nil, &field); err != nil {
		return entities.BoletoLink{}, err
	}
	return entities.BoletoLink{BankSlipURL: p.BankSlipURL, IdentificationField: field.IdentificationField, BarCode: field.BarCode}, nil
}

// RefundPayment refunds the whole charge when amount is nil.
func (g *AsaasGateway) RefundPayment(ctx context.Context, providerPaymentID string, amount *decimal.Decimal, description string) (entities.GatewayCharge, error) {
	body := asaasRefundRequest{Description: description}
	if amount != nil {
		if !amount.IsPositive() {
			return entities.GatewayCharge{}, NewValidationError("refund payment", ErrInvalidChargeAmount)
		}
		v := json.Number(amount.StringFixed(2))
		body.Value = &v
	}
	return g.paymentAction(ctx, "refund payment", http.MethodPost, providerPaymentID, "/refund", body)
}

func (g *AsaasGateway) CancelPayment(ctx context.Context, providerPaymentID string) error {
	path, err := paymentPath("cancel payment", providerPaymentID, "")
	if err != nil {
		return err
	}
	return g.call(ctx, "cancel payment", http.MethodDelete, path, nil, nil)
}

func (g *AsaasGateway) createCharge(ctx context.Context, op string, req entities.ChargeRequest, authorizeOnly bool) (entities.GatewayCharge, error) {
	body, err := toAsaasPayment(req)
	if err != nil {
		return entities.GatewayCharge{}, NewValidationError(op, err)
	}
	body.AuthorizeOnly = authorizeOnly

	var out asaasPayment
	if err := g.call(ctx, op, http.MethodPost, "/v3/payments", body, &out); err != nil {
		return entities.GatewayCharge{}, err
	}
	return out.toCharge(), nil
}

func (g *AsaasGateway) paymentAction(ctx context.Context, op, method, providerPaymentID, suffix string, body any) (entities.GatewayCharge, error) {
	path, err := paymentPath(op, providerPaymentID, suffix)
	if err != nil {
		return entities.GatewayCharge{}, err
	}
	var out asaasPayment
	if err := g.call(ctx, op, method, path, body, &out); err != nil {
		return entities.GatewayCharge{}, err
	}
	return out.toCharge(), nil
}

func (g *AsaasGateway) call(ctx context.Context, op, method, path string, body any, out any) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return NewValidationError(op, err)
		}
		payload = b
	}
	return g.retrier.Do(ctx, op, func(ctx context.Context) error {
		return g.doOnce(ctx, op, method, path, payload, out)
	})
}

func (g *AsaasGateway) doOnce(ctx context.Context, op, method, path string, payload []byte, out any) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return NewValidationError(op, err)
	}
	req.Header.Set(asaasAccessTokenHeader, g.accessToken)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	g.log.WithFields(logrus.Fields{"op": op, "method": method, "path": path, "body": Redact(payload)}).Debug("provider request")

	started := time.Now()
	resp, err := g.http.Do(req)
	if err != nil {
		g.log.WithFields(logrus.Fields{"op": op, "path": path, "error": err.Error()}).Warn("provider transport failure")
		return NewTransportError(op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewTransportError(op, err)
	}

	fields := logrus.Fields{
		"op":          op,
		"path":        path,
		"http_status": resp.StatusCode,
		"latency_ms":  time.Since(started).Milliseconds(),
		"body":        Redact(respBody),
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		g.log.WithFields(fields).Warn("provider error response")
		return NewStatusError(op, resp.StatusCode, parseAsaasErrors(respBody))
	}
	g.log.WithFields(fields).Debug("provider response")

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &GatewayError{Op: op, Kind: KindUnknown, HTTPStatus: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func parseAsaasErrors(body []byte) []ProviderErrorDetail {
	var parsed asaasErrorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil
	}
	return parsed.Errors
}

func paymentPath(op, providerPaymentID, suffix string) (string, error) {
	providerPaymentID = strings.TrimSpace(providerPaymentID)
	if providerPaymentID == "" {
		return "", NewValidationError(op, errors.New("empty provider payment id"))
	}
	return "/v3/payments/" + url.PathEscape(providerPaymentID) + suffix, nil
}

func toAsaasCustomer(req entities.CustomerRequest) asaasCustomer {
	return asaasCustomer{
		Name:              req.Name,
		CpfCnpj:           req.TaxID,
		Email:             req.Email,
		MobilePhone:       req.Phone,
		ExternalReference: req.ExternalReference,
	}
}

func toAsaasPayment(req entities.ChargeRequest) (asaasPaymentRequest, error) {
	billingType := entities.ProviderBillingType(req.BillingMethod)
	if billingType == "" {
		return asaasPaymentRequest{}, fmt.Errorf("unknown billing method %q", req.BillingMethod)
	}
	if !req.Amount.IsPositive() {
		return asaasPaymentRequest{}, ErrInvalidChargeAmount
	}
	dueDate := req.DueDate
	if dueDate == "" {
		dueDate = time.Now().UTC().Format("2006-01-02")
	}
	out := asaasPaymentRequest{
		Customer:          req.CustomerID,
		BillingType:       billingType,
		Value:             json.Number(req.Amount.StringFixed(2)),
		DueDate:           dueDate,
		Description:       req.Description,
		ExternalReference: req.ExternalReference,
		RemoteIP:          req.RemoteIP,
	}
	if req.BillingMethod != entities.BillingMethodCreditCard {
		return out, nil
	}

	switch {
	case req.CardToken != "":
		out.CreditCardToken = req.CardToken
	case req.Card != nil:
		out.CreditCard = &asaasCreditCard{
			HolderName:  req.Card.HolderName,
			Number:      req.Card.Number,
			ExpiryMonth: req.Card.ExpiryMonth,
			ExpiryYear:  req.Card.ExpiryYear,
			CCV:         req.Card.CVV,
		}
		out.CreditCardHolderInfo = &asaasCardHolderInfo{
			Name:          req.Card.HolderName,
			Email:         req.PayerEmail,
			CpfCnpj:       req.Card.HolderTaxID,
			PostalCode:    req.Card.HolderPostalCode,
			AddressNumber: req.Card.HolderAddressNumber,
			Phone:         req.Card.HolderPhone,
		}
	default:
		return asaasPaymentRequest{}, ErrMissingCardData
	}
	return out, nil
}

func (p asaasPayment) toCharge() entities.GatewayCharge {
	c := entities.GatewayCharge{
		ProviderPaymentID: p.ID,
		Status:            p.Status,
		Amount:            p.Value,
		InvoiceURL:        p.InvoiceURL,
		BankSlipURL:       p.BankSlipURL,
	}
	if p.CreditCard != nil {
		c.CardToken = p.CreditCard.CreditCardToken
	}
	return c
}
