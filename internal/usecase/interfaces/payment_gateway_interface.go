package interfaces

import (
	"context"
	"quadra_billing/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// IPaymentGateway abstracts external payment providers (Asaas, Mercado Pago).
//
// Implementations retry transient failures themselves and return a
// *payments.GatewayError once the retry budget is spent.
type IPaymentGateway interface {
	CreateCustomer(ctx context.Context, req entities.CustomerRequest) (entities.GatewayCustomer, error)
	UpdateCustomer(ctx context.Context, customerID string, req entities.CustomerRequest) (entities.GatewayCustomer, error)
	CreatePayment(ctx context.Context, req entities.ChargeRequest) (entities.GatewayCharge, error)
	CreatePreAuthorization(ctx context.Context, req entities.ChargeRequest) (entities.GatewayCharge, error)
	CapturePreAuthorization(ctx context.Context, providerPaymentID string) (entities.GatewayCharge, error)
	CancelPreAuthorization(ctx context.Context, providerPaymentID string) (entities.GatewayCharge, error)
	GetPixQRCode(ctx context.Context, providerPaymentID string) (entities.PixQRCode, error)
	GetBoletoLink(ctx context.Context, providerPaymentID string) (entities.BoletoLink, error)
	RefundPayment(ctx context.Context, providerPaymentID string, amount *decimal.Decimal, description string) (entities.GatewayCharge, error)
	CancelPayment(ctx context.Context, providerPaymentID string) error
}
