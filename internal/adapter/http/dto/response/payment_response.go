package response

import (
	"time"

	"quadra_billing/internal/domain/entities"
	"quadra_billing/internal/usecase"
)

type PaymentResponse struct {
	ID                string         `json:"id"`
	ProviderPaymentID string         `json:"provider_payment_id,omitempty"`
	ReservationID     string         `json:"reservation_id,omitempty"`
	CustomerID        string         `json:"customer_id,omitempty"`
	Amount            string         `json:"amount"`
	NetValue          string         `json:"net_value"`
	BillingMethod     string         `json:"billing_method"`
	Status            string         `json:"status"`
	DueDate           string         `json:"due_date,omitempty"`
	Metadata          map[string]any `json:"metadata,omitempty"`
	PaidAt            *time.Time     `json:"paid_at,omitempty"`
	ConfirmedAt       *time.Time     `json:"confirmed_at,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                p.ID,
		ProviderPaymentID: p.ProviderPaymentID,
		ReservationID:     p.ReservationID,
		CustomerID:        p.CustomerID,
		Amount:            p.Amount.StringFixed(2),
		NetValue:          p.NetValue.StringFixed(2),
		BillingMethod:     string(p.BillingMethod),
		Status:            string(p.Status),
		DueDate:           p.DueDate,
		Metadata:          p.Metadata,
		PaidAt:            p.PaidAt,
		ConfirmedAt:       p.ConfirmedAt,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func FromPayments(ps []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromPayment(p))
	}
	return out
}

// GatewayChargeResponse is the provider view of a charge after an operation.
type GatewayChargeResponse struct {
	ProviderPaymentID string `json:"provider_payment_id"`
	ProviderStatus    string `json:"provider_status"`
	Amount            string `json:"amount"`
	InvoiceURL        string `json:"invoice_url,omitempty"`
	BankSlipURL       string `json:"bank_slip_url,omitempty"`
}

func FromGatewayCharge(c entities.GatewayCharge) GatewayChargeResponse {
	return GatewayChargeResponse{
		ProviderPaymentID: c.ProviderPaymentID,
		ProviderStatus:    c.Status,
		Amount:            c.Amount.StringFixed(2),
		InvoiceURL:        c.InvoiceURL,
		BankSlipURL:       c.BankSlipURL,
	}
}

// ChargeResponse answers a charge origination. The local status stays
// pending until the provider webhook arrives.
type ChargeResponse struct {
	Payment PaymentResponse       `json:"payment"`
	Charge  GatewayChargeResponse `json:"charge"`
}

func FromChargeResult(r usecase.ChargeResult) ChargeResponse {
	return ChargeResponse{Payment: FromPayment(r.Payment), Charge: FromGatewayCharge(r.Charge)}
}
