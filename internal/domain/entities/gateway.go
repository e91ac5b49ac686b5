package entities

import "github.com/shopspring/decimal"

// CustomerRequest is the payer data sent to the provider.
type CustomerRequest struct {
	Name              string `json:"name"`
	TaxID             string `json:"tax_id"`
	Email             string `json:"email,omitempty"`
	Phone             string `json:"phone,omitempty"`
	ExternalReference string `json:"external_reference,omitempty"`
}

type GatewayCustomer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// CardData is raw card input. It must never be logged unredacted.
// The holder fields feed the provider anti-fraud check.
type CardData struct {
	HolderName          string `json:"holder_name"`
	Number              string `json:"number"`
	ExpiryMonth         string `json:"expiry_month"`
	ExpiryYear          string `json:"expiry_year"`
	CVV                 string `json:"cvv"`
	HolderTaxID         string `json:"holder_tax_id"`
	HolderPostalCode    string `json:"holder_postal_code"`
	HolderAddressNumber string `json:"holder_address_number"`
	HolderPhone         string `json:"holder_phone,omitempty"`
}

// ChargeRequest creates a payment (or a pre-authorization) at the provider.
type ChargeRequest struct {
	CustomerID        string
	BillingMethod     BillingMethod
	Amount            decimal.Decimal
	DueDate           string
	Description       string
	ExternalReference string
	Card              *CardData
	CardToken         string
	RemoteIP          string
	PayerEmail        string
}

// GatewayCharge is the provider view of a created or updated charge.
type GatewayCharge struct {
	ProviderPaymentID string          `json:"provider_payment_id"`
	Status            string          `json:"status"`
	Amount            decimal.Decimal `json:"amount"`
	InvoiceURL        string          `json:"invoice_url,omitempty"`
	BankSlipURL       string          `json:"bank_slip_url,omitempty"`
	CardToken         string          `json:"card_token,omitempty"`
	Raw               map[string]any  `json:"-"`
}

type PixQRCode struct {
	EncodedImage   string `json:"encoded_image"`
	Payload        string `json:"payload"`
	ExpirationDate string `json:"expiration_date,omitempty"`
}

type BoletoLink struct {
	BankSlipURL         string `json:"bank_slip_url"`
	IdentificationField string `json:"identification_field,omitempty"`
	BarCode             string `json:"bar_code,omitempty"`
}
