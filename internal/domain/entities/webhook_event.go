package entities

import "github.com/shopspring/decimal"

// WebhookEventKind is the provider event name found in the envelope.
type WebhookEventKind string

const (
	EventPaymentCreated         WebhookEventKind = "PAYMENT_CREATED"
	EventPaymentAwaitingPayment WebhookEventKind = "PAYMENT_AWAITING_PAYMENT"
	EventPaymentReceived        WebhookEventKind = "PAYMENT_RECEIVED"
	EventPaymentConfirmed       WebhookEventKind = "PAYMENT_CONFIRMED"
	EventPaymentOverdue         WebhookEventKind = "PAYMENT_OVERDUE"
	EventPaymentRefunded        WebhookEventKind = "PAYMENT_REFUNDED"
	EventPaymentDeleted         WebhookEventKind = "PAYMENT_DELETED"
)

// WebhookEvent is the parsed inbound envelope.
type WebhookEvent struct {
	Event   WebhookEventKind `json:"event"`
	Payment ProviderPayment  `json:"payment"`
}

// ProviderPayment is the payment snapshot embedded in a provider event.
// ExternalReference carries the local reservation id (or the local payment id
// for credit purchases) sent at creation time.
type ProviderPayment struct {
	ID                string          `json:"id"`
	Customer          string          `json:"customer,omitempty"`
	Status            string          `json:"status"`
	Value             decimal.Decimal `json:"value"`
	NetValue          decimal.Decimal `json:"netValue"`
	BillingType       string          `json:"billingType"`
	DueDate           string          `json:"dueDate,omitempty"`
	PaymentDate       string          `json:"paymentDate,omitempty"`
	ConfirmedDate     string          `json:"confirmedDate,omitempty"`
	ExternalReference string          `json:"externalReference,omitempty"`
	InvoiceURL        string          `json:"invoiceUrl,omitempty"`
}

// ProviderBillingType maps local billing methods to provider billing types.
func ProviderBillingType(m BillingMethod) string {
	switch m {
	case BillingMethodPix:
		return "PIX"
	case BillingMethodCreditCard:
		return "CREDIT_CARD"
	case BillingMethodBoleto:
		return "BOLETO"
	}
	return ""
}

// BillingMethodFromProvider is the inverse of ProviderBillingType.
func BillingMethodFromProvider(billingType string) (BillingMethod, bool) {
	switch billingType {
	case "PIX":
		return BillingMethodPix, true
	case "CREDIT_CARD":
		return BillingMethodCreditCard, true
	case "BOLETO":
		return BillingMethodBoleto, true
	}
	return "", false
}
