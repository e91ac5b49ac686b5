package request

import (
	"strings"

	"quadra_billing/internal/domain/entities"
	"quadra_billing/internal/usecase"

	"github.com/shopspring/decimal"
)

type CustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	TaxID string `json:"tax_id" binding:"required"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type CardRequest struct {
	HolderName          string `json:"holder_name" binding:"required"`
	Number              string `json:"number" binding:"required"`
	ExpiryMonth         string `json:"expiry_month" binding:"required"`
	ExpiryYear          string `json:"expiry_year" binding:"required"`
	CVV                 string `json:"cvv" binding:"required"`
	HolderTaxID         string `json:"holder_tax_id"`
	HolderPostalCode    string `json:"holder_postal_code"`
	HolderAddressNumber string `json:"holder_address_number"`
	HolderPhone         string `json:"holder_phone"`
}

// CreateChargeRequest originates a charge. Amount is optional for
// reservation charges and required for credit purchases.
type CreateChargeRequest struct {
	ParticipantID string           `json:"participant_id"`
	CustomerID    string           `json:"customer_id"`
	Customer      *CustomerRequest `json:"customer"`
	BillingMethod string           `json:"billing_method" binding:"required"`
	Amount        *decimal.Decimal `json:"amount" swaggertype:"string" example:"120.00"`
	PayerContact  string           `json:"payer_contact"`
	PayerEmail    string           `json:"payer_email"`
	Description   string           `json:"description"`
	DueDate       string           `json:"due_date" example:"2026-10-20"`
	Card          *CardRequest     `json:"card"`
	CardToken     string           `json:"card_token"`
	PreAuthorize  bool             `json:"pre_authorize"`
	Metadata      map[string]any   `json:"metadata"`
}

// ToInput maps the payload onto the use case input. reservationID is empty
// for credit purchases.
func (r CreateChargeRequest) ToInput(reservationID, remoteIP string) usecase.CreateChargeInput {
	in := usecase.CreateChargeInput{
		ReservationID: strings.TrimSpace(reservationID),
		ParticipantID: strings.TrimSpace(r.ParticipantID),
		CustomerID:    strings.TrimSpace(r.CustomerID),
		BillingMethod: entities.BillingMethod(strings.ToLower(strings.TrimSpace(r.BillingMethod))),
		PayerContact:  strings.TrimSpace(r.PayerContact),
		PayerEmail:    strings.TrimSpace(r.PayerEmail),
		Description:   strings.TrimSpace(r.Description),
		DueDate:       strings.TrimSpace(r.DueDate),
		CardToken:     strings.TrimSpace(r.CardToken),
		RemoteIP:      remoteIP,
		PreAuthorize:  r.PreAuthorize,
		Metadata:      r.Metadata,
	}
	if r.Amount != nil {
		in.Amount = *r.Amount
	}
	if r.Customer != nil {
		in.Customer = &entities.CustomerRequest{
			Name:  strings.TrimSpace(r.Customer.Name),
			TaxID: strings.TrimSpace(r.Customer.TaxID),
			Email: strings.TrimSpace(r.Customer.Email),
			Phone: strings.TrimSpace(r.Customer.Phone),
		}
	}
	if r.Card != nil {
		in.Card = &entities.CardData{
			HolderName:          r.Card.HolderName,
			Number:              r.Card.Number,
			ExpiryMonth:         r.Card.ExpiryMonth,
			ExpiryYear:          r.Card.ExpiryYear,
			CVV:                 r.Card.CVV,
			HolderTaxID:         r.Card.HolderTaxID,
			HolderPostalCode:    r.Card.HolderPostalCode,
			HolderAddressNumber: r.Card.HolderAddressNumber,
			HolderPhone:         r.Card.HolderPhone,
		}
	}
	return in
}

// RefundRequest refunds the whole payment when Amount is omitted.
type RefundRequest struct {
	Amount      *decimal.Decimal `json:"amount" swaggertype:"string" example:"50.00"`
	Description string           `json:"description"`
}
