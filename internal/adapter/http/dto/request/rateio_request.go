package request

import (
	"quadra_billing/internal/domain/entities"
	"quadra_billing/internal/usecase"

	"github.com/shopspring/decimal"
)

type RateioParticipantRequest struct {
	ID         string           `json:"id"`
	Valor      *decimal.Decimal `json:"valor" swaggertype:"string"`
	Percentual *decimal.Decimal `json:"percentual" swaggertype:"string"`
}

// RateioRequest configures the split of a stored reservation. With mode
// equal and no participants, every participant of the reservation is used.
type RateioRequest struct {
	Mode         string                     `json:"mode" binding:"required" example:"equal"`
	Participants []RateioParticipantRequest `json:"participants"`
}

func (r RateioRequest) ToInput() usecase.RateioInput {
	in := usecase.RateioInput{Mode: entities.RateioMode(r.Mode)}
	for _, p := range r.Participants {
		in.Participants = append(in.Participants, usecase.RateioParticipantInput{ID: p.ID, Valor: p.Valor, Percentual: p.Percentual})
	}
	return in
}

// RateioPreviewRequest computes a split without touching any reservation.
type RateioPreviewRequest struct {
	RateioRequest
	Total decimal.Decimal `json:"total" swaggertype:"string" example:"300.00"`
}
