package request

import (
	"strings"

	"quadra_billing/internal/usecase"

	"github.com/shopspring/decimal"
)

type ParticipantRequest struct {
	Name    string `json:"name" binding:"required"`
	Contact string `json:"contact"`
}

type CreateReservationRequest struct {
	CourtName    string               `json:"court_name" binding:"required"`
	Date         string               `json:"date" binding:"required" example:"2026-10-20"`
	StartTime    string               `json:"start_time" binding:"required" example:"19:00"`
	Contact      string               `json:"contact"`
	TotalValue   decimal.Decimal      `json:"total_value" swaggertype:"string" example:"300.00"`
	Participants []ParticipantRequest `json:"participants" binding:"dive"`
}

func (r CreateReservationRequest) ToInput() usecase.CreateReservationInput {
	in := usecase.CreateReservationInput{
		CourtName:  strings.TrimSpace(r.CourtName),
		Date:       strings.TrimSpace(r.Date),
		StartTime:  strings.TrimSpace(r.StartTime),
		Contact:    strings.TrimSpace(r.Contact),
		TotalValue: r.TotalValue,
	}
	for _, p := range r.Participants {
		in.Participants = append(in.Participants, usecase.ParticipantInput{Name: p.Name, Contact: p.Contact})
	}
	return in
}
