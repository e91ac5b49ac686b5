package response

import (
	"time"

	"quadra_billing/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type ParticipantResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Contact       string `json:"contact,omitempty"`
	PaymentStatus string `json:"payment_status"`
	OwedAmount    string `json:"owed_amount,omitempty"`
	OwedPercent   string `json:"owed_percent,omitempty"`
}

type ReservationResponse struct {
	ID                 string                 `json:"id"`
	Status             string                 `json:"status"`
	CancellationReason string                 `json:"cancellation_reason,omitempty"`
	TotalValue         string                 `json:"total_value"`
	CourtName          string                 `json:"court_name"`
	Date               string                 `json:"date"`
	StartTime          string                 `json:"start_time"`
	Contact            string                 `json:"contact,omitempty"`
	Rateio             *entities.RateioConfig `json:"rateio,omitempty"`
	Participants       []ParticipantResponse  `json:"participants"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

func FromReservation(r entities.Reservation, participants []entities.Participant) ReservationResponse {
	out := ReservationResponse{
		ID:                 r.ID,
		Status:             string(r.Status),
		CancellationReason: r.CancellationReason,
		TotalValue:         r.TotalValue.StringFixed(2),
		CourtName:          r.CourtName,
		Date:               r.Date,
		StartTime:          r.StartTime,
		Contact:            r.Contact,
		Rateio:             r.Rateio,
		Participants:       make([]ParticipantResponse, 0, len(participants)),
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
	for _, p := range participants {
		out.Participants = append(out.Participants, ParticipantResponse{
			ID:            p.ID,
			Name:          p.Name,
			Contact:       p.Contact,
			PaymentStatus: string(p.PaymentStatus),
			OwedAmount:    fixed(p.OwedAmount),
			OwedPercent:   fixed(p.OwedPercent),
		})
	}
	return out
}

func fixed(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}
