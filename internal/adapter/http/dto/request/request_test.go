package request

import (
	"encoding/json"
	"testing"

	"quadra_billing/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func TestCreateChargeRequest_ToInput(t *testing.T) {
	var r CreateChargeRequest
	body := `{"participant_id":" p1 ","billing_method":" PIX ","amount":"45.50","customer":{"name":"Ana","tax_id":"123"},
		"card":{"holder_name":"Ana","number":"4111111111111111","expiry_month":"12","expiry_year":"2030","cvv":"123"}}`
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	in := r.ToInput(" r1 ", "10.0.0.1")
	if in.ReservationID != "r1" || in.ParticipantID != "p1" || in.BillingMethod != entities.BillingMethodPix {
		t.Fatalf("unexpected input: %+v", in)
	}
	if !in.Amount.Equal(decimal.RequireFromString("45.5")) || in.RemoteIP != "10.0.0.1" {
		t.Fatalf("unexpected amount or ip: %+v", in)
	}
	if in.Customer == nil || in.Customer.Name != "Ana" || in.Card == nil || in.Card.Number != "4111111111111111" {
		t.Fatalf("expected customer and card to be mapped: %+v", in)
	}
}

func TestCreateChargeRequest_ToInputWithoutAmount(t *testing.T) {
	in := CreateChargeRequest{BillingMethod: "boleto"}.ToInput("", "")
	if !in.Amount.IsZero() || in.Customer != nil || in.Card != nil {
		t.Fatalf("expected zero amount and no nested data, got %+v", in)
	}
}

func TestCreateReservationRequest_ToInput(t *testing.T) {
	r := CreateReservationRequest{
		CourtName: " Quadra 2 ", Date: "2026-10-20", StartTime: "19:00",
		TotalValue:   decimal.RequireFromString("300"),
		Participants: []ParticipantRequest{{Name: "Ana"}, {Name: "Bia", Contact: "+5511988887777"}},
	}
	in := r.ToInput()
	if in.CourtName != "Quadra 2" || len(in.Participants) != 2 || in.Participants[1].Contact != "+5511988887777" {
		t.Fatalf("unexpected input: %+v", in)
	}
}

func TestRateioPreviewRequest_Decode(t *testing.T) {
	var r RateioPreviewRequest
	body := `{"total":"300","mode":"percent","participants":[{"id":"a","percentual":"60"},{"id":"b","percentual":"40"}]}`
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	in := r.ToInput()
	if in.Mode != entities.RateioModePercent || len(in.Participants) != 2 || !in.Participants[0].Percentual.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("unexpected input: %+v", in)
	}
	if !r.Total.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected total 300, got %s", r.Total)
	}
}
