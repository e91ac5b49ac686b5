package payments

import (
	"context"
	"errors"
	"testing"

	"quadra_billing/internal/domain/entities"
	"quadra_billing/internal/infrastructure/logger"

	"github.com/shopspring/decimal"
)

func TestNewMercadoPagoGateway(t *testing.T) {
	if _, err := NewMercadoPagoGateway(MercadoPagoOptions{Logger: logger.Discard()}); !errors.Is(err, ErrMissingMercadoPagoAccessToken) {
		t.Fatalf("expected ErrMissingMercadoPagoAccessToken, got %v", err)
	}
}

func TestMercadoPagoGateway_MockMode(t *testing.T) {
	g, err := NewMercadoPagoGateway(MercadoPagoOptions{Mock: true, Logger: logger.Discard()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	charge, err := g.CreatePayment(context.Background(), entities.ChargeRequest{
		BillingMethod:     entities.BillingMethodPix,
		Amount:            decimal.NewFromInt(80),
		ExternalReference: "res-1",
	})
	if err != nil || charge.ProviderPaymentID == "" || charge.Status != "approved" {
		t.Fatalf("unexpected charge %+v err=%v", charge, err)
	}
	if charge.Raw["payment_method_id"] != "pix" || charge.Raw["external_reference"] != "res-1" {
		t.Fatalf("unexpected request map %v", charge.Raw)
	}

	pre, err := g.CreatePreAuthorization(context.Background(), entities.ChargeRequest{
		BillingMethod: entities.BillingMethodCreditCard,
		Amount:        decimal.NewFromInt(80),
		CardToken:     "card_tok",
	})
	if err != nil || pre.Status != "authorized" || pre.Raw["capture"] != false {
		t.Fatalf("unexpected pre-authorization %+v err=%v", pre, err)
	}

	if _, err := g.CapturePreAuthorization(context.Background(), "not-a-number"); !IsValidation(err) {
		t.Fatalf("expected validation error for non numeric id, got %v", err)
	}
	if err := g.CancelPayment(context.Background(), "123"); err != nil {
		t.Fatalf("unexpected cancel error: %v", err)
	}
	if _, err := g.GetPixQRCode(context.Background(), "123"); !errors.Is(err, ErrOperationNotSupported) {
		t.Fatalf("expected ErrOperationNotSupported, got %v", err)
	}
}

func TestClassifySDKError(t *testing.T) {
	cases := []struct {
		msg  string
		kind ErrorKind
	}{
		{`{"message":"invalid","error":"bad_request","status":400}`, KindValidation},
		{`{"error":"unauthorized","status":401}`, KindAuth},
		{`{"status":503}`, KindTransient},
		{`dial tcp: i/o timeout`, KindTransient},
		{`something odd`, KindUnknown},
	}
	for _, tc := range cases {
		if got := classifySDKError("op", errors.New(tc.msg)); got.Kind != tc.kind {
			t.Fatalf("%s: expected %s, got %s", tc.msg, tc.kind, got.Kind)
		}
	}
}
