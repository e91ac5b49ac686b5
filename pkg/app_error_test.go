package pkg

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		e := NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
		if e.Error() != "PAYMENT_NOT_FOUND: Payment not found" {
			t.Fatalf("unexpected error string %q", e.Error())
		}
		body := e.ToHTTPError()
		if body.Code != "PAYMENT_NOT_FOUND" || body.Message != "Payment not found" || body.RequestID != "" {
			t.Fatalf("unexpected body %+v", body)
		}
	})

	t.Run("wrapped", func(t *testing.T) {
		cause := errors.New("boom")
		e := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, http.StatusInternalServerError)
		if !errors.Is(e, cause) {
			t.Fatalf("expected wrapped cause")
		}
		if got := e.ToHTTPErrorWithRequestID("req-1").RequestID; got != "req-1" {
			t.Fatalf("expected request id, got %q", got)
		}
	})

	t.Run("with message keeps original", func(t *testing.T) {
		e := NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		m := e.WithMessage("invalid cpfCnpj")
		if e.Message != "Invalid request" || m.Message != "invalid cpfCnpj" || m.HTTPStatus != http.StatusBadRequest {
			t.Fatalf("unexpected messages %q %q", e.Message, m.Message)
		}
	})
}
