package payments

import (
	"strings"
	"testing"
)

func TestRedact(t *testing.T) {
	t.Run("masks card data and tokens", func(t *testing.T) {
		body := []byte(`{"customer":"cus_1","creditCard":{"number":"4111111111111111","ccv":"123","holderName":"Ana"},"creditCardHolderInfo":{"cpfCnpj":"24971563792"},"creditCardToken":"tok_abc"}`)
		out := Redact(body)
		for _, secret := range []string{"4111111111111111", "\"123\"", "24971563792", "tok_abc"} {
			if strings.Contains(out, secret) {
				t.Fatalf("secret %s leaked in %s", secret, out)
			}
		}
		if !strings.Contains(out, "************1111") {
			t.Fatalf("expected last four digits kept, got %s", out)
		}
		if !strings.Contains(out, `"holderName":"Ana"`) || !strings.Contains(out, `"customer":"cus_1"`) {
			t.Fatalf("expected non-sensitive fields kept, got %s", out)
		}
	})

	t.Run("arrays are walked", func(t *testing.T) {
		out := Redact([]byte(`{"items":[{"access_token":"secret"}]}`))
		if strings.Contains(out, "secret") {
			t.Fatalf("expected nested token masked, got %s", out)
		}
	})

	t.Run("non json is not echoed", func(t *testing.T) {
		out := Redact([]byte("number=4111111111111111"))
		if strings.Contains(out, "4111") {
			t.Fatalf("non-json body leaked: %s", out)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if Redact(nil) != "" {
			t.Fatalf("expected empty output")
		}
	})

	t.Run("value helper", func(t *testing.T) {
		out := RedactValue(map[string]any{"cvv": "999"})
		if strings.Contains(out, "999") {
			t.Fatalf("expected cvv masked, got %s", out)
		}
	})
}
