package usecase

import (
	"errors"
	"testing"
)

func TestVerifyWebhookSignature(t *testing.T) {
	secret := []byte("whsec")
	body := []byte(`{"event":"PAYMENT_CONFIRMED","payment":{"id":"pay_1"}}`)
	sig := SignWebhookPayload(secret, body)

	t.Run("valid", func(t *testing.T) {
		if err := VerifyWebhookSignature(secret, body, sig); err != nil {
			t.Fatalf("expected valid signature, got %v", err)
		}
	})

	t.Run("prefixed", func(t *testing.T) {
		if err := VerifyWebhookSignature(secret, body, "sha256="+sig); err != nil {
			t.Fatalf("expected prefixed signature accepted, got %v", err)
		}
	})

	t.Run("one byte flipped", func(t *testing.T) {
		tampered := append([]byte(nil), body...)
		tampered[10] ^= 0x01
		if err := VerifyWebhookSignature(secret, tampered, sig); !errors.Is(err, ErrSignatureInvalid) {
			t.Fatalf("expected ErrSignatureInvalid, got %v", err)
		}
	})

	t.Run("empty signature", func(t *testing.T) {
		if err := VerifyWebhookSignature(secret, body, ""); !errors.Is(err, ErrSignatureInvalid) {
			t.Fatalf("expected ErrSignatureInvalid, got %v", err)
		}
	})

	t.Run("empty secret", func(t *testing.T) {
		if err := VerifyWebhookSignature(nil, body, sig); !errors.Is(err, ErrSignatureInvalid) {
			t.Fatalf("expected ErrSignatureInvalid, got %v", err)
		}
	})

	t.Run("not hex", func(t *testing.T) {
		if err := VerifyWebhookSignature(secret, body, "zzzz"); !errors.Is(err, ErrSignatureInvalid) {
			t.Fatalf("expected ErrSignatureInvalid, got %v", err)
		}
	})
}
