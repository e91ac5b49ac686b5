package usecase

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

var ErrSignatureInvalid = errors.New("invalid webhook signature")

const signaturePrefix = "sha256="

// SignWebhookPayload returns the hex HMAC-SHA256 of body under secret.
func SignWebhookPayload(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyWebhookSignature checks signature against the raw body. It never
// looks inside body. An optional "sha256=" prefix is accepted.
func VerifyWebhookSignature(secret, body []byte, signature string) error {
	signature = strings.TrimSpace(signature)
	signature = strings.TrimPrefix(signature, signaturePrefix)
	if len(secret) == 0 || signature == "" {
		return ErrSignatureInvalid
	}
	provided, err := hex.DecodeString(strings.ToLower(signature))
	if err != nil {
		return ErrSignatureInvalid
	}
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	if !hmac.Equal(provided, mac.Sum(nil)) {
		return ErrSignatureInvalid
	}
	return nil
}
