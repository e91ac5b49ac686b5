package payments

import (
	"encoding/json"
	"fmt"
	"strings"
)

const redactedMask = "[REDACTED]"

// sensitiveKeys are matched case-insensitively against JSON object keys.
var sensitiveKeys = map[string]bool{
	"number":           true,
	"card_number":      true,
	"creditcardnumber": true,
	"ccv":              true,
	"cvv":              true,
	"security_code":    true,
	"token":            true,
	"card_token":       true,
	"creditcardtoken":  true,
	"access_token":     true,
	"accesstoken":      true,
	"cpfcnpj":          true,
	"holder_tax_id":    true,
	"password":         true,
}

// cardNumberKeys keep their last four digits after masking.
var cardNumberKeys = map[string]bool{
	"number":           true,
	"card_number":      true,
	"creditcardnumber": true,
}

// Redact renders a JSON payload for logging with sensitive fields masked.
// Non-JSON payloads are never echoed.
func Redact(body []byte) string {
	if len(strings.TrimSpace(string(body))) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Sprintf("[non-json body, %d bytes]", len(body))
	}
	b, err := json.Marshal(redactValue(v))
	if err != nil {
		return fmt.Sprintf("[unrenderable body, %d bytes]", len(body))
	}
	return string(b)
}

// RedactValue is Redact for an in-memory request value.
func RedactValue(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[unrenderable value]"
	}
	return Redact(b)
}

func redactValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			key := strings.ToLower(k)
			if sensitiveKeys[key] {
				out[k] = maskScalar(key, val)
				continue
			}
			out[k] = redactValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = redactValue(val)
		}
		return out
	default:
		return v
	}
}

func maskScalar(key string, v any) any {
	s, ok := v.(string)
	if !ok || s == "" {
		if v == nil {
			return nil
		}
		return redactedMask
	}
	if cardNumberKeys[key] && len(s) > 4 {
		return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
	}
	return redactedMask
}
