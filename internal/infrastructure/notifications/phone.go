package notifications

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ttacon/libphonenumber"
)

var ErrInvalidDestination = errors.New("invalid notification destination")

// NormalizeDestination returns phone numbers in E.164, parsing local
// numbers in region. E-mail addresses pass through untouched.
func NormalizeDestination(raw, region string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidDestination)
	}
	if strings.Contains(raw, "@") {
		return raw, nil
	}
	p, err := libphonenumber.Parse(raw, region)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDestination, err)
	}
	if !libphonenumber.IsValidNumber(p) {
		return "", fmt.Errorf("%w: %s is not a valid number", ErrInvalidDestination, raw)
	}
	return libphonenumber.Format(p, libphonenumber.E164), nil
}
