package payments

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ErrorKind classifies provider failures.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindTransient  ErrorKind = "transient"
	KindAuth       ErrorKind = "auth"
	KindUnknown    ErrorKind = "unknown"
)

// ProviderErrorDetail is one entry of the provider structured error list.
type ProviderErrorDetail struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// GatewayError is the only error type returned by the gateways once the
// retry budget is spent.
type GatewayError struct {
	Kind            ErrorKind
	Op              string
	HTTPStatus      int
	Retryable       bool
	Timeout         bool
	Attempts        int
	ProviderDetails []ProviderErrorDetail
	Err             error
}

func (e *GatewayError) Error() string {
	var b strings.Builder
	b.WriteString("payment gateway")
	if e.Op != "" {
		b.WriteString(" ")
		b.WriteString(e.Op)
	}
	b.WriteString(" failed")
	if e.HTTPStatus > 0 {
		fmt.Fprintf(&b, " (status %d)", e.HTTPStatus)
	}
	if e.Timeout {
		b.WriteString(" (timeout)")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if d := e.DetailsString(); d != "" {
		b.WriteString(": ")
		b.WriteString(d)
	}
	return b.String()
}

func (e *GatewayError) Unwrap() error { return e.Err }

// DetailsString joins the provider details as "code: description" pairs.
func (e *GatewayError) DetailsString() string {
	parts := make([]string, 0, len(e.ProviderDetails))
	for _, d := range e.ProviderDetails {
		switch {
		case d.Code != "" && d.Description != "":
			parts = append(parts, d.Code+": "+d.Description)
		case d.Description != "":
			parts = append(parts, d.Description)
		case d.Code != "":
			parts = append(parts, d.Code)
		}
	}
	return strings.Join(parts, "; ")
}

// UserMessage is the text shown to the payer: the provider details when
// present, the local validation cause otherwise, or the given default.
func (e *GatewayError) UserMessage(def string) string {
	if d := e.DetailsString(); d != "" {
		return def + ": " + d
	}
	if e.Kind == KindValidation && e.HTTPStatus == 0 && e.Err != nil {
		return def + ": " + e.Err.Error()
	}
	return def
}

var retryableStatuses = map[int]bool{
	http.StatusRequestTimeout:      true,
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// IsRetryableStatus reports whether an HTTP status is worth another attempt.
func IsRetryableStatus(status int) bool {
	return retryableStatuses[status]
}

// NewStatusError classifies a non-2xx provider answer.
func NewStatusError(op string, status int, details []ProviderErrorDetail) *GatewayError {
	e := &GatewayError{Op: op, HTTPStatus: status, ProviderDetails: details}
	switch {
	case IsRetryableStatus(status):
		e.Kind = KindTransient
		e.Retryable = true
		e.Timeout = status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e.Kind = KindAuth
	case status >= 400 && status < 500:
		e.Kind = KindValidation
	default:
		e.Kind = KindUnknown
	}
	return e
}

// NewTransportError classifies a failure that produced no HTTP answer.
// Timeouts and connection failures are retryable; caller cancellation is not.
func NewTransportError(op string, err error) *GatewayError {
	e := &GatewayError{Op: op, Err: err, Kind: KindTransient, Retryable: true}
	if errors.Is(err, context.Canceled) {
		e.Kind = KindUnknown
		e.Retryable = false
		return e
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		e.Timeout = true
	}
	return e
}

// NewValidationError reports a request rejected before reaching the provider.
func NewValidationError(op string, err error) *GatewayError {
	return &GatewayError{Op: op, Kind: KindValidation, Err: err}
}

// AsGatewayError extracts a *GatewayError from err.
func AsGatewayError(err error) (*GatewayError, bool) {
	var ge *GatewayError
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}

func IsValidation(err error) bool {
	ge, ok := AsGatewayError(err)
	return ok && ge.Kind == KindValidation
}

func IsTransient(err error) bool {
	ge, ok := AsGatewayError(err)
	return ok && ge.Kind == KindTransient
}

func IsAuth(err error) bool {
	ge, ok := AsGatewayError(err)
	return ok && ge.Kind == KindAuth
}

// FailureKind exposes the kind to callers that only see the error interface.
func (e *GatewayError) FailureKind() string { return string(e.Kind) }
