package handlers

import (
	"errors"
	"net/http"

	"quadra_billing/internal/adapter/http/middleware"
	"quadra_billing/internal/usecase"
	"quadra_billing/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)

// mapUseCaseError translates use case sentinels into the HTTP error shape.
// Validation errors keep the use case message, which names the bad field.
func mapUseCaseError(err error) *pkg.AppError {
	var pf *usecase.ProviderFailure
	if errors.As(err, &pf) {
		switch {
		case errors.Is(err, usecase.ErrPaymentProviderRejected):
			return pkg.NewDomainError("PAYMENT_PROVIDER_REJECTED", pf.Message, err, http.StatusBadRequest)
		case errors.Is(err, usecase.ErrPaymentProviderUnauthorized):
			return pkg.NewDomainError("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider rejected our credentials", err, http.StatusBadGateway)
		default:
			return pkg.NewDomainError("PAYMENT_PROVIDER_UNAVAILABLE", pf.Message, err, http.StatusBadGateway)
		}
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidPaymentID), errors.Is(err, usecase.ErrInvalidReservationID),
		errors.Is(err, usecase.ErrInvalidBillingMethod), errors.Is(err, usecase.ErrInvalidChargeAmount),
		errors.Is(err, usecase.ErrMissingCustomer), errors.Is(err, usecase.ErrPreAuthorizationUnsupported),
		errors.Is(err, usecase.ErrInvalidRefundAmount), errors.Is(err, usecase.ErrInvalidReservation),
		errors.Is(err, usecase.ErrInvalidParticipantData), errors.Is(err, usecase.ErrInvalidTemplate):
		return pkg.NewDomainError("INVALID_REQUEST", err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrReservationNotFound):
		return pkg.NewDomainErrorSimple("RESERVATION_NOT_FOUND", "Reservation not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrUnknownParticipant):
		return pkg.NewDomainError("PARTICIPANT_NOT_FOUND", err.Error(), err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrTemplateNotFound):
		return pkg.NewDomainErrorSimple("TEMPLATE_NOT_FOUND", "Notification template not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrReservationNotPayable), errors.Is(err, usecase.ErrReservationCancelled):
		return pkg.NewDomainError("RESERVATION_NOT_PAYABLE", err.Error(), err, http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentNotLinked), errors.Is(err, usecase.ErrPaymentNotCapturable),
		errors.Is(err, usecase.ErrPaymentNotCancellable), errors.Is(err, usecase.ErrPaymentNotRefundable),
		errors.Is(err, usecase.ErrArtifactUnavailable):
		return pkg.NewDomainError("PAYMENT_STATE_CONFLICT", err.Error(), err, http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

// abortWithError writes the mapped error and records the cause for the
// access log.
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	appErr := mapUseCaseError(err)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPErrorWithRequestID(middleware.GetRequestID(c)))
}

func abortInvalidPayload(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(errInvalidPayload.HTTPStatus, errInvalidPayload.WithMessage(err.Error()).ToHTTPErrorWithRequestID(middleware.GetRequestID(c)))
}
