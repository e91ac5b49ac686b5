package handlers

import (
	"errors"
	"io"
	"net/http"

	"quadra_billing/internal/adapter/http/dto/response"
	"quadra_billing/internal/adapter/http/middleware"
	"quadra_billing/internal/usecase"
	"quadra_billing/pkg"

	"github.com/gin-gonic/gin"
)

const (
	HeaderWebhookSignature = "X-Webhook-Signature"
	maxWebhookBodyBytes    = 1 << 20
)

var errWebhookBodyTooLarge = errors.New("webhook body too large")

// WebhookHandler receives provider payment events.
type WebhookHandler struct {
	usecase usecase.IWebhookUseCase
}

func NewWebhookHandler(uc usecase.IWebhookUseCase) *WebhookHandler {
	return &WebhookHandler{usecase: uc}
}

// HandlePaymentEvent godoc
// @Summary      Receive a payment provider webhook
// @Description  Verifies X-Webhook-Signature over the raw body and applies the event. 2xx acknowledges the delivery, 5xx asks the provider to redeliver.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-Webhook-Signature  header  string  true  "hex HMAC-SHA256 of the body"
// @Success      200  {object}  response.WebhookAck
// @Failure      400  {object}  pkg.HTTPError
// @Failure      401  {object}  pkg.HTTPError
// @Failure      413  {object}  pkg.HTTPError
// @Failure      500  {object}  response.WebhookFailure
// @Router       /webhooks/payments [post]
func (h *WebhookHandler) HandlePaymentEvent(c *gin.Context) {
	rid := middleware.GetRequestID(c)

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes+1))
	if err != nil {
		abortInvalidPayload(c, err)
		return
	}
	if len(body) > maxWebhookBodyBytes {
		_ = c.Error(errWebhookBodyTooLarge)
		appErr := pkg.NewDomainErrorSimple("PAYLOAD_TOO_LARGE", "Webhook body exceeds 1 MiB", http.StatusRequestEntityTooLarge)
		c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPErrorWithRequestID(rid))
		return
	}

	res := h.usecase.Dispatch(c.Request.Context(), rid, body, c.GetHeader(HeaderWebhookSignature))
	switch res.Outcome {
	case usecase.OutcomeRejected:
		_ = c.Error(res.Err)
		appErr := pkg.NewDomainErrorSimple("INVALID_SIGNATURE", "Invalid webhook signature", http.StatusUnauthorized)
		c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPErrorWithRequestID(rid))
	case usecase.OutcomeInvalid:
		_ = c.Error(res.Err)
		appErr := pkg.NewDomainErrorSimple("INVALID_WEBHOOK_PAYLOAD", "Invalid webhook payload", http.StatusBadRequest)
		c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPErrorWithRequestID(rid))
	case usecase.OutcomeErrored:
		_ = c.Error(res.Err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.WebhookFailure{
			Error:     "webhook processing failed",
			RequestID: rid,
			Message:   res.Err.Error(),
		})
	default:
		c.JSON(http.StatusOK, response.WebhookAck{
			Status:           "ok",
			RequestID:        rid,
			ProcessingTimeMs: res.ProcessingTime.Milliseconds(),
		})
	}
}
