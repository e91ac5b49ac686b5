package handlers

import (
	"net/http"

	"quadra_billing/internal/adapter/http/dto/request"
	"quadra_billing/internal/adapter/http/dto/response"
	"quadra_billing/internal/usecase"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles charge origination and provider operations.
type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// CreateReservationCharge godoc
// @Summary      Originate a reservation charge
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        reservation_id  path  string                       true  "Reservation ID"
// @Param        payload         body  request.CreateChargeRequest  true  "Charge"
// @Success      201  {object}  response.ChargeResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Failure      502  {object}  pkg.HTTPError
// @Router       /reservations/{reservation_id}/payments [post]
func (h *PaymentHandler) CreateReservationCharge(c *gin.Context) {
	var payload request.CreateChargeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortInvalidPayload(c, err)
		return
	}

	res, err := h.usecase.CreateReservationCharge(c.Request.Context(), payload.ToInput(c.Param("reservation_id"), c.ClientIP()))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromChargeResult(res))
}

// CreateCreditPurchase godoc
// @Summary      Originate a credit purchase
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        payload  body  request.CreateChargeRequest  true  "Charge"
// @Success      201  {object}  response.ChargeResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      502  {object}  pkg.HTTPError
// @Router       /credits/purchases [post]
func (h *PaymentHandler) CreateCreditPurchase(c *gin.Context) {
	var payload request.CreateChargeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortInvalidPayload(c, err)
		return
	}

	res, err := h.usecase.CreateCreditPurchase(c.Request.Context(), payload.ToInput("", c.ClientIP()))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromChargeResult(res))
}

// GetPayment godoc
// @Summary      Get a payment
// @Tags         payments
// @Produce      json
// @Param        payment_id  path  string  true  "Payment ID"
// @Success      200  {object}  response.PaymentResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /payments/{payment_id} [get]
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	p, err := h.usecase.GetByID(c.Request.Context(), c.Param("payment_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromPayment(p))
}

// ListReservationPayments godoc
// @Summary      List the payments of a reservation, oldest first
// @Tags         payments
// @Produce      json
// @Param        reservation_id  path  string  true  "Reservation ID"
// @Success      200  {array}   response.PaymentResponse
// @Router       /reservations/{reservation_id}/payments [get]
func (h *PaymentHandler) ListReservationPayments(c *gin.Context) {
	ps, err := h.usecase.ListByReservationID(c.Request.Context(), c.Param("reservation_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromPayments(ps))
}

// Capture godoc
// @Summary      Capture a credit card pre-authorization
// @Tags         payments
// @Produce      json
// @Param        payment_id  path  string  true  "Payment ID"
// @Success      200  {object}  response.GatewayChargeResponse
// @Failure      409  {object}  pkg.HTTPError
// @Router       /payments/{payment_id}/capture [post]
func (h *PaymentHandler) Capture(c *gin.Context) {
	charge, err := h.usecase.Capture(c.Request.Context(), c.Param("payment_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromGatewayCharge(charge))
}

// Cancel godoc
// @Summary      Cancel an open charge at the provider
// @Tags         payments
// @Produce      json
// @Param        payment_id  path  string  true  "Payment ID"
// @Success      200  {object}  response.GatewayChargeResponse
// @Failure      409  {object}  pkg.HTTPError
// @Router       /payments/{payment_id}/cancel [post]
func (h *PaymentHandler) Cancel(c *gin.Context) {
	charge, err := h.usecase.Cancel(c.Request.Context(), c.Param("payment_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromGatewayCharge(charge))
}

// Refund godoc
// @Summary      Refund a settled payment, fully or partially
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        payment_id  path  string                 true   "Payment ID"
// @Param        payload     body  request.RefundRequest  false  "Refund"
// @Success      200  {object}  response.GatewayChargeResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Router       /payments/{payment_id}/refund [post]
func (h *PaymentHandler) Refund(c *gin.Context) {
	var payload request.RefundRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			abortInvalidPayload(c, err)
			return
		}
	}

	charge, err := h.usecase.Refund(c.Request.Context(), c.Param("payment_id"), payload.Amount, payload.Description)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromGatewayCharge(charge))
}

// GetPixQRCode godoc
// @Summary      Get the Pix QR code of a payment
// @Tags         payments
// @Produce      json
// @Param        payment_id  path  string  true  "Payment ID"
// @Success      200  {object}  entities.PixQRCode
// @Failure      409  {object}  pkg.HTTPError
// @Router       /payments/{payment_id}/pix-qrcode [get]
func (h *PaymentHandler) GetPixQRCode(c *gin.Context) {
	qr, err := h.usecase.GetPixQRCode(c.Request.Context(), c.Param("payment_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, qr)
}

// GetBoletoLink godoc
// @Summary      Get the boleto link of a payment
// @Tags         payments
// @Produce      json
// @Param        payment_id  path  string  true  "Payment ID"
// @Success      200  {object}  entities.BoletoLink
// @Failure      409  {object}  pkg.HTTPError
// @Router       /payments/{payment_id}/boleto [get]
func (h *PaymentHandler) GetBoletoLink(c *gin.Context) {
	link, err := h.usecase.GetBoletoLink(c.Request.Context(), c.Param("payment_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}
