package routes

import (
	"quadra_billing/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathWebhooks      = "/webhooks"
	PathReservations  = "/reservations"
	PathPayments      = "/payments"
	PathCredits       = "/credits"
	PathRateio        = "/rateio"
	PathNotifications = "/notification-templates"
)

func addWebhookRoutes(rg *gin.RouterGroup, h *handlers.WebhookHandler) {
	webhooks := rg.Group(PathWebhooks)
	{
		webhooks.POST("/payments", h.HandlePaymentEvent)
	}
}

func addBillingRoutes(rg *gin.RouterGroup, h Handlers) {
	reservations := rg.Group(PathReservations)
	{
		reservations.POST("", h.Reservation.CreateReservation)
		reservations.GET("/:reservation_id", h.Reservation.GetReservation)
		reservations.POST("/:reservation_id/payments", h.Payment.CreateReservationCharge)
		reservations.GET("/:reservation_id/payments", h.Payment.ListReservationPayments)
		reservations.POST("/:reservation_id/rateio", h.Rateio.ConfigureRateio)
	}

	credits := rg.Group(PathCredits)
	{
		credits.POST("/purchases", h.Payment.CreateCreditPurchase)
	}

	payments := rg.Group(PathPayments)
	{
		payments.GET("/:payment_id", h.Payment.GetPayment)
		payments.POST("/:payment_id/capture", h.Payment.Capture)
		payments.POST("/:payment_id/cancel", h.Payment.Cancel)
		payments.POST("/:payment_id/refund", h.Payment.Refund)
		payments.GET("/:payment_id/pix-qrcode", h.Payment.GetPixQRCode)
		payments.GET("/:payment_id/boleto", h.Payment.GetBoletoLink)
	}

	rateio := rg.Group(PathRateio)
	{
		rateio.POST("/preview", h.Rateio.PreviewRateio)
	}

	templates := rg.Group(PathNotifications)
	{
		templates.GET("/:key", h.Template.GetTemplate)
		templates.PUT("/:key", h.Template.PutTemplate)
	}
}
