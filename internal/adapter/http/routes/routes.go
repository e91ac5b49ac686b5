package routes

import (
	_ "quadra_billing/docs" // swagger spec
	"quadra_billing/internal/adapter/http/handlers"
	"quadra_billing/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers groups every HTTP handler the router exposes.
type Handlers struct {
	Webhook     *handlers.WebhookHandler
	Payment     *handlers.PaymentHandler
	Reservation *handlers.ReservationHandler
	Rateio      *handlers.RateioHandler
	Template    *handlers.TemplateHandler
}

// NewRouter builds the gin engine with middlewares, swagger and the /v1 routes.
func NewRouter(h Handlers, log logrus.FieldLogger) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, log)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addWebhookRoutes(v1, h.Webhook)
	addBillingRoutes(v1, h)
	return router
}

func setMiddlewares(router *gin.Engine, log logrus.FieldLogger) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
}
