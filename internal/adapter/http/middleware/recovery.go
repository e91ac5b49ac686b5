package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"quadra_billing/pkg"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Recovery turns a panic into a 500 carrying the request id.
func Recovery(l logrus.FieldLogger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		rid := GetRequestID(c)
		l.WithFields(logrus.Fields{
			"request_id": rid,
			"panic":      fmt.Sprint(recovered),
			"stack":      string(debug.Stack()),
		}).Error("panic_recovered")

		appErr := pkg.NewDomainErrorSimple("INTERNAL_ERROR", "An internal error occurred", http.StatusInternalServerError)
		c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPErrorWithRequestID(rid))
	})
}
