package handlers

import (
	"net/http"
	"testing"

	"quadra_billing/internal/adapter/http/handlers/mocks"
	"quadra_billing/internal/domain/entities"
	"quadra_billing/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newTemplateRouter(t *testing.T) (*gin.Engine, *mocks.MockITemplateUseCase) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockITemplateUseCase(ctrl)
	h := NewTemplateHandler(uc)

	r := gin.New()
	r.GET("/v1/notification-templates/:key", h.GetTemplate)
	r.PUT("/v1/notification-templates/:key", h.PutTemplate)
	return r, uc
}

func TestTemplateHandler(t *testing.T) {
	t.Run("get missing", func(t *testing.T) {
		r, uc := newTemplateRouter(t)
		uc.EXPECT().Get(gomock.Any(), "payment_confirmed").Return(entities.NotificationTemplate{}, usecase.ErrTemplateNotFound)

		if w := do(r, http.MethodGet, "/v1/notification-templates/payment_confirmed", ""); w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("put", func(t *testing.T) {
		r, uc := newTemplateRouter(t)
		uc.EXPECT().Upsert(gomock.Any(), entities.NotificationTemplate{Key: "payment_confirmed", Body: "Pago!"}).
			Return(entities.NotificationTemplate{Key: "payment_confirmed", Channel: "whatsapp", Body: "Pago!"}, nil)

		w := do(r, http.MethodPut, "/v1/notification-templates/payment_confirmed", `{"body":"Pago!"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if body := decodeBody(t, w); body["channel"] != "whatsapp" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("put without body", func(t *testing.T) {
		r, _ := newTemplateRouter(t)
		if w := do(r, http.MethodPut, "/v1/notification-templates/payment_confirmed", `{"channel":"sms"}`); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}
