package response

import (
	"time"

	"quadra_billing/internal/domain/entities"
)

type TemplateResponse struct {
	Key       string    `json:"key"`
	Channel   string    `json:"channel"`
	Body      string    `json:"body"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromTemplate(t entities.NotificationTemplate) TemplateResponse {
	return TemplateResponse{Key: t.Key, Channel: t.Channel, Body: t.Body, UpdatedAt: t.UpdatedAt}
}
