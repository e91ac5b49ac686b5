package interfaces

import (
	"context"
	"quadra_billing/internal/domain/entities"
)

// ITemplateRepository stores notification templates by key.
// Get returns the zero value when the key is unknown.
type ITemplateRepository interface {
	Get(ctx context.Context, key string) (entities.NotificationTemplate, error)
	Upsert(ctx context.Context, t entities.NotificationTemplate) (entities.NotificationTemplate, error)
}
