package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"quadra_billing/internal/domain/entities"
	"quadra_billing/internal/usecase/interfaces"
)

var (
	ErrTemplateNotFound = errors.New("notification template not found")
	ErrInvalidTemplate  = errors.New("invalid notification template")
)

// ITemplateUseCase manages the message templates the messaging service renders.
type ITemplateUseCase interface {
	Get(ctx context.Context, key string) (entities.NotificationTemplate, error)
	Upsert(ctx context.Context, t entities.NotificationTemplate) (entities.NotificationTemplate, error)
}

type TemplateUseCase struct {
	repo interfaces.ITemplateRepository
	now  func() time.Time
}

var _ ITemplateUseCase = (*TemplateUseCase)(nil)

func NewTemplateUseCase(repo interfaces.ITemplateRepository) *TemplateUseCase {
	return &TemplateUseCase{repo: repo, now: time.Now}
}

func (u *TemplateUseCase) Get(ctx context.Context, key string) (entities.NotificationTemplate, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return entities.NotificationTemplate{}, fmt.Errorf("%w: key is required", ErrInvalidTemplate)
	}
	t, err := u.repo.Get(ctx, key)
	if err != nil {
		return entities.NotificationTemplate{}, err
	}
	if t.Key == "" {
		return entities.NotificationTemplate{}, ErrTemplateNotFound
	}
	return t, nil
}

func (u *TemplateUseCase) Upsert(ctx context.Context, t entities.NotificationTemplate) (entities.NotificationTemplate, error) {
	t.Key = strings.TrimSpace(t.Key)
	if t.Key == "" {
		return entities.NotificationTemplate{}, fmt.Errorf("%w: key is required", ErrInvalidTemplate)
	}
	if strings.TrimSpace(t.Body) == "" {
		return entities.NotificationTemplate{}, fmt.Errorf("%w: body is required", ErrInvalidTemplate)
	}
	if t.Channel == "" {
		t.Channel = "whatsapp"
	}
	t.UpdatedAt = u.now().UTC()
	return u.repo.Upsert(ctx, t)
}
