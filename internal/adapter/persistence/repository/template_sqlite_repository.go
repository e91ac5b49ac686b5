package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quadra_billing/internal/domain/entities"
	"quadra_billing/internal/usecase/interfaces"
)

type TemplateSQLiteRepository struct {
	db *sql.DB
}

var _ interfaces.ITemplateRepository = (*TemplateSQLiteRepository)(nil)

func NewTemplateSQLiteRepository(db *sql.DB) *TemplateSQLiteRepository {
	return &TemplateSQLiteRepository{db: db}
}

func (r *TemplateSQLiteRepository) Get(ctx context.Context, key string) (entities.NotificationTemplate, error) {
	var (
		t         entities.NotificationTemplate
		updatedAt string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT key, channel, body, updated_at FROM notification_templates WHERE key = ?`, key,
	).Scan(&t.Key, &t.Channel, &t.Body, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.NotificationTemplate{}, nil
	}
	if err != nil {
		return entities.NotificationTemplate{}, fmt.Errorf("get template: %w", err)
	}
	t.UpdatedAt = parseTime(updatedAt)
	return t, nil
}

func (r *TemplateSQLiteRepository) Upsert(ctx context.Context, t entities.NotificationTemplate) (entities.NotificationTemplate, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notification_templates (key, channel, body, updated_at) VALUES (?,?,?,?)
		ON CONFLICT(key) DO UPDATE SET channel = excluded.channel, body = excluded.body, updated_at = excluded.updated_at`,
		t.Key, t.Channel, t.Body, formatTime(t.UpdatedAt))
	if err != nil {
		return entities.NotificationTemplate{}, fmt.Errorf("upsert template: %w", err)
	}
	return t, nil
}
