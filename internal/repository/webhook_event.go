package repository

import (
	"context"
	"time"

	"phonemall-payments/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WebhookEventRepository interface {
	// RecordOnce inserts the event, returning false if the event id was
	// already processed.
	RecordOnce(ctx context.Context, tx *gorm.DB, event *model.WebhookEvent) (bool, error)
	FindByID(ctx context.Context, eventID string) (*model.WebhookEvent, error)
}

type webhookEventRepoImpl struct {
	db *gorm.DB
}

func NewWebhookEventRepository(db *gorm.DB) WebhookEventRepository {
	return &webhookEventRepoImpl{
		db: db,
	}
}

func (r *webhookEventRepoImpl) RecordOnce(ctx context.Context, tx *gorm.DB, event *model.WebhookEvent) (bool, error) {
	event.ProcessedAt = time.Now()
	result := tx.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(event)

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *webhookEventRepoImpl) FindByID(ctx context.Context, eventID string) (*model.WebhookEvent, error) {
	var event model.WebhookEvent
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		First(&event).Error

	if err != nil {
		return nil, err
	}

	return &event, nil
}
