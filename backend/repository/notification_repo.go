package repository

import (
	"context"

	"learnhub/backend/models"

	"gorm.io/gorm"
)

type NotificationRepo interface {
	Create(ctx context.Context, row *models.Notification) error
	ListByUser(ctx context.Context, userID uint) ([]models.Notification, error)
}

type notificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) NotificationRepo {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, row *models.Notification) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *notificationRepo) ListByUser(ctx context.Context, userID uint) ([]models.Notification, error) {
	var rows []models.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}
