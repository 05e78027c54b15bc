package usecases

import (
	"context"

	"github.com/google/uuid"
	"hackmate.backend/internal/domain/entities"
	"hackmate.backend/internal/domain/repositories"
	"hackmate.backend/pkg/utils"
)

// NotificationUsecase exposes a user's notification feed
type NotificationUsecase struct {
	notifRepo repositories.NotificationRepository
}

// NewNotificationUsecase creates a new notification usecase
func NewNotificationUsecase(notifRepo repositories.NotificationRepository) *NotificationUsecase {
	return &NotificationUsecase{notifRepo: notifRepo}
}

// List returns a page of the user's notifications, newest first.
func (u *NotificationUsecase) List(ctx context.Context, userID uuid.UUID, params utils.PaginationParams) ([]*entities.Notification, *utils.PaginationMeta, error) {
	items, total, err := u.notifRepo.ListByUser(ctx, userID, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, nil, err
	}
	meta := utils.CalculateMeta(int64(total), params.Page, params.Limit)
	return items, &meta, nil
}

// CountUnread returns the user's unread notification count.
func (u *NotificationUsecase) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return u.notifRepo.CountUnread(ctx, userID)
}

// MarkRead marks one of the user's notifications read.
func (u *NotificationUsecase) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	return u.notifRepo.MarkRead(ctx, notificationID, userID)
}

// MarkAllRead marks all of the user's notifications read.
func (u *NotificationUsecase) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return u.notifRepo.MarkAllRead(ctx, userID)
}
