package service

import (
	"context"
	"database/sql"
	"errors"

	"bukusaku/internal/model"
	"bukusaku/internal/repository"
)

// notificationListLimit caps a listing to the newest entries.
const notificationListLimit = 50

// NotificationService lets a user read their own notifications. Creation
// happens inside document transitions, not here.
type NotificationService interface {
	List(ctx context.Context, actor *model.User) ([]model.Notification, error)
	MarkRead(ctx context.Context, id string, actor *model.User) error
	MarkAllRead(ctx context.Context, actor *model.User) error
}

type notificationService struct {
	notifs repository.NotificationRepository
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(notifs repository.NotificationRepository) NotificationService {
	return &notificationService{notifs: notifs}
}

func (s *notificationService) List(ctx context.Context, actor *model.User) ([]model.Notification, error) {
	if actor == nil {
		return nil, ErrForbidden
	}
	return s.notifs.ListByUser(ctx, actor.ID, notificationListLimit)
}

func (s *notificationService) MarkRead(ctx context.Context, id string, actor *model.User) error {
	if actor == nil {
		return ErrForbidden
	}
	if err := s.notifs.MarkRead(ctx, id, actor.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, actor *model.User) error {
	if actor == nil {
		return ErrForbidden
	}
	return s.notifs.MarkAllRead(ctx, actor.ID)
}
