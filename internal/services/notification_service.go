package services

import (
	"context"

	"github.com/NafisTahmid/instagram-clone-vercel/internal/models"
	"github.com/NafisTahmid/instagram-clone-vercel/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// NotificationService records and reads user notifications. Recording is
// best-effort: a failed write must never fail the operation that caused it.
type NotificationService struct {
	notifications repositories.NotificationRepository
	logger        *zap.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notifRepo repositories.NotificationRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{notifications: notifRepo, logger: logger}
}

// Notify records a notification, logging instead of propagating failures.
func (s *NotificationService) Notify(ctx context.Context, n *models.Notification) {
	if s == nil {
		return
	}
	if err := s.notifications.CreateNotification(ctx, n); err != nil {
		s.logger.Warn("notification write failed",
			zap.String("type", n.Type),
			zap.String("recipient", n.RecipientID.Hex()),
			zap.Error(err))
	}
}

// List returns a user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, recipientID primitive.ObjectID, limit int64) ([]models.Notification, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	notifications, err := s.notifications.GetNotificationsByRecipient(ctx, recipientID, limit)
	if err != nil {
		return nil, dependency("list notifications", err)
	}
	return notifications, nil
}

// UnreadCount returns the number of unread notifications for a user.
func (s *NotificationService) UnreadCount(ctx context.Context, recipientID primitive.ObjectID) (int64, error) {
	count, err := s.notifications.GetUnreadCount(ctx, recipientID)
	if err != nil {
		return 0, dependency("count notifications", err)
	}
	return count, nil
}

// MarkAllRead marks every notification of a user as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID primitive.ObjectID) error {
	if err := s.notifications.MarkAllRead(ctx, recipientID); err != nil {
		return dependency("mark notifications read", err)
	}
	return nil
}
