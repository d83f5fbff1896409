package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"lexvault/domain"
	"lexvault/models"
)

// NotificationService persists in-app notifications. Delivery beyond
// the inbox (email, push) belongs to an external collaborator, so a
// failure here is reported to the caller but never rolls back the
// operation that triggered it.
type NotificationService struct {
	notificationCollection *mongo.Collection
	logger                 *zap.Logger
}

func NewNotificationService(db *mongo.Database, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notificationCollection: db.Collection("notifications"),
		logger:                 logger,
	}
}

// Notify writes one notification for the recipient.
func (s *NotificationService) Notify(ctx context.Context, recipientID, title, message, relatedID, relatedType string) error {
	notification := models.Notification{
		ID:          primitive.NewObjectID(),
		UserID:      recipientID,
		Title:       title,
		Message:     message,
		RelatedID:   relatedID,
		RelatedType: relatedType,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := s.notificationCollection.InsertOne(ctx, notification); err != nil {
		return fmt.Errorf("%w: notification write: %v", domain.ErrDependencyFailure, err)
	}
	return nil
}

// List returns the principal's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, principal models.Principal, unreadOnly bool, page, limit int) ([]models.Notification, int64, error) {
	filter := bson.M{"user_id": principal.ID}
	if unreadOnly {
		filter["is_read"] = false
	}

	total, err := s.notificationCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	findOptions := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(int64(limit)).
		SetSkip(int64((page - 1) * limit))

	cursor, err := s.notificationCollection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, 0, fmt.Errorf("failed to decode notifications: %w", err)
	}

	return notifications, total, nil
}

// MarkRead flags one of the principal's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, principal models.Principal, notificationID string) error {
	objID, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		return fmt.Errorf("%w: invalid notification ID", domain.ErrNotFound)
	}

	result, err := s.notificationCollection.UpdateOne(ctx, bson.M{
		"_id":     objID,
		"user_id": principal.ID,
	}, bson.M{
		"$set": bson.M{"is_read": true},
	})
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: notification %s", domain.ErrNotFound, notificationID)
	}

	s.logger.Debug("notification marked read", zap.String("id", notificationID))
	return nil
}
