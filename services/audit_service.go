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

// SystemActor is the actor id recorded for actions taken by background
// jobs rather than an authenticated principal.
const SystemActor = "system"

// AuditService appends immutable entries to the audit trail. The write
// path never reads entries back; listing is a separate read-only
// concern for admins.
type AuditService struct {
	auditCollection *mongo.Collection
	logger          *zap.Logger
}

func NewAuditService(db *mongo.Database, logger *zap.Logger) *AuditService {
	return &AuditService{
		auditCollection: db.Collection("audit_entries"),
		logger:          logger,
	}
}

// EnsureIndexes creates the indexes the listing queries rely on.
func (s *AuditService) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "actor_id", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "entity_type", Value: 1}, {Key: "entity_id", Value: 1}, {Key: "timestamp", Value: -1}}},
	}
	_, err := s.auditCollection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create audit indexes: %w", err)
	}
	return nil
}

// Record appends one entry. Entries are never updated or removed.
// Callers treat a failed audit write as a reported inconsistency, not
// a reason to roll the state change back.
func (s *AuditService) Record(ctx context.Context, actorID, action, entityType, entityID, description string) error {
	entry := models.AuditEntry{
		ID:          primitive.NewObjectID(),
		ActorID:     actorID,
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		Description: description,
		Timestamp:   time.Now().UTC(),
	}

	if _, err := s.auditCollection.InsertOne(ctx, entry); err != nil {
		s.logger.Warn("audit write failed",
			zap.String("action", action),
			zap.String("entity_id", entityID),
			zap.Error(err),
		)
		return fmt.Errorf("%w: audit write: %v", domain.ErrDependencyFailure, err)
	}
	return nil
}

// AuditFilter narrows the audit listing.
type AuditFilter struct {
	ActorID    string
	Action     string
	EntityType string
	EntityID   string
	Page       int
	Limit      int
}

// List returns entries matching the filter, most recent first. Only
// system admins reach this through the routes.
func (s *AuditService) List(ctx context.Context, filter AuditFilter) ([]models.AuditEntry, int64, error) {
	query := bson.M{}
	if filter.ActorID != "" {
		query["actor_id"] = filter.ActorID
	}
	if filter.Action != "" {
		query["action"] = filter.Action
	}
	if filter.EntityType != "" {
		query["entity_type"] = filter.EntityType
	}
	if filter.EntityID != "" {
		query["entity_id"] = filter.EntityID
	}

	total, err := s.auditCollection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count audit entries: %w", err)
	}

	findOptions := options.Find().
		SetSort(bson.M{"timestamp": -1}).
		SetLimit(int64(filter.Limit)).
		SetSkip(int64((filter.Page - 1) * filter.Limit))

	cursor, err := s.auditCollection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch audit entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.AuditEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, 0, fmt.Errorf("failed to decode audit entries: %w", err)
	}

	return entries, total, nil
}
