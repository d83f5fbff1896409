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

// EffectiveLevel resolves the access tier a principal has on a
// document. Pure and total: same inputs always produce the same level.
// System admins and owners are admin regardless of any explicit grant;
// otherwise the principal's grant decides, and no grant means none.
func EffectiveLevel(p models.Principal, doc *models.Document, grants []models.PermissionGrant) models.PermissionLevel {
	if p.IsAdmin() {
		return models.LevelAdmin
	}
	if doc.OwnerID.Hex() == p.ID {
		return models.LevelAdmin
	}
	for _, g := range grants {
		if g.UserID == p.ID {
			if g.Level.Valid() {
				return g.Level
			}
			return models.LevelNone
		}
	}
	return models.LevelNone
}

// PermissionService loads grants and gates every mutating operation in
// the document and assignment services.
type PermissionService struct {
	documentCollection   *mongo.Collection
	permissionCollection *mongo.Collection
	userCollection       *mongo.Collection
	audit                *AuditService
	logger               *zap.Logger
}

func NewPermissionService(db *mongo.Database, audit *AuditService, logger *zap.Logger) *PermissionService {
	return &PermissionService{
		documentCollection:   db.Collection("documents"),
		permissionCollection: db.Collection("permission_grants"),
		userCollection:       db.Collection("users"),
		audit:                audit,
		logger:               logger,
	}
}

// GetEffectivePermission computes the principal's level on a document.
// The lookup is trash-aware so restore/purge authorization works on
// trashed documents.
func (s *PermissionService) GetEffectivePermission(ctx context.Context, principal models.Principal, documentID string) (models.PermissionLevel, error) {
	objID, err := primitive.ObjectIDFromHex(documentID)
	if err != nil {
		return models.LevelNone, fmt.Errorf("%w: invalid document ID", domain.ErrNotFound)
	}

	var doc models.Document
	err = s.documentCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.LevelNone, fmt.Errorf("%w: document %s", domain.ErrNotFound, documentID)
		}
		return models.LevelNone, fmt.Errorf("failed to fetch document: %w", err)
	}

	return s.effectiveLevel(ctx, principal, &doc)
}

// Authorize fails with ErrUnauthorized unless the principal's
// effective level on the document meets the required minimum.
func (s *PermissionService) Authorize(ctx context.Context, principal models.Principal, doc *models.Document, min models.PermissionLevel) error {
	level, err := s.effectiveLevel(ctx, principal, doc)
	if err != nil {
		return err
	}
	if !level.Meets(min) {
		return fmt.Errorf("%w: requires %s, have %s", domain.ErrUnauthorized, min, level)
	}
	return nil
}

func (s *PermissionService) effectiveLevel(ctx context.Context, principal models.Principal, doc *models.Document) (models.PermissionLevel, error) {
	// Owner and system admin short-circuit without a grant lookup.
	if principal.IsAdmin() || doc.OwnerID.Hex() == principal.ID {
		return EffectiveLevel(principal, doc, nil), nil
	}

	var grant models.PermissionGrant
	err := s.permissionCollection.FindOne(ctx, bson.M{
		"document_id": doc.ID,
		"user_id":     principal.ID,
	}).Decode(&grant)
	if err == mongo.ErrNoDocuments {
		return EffectiveLevel(principal, doc, nil), nil
	}
	if err != nil {
		return models.LevelNone, fmt.Errorf("permission check failed: %w", err)
	}

	return EffectiveLevel(principal, doc, []models.PermissionGrant{grant}), nil
}

// SetGrant creates or updates the single grant row for (document,
// target). Grants are never deleted; revocation sets the level to none
// so the audit trail stays continuous. Requires admin on the document.
func (s *PermissionService) SetGrant(ctx context.Context, principal models.Principal, documentID, targetUserID string, level models.PermissionLevel) (*models.PermissionGrant, error) {
	if !level.Valid() {
		return nil, fmt.Errorf("%w: invalid permission level %q", domain.ErrValidation, level)
	}

	objID, err := primitive.ObjectIDFromHex(documentID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid document ID", domain.ErrNotFound)
	}

	var doc models.Document
	err = s.documentCollection.FindOne(ctx, bson.M{"_id": objID, "is_deleted": false}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: document %s", domain.ErrNotFound, documentID)
		}
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}

	if err := s.Authorize(ctx, principal, &doc, models.LevelAdmin); err != nil {
		return nil, err
	}

	targetObjID, err := primitive.ObjectIDFromHex(targetUserID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid target user ID", domain.ErrValidation)
	}
	var target models.User
	err = s.userCollection.FindOne(ctx, bson.M{"_id": targetObjID}).Decode(&target)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, targetUserID)
		}
		return nil, fmt.Errorf("failed to fetch target user: %w", err)
	}

	// Owners are implicitly admin; an explicit grant would be noise.
	if doc.OwnerID.Hex() == targetUserID {
		return nil, fmt.Errorf("%w: cannot grant to the document owner", domain.ErrValidation)
	}

	now := time.Now().UTC()
	grant := models.PermissionGrant{
		DocumentID: doc.ID,
		UserID:     targetUserID,
		Level:      level,
		GrantedBy:  principal.ID,
		GrantedAt:  now,
		UpdatedAt:  now,
	}

	var existing models.PermissionGrant
	err = s.permissionCollection.FindOne(ctx, bson.M{
		"document_id": doc.ID,
		"user_id":     targetUserID,
	}).Decode(&existing)

	switch {
	case err == mongo.ErrNoDocuments:
		grant.ID = primitive.NewObjectID()
		if _, err = s.permissionCollection.InsertOne(ctx, grant); err != nil {
			return nil, fmt.Errorf("failed to create grant: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to fetch existing grant: %w", err)
	default:
		grant.ID = existing.ID
		grant.GrantedAt = existing.GrantedAt
		_, err = s.permissionCollection.UpdateOne(ctx, bson.M{"_id": existing.ID}, bson.M{
			"$set": bson.M{
				"level":      level,
				"granted_by": principal.ID,
				"updated_at": now,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to update grant: %w", err)
		}
	}

	if err := s.audit.Record(ctx, principal.ID, models.ActionPermissionChanged, models.EntityPermission, grant.ID.Hex(),
		fmt.Sprintf("set %s to %s on document %q for user %s", target.Email, level, doc.Name, targetUserID)); err != nil {
		s.logger.Warn("grant applied but unlogged", zap.String("document_id", documentID), zap.Error(err))
	}

	s.logger.Info("permission grant set",
		zap.String("document_id", documentID),
		zap.String("target_user", targetUserID),
		zap.String("level", string(level)),
	)

	return &grant, nil
}

// ListGrants returns every grant on a document. Requires admin.
func (s *PermissionService) ListGrants(ctx context.Context, principal models.Principal, documentID string) ([]models.PermissionGrant, error) {
	objID, err := primitive.ObjectIDFromHex(documentID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid document ID", domain.ErrNotFound)
	}

	var doc models.Document
	err = s.documentCollection.FindOne(ctx, bson.M{"_id": objID, "is_deleted": false}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: document %s", domain.ErrNotFound, documentID)
		}
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}

	if err := s.Authorize(ctx, principal, &doc, models.LevelAdmin); err != nil {
		return nil, err
	}

	cursor, err := s.permissionCollection.Find(ctx, bson.M{"document_id": doc.ID},
		options.Find().SetSort(bson.M{"granted_at": -1}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch grants: %w", err)
	}
	defer cursor.Close(ctx)

	var grants []models.PermissionGrant
	if err = cursor.All(ctx, &grants); err != nil {
		return nil, fmt.Errorf("failed to decode grants: %w", err)
	}

	return grants, nil
}

// GrantedDocumentIDs returns ids of documents where the user holds a
// usable grant, for listing queries.
func (s *PermissionService) GrantedDocumentIDs(ctx context.Context, userID string) ([]primitive.ObjectID, error) {
	cursor, err := s.permissionCollection.Find(ctx, bson.M{
		"user_id": userID,
		"level":   bson.M{"$ne": models.LevelNone},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch grants: %w", err)
	}
	defer cursor.Close(ctx)

	ids := make([]primitive.ObjectID, 0)
	for cursor.Next(ctx) {
		var grant models.PermissionGrant
		if err := cursor.Decode(&grant); err != nil {
			return nil, fmt.Errorf("failed to decode grant: %w", err)
		}
		ids = append(ids, grant.DocumentID)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("grant cursor failed: %w", err)
	}
	return ids, nil
}
