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

// TrashService handles the recoverable side of deletion: listing the
// trash, restoring, and the one irreversible operation, purge. The
// is_deleted flag is part of every update/delete filter so a restore
// and a purge racing on the same document cannot both win.
type TrashService struct {
	documentCollection *mongo.Collection
	permissions        *PermissionService
	storage            *StorageService
	audit              *AuditService
	logger             *zap.Logger
	retention          time.Duration
}

// ensureTrashed gates restore and purge: both operate only on
// documents that are actually in the trash.
func ensureTrashed(doc *models.Document) error {
	if !doc.IsDeleted {
		return fmt.Errorf("%w: document %s is not in the trash", domain.ErrInvalidTransition, doc.ID.Hex())
	}
	return nil
}

// restoreUpdate clears the trash marker and nothing else, so the
// document comes back with its pre-delete file status intact.
func restoreUpdate(now time.Time) bson.M {
	return bson.M{
		"$set":   bson.M{"is_deleted": false, "updated_at": now},
		"$unset": bson.M{"deleted_at": ""},
	}
}

// RestoreResult reports one item of a bulk restore.
type RestoreResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func NewTrashService(db *mongo.Database, permissions *PermissionService, storage *StorageService, audit *AuditService, logger *zap.Logger, retention time.Duration) *TrashService {
	return &TrashService{
		documentCollection: db.Collection("documents"),
		permissions:        permissions,
		storage:            storage,
		audit:              audit,
		logger:             logger,
		retention:          retention,
	}
}

// ListTrash returns the principal's trashed documents, most recently
// deleted first, with the auto-purge deadline for each.
func (s *TrashService) ListTrash(ctx context.Context, principal models.Principal, page, limit int) ([]models.TrashItem, int64, error) {
	ownerID, err := primitive.ObjectIDFromHex(principal.ID)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: invalid principal ID", domain.ErrValidation)
	}

	filter := bson.M{"owner_id": ownerID, "is_deleted": true}

	total, err := s.documentCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count trash items: %w", err)
	}

	findOptions := options.Find().
		SetSort(bson.M{"deleted_at": -1}).
		SetLimit(int64(limit)).
		SetSkip(int64((page - 1) * limit))

	cursor, err := s.documentCollection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch trash items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.TrashItem
	for cursor.Next(ctx) {
		var doc models.Document
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("failed to decode trash item: %w", err)
		}

		var deletedAt time.Time
		if doc.DeletedAt != nil {
			deletedAt = *doc.DeletedAt
		}

		items = append(items, models.TrashItem{
			DocumentID:  doc.ID,
			Name:        doc.Name,
			DocType:     doc.DocType,
			OwnerID:     doc.OwnerID,
			FileStatus:  doc.FileStatus,
			Size:        doc.Size,
			DeletedAt:   deletedAt,
			AutoPurgeAt: deletedAt.Add(s.retention),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("trash cursor failed: %w", err)
	}

	return items, total, nil
}

// Restore clears the trash marker. The document reappears with its
// pre-delete status untouched. Requires write access.
func (s *TrashService) Restore(ctx context.Context, principal models.Principal, documentID string) (*models.Document, error) {
	doc, err := s.loadAny(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if err := ensureTrashed(doc); err != nil {
		return nil, err
	}
	if err := s.permissions.Authorize(ctx, principal, doc, models.LevelWrite); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result, err := s.documentCollection.UpdateOne(ctx,
		bson.M{"_id": doc.ID, "is_deleted": true},
		restoreUpdate(now),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to restore document: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("%w: document left the trash concurrently", domain.ErrInvalidTransition)
	}

	doc.IsDeleted = false
	doc.DeletedAt = nil
	doc.UpdatedAt = now

	if err := s.audit.Record(ctx, principal.ID, models.ActionDocumentRestored, models.EntityDocument, doc.ID.Hex(),
		fmt.Sprintf("restored %q from trash", doc.Name)); err != nil {
		s.logger.Warn("document restored but unlogged", zap.String("document_id", documentID), zap.Error(err))
	}

	return doc, nil
}

// RestoreMultiple restores several documents, reporting per-item
// outcomes instead of failing the batch on the first error.
func (s *TrashService) RestoreMultiple(ctx context.Context, principal models.Principal, ids []string) []RestoreResult {
	results := make([]RestoreResult, 0, len(ids))
	for _, id := range ids {
		result := RestoreResult{ID: id}
		if _, err := s.Restore(ctx, principal, id); err != nil {
			result.Error = err.Error()
		} else {
			result.Success = true
		}
		results = append(results, result)
	}
	return results
}

// Purge irreversibly removes an already-trashed document. Requires
// admin. The audit entry is written before the physical removal since
// nothing can be logged against the document afterwards; the stored
// blob goes next, then the record.
func (s *TrashService) Purge(ctx context.Context, principal models.Principal, documentID string) error {
	doc, err := s.loadAny(ctx, documentID)
	if err != nil {
		return err
	}
	if err := ensureTrashed(doc); err != nil {
		return err
	}
	if err := s.permissions.Authorize(ctx, principal, doc, models.LevelAdmin); err != nil {
		return err
	}

	return s.purge(ctx, principal.ID, doc)
}

func (s *TrashService) purge(ctx context.Context, actorID string, doc *models.Document) error {
	if err := s.audit.Record(ctx, actorID, models.ActionDocumentPurged, models.EntityDocument, doc.ID.Hex(),
		fmt.Sprintf("purged %q permanently", doc.Name)); err != nil {
		s.logger.Warn("purge proceeding despite failed audit write", zap.String("document_id", doc.ID.Hex()), zap.Error(err))
	}

	if s.storage != nil && doc.B2FileName != "" {
		if err := s.storage.Delete(ctx, doc.B2FileName); err != nil {
			s.logger.Warn("failed to delete blob during purge",
				zap.String("document_id", doc.ID.Hex()),
				zap.Error(err),
			)
		}
	}

	result, err := s.documentCollection.DeleteOne(ctx, bson.M{"_id": doc.ID, "is_deleted": true})
	if err != nil {
		return fmt.Errorf("failed to purge document: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: document left the trash concurrently", domain.ErrInvalidTransition)
	}

	s.logger.Info("document purged",
		zap.String("document_id", doc.ID.Hex()),
		zap.String("actor_id", actorID),
	)
	return nil
}

// PurgeAll purges every trashed document the principal owns.
func (s *TrashService) PurgeAll(ctx context.Context, principal models.Principal) (int64, error) {
	ownerID, err := primitive.ObjectIDFromHex(principal.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid principal ID", domain.ErrValidation)
	}

	cursor, err := s.documentCollection.Find(ctx, bson.M{"owner_id": ownerID, "is_deleted": true})
	if err != nil {
		return 0, fmt.Errorf("failed to fetch trash items: %w", err)
	}
	defer cursor.Close(ctx)

	var purged int64
	for cursor.Next(ctx) {
		var doc models.Document
		if err := cursor.Decode(&doc); err != nil {
			s.logger.Warn("skipping undecodable trash item", zap.Error(err))
			continue
		}
		if err := s.permissions.Authorize(ctx, principal, &doc, models.LevelAdmin); err != nil {
			continue
		}
		if err := s.purge(ctx, principal.ID, &doc); err != nil {
			s.logger.Warn("failed to purge trash item", zap.String("document_id", doc.ID.Hex()), zap.Error(err))
			continue
		}
		purged++
	}
	if err := cursor.Err(); err != nil {
		return purged, fmt.Errorf("trash cursor failed: %w", err)
	}

	return purged, nil
}

// PurgeExpired removes documents whose trash retention has lapsed.
// Run by the cleanup job; entries are attributed to the system actor.
func (s *TrashService) PurgeExpired(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-s.retention)

	cursor, err := s.documentCollection.Find(ctx, bson.M{
		"is_deleted": true,
		"deleted_at": bson.M{"$lte": cutoff},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to fetch expired trash items: %w", err)
	}
	defer cursor.Close(ctx)

	var purged int64
	for cursor.Next(ctx) {
		var doc models.Document
		if err := cursor.Decode(&doc); err != nil {
			s.logger.Warn("skipping undecodable trash item", zap.Error(err))
			continue
		}
		if err := s.purge(ctx, SystemActor, &doc); err != nil {
			s.logger.Warn("failed to auto-purge document", zap.String("document_id", doc.ID.Hex()), zap.Error(err))
			continue
		}
		purged++
	}
	if err := cursor.Err(); err != nil {
		return purged, fmt.Errorf("trash cursor failed: %w", err)
	}

	return purged, nil
}

// loadAny fetches a document by id whether or not it is trashed.
func (s *TrashService) loadAny(ctx context.Context, documentID string) (*models.Document, error) {
	objID, err := primitive.ObjectIDFromHex(documentID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid document ID", domain.ErrNotFound)
	}

	var doc models.Document
	err = s.documentCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: document %s", domain.ErrNotFound, documentID)
		}
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}
	return &doc, nil
}
