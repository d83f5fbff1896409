package services

import (
	"context"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"lexvault/domain"
	"lexvault/models"
)

// DocumentService owns the document lifecycle: creation, listing,
// metadata updates, status changes, archive toggling and soft delete.
// Restore and purge live in TrashService. Every mutation goes through
// the permission evaluator first and the audit recorder last, and the
// state-machine precondition is part of the update filter so a
// conflicting concurrent transition cannot half-apply.
type DocumentService struct {
	documentCollection *mongo.Collection
	permissions        *PermissionService
	storage            *StorageService
	audit              *AuditService
	logger             *zap.Logger
}

func NewDocumentService(db *mongo.Database, permissions *PermissionService, storage *StorageService, audit *AuditService, logger *zap.Logger) *DocumentService {
	return &DocumentService{
		documentCollection: db.Collection("documents"),
		permissions:        permissions,
		storage:            storage,
		audit:              audit,
		logger:             logger,
	}
}

type CreateDocumentRequest struct {
	Name       string         `json:"name"`
	DocType    models.DocType `json:"doc_type"`
	Size       int64          `json:"size"`
	B2FileID   string         `json:"-"`
	B2FileName string         `json:"-"`
}

func (r CreateDocumentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.DocType, validation.Required,
			validation.In(models.DocTypeWord, models.DocTypePDF, models.DocTypeSpreadsheet)),
		validation.Field(&r.Size, validation.Min(0)),
	)
}

type UpdateDocumentRequest struct {
	Name    string         `json:"name"`
	DocType models.DocType `json:"doc_type"`
}

func (r UpdateDocumentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(1, 255)),
		validation.Field(&r.DocType,
			validation.In(models.DocTypeWord, models.DocTypePDF, models.DocTypeSpreadsheet)),
	)
}

// ListFilter narrows document listings. Trashed documents are excluded
// unconditionally; the trash view is a separate query.
type ListFilter struct {
	Status  models.FileStatus
	DocType models.DocType
	Page    int
	Limit   int
}

// CreateDocument registers a document record after a successful upload.
func (s *DocumentService) CreateDocument(ctx context.Context, principal models.Principal, req CreateDocumentRequest) (*models.Document, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	ownerID, err := primitive.ObjectIDFromHex(principal.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid principal ID", domain.ErrValidation)
	}

	now := time.Now().UTC()
	doc := models.Document{
		ID:            primitive.NewObjectID(),
		Name:          req.Name,
		DocType:       req.DocType,
		OwnerID:       ownerID,
		FileStatus:    models.StatusActive,
		SharingStatus: models.SharingNone,
		Size:          req.Size,
		B2FileID:      req.B2FileID,
		B2FileName:    req.B2FileName,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := s.documentCollection.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	if err := s.audit.Record(ctx, principal.ID, models.ActionDocumentCreated, models.EntityDocument, doc.ID.Hex(),
		fmt.Sprintf("created document %q (%s)", doc.Name, doc.DocType)); err != nil {
		s.logger.Warn("document created but unlogged", zap.String("document_id", doc.ID.Hex()), zap.Error(err))
	}

	s.logger.Info("document created",
		zap.String("document_id", doc.ID.Hex()),
		zap.String("owner_id", principal.ID),
		zap.String("doc_type", string(doc.DocType)),
	)

	return &doc, nil
}

// GetDocument fetches a non-trashed document. Requires at least
// download access.
func (s *DocumentService) GetDocument(ctx context.Context, principal models.Principal, documentID string) (*models.Document, error) {
	doc, err := s.loadVisible(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if err := s.permissions.Authorize(ctx, principal, doc, models.LevelDownload); err != nil {
		return nil, err
	}
	return doc, nil
}

// DownloadURL returns a signed URL for the document blob. Requires at
// least download access.
func (s *DocumentService) DownloadURL(ctx context.Context, principal models.Principal, documentID string) (string, error) {
	doc, err := s.loadVisible(ctx, documentID)
	if err != nil {
		return "", err
	}
	if err := s.permissions.Authorize(ctx, principal, doc, models.LevelDownload); err != nil {
		return "", err
	}
	if s.storage == nil || doc.B2FileName == "" {
		return "", fmt.Errorf("%w: no stored blob for document %s", domain.ErrNotFound, documentID)
	}

	url, err := s.storage.DownloadURL(ctx, doc.B2FileName, 24*time.Hour)
	if err != nil {
		return "", fmt.Errorf("%w: storage: %v", domain.ErrDependencyFailure, err)
	}
	return url, nil
}

// ListDocuments returns the documents the principal can see: their own
// plus those they hold a grant on. System admins see everything.
func (s *DocumentService) ListDocuments(ctx context.Context, principal models.Principal, filter ListFilter) ([]models.Document, int64, error) {
	var query bson.M
	if principal.IsAdmin() {
		query = visibleDocumentsFilter(primitive.NilObjectID, nil, true)
	} else {
		ownerID, err := primitive.ObjectIDFromHex(principal.ID)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: invalid principal ID", domain.ErrValidation)
		}
		grantedIDs, err := s.permissions.GrantedDocumentIDs(ctx, principal.ID)
		if err != nil {
			return nil, 0, err
		}
		query = visibleDocumentsFilter(ownerID, grantedIDs, false)
	}

	if filter.Status != "" {
		if !filter.Status.Valid() {
			return nil, 0, fmt.Errorf("%w: invalid status filter %q", domain.ErrValidation, filter.Status)
		}
		query["file_status"] = filter.Status
	}
	if filter.DocType != "" {
		if !filter.DocType.Valid() {
			return nil, 0, fmt.Errorf("%w: invalid doc type filter %q", domain.ErrValidation, filter.DocType)
		}
		query["doc_type"] = filter.DocType
	}

	total, err := s.documentCollection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count documents: %w", err)
	}

	findOptions := options.Find().
		SetSort(bson.M{"updated_at": -1}).
		SetLimit(int64(filter.Limit)).
		SetSkip(int64((filter.Page - 1) * filter.Limit))

	cursor, err := s.documentCollection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch documents: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.Document
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode documents: %w", err)
	}

	return docs, total, nil
}

// UpdateDocument renames or retypes a document. Requires write access.
func (s *DocumentService) UpdateDocument(ctx context.Context, principal models.Principal, documentID string, req UpdateDocumentRequest) (*models.Document, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	doc, err := s.loadVisible(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if err := s.permissions.Authorize(ctx, principal, doc, models.LevelWrite); err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if req.Name != "" {
		set["name"] = req.Name
		doc.Name = req.Name
	}
	if req.DocType != "" {
		set["doc_type"] = req.DocType
		doc.DocType = req.DocType
	}

	_, err = s.documentCollection.UpdateOne(ctx, bson.M{"_id": doc.ID, "is_deleted": false}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}

	if err := s.audit.Record(ctx, principal.ID, models.ActionDocumentUpdated, models.EntityDocument, doc.ID.Hex(),
		fmt.Sprintf("updated document %q", doc.Name)); err != nil {
		s.logger.Warn("document updated but unlogged", zap.String("document_id", documentID), zap.Error(err))
	}

	return doc, nil
}

// SetStatus moves a document to another declared status. Any of the
// three statuses is reachable from any other. Requires write access.
func (s *DocumentService) SetStatus(ctx context.Context, principal models.Principal, documentID string, newStatus models.FileStatus) (*models.Document, error) {
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: status %q is not a declared state", domain.ErrInvalidTransition, newStatus)
	}

	doc, err := s.loadVisible(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if err := s.permissions.Authorize(ctx, principal, doc, models.LevelWrite); err != nil {
		return nil, err
	}

	previous := doc.FileStatus
	result, err := s.documentCollection.UpdateOne(ctx,
		bson.M{"_id": doc.ID, "is_deleted": false},
		bson.M{"$set": bson.M{"file_status": newStatus, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set status: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("%w: document was trashed concurrently", domain.ErrInvalidTransition)
	}
	doc.FileStatus = newStatus

	if err := s.audit.Record(ctx, principal.ID, models.ActionStatusChanged, models.EntityDocument, doc.ID.Hex(),
		fmt.Sprintf("status %s -> %s on %q", previous, newStatus, doc.Name)); err != nil {
		s.logger.Warn("status changed but unlogged", zap.String("document_id", documentID), zap.Error(err))
	}

	return doc, nil
}

// ToggleArchive archives a non-archived document or returns an
// archived one to active. Requires write access. The current status is
// part of the update filter so racing toggles cannot both apply.
func (s *DocumentService) ToggleArchive(ctx context.Context, principal models.Principal, documentID string) (*models.Document, error) {
	doc, err := s.loadVisible(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if err := s.permissions.Authorize(ctx, principal, doc, models.LevelWrite); err != nil {
		return nil, err
	}

	target := models.ArchiveTarget(doc.FileStatus)
	result, err := s.documentCollection.UpdateOne(ctx,
		bson.M{"_id": doc.ID, "is_deleted": false, "file_status": doc.FileStatus},
		bson.M{"$set": bson.M{"file_status": target, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle archive: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("%w: document changed concurrently", domain.ErrInvalidTransition)
	}

	action := models.ActionDocumentArchived
	if target != models.StatusArchived {
		action = models.ActionDocumentUnarchived
	}
	if err := s.audit.Record(ctx, principal.ID, action, models.EntityDocument, doc.ID.Hex(),
		fmt.Sprintf("%s %q", action, doc.Name)); err != nil {
		s.logger.Warn("archive toggled but unlogged", zap.String("document_id", documentID), zap.Error(err))
	}

	doc.FileStatus = target
	return doc, nil
}

// SoftDelete moves a document to the trash. The record keeps its
// status so restore puts it back exactly where it was. Requires write
// access.
func (s *DocumentService) SoftDelete(ctx context.Context, principal models.Principal, documentID string) (*models.Document, error) {
	doc, err := s.loadVisible(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if err := s.permissions.Authorize(ctx, principal, doc, models.LevelWrite); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result, err := s.documentCollection.UpdateOne(ctx,
		bson.M{"_id": doc.ID, "is_deleted": false},
		bson.M{"$set": bson.M{"is_deleted": true, "deleted_at": now, "updated_at": now}},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to soft delete document: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("%w: document already trashed", domain.ErrInvalidTransition)
	}

	doc.IsDeleted = true
	doc.DeletedAt = &now
	doc.UpdatedAt = now

	if err := s.audit.Record(ctx, principal.ID, models.ActionDocumentDeleted, models.EntityDocument, doc.ID.Hex(),
		fmt.Sprintf("moved %q to trash", doc.Name)); err != nil {
		s.logger.Warn("document trashed but unlogged", zap.String("document_id", documentID), zap.Error(err))
	}

	s.logger.Info("document soft deleted",
		zap.String("document_id", documentID),
		zap.String("actor_id", principal.ID),
	)

	return doc, nil
}

// visibleDocumentsFilter builds the listing query. The $in clause is
// added only when the user actually holds grants: an empty slice would
// be harmless, but a nil one marshals as BSON null and the server
// rejects $in: null outright.
func visibleDocumentsFilter(ownerID primitive.ObjectID, grantedIDs []primitive.ObjectID, isAdmin bool) bson.M {
	query := bson.M{"is_deleted": false}
	if isAdmin {
		return query
	}

	or := []bson.M{{"owner_id": ownerID}}
	if len(grantedIDs) > 0 {
		or = append(or, bson.M{"_id": bson.M{"$in": grantedIDs}})
	}
	query["$or"] = or
	return query
}

// loadVisible fetches a document hidden-trash-aware: a trashed
// document reads as not found here. Restore/purge use their own
// trash-aware lookups.
func (s *DocumentService) loadVisible(ctx context.Context, documentID string) (*models.Document, error) {
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
	return &doc, nil
}
