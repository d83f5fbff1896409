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

// AssignmentService models the hand-off of a document from one user to
// another. Side effects run in a fixed order: the assignment and the
// document's sharing status are persisted first, then the assignee is
// notified (non-fatal), then the audit entry is written.
type AssignmentService struct {
	assignmentCollection *mongo.Collection
	documentCollection   *mongo.Collection
	userCollection       *mongo.Collection
	permissions          *PermissionService
	notifications        *NotificationService
	audit                *AuditService
	logger               *zap.Logger
}

func NewAssignmentService(db *mongo.Database, permissions *PermissionService, notifications *NotificationService, audit *AuditService, logger *zap.Logger) *AssignmentService {
	return &AssignmentService{
		assignmentCollection: db.Collection("assignments"),
		documentCollection:   db.Collection("documents"),
		userCollection:       db.Collection("users"),
		permissions:          permissions,
		notifications:        notifications,
		audit:                audit,
		logger:               logger,
	}
}

type CreateAssignmentRequest struct {
	DocumentID string     `json:"document_id"`
	AssigneeID string     `json:"assignee_id"`
	Notes      string     `json:"notes"`
	DueDate    *time.Time `json:"due_date"`
}

func (r CreateAssignmentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DocumentID, validation.Required),
		validation.Field(&r.AssigneeID, validation.Required),
		validation.Field(&r.Notes, validation.Length(0, 2000)),
	)
}

// AssignmentListFilter narrows the sent/received listings.
type AssignmentListFilter struct {
	Status models.AssignmentStatus
	Page   int
	Limit  int
}

// Create hands a document off to an assignee. Requires write access on
// the document; the document's sharing status moves to assigned.
func (s *AssignmentService) Create(ctx context.Context, principal models.Principal, req CreateAssignmentRequest) (*models.Assignment, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	docID, err := primitive.ObjectIDFromHex(req.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid document ID", domain.ErrNotFound)
	}

	var doc models.Document
	err = s.documentCollection.FindOne(ctx, bson.M{"_id": docID, "is_deleted": false}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: document %s", domain.ErrNotFound, req.DocumentID)
		}
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}

	if err := s.permissions.Authorize(ctx, principal, &doc, models.LevelWrite); err != nil {
		return nil, err
	}

	assigneeObjID, err := primitive.ObjectIDFromHex(req.AssigneeID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid assignee ID", domain.ErrValidation)
	}
	var assignee models.User
	err = s.userCollection.FindOne(ctx, bson.M{"_id": assigneeObjID}).Decode(&assignee)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: assignee %s", domain.ErrNotFound, req.AssigneeID)
		}
		return nil, fmt.Errorf("failed to fetch assignee: %w", err)
	}

	now := time.Now().UTC()
	assignment := models.Assignment{
		ID:         primitive.NewObjectID(),
		DocumentID: doc.ID,
		AssignerID: principal.ID,
		AssigneeID: req.AssigneeID,
		Status:     models.AssignmentPending,
		Notes:      req.Notes,
		DueDate:    req.DueDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := s.assignmentCollection.InsertOne(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	_, err = s.documentCollection.UpdateOne(ctx,
		bson.M{"_id": doc.ID, "is_deleted": false},
		bson.M{"$set": bson.M{"sharing_status": models.SharingAssigned, "updated_at": now}},
	)
	if err != nil {
		// The two writes are not transactional; take the inserted row
		// back out rather than report failure for a half-applied
		// hand-off.
		if _, delErr := s.assignmentCollection.DeleteOne(ctx, bson.M{"_id": assignment.ID}); delErr != nil {
			s.logger.Warn("orphaned assignment row left behind",
				zap.String("assignment_id", assignment.ID.Hex()),
				zap.Error(delErr),
			)
		}
		return nil, fmt.Errorf("failed to mark document assigned: %w", err)
	}

	// Notification failure is reported, never fatal; the assignment
	// stands either way.
	if err := s.notifications.Notify(ctx, req.AssigneeID,
		"Document assigned to you",
		fmt.Sprintf("%q has been assigned to you", doc.Name),
		assignment.ID.Hex(), models.EntityAssignment); err != nil {
		s.logger.Warn("failed to notify assignee",
			zap.String("assignment_id", assignment.ID.Hex()),
			zap.String("assignee_id", req.AssigneeID),
			zap.Error(err),
		)
	}

	if err := s.audit.Record(ctx, principal.ID, models.ActionDocumentAssigned, models.EntityAssignment, assignment.ID.Hex(),
		fmt.Sprintf("assigned %q to %s", doc.Name, assignee.Email)); err != nil {
		s.logger.Warn("assignment created but unlogged", zap.String("assignment_id", assignment.ID.Hex()), zap.Error(err))
	}

	s.logger.Info("assignment created",
		zap.String("assignment_id", assignment.ID.Hex()),
		zap.String("document_id", doc.ID.Hex()),
		zap.String("assignee_id", req.AssigneeID),
	)

	return &assignment, nil
}

// UpdateStatus advances an assignment along its DAG. Only the assignee
// may move it, one edge at a time; the current status is part of the
// update filter so racing updates cannot both apply.
func (s *AssignmentService) UpdateStatus(ctx context.Context, principal models.Principal, assignmentID string, next models.AssignmentStatus) (*models.Assignment, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: %q is not an assignment status", domain.ErrInvalidTransition, next)
	}

	objID, err := primitive.ObjectIDFromHex(assignmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid assignment ID", domain.ErrNotFound)
	}

	var assignment models.Assignment
	err = s.assignmentCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&assignment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: assignment %s", domain.ErrNotFound, assignmentID)
		}
		return nil, fmt.Errorf("failed to fetch assignment: %w", err)
	}

	if assignment.AssigneeID != principal.ID {
		return nil, fmt.Errorf("%w: only the assignee may change the status", domain.ErrUnauthorized)
	}

	if !assignment.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, assignment.Status, next)
	}

	now := time.Now().UTC()
	set := bson.M{"status": next, "updated_at": now}
	if next == models.AssignmentCompleted {
		set["completed_at"] = now
	}

	result, err := s.assignmentCollection.UpdateOne(ctx,
		bson.M{"_id": assignment.ID, "status": assignment.Status},
		bson.M{"$set": set},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("%w: assignment changed concurrently", domain.ErrInvalidTransition)
	}

	previous := assignment.Status
	assignment.Status = next
	assignment.UpdatedAt = now
	if next == models.AssignmentCompleted {
		assignment.CompletedAt = &now
	}

	if err := s.audit.Record(ctx, principal.ID, models.ActionAssignmentUpdated, models.EntityAssignment, assignment.ID.Hex(),
		fmt.Sprintf("assignment %s -> %s", previous, next)); err != nil {
		s.logger.Warn("assignment updated but unlogged", zap.String("assignment_id", assignmentID), zap.Error(err))
	}

	return &assignment, nil
}

// ListReceived returns assignments where the principal is the
// assignee.
func (s *AssignmentService) ListReceived(ctx context.Context, principal models.Principal, filter AssignmentListFilter) ([]models.Assignment, int64, error) {
	return s.list(ctx, bson.M{"assignee_id": principal.ID}, filter)
}

// ListSent returns assignments the principal created.
func (s *AssignmentService) ListSent(ctx context.Context, principal models.Principal, filter AssignmentListFilter) ([]models.Assignment, int64, error) {
	return s.list(ctx, bson.M{"assigner_id": principal.ID}, filter)
}

func (s *AssignmentService) list(ctx context.Context, query bson.M, filter AssignmentListFilter) ([]models.Assignment, int64, error) {
	if filter.Status != "" {
		if !filter.Status.Valid() {
			return nil, 0, fmt.Errorf("%w: invalid status filter %q", domain.ErrValidation, filter.Status)
		}
		query["status"] = filter.Status
	}

	total, err := s.assignmentCollection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count assignments: %w", err)
	}

	findOptions := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(int64(filter.Limit)).
		SetSkip(int64((filter.Page - 1) * filter.Limit))

	cursor, err := s.assignmentCollection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch assignments: %w", err)
	}
	defer cursor.Close(ctx)

	var assignments []models.Assignment
	if err = cursor.All(ctx, &assignments); err != nil {
		return nil, 0, fmt.Errorf("failed to decode assignments: %w", err)
	}

	return assignments, total, nil
}
