package services

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"lexvault/domain"
	"lexvault/models"
)

func TestEnsureTrashed(t *testing.T) {
	live := &models.Document{ID: primitive.NewObjectID()}
	if err := ensureTrashed(live); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("restore/purge gate on a live document returned %v, want ErrInvalidTransition", err)
	}

	now := time.Now().UTC()
	trashed := &models.Document{ID: primitive.NewObjectID(), IsDeleted: true, DeletedAt: &now}
	if err := ensureTrashed(trashed); err != nil {
		t.Errorf("gate rejected a trashed document: %v", err)
	}
}

func TestRestoreUpdatePreservesStatus(t *testing.T) {
	update := restoreUpdate(time.Now().UTC())

	set, ok := update["$set"].(bson.M)
	if !ok {
		t.Fatalf("$set missing: %#v", update)
	}
	if _, touched := set["file_status"]; touched {
		t.Error("restore must not overwrite the pre-delete file status")
	}
	if set["is_deleted"] != false {
		t.Errorf("is_deleted = %#v, want false", set["is_deleted"])
	}

	unset, ok := update["$unset"].(bson.M)
	if !ok {
		t.Fatalf("$unset missing: %#v", update)
	}
	if _, ok := unset["deleted_at"]; !ok {
		t.Error("restore must clear deleted_at")
	}
}

// testDatabase connects to the instance named by LEXVAULT_TEST_MONGO_URI
// and hands back a throwaway database, skipping when none is configured.
func testDatabase(t *testing.T, ctx context.Context) *mongo.Database {
	t.Helper()

	uri := os.Getenv("LEXVAULT_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("LEXVAULT_TEST_MONGO_URI not set")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Disconnect(context.Background())
	})

	db := client.Database("lexvault_test_" + primitive.NewObjectID().Hex())
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
	})
	return db
}

func TestDocumentTrashLifecycle(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := testDatabase(t, ctx)
	logger := zap.NewNop()
	audit := NewAuditService(db, logger)
	perms := NewPermissionService(db, audit, logger)
	notifications := NewNotificationService(db, logger)
	documents := NewDocumentService(db, perms, nil, audit, logger)
	trash := NewTrashService(db, perms, nil, audit, logger, time.Hour)
	assignments := NewAssignmentService(db, perms, notifications, audit, logger)

	owner := models.Principal{ID: primitive.NewObjectID().Hex(), Role: models.RoleMember}

	doc, err := documents.CreateDocument(ctx, owner, CreateDocumentRequest{
		Name: "engagement-letter.pdf", DocType: models.DocTypePDF, Size: 2048,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// A member with no grants must still see their own documents.
	listed, total, err := documents.ListDocuments(ctx, owner, ListFilter{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("grantless member listing failed: %v", err)
	}
	if total != 1 || len(listed) != 1 || listed[0].ID != doc.ID {
		t.Fatalf("listing = %d items (total %d), want the owned document", len(listed), total)
	}

	// Hand-off flips the document's sharing status.
	assignee := models.User{ID: primitive.NewObjectID(), Email: "paralegal@example.com", Role: models.RoleMember}
	if _, err := db.Collection("users").InsertOne(ctx, assignee); err != nil {
		t.Fatalf("failed to seed assignee: %v", err)
	}
	if _, err := assignments.Create(ctx, owner, CreateAssignmentRequest{
		DocumentID: doc.ID.Hex(), AssigneeID: assignee.ID.Hex(),
	}); err != nil {
		t.Fatalf("assignment failed: %v", err)
	}
	assigned, err := documents.GetDocument(ctx, owner, doc.ID.Hex())
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if assigned.SharingStatus != models.SharingAssigned {
		t.Errorf("sharing status = %s, want %s", assigned.SharingStatus, models.SharingAssigned)
	}

	if _, err := documents.SetStatus(ctx, owner, doc.ID.Hex(), models.StatusArchived); err != nil {
		t.Fatalf("archive failed: %v", err)
	}

	// Restore applies only to trashed documents.
	if _, err := trash.Restore(ctx, owner, doc.ID.Hex()); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("restore on a live document returned %v, want ErrInvalidTransition", err)
	}

	if _, err := documents.SoftDelete(ctx, owner, doc.ID.Hex()); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}

	restored, err := trash.Restore(ctx, owner, doc.ID.Hex())
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if restored.FileStatus != models.StatusArchived {
		t.Errorf("restored status = %s, want pre-delete %s", restored.FileStatus, models.StatusArchived)
	}
	if restored.IsDeleted || restored.DeletedAt != nil {
		t.Error("restored document still carries trash markers")
	}

	if _, err := documents.SoftDelete(ctx, owner, doc.ID.Hex()); err != nil {
		t.Fatalf("second soft delete failed: %v", err)
	}
	if err := trash.Purge(ctx, owner, doc.ID.Hex()); err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	if err := trash.Purge(ctx, owner, doc.ID.Hex()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second purge returned %v, want ErrNotFound", err)
	}
}
