package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Action kinds recorded in the audit trail. The vocabulary is closed;
// handlers pick from these constants rather than free-form strings.
const (
	ActionDocumentCreated    = "document_created"
	ActionDocumentUpdated    = "document_updated"
	ActionStatusChanged      = "document_status_changed"
	ActionDocumentArchived   = "document_archived"
	ActionDocumentUnarchived = "document_unarchived"
	ActionDocumentDeleted    = "document_deleted"
	ActionDocumentRestored   = "document_restored"
	ActionDocumentPurged     = "document_purged"
	ActionDocumentAssigned   = "document_assigned"
	ActionAssignmentUpdated  = "assignment_status_changed"
	ActionPermissionChanged  = "permission_changed"
)

// Entity types referenced by audit entries.
const (
	EntityDocument   = "document"
	EntityAssignment = "assignment"
	EntityPermission = "permission"
)

// AuditEntry is one immutable record of a state-changing action.
// Entries are append-only; nothing in the application updates or
// removes them.
type AuditEntry struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ActorID     string             `bson:"actor_id" json:"actor_id"`
	Action      string             `bson:"action" json:"action"`
	EntityType  string             `bson:"entity_type" json:"entity_type"`
	EntityID    string             `bson:"entity_id" json:"entity_id"`
	Description string             `bson:"description" json:"description"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
}
