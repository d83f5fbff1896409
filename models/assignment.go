package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssignmentStatus is the hand-off state of an assignment.
// Transitions form a strict DAG: pending -> accepted -> completed,
// or pending -> rejected. rejected and completed are terminal.
type AssignmentStatus string

const (
	AssignmentPending   AssignmentStatus = "pending"
	AssignmentAccepted  AssignmentStatus = "accepted"
	AssignmentCompleted AssignmentStatus = "completed"
	AssignmentRejected  AssignmentStatus = "rejected"
)

func (s AssignmentStatus) Valid() bool {
	switch s {
	case AssignmentPending, AssignmentAccepted, AssignmentCompleted, AssignmentRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether the requested transition is one of the
// three legal edges. Everything else, including skipping accepted,
// is rejected.
func (s AssignmentStatus) CanTransitionTo(next AssignmentStatus) bool {
	switch s {
	case AssignmentPending:
		return next == AssignmentAccepted || next == AssignmentRejected
	case AssignmentAccepted:
		return next == AssignmentCompleted
	}
	return false
}

// Assignment is a directed hand-off of a document from assigner to
// assignee. Assignments are never deleted; they are retained for audit.
type Assignment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DocumentID  primitive.ObjectID `bson:"document_id" json:"document_id"`
	AssignerID  string             `bson:"assigner_id" json:"assigner_id"`
	AssigneeID  string             `bson:"assignee_id" json:"assignee_id"`
	Status      AssignmentStatus   `bson:"status" json:"status"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	DueDate     *time.Time         `bson:"due_date,omitempty" json:"due_date,omitempty"`
	CompletedAt *time.Time         `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
