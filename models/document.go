package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FileStatus is the workflow state of a document.
type FileStatus string

const (
	StatusActive   FileStatus = "active"
	StatusPending  FileStatus = "pending"
	StatusArchived FileStatus = "archived"
)

// Valid reports whether the status is one of the declared states.
func (s FileStatus) Valid() bool {
	switch s {
	case StatusActive, StatusPending, StatusArchived:
		return true
	}
	return false
}

// SharingStatus tracks how a document has been handed to others.
type SharingStatus string

const (
	SharingNone     SharingStatus = "none"
	SharingSent     SharingStatus = "sent"
	SharingAssigned SharingStatus = "assigned"
)

// DocType is the declared document format. The set is closed.
type DocType string

const (
	DocTypeWord        DocType = "word"
	DocTypePDF         DocType = "pdf"
	DocTypeSpreadsheet DocType = "spreadsheet"
)

func (t DocType) Valid() bool {
	switch t {
	case DocTypeWord, DocTypePDF, DocTypeSpreadsheet:
		return true
	}
	return false
}

// Document is one stored file with its lifecycle and sharing state.
// A trashed document (IsDeleted) is hidden from every listing except the
// trash view, but direct-id lookup still works so restore/purge can run.
type Document struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	DocType       DocType            `bson:"doc_type" json:"doc_type"`
	OwnerID       primitive.ObjectID `bson:"owner_id" json:"owner_id"`
	FileStatus    FileStatus         `bson:"file_status" json:"file_status"`
	SharingStatus SharingStatus      `bson:"sharing_status" json:"sharing_status"`
	Size          int64              `bson:"size" json:"size"`
	B2FileID      string             `bson:"b2_file_id,omitempty" json:"-"`
	B2FileName    string             `bson:"b2_file_name,omitempty" json:"-"`
	IsDeleted     bool               `bson:"is_deleted" json:"is_deleted"`
	DeletedAt     *time.Time         `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// TrashStateConsistent checks the IsDeleted/DeletedAt pairing: a document
// is deleted exactly when its deletion timestamp is set.
func (d *Document) TrashStateConsistent() bool {
	return d.IsDeleted == (d.DeletedAt != nil)
}

// ArchiveTarget returns the status an archive/unarchive toggle lands on
// from the current status. Archiving any non-archived document lands on
// archived; unarchiving always lands on active.
func ArchiveTarget(current FileStatus) FileStatus {
	if current == StatusArchived {
		return StatusActive
	}
	return StatusArchived
}

// TrashItem is a trash-view row for a deleted document.
type TrashItem struct {
	DocumentID  primitive.ObjectID `bson:"document_id" json:"document_id"`
	Name        string             `bson:"name" json:"name"`
	DocType     DocType            `bson:"doc_type" json:"doc_type"`
	OwnerID     primitive.ObjectID `bson:"owner_id" json:"owner_id"`
	FileStatus  FileStatus         `bson:"file_status" json:"file_status"`
	Size        int64              `bson:"size" json:"size"`
	DeletedAt   time.Time          `bson:"deleted_at" json:"deleted_at"`
	AutoPurgeAt time.Time          `bson:"auto_purge_at" json:"auto_purge_at"`
}
