package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PermissionLevel is the access tier a principal holds on a document.
// Levels form a total order: none < download < read < write < admin.
type PermissionLevel string

const (
	LevelNone     PermissionLevel = "none"
	LevelDownload PermissionLevel = "download"
	LevelRead     PermissionLevel = "read"
	LevelWrite    PermissionLevel = "write"
	LevelAdmin    PermissionLevel = "admin"
)

var levelRank = map[PermissionLevel]int{
	LevelNone:     0,
	LevelDownload: 1,
	LevelRead:     2,
	LevelWrite:    3,
	LevelAdmin:    4,
}

// Meets reports whether the level satisfies the required minimum.
// The comparison is on the level order, never string equality.
func (l PermissionLevel) Meets(min PermissionLevel) bool {
	lr, ok1 := levelRank[l]
	mr, ok2 := levelRank[min]
	return ok1 && ok2 && lr >= mr
}

// Valid reports whether the level is one of the declared tiers.
func (l PermissionLevel) Valid() bool {
	_, ok := levelRank[l]
	return ok
}

// ParseLevel converts a string into a PermissionLevel or fails.
func ParseLevel(s string) (PermissionLevel, error) {
	l := PermissionLevel(s)
	if !l.Valid() {
		return LevelNone, fmt.Errorf("invalid permission level: %q", s)
	}
	return l, nil
}

// PermissionGrant is one explicit (document, principal) access row.
// Grants are never removed; revocation sets the level to none so the
// grant history stays intact for the audit trail.
type PermissionGrant struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DocumentID primitive.ObjectID `bson:"document_id" json:"document_id"`
	UserID     string             `bson:"user_id" json:"user_id"`
	Level      PermissionLevel    `bson:"level" json:"level"`
	GrantedBy  string             `bson:"granted_by" json:"granted_by"`
	GrantedAt  time.Time          `bson:"granted_at" json:"granted_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}
