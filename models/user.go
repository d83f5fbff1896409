package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the firm-wide role of a user. System admins implicitly hold
// admin on every document; members rely on ownership and grants.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Principal is the authenticated actor behind a request, resolved by
// the auth middleware from the verified token claims.
type Principal struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// IsAdmin reports whether the principal holds the system admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// User is a member of the firm.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name" json:"name"`
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
