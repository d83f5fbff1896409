package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is an in-app message created as a side effect of a
// hand-off. Delivery beyond the inbox (email, push) is handled outside
// this service.
type Notification struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"user_id" json:"user_id"`
	Title       string             `bson:"title" json:"title"`
	Message     string             `bson:"message" json:"message"`
	RelatedID   string             `bson:"related_id,omitempty" json:"related_id,omitempty"`
	RelatedType string             `bson:"related_type,omitempty" json:"related_type,omitempty"`
	IsRead      bool               `bson:"is_read" json:"is_read"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
