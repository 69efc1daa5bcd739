package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification represents a user notification
type Notification struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Type        string             `json:"type" bson:"type"` // follow, like, comment
	ActorID     primitive.ObjectID `json:"actor_id" bson:"actor_id"`
	RecipientID primitive.ObjectID `json:"recipient_id" bson:"recipient_id"`
	TargetID    string             `json:"target_id,omitempty" bson:"target_id,omitempty"` // post or comment id
	Message     string             `json:"message" bson:"message"`
	IsRead      bool               `json:"is_read" bson:"is_read"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}
