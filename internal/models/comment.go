package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment represents a comment on a post. Comments are only ever created
// attached to a post; the Post field is immutable.
type Comment struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Text      string             `json:"text" bson:"text"`
	Author    primitive.ObjectID `json:"author_id" bson:"author"`
	Post      primitive.ObjectID `json:"post_id" bson:"post"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// AddCommentRequest defines the request body for commenting on a post
type AddCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}
