package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a post document stored in MongoDB. Author is immutable
// after creation. Likes is a set; Comments is an append-ordered sequence.
type Post struct {
	ID        primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Author    primitive.ObjectID   `json:"author_id" bson:"author"`
	Caption   string               `json:"caption" bson:"caption"`
	Image     string               `json:"image" bson:"image"`
	Likes     []primitive.ObjectID `json:"likes" bson:"likes"`
	Comments  []primitive.ObjectID `json:"comment_ids" bson:"comments"`
	CreatedAt time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time            `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the caption field of the multipart post upload
type CreatePostRequest struct {
	Caption string `json:"caption" form:"caption" validate:"required,min=1,max=2200"`
}
