package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account document stored in MongoDB. The followers,
// following, posts and bookmarks arrays are redundant back-references kept
// consistent by the service layer, not by the store.
type User struct {
	ID             primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Username       string               `json:"username" bson:"username"`
	Email          string               `json:"email" bson:"email"`
	GoogleID       string               `json:"-" bson:"google_id,omitempty"` // Link to Google account for OAuth sign-in
	Password       string               `json:"-" bson:"password,omitempty"`  // Store hashed password, ignore for JSON serialization
	ProfilePicture string               `json:"profile_picture" bson:"profile_picture"`
	Bio            string               `json:"bio,omitempty" bson:"bio,omitempty"`
	Gender         string               `json:"gender,omitempty" bson:"gender,omitempty"`
	Followers      []primitive.ObjectID `json:"followers" bson:"followers"`
	Following      []primitive.ObjectID `json:"following" bson:"following"`
	Posts          []primitive.ObjectID `json:"posts" bson:"posts"`
	Bookmarks      []primitive.ObjectID `json:"bookmarks" bson:"bookmarks"`
	CreatedAt      time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at" bson:"updated_at"`
}

// UserCompact is the restricted projection embedded in feeds and comments.
// Credential material is never part of it.
type UserCompact struct {
	ID             primitive.ObjectID `json:"id" bson:"_id"`
	Username       string             `json:"username" bson:"username"`
	ProfilePicture string             `json:"profile_picture" bson:"profile_picture"`
}

// ToCompact returns the restricted projection of the user.
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:             u.ID,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
	}
}

// IsFollowing reports whether the user's following set contains id.
func (u *User) IsFollowing(id primitive.ObjectID) bool {
	return containsID(u.Following, id)
}

// HasBookmarked reports whether the user's bookmark set contains the post id.
func (u *User) HasBookmarked(postID primitive.ObjectID) bool {
	return containsID(u.Bookmarks, postID)
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// RegisterRequest defines the request body for local registration
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest defines the request body for local login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// EditProfileRequest defines the mutable profile fields; the picture itself
// arrives as a multipart file alongside this form.
type EditProfileRequest struct {
	Bio    string `json:"bio" form:"bio" validate:"omitempty,max=200"`
	Gender string `json:"gender" form:"gender" validate:"omitempty,oneof=male female"`
}

// GoogleLoginRequest carries the Firebase ID token obtained by the client
// after Google sign-in.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
