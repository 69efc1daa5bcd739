package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation pairs two accounts. PairKey is derived from the sorted
// participant ids and carries a unique index, so concurrent first messages
// between the same two accounts cannot create two conversations.
type Conversation struct {
	ID           primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	PairKey      string               `json:"-" bson:"pair_key"`
	Participants []primitive.ObjectID `json:"participants" bson:"participants"`
	Messages     []primitive.ObjectID `json:"message_ids" bson:"messages"`
}

// PairKey returns the order-independent key for a participant pair.
func PairKey(a, b primitive.ObjectID) string {
	x, y := a.Hex(), b.Hex()
	if x > y {
		x, y = y, x
	}
	return strings.Join([]string{x, y}, ":")
}
