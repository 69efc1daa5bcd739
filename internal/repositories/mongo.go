package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Sentinel errors shared by all repositories. Services translate these into
// their own error kinds; repositories never shape HTTP responses.
var (
	// ErrNotFound is returned when a record id or filter resolves to nothing.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when a unique index rejects a write.
	ErrDuplicateKey = errors.New("duplicate key")
)

// addUnique adds value to the array field of one document using $addToSet.
// The mutation is atomic at the record level and idempotent: re-adding a
// present value is a no-op. Array fields modeled as sets must only ever be
// grown through this helper, never through a blind $push.
func addUnique(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, field string, value interface{}) error {
	res, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$addToSet": bson.M{field: value}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// removeValue removes value from the array field of one document using $pull.
// Pulling an absent value is a no-op success.
func removeValue(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, field string, value interface{}) error {
	res, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$pull": bson.M{field: value}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func translateWriteErr(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}
