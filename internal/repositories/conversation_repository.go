package repositories

import (
	"context"

	"github.com/NafisTahmid/instagram-clone-vercel/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ConversationRepository defines the interface for conversation data operations
type ConversationRepository interface {
	GetConversationByPairKey(ctx context.Context, pairKey string) (*models.Conversation, error)
	CreateConversation(ctx context.Context, conv *models.Conversation) error
	AppendMessage(ctx context.Context, convID, messageID primitive.ObjectID) error
}

// MongoConversationRepository implements ConversationRepository for MongoDB
type MongoConversationRepository struct {
	collection *mongo.Collection
}

// NewMongoConversationRepository creates a new MongoConversationRepository
func NewMongoConversationRepository(db *mongo.Database) *MongoConversationRepository {
	return &MongoConversationRepository{collection: db.Collection("conversations")}
}

// GetConversationByPairKey retrieves the conversation for a participant pair
func (r *MongoConversationRepository) GetConversationByPairKey(ctx context.Context, pairKey string) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.collection.FindOne(ctx, bson.M{"pair_key": pairKey}).Decode(&conv)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}

// CreateConversation creates a conversation. The unique index on pair_key
// turns a lost find-or-create race into ErrDuplicateKey, which callers
// resolve by re-reading the winner's document.
func (r *MongoConversationRepository) CreateConversation(ctx context.Context, conv *models.Conversation) error {
	conv.ID = primitive.NewObjectID()
	if conv.Messages == nil {
		conv.Messages = []primitive.ObjectID{}
	}
	_, err := r.collection.InsertOne(ctx, conv)
	return translateWriteErr(err)
}

// AppendMessage appends a message id to the conversation's message sequence
func (r *MongoConversationRepository) AppendMessage(ctx context.Context, convID, messageID primitive.ObjectID) error {
	return addUnique(ctx, r.collection, convID, "messages", messageID)
}
