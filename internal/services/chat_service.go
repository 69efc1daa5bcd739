package services

import (
	"context"
	"errors"
	"strings"

	"github.com/NafisTahmid/instagram-clone-vercel/internal/models"
	"github.com/NafisTahmid/instagram-clone-vercel/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ChatService owns conversation/message pairing. Conversations are keyed by
// the sorted participant pair; the unique index on that key makes the
// find-or-create step safe against concurrent first messages.
type ChatService struct {
	conversations repositories.ConversationRepository
	messages      repositories.MessageRepository
	logger        *zap.Logger
}

// NewChatService creates a new ChatService
func NewChatService(convRepo repositories.ConversationRepository, msgRepo repositories.MessageRepository, logger *zap.Logger) *ChatService {
	return &ChatService{conversations: convRepo, messages: msgRepo, logger: logger}
}

// SendMessage creates a message and appends it to the conversation for the
// {sender, receiver} pair, creating the conversation on first contact.
func (s *ChatService) SendMessage(ctx context.Context, senderID, receiverID primitive.ObjectID, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, validationf("message is required")
	}

	conv, err := s.findOrCreateConversation(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Message:    text,
	}
	if err := s.messages.CreateMessage(ctx, message); err != nil {
		return nil, dependency("create message", err)
	}
	if err := s.conversations.AppendMessage(ctx, conv.ID, message.ID); err != nil {
		// Message record exists but is not reachable through the
		// conversation; a retry sends a fresh message.
		s.logger.Warn("message not appended to conversation",
			zap.String("message", message.ID.Hex()),
			zap.String("conversation", conv.ID.Hex()),
			zap.Error(err))
		return nil, dependency("append message", err)
	}
	return message, nil
}

func (s *ChatService) findOrCreateConversation(ctx context.Context, a, b primitive.ObjectID) (*models.Conversation, error) {
	key := models.PairKey(a, b)
	conv, err := s.conversations.GetConversationByPairKey(ctx, key)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, dependency("find conversation", err)
	}

	conv = &models.Conversation{
		PairKey:      key,
		Participants: []primitive.ObjectID{a, b},
	}
	err = s.conversations.CreateConversation(ctx, conv)
	if err == nil {
		return conv, nil
	}
	if errors.Is(err, repositories.ErrDuplicateKey) {
		// Lost the creation race; the winner's conversation is the pair's one
		// conversation from here on.
		conv, err = s.conversations.GetConversationByPairKey(ctx, key)
		if err != nil {
			return nil, dependency("refetch conversation", err)
		}
		return conv, nil
	}
	return nil, dependency("create conversation", err)
}

// GetMessages returns the messages between two accounts in append order. No
// conversation yet is not an error: the result is an empty sequence.
func (s *ChatService) GetMessages(ctx context.Context, a, b primitive.ObjectID) ([]models.Message, error) {
	conv, err := s.conversations.GetConversationByPairKey(ctx, models.PairKey(a, b))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return []models.Message{}, nil
		}
		return nil, dependency("find conversation", err)
	}
	messages, err := s.messages.GetMessagesByIDs(ctx, conv.Messages)
	if err != nil {
		return nil, dependency("get messages", err)
	}
	return messages, nil
}
