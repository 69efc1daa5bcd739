package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/NafisTahmid/instagram-clone-vercel/internal/models"
	"github.com/NafisTahmid/instagram-clone-vercel/internal/repositories"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// fakeUploader satisfies media.Uploader without touching a bucket.
type fakeUploader struct {
	uploads int
}

func (u *fakeUploader) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	u.uploads++
	return "https://storage.test/posts/fake.jpg", nil
}

type testEnv struct {
	store      *memStore
	uploader   *fakeUploader
	notifier   *NotificationService
	relations  *RelationService
	engagement *EngagementService
	posts      *PostService
	chat       *ChatService
	feed       *FeedService
}

func newTestEnv() *testEnv {
	store := newMemStore()
	logger := zap.NewNop()
	uploader := &fakeUploader{}
	notifier := NewNotificationService(store, logger)
	return &testEnv{
		store:      store,
		uploader:   uploader,
		notifier:   notifier,
		relations:  NewRelationService(store, notifier, logger),
		engagement: NewEngagementService(store, store, notifier, logger),
		posts:      NewPostService(store, store, store, uploader, notifier, logger),
		chat:       NewChatService(store, store, logger),
		feed:       NewFeedService(store, store, store),
	}
}

func (e *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed-secret",
	}
	require.NoError(t, e.store.CreateUser(context.Background(), user))
	return user
}

func (e *testEnv) createPost(t *testing.T, authorID primitive.ObjectID, caption string) *models.Post {
	t.Helper()
	post := &models.Post{
		Author:  authorID,
		Caption: caption,
		Image:   "https://storage.test/posts/seed.jpg",
	}
	require.NoError(t, e.store.CreatePost(context.Background(), post))
	require.NoError(t, e.store.AddPostRef(context.Background(), authorID, post.ID))
	return post
}

func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// flakyUserRepo fails the second half of a follow write once, to exercise the
// partial-application window.
type flakyUserRepo struct {
	repositories.UserRepository
	failAddFollower bool
}

func (r *flakyUserRepo) AddFollower(ctx context.Context, userID, followerID primitive.ObjectID) error {
	if r.failAddFollower {
		r.failAddFollower = false
		return errors.New("write timeout")
	}
	return r.UserRepository.AddFollower(ctx, userID, followerID)
}

// racingConvRepo makes the first CreateConversation lose a concurrent-create
// race: a winner with the same pair key lands first and the caller sees the
// duplicate-key error.
type racingConvRepo struct {
	repositories.ConversationRepository
	raced bool
}

func (r *racingConvRepo) CreateConversation(ctx context.Context, conv *models.Conversation) error {
	if !r.raced {
		r.raced = true
		winner := &models.Conversation{
			PairKey:      conv.PairKey,
			Participants: conv.Participants,
		}
		if err := r.ConversationRepository.CreateConversation(ctx, winner); err != nil {
			return err
		}
		return repositories.ErrDuplicateKey
	}
	return r.ConversationRepository.CreateConversation(ctx, conv)
}
