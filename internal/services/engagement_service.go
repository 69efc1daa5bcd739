package services

import (
	"context"

	"github.com/NafisTahmid/instagram-clone-vercel/internal/models"
	"github.com/NafisTahmid/instagram-clone-vercel/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Bookmark actions reported to the caller. The response states the ground
// truth of what was performed, which under races may differ from the
// caller's intent.
const (
	BookmarkSaved   = "Saved"
	BookmarkUnsaved = "Unsaved"
)

// EngagementService owns the like and bookmark sets.
type EngagementService struct {
	users    repositories.UserRepository
	posts    repositories.PostRepository
	notifier *NotificationService
	logger   *zap.Logger
}

// NewEngagementService creates a new EngagementService
func NewEngagementService(userRepo repositories.UserRepository, postRepo repositories.PostRepository, notifier *NotificationService, logger *zap.Logger) *EngagementService {
	return &EngagementService{users: userRepo, posts: postRepo, notifier: notifier, logger: logger}
}

// LikePost adds the actor to the post's like set. A single-record atomic
// mutation with no cross-record step; liking an already-liked post is a
// no-op success.
func (s *EngagementService) LikePost(ctx context.Context, actorID, postID primitive.ObjectID) error {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return translateLookup("post", err)
	}
	if err := s.posts.AddLike(ctx, postID, actorID); err != nil {
		return dependency("like post", err)
	}

	if post.Author != actorID {
		actor, err := s.users.GetUserByID(ctx, actorID)
		if err == nil {
			s.notifier.Notify(ctx, &models.Notification{
				Type:        "like",
				ActorID:     actorID,
				RecipientID: post.Author,
				TargetID:    postID.Hex(),
				Message:     actor.Username + " liked your post",
			})
		}
	}
	return nil
}

// DislikePost removes the actor from the post's like set. Disliking a
// non-liked post is a no-op success.
func (s *EngagementService) DislikePost(ctx context.Context, actorID, postID primitive.ObjectID) error {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return translateLookup("post", err)
	}
	if err := s.posts.RemoveLike(ctx, postID, actorID); err != nil {
		return dependency("dislike post", err)
	}
	return nil
}

// BookmarkResult reports which action a bookmark toggle actually performed.
type BookmarkResult struct {
	Action string `json:"type"`
}

// BookmarkPost toggles the post in the actor's bookmark set: removed when
// present, added when absent.
func (s *EngagementService) BookmarkPost(ctx context.Context, actorID, postID primitive.ObjectID) (*BookmarkResult, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, translateLookup("post", err)
	}
	actor, err := s.users.GetUserByID(ctx, actorID)
	if err != nil {
		return nil, translateLookup("user", err)
	}

	if actor.HasBookmarked(post.ID) {
		if err := s.users.RemoveBookmark(ctx, actorID, post.ID); err != nil {
			return nil, dependency("remove bookmark", err)
		}
		return &BookmarkResult{Action: BookmarkUnsaved}, nil
	}
	if err := s.users.AddBookmark(ctx, actorID, post.ID); err != nil {
		return nil, dependency("add bookmark", err)
	}
	return &BookmarkResult{Action: BookmarkSaved}, nil
}
