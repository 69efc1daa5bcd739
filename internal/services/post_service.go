package services

import (
	"context"
	"strings"

	"github.com/NafisTahmid/instagram-clone-vercel/internal/models"
	"github.com/NafisTahmid/instagram-clone-vercel/internal/repositories"
	"github.com/NafisTahmid/instagram-clone-vercel/pkg/media"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// PostService owns post creation, comment attachment and the post delete
// cascade. Multi-record sequences run in a fixed order with the post record
// first, so a partial failure leaves either an orphaned child (tolerated,
// logged) or a stale back-reference that read assembly filters out.
type PostService struct {
	posts    repositories.PostRepository
	comments repositories.CommentRepository
	users    repositories.UserRepository
	uploader media.Uploader
	notifier *NotificationService
	logger   *zap.Logger
}

// NewPostService creates a new PostService
func NewPostService(
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	userRepo repositories.UserRepository,
	uploader media.Uploader,
	notifier *NotificationService,
	logger *zap.Logger,
) *PostService {
	return &PostService{
		posts:    postRepo,
		comments: commentRepo,
		users:    userRepo,
		uploader: uploader,
		notifier: notifier,
		logger:   logger,
	}
}

// CreatePost normalizes and stores the image, creates the post, then adds
// its id to the author's posts sequence.
func (s *PostService) CreatePost(ctx context.Context, actorID primitive.ObjectID, caption string, image []byte) (*models.Post, error) {
	caption = strings.TrimSpace(caption)
	if caption == "" {
		return nil, validationf("caption is required")
	}
	if len(image) == 0 {
		return nil, validationf("image is required")
	}
	if _, err := s.users.GetUserByID(ctx, actorID); err != nil {
		return nil, translateLookup("user", err)
	}

	normalized, err := media.Normalize(image)
	if err != nil {
		return nil, validationf("unsupported image: %v", err)
	}
	imageURL, err := s.uploader.Upload(ctx, normalized, "image/jpeg")
	if err != nil {
		return nil, dependency("upload image", err)
	}

	post := &models.Post{
		Author:  actorID,
		Caption: caption,
		Image:   imageURL,
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, dependency("create post", err)
	}
	if err := s.users.AddPostRef(ctx, actorID, post.ID); err != nil {
		// The post exists but the author's back-reference is missing; the
		// caller may retry, the add is idempotent.
		s.logger.Warn("post back-reference not written",
			zap.String("post", post.ID.Hex()),
			zap.String("author", actorID.Hex()),
			zap.Error(err))
		return nil, dependency("link post to author", err)
	}
	return post, nil
}

// AddComment creates a comment and appends its id to the post's comment
// sequence. A failed append leaves the comment orphaned: visible only via a
// direct lookup, never via the post. Orphans are logged and not repaired.
func (s *PostService) AddComment(ctx context.Context, actorID, postID primitive.ObjectID, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, validationf("text is required")
	}
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return nil, translateLookup("post", err)
	}

	comment := &models.Comment{
		Text:   text,
		Author: actorID,
		Post:   postID,
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, dependency("create comment", err)
	}
	if err := s.posts.AppendComment(ctx, postID, comment.ID); err != nil {
		s.logger.Warn("comment orphaned: append to post failed",
			zap.String("comment", comment.ID.Hex()),
			zap.String("post", postID.Hex()),
			zap.Error(err))
		return nil, dependency("attach comment", err)
	}

	post, err := s.posts.GetPostByID(ctx, postID)
	if err == nil && post.Author != actorID {
		actor, err := s.users.GetUserByID(ctx, actorID)
		if err == nil {
			s.notifier.Notify(ctx, &models.Notification{
				Type:        "comment",
				ActorID:     actorID,
				RecipientID: post.Author,
				TargetID:    postID.Hex(),
				Message:     actor.Username + " commented on your post",
			})
		}
	}
	return comment, nil
}

// GetCommentsOfPost returns a post's comments in creation order. An existing
// post with no comments yields an empty list; a missing post is not-found.
func (s *PostService) GetCommentsOfPost(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return nil, translateLookup("post", err)
	}
	comments, err := s.comments.GetCommentsByPostID(ctx, postID)
	if err != nil {
		return nil, dependency("get comments", err)
	}
	return comments, nil
}

// DeletePost cascades: delete the post, bulk-delete its comments, remove the
// id from the author's posts sequence. Bookmark sets of other users are not
// pruned here; profile read assembly drops ids that no longer resolve.
// Each step is independently retryable.
func (s *PostService) DeletePost(ctx context.Context, actorID, postID primitive.ObjectID) error {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return translateLookup("post", err)
	}
	if post.Author != actorID {
		return ErrForbidden
	}

	if err := s.posts.DeletePost(ctx, postID); err != nil {
		return dependency("delete post", err)
	}
	if err := s.comments.DeleteCommentsByPostID(ctx, postID); err != nil {
		// Orphaned comments reference a missing post; readers treat them as
		// invisible, so the cascade can be re-issued safely.
		s.logger.Warn("post deleted but comment cleanup failed",
			zap.String("post", postID.Hex()),
			zap.Error(err))
		return dependency("delete comments", err)
	}
	if err := s.users.RemovePostRef(ctx, actorID, postID); err != nil {
		s.logger.Warn("post deleted but author back-reference remains",
			zap.String("post", postID.Hex()),
			zap.String("author", actorID.Hex()),
			zap.Error(err))
		return dependency("unlink post from author", err)
	}
	return nil
}
