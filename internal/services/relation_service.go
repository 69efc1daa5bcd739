package services

import (
	"context"

	"github.com/NafisTahmid/instagram-clone-vercel/internal/models"
	"github.com/NafisTahmid/instagram-clone-vercel/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// RelationService owns the follow graph. It is the only component allowed to
// mutate both sides of a follow edge, and it always writes them in a fixed
// order: actor.following first, target.followers second. Between the two
// writes the symmetry invariant may be observably violated; the window is
// bounded by one record write and closes on any retry because both writes
// are idempotent set mutations.
type RelationService struct {
	users    repositories.UserRepository
	notifier *NotificationService
	logger   *zap.Logger
}

// NewRelationService creates a new RelationService
func NewRelationService(userRepo repositories.UserRepository, notifier *NotificationService, logger *zap.Logger) *RelationService {
	return &RelationService{users: userRepo, notifier: notifier, logger: logger}
}

// FollowResult reports the relationship state after a toggle.
type FollowResult struct {
	Following bool `json:"following"`
}

// FollowOrUnfollow toggles the follow edge between actor and target. The
// direction is decided by reading actor.following: present means unfollow,
// absent means follow. Re-invoking with unchanged state converges rather
// than erroring, so the toggle cycles follow -> unfollow -> follow.
func (s *RelationService) FollowOrUnfollow(ctx context.Context, actorID, targetID primitive.ObjectID) (*FollowResult, error) {
	if actorID == targetID {
		return nil, ErrSelfRelation
	}

	actor, err := s.users.GetUserByID(ctx, actorID)
	if err != nil {
		return nil, translateLookup("user", err)
	}
	_, err = s.users.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, translateLookup("user", err)
	}

	if actor.IsFollowing(targetID) {
		if err := s.users.RemoveFollowing(ctx, actorID, targetID); err != nil {
			return nil, dependency("unfollow: remove following", err)
		}
		if err := s.users.RemoveFollower(ctx, targetID, actorID); err != nil {
			s.logger.Warn("unfollow partially applied",
				zap.String("actor", actorID.Hex()),
				zap.String("target", targetID.Hex()),
				zap.Error(err))
			return nil, dependency("unfollow: remove follower", err)
		}
		return &FollowResult{Following: false}, nil
	}

	if err := s.users.AddFollowing(ctx, actorID, targetID); err != nil {
		return nil, dependency("follow: add following", err)
	}
	if err := s.users.AddFollower(ctx, targetID, actorID); err != nil {
		s.logger.Warn("follow partially applied",
			zap.String("actor", actorID.Hex()),
			zap.String("target", targetID.Hex()),
			zap.Error(err))
		return nil, dependency("follow: add follower", err)
	}

	s.notifier.Notify(ctx, &models.Notification{
		Type:        "follow",
		ActorID:     actorID,
		RecipientID: targetID,
		Message:     actor.Username + " started following you",
	})

	return &FollowResult{Following: true}, nil
}
