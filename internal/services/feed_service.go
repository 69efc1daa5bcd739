package services

import (
	"context"
	"time"

	"github.com/NafisTahmid/instagram-clone-vercel/internal/models"
	"github.com/NafisTahmid/instagram-clone-vercel/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedService composes read views from multiple records. Each join is a
// separate point-in-time read: a comment can outlive its post and a bookmark
// its target for a while, so referential validity is checked at render time
// instead of assumed.
type FeedService struct {
	posts    repositories.PostRepository
	comments repositories.CommentRepository
	users    repositories.UserRepository
}

// NewFeedService creates a new FeedService
func NewFeedService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, userRepo repositories.UserRepository) *FeedService {
	return &FeedService{posts: postRepo, comments: commentRepo, users: userRepo}
}

// CommentView is a comment joined with its author's restricted projection.
type CommentView struct {
	ID        primitive.ObjectID `json:"id"`
	Text      string             `json:"text"`
	Author    models.UserCompact `json:"author"`
	CreatedAt time.Time          `json:"created_at"`
}

// PostView is a post joined with its author's restricted projection and its
// comments.
type PostView struct {
	ID        primitive.ObjectID   `json:"id"`
	Caption   string               `json:"caption"`
	Image     string               `json:"image"`
	Author    models.UserCompact   `json:"author"`
	Likes     []primitive.ObjectID `json:"likes"`
	Comments  []CommentView        `json:"comments"`
	CreatedAt time.Time            `json:"created_at"`
}

// ProfileView is an account joined with its resolved posts and bookmarks.
// Credential material is excluded.
type ProfileView struct {
	ID             primitive.ObjectID   `json:"id"`
	Username       string               `json:"username"`
	Email          string               `json:"email"`
	ProfilePicture string               `json:"profile_picture"`
	Bio            string               `json:"bio,omitempty"`
	Gender         string               `json:"gender,omitempty"`
	Followers      []primitive.ObjectID `json:"followers"`
	Following      []primitive.ObjectID `json:"following"`
	Posts          []models.Post        `json:"posts"`
	Bookmarks      []models.Post        `json:"bookmarks"`
}

// GetFeed returns all posts newest-first, each joined with author and
// comments.
func (s *FeedService) GetFeed(ctx context.Context) ([]PostView, error) {
	posts, err := s.posts.GetAllPosts(ctx)
	if err != nil {
		return nil, dependency("get posts", err)
	}
	return s.assemble(ctx, posts)
}

// GetUserPosts returns the posts authored by a user, newest-first, joined
// like the feed.
func (s *FeedService) GetUserPosts(ctx context.Context, authorID primitive.ObjectID) ([]PostView, error) {
	posts, err := s.posts.GetPostsByAuthor(ctx, authorID)
	if err != nil {
		return nil, dependency("get posts", err)
	}
	return s.assemble(ctx, posts)
}

func (s *FeedService) assemble(ctx context.Context, posts []models.Post) ([]PostView, error) {
	authors := s.resolveAuthors(ctx, posts)

	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		view := PostView{
			ID:        p.ID,
			Caption:   p.Caption,
			Image:     p.Image,
			Author:    authors[p.Author],
			Likes:     p.Likes,
			Comments:  []CommentView{},
			CreatedAt: p.CreatedAt,
		}
		comments, err := s.comments.GetCommentsByPostID(ctx, p.ID)
		if err != nil {
			return nil, dependency("get comments", err)
		}
		for _, c := range comments {
			author, err := s.users.GetUserByID(ctx, c.Author)
			if err != nil {
				// Comment author no longer resolves; drop the comment from
				// the view rather than render a broken reference.
				continue
			}
			view.Comments = append(view.Comments, CommentView{
				ID:        c.ID,
				Text:      c.Text,
				Author:    author.ToCompact(),
				CreatedAt: c.CreatedAt,
			})
		}
		views = append(views, view)
	}
	return views, nil
}

// resolveAuthors builds the restricted projection per unique post author.
// A post whose author record is gone keeps a zero-valued projection: the
// post itself persists independent of a dangling author reference.
func (s *FeedService) resolveAuthors(ctx context.Context, posts []models.Post) map[primitive.ObjectID]models.UserCompact {
	authors := make(map[primitive.ObjectID]models.UserCompact)
	for _, p := range posts {
		if _, ok := authors[p.Author]; ok {
			continue
		}
		user, err := s.users.GetUserByID(ctx, p.Author)
		if err != nil {
			authors[p.Author] = models.UserCompact{}
			continue
		}
		authors[p.Author] = user.ToCompact()
	}
	return authors
}

// GetProfile returns the account view with resolved posts and bookmarks.
// Bookmark ids of deleted posts drop out here: delete does not prune foreign
// bookmark sets, so the filter lives on the read path.
func (s *FeedService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*ProfileView, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, translateLookup("user", err)
	}

	posts, err := s.posts.GetPostsByIDs(ctx, user.Posts)
	if err != nil {
		return nil, dependency("get posts", err)
	}
	bookmarks, err := s.posts.GetPostsByIDs(ctx, user.Bookmarks)
	if err != nil {
		return nil, dependency("get bookmarks", err)
	}

	return &ProfileView{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		ProfilePicture: user.ProfilePicture,
		Bio:            user.Bio,
		Gender:         user.Gender,
		Followers:      user.Followers,
		Following:      user.Following,
		Posts:          posts,
		Bookmarks:      bookmarks,
	}, nil
}

// GetSuggestedUsers returns every account except the requester as restricted
// projections.
func (s *FeedService) GetSuggestedUsers(ctx context.Context, requesterID primitive.ObjectID) ([]models.UserCompact, error) {
	users, err := s.users.GetUsersExcept(ctx, requesterID)
	if err != nil {
		return nil, dependency("get users", err)
	}
	suggested := make([]models.UserCompact, len(users))
	for i, u := range users {
		suggested[i] = u.ToCompact()
	}
	return suggested, nil
}
