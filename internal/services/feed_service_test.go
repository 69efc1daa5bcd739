package services

import (
	"context"
	"testing"

	"github.com/NafisTahmid/instagram-clone-vercel/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGetFeedNewestFirstWithJoins(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	author := env.createUser(t, "author")
	commenter := env.createUser(t, "commenter")

	older := env.createPost(t, author.ID, "older")
	newer := env.createPost(t, author.ID, "newer")

	_, err := env.posts.AddComment(ctx, commenter.ID, older.ID, "first")
	require.NoError(t, err)
	_, err = env.posts.AddComment(ctx, commenter.ID, older.ID, "second")
	require.NoError(t, err)

	feed, err := env.feed.GetFeed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 2)

	assert.Equal(t, newer.ID, feed[0].ID)
	assert.Equal(t, older.ID, feed[1].ID)
	assert.Equal(t, "author", feed[0].Author.Username)
	assert.Empty(t, feed[0].Comments)

	require.Len(t, feed[1].Comments, 2)
	assert.Equal(t, "first", feed[1].Comments[0].Text)
	assert.Equal(t, "second", feed[1].Comments[1].Text)
	assert.Equal(t, "commenter", feed[1].Comments[0].Author.Username)
}

func TestGetUserPostsOnlyAuthor(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	mine := env.createPost(t, alice.ID, "mine")
	env.createPost(t, bob.ID, "theirs")

	posts, err := env.feed.GetUserPosts(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, mine.ID, posts[0].ID)
}

func TestGetProfileFiltersDeletedBookmarks(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	author := env.createUser(t, "author")
	reader := env.createUser(t, "reader")
	post := env.createPost(t, author.ID, "sunset")

	_, err := env.engagement.BookmarkPost(ctx, reader.ID, post.ID)
	require.NoError(t, err)

	profile, err := env.feed.GetProfile(ctx, reader.ID)
	require.NoError(t, err)
	require.Len(t, profile.Bookmarks, 1)

	// Delete does not touch foreign bookmark sets; the raw reference stays
	// behind but the rendered profile drops it.
	require.NoError(t, env.posts.DeletePost(ctx, author.ID, post.ID))

	raw, err := env.store.GetUserByID(ctx, reader.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{post.ID}, raw.Bookmarks)

	profile, err = env.feed.GetProfile(ctx, reader.ID)
	require.NoError(t, err)
	assert.Empty(t, profile.Bookmarks)
}

func TestGetProfileExcludesCredentials(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.createUser(t, "alice")

	profile, err := env.feed.GetProfile(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "alice@example.com", profile.Email)
	assert.Empty(t, profile.Posts)
	assert.Empty(t, profile.Bookmarks)
}

func TestGetProfileUnknownUser(t *testing.T) {
	env := newTestEnv()

	_, err := env.feed.GetProfile(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetSuggestedUsersExcludesRequester(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	env.createUser(t, "bob")
	env.createUser(t, "carol")

	suggested, err := env.feed.GetSuggestedUsers(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, suggested, 2)
	for _, s := range suggested {
		assert.NotEqual(t, alice.ID, s.ID)
	}
}

func TestFeedKeepsPostWithMissingAuthor(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	// Post whose author record never existed; the post still renders, with a
	// zero-valued author projection.
	ghost := primitive.NewObjectID()
	post := &models.Post{Author: ghost, Caption: "orphan", Image: "x.jpg"}
	require.NoError(t, env.store.CreatePost(ctx, post))

	feed, err := env.feed.GetFeed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, models.UserCompact{}, feed[0].Author)
}
