package services

import (
	"context"
	"sync"
	"time"

	"github.com/NafisTahmid/instagram-clone-vercel/internal/models"
	"github.com/NafisTahmid/instagram-clone-vercel/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore is an in-memory implementation of every repository interface,
// mirroring the store's semantics: single-record atomicity, $addToSet /
// $pull set mutation, unique indexes on user identity and conversation
// pair key.
type memStore struct {
	mu            sync.Mutex
	seq           int64
	users         map[primitive.ObjectID]*models.User
	posts         map[primitive.ObjectID]*models.Post
	postSeq       map[primitive.ObjectID]int64
	comments      map[primitive.ObjectID]*models.Comment
	commentSeq    map[primitive.ObjectID]int64
	conversations map[primitive.ObjectID]*models.Conversation
	messages      map[primitive.ObjectID]*models.Message
	notifications []*models.Notification
}

func newMemStore() *memStore {
	return &memStore{
		users:         make(map[primitive.ObjectID]*models.User),
		posts:         make(map[primitive.ObjectID]*models.Post),
		postSeq:       make(map[primitive.ObjectID]int64),
		comments:      make(map[primitive.ObjectID]*models.Comment),
		commentSeq:    make(map[primitive.ObjectID]int64),
		conversations: make(map[primitive.ObjectID]*models.Conversation),
		messages:      make(map[primitive.ObjectID]*models.Message),
	}
}

func (s *memStore) next() int64 {
	s.seq++
	return s.seq
}

func addIDUnique(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for _, v := range ids {
		if v == id {
			return ids
		}
	}
	return append(ids, id)
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func cloneIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	return append([]primitive.ObjectID{}, ids...)
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Followers = cloneIDs(u.Followers)
	c.Following = cloneIDs(u.Following)
	c.Posts = cloneIDs(u.Posts)
	c.Bookmarks = cloneIDs(u.Bookmarks)
	return &c
}

func clonePost(p *models.Post) *models.Post {
	c := *p
	c.Likes = cloneIDs(p.Likes)
	c.Comments = cloneIDs(p.Comments)
	return &c
}

// --- UserRepository ---

func (s *memStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email || u.Username == user.Username {
			return repositories.ErrDuplicateKey
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.Followers = []primitive.ObjectID{}
	user.Following = []primitive.ObjectID{}
	user.Posts = []primitive.ObjectID{}
	user.Bookmarks = []primitive.ObjectID{}
	s.users[user.ID] = cloneUser(user)
	return nil
}

func (s *memStore) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return cloneUser(u), nil
}

func (s *memStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *memStore) GetUserByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.GoogleID == googleID {
			return cloneUser(u), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *memStore) GetUsersExcept(ctx context.Context, id primitive.ObjectID) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var users []models.User
	for _, u := range s.users {
		if u.ID != id {
			users = append(users, *cloneUser(u))
		}
	}
	return users, nil
}

func (s *memStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, patch models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if patch.Bio != "" {
		u.Bio = patch.Bio
	}
	if patch.Gender != "" {
		u.Gender = patch.Gender
	}
	if patch.ProfilePicture != "" {
		u.ProfilePicture = patch.ProfilePicture
	}
	if patch.GoogleID != "" {
		u.GoogleID = patch.GoogleID
	}
	return nil
}

func (s *memStore) userSetOp(id primitive.ObjectID, f func(u *models.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	f(u)
	return nil
}

func (s *memStore) AddFollowing(ctx context.Context, userID, targetID primitive.ObjectID) error {
	return s.userSetOp(userID, func(u *models.User) { u.Following = addIDUnique(u.Following, targetID) })
}

func (s *memStore) RemoveFollowing(ctx context.Context, userID, targetID primitive.ObjectID) error {
	return s.userSetOp(userID, func(u *models.User) { u.Following = removeID(u.Following, targetID) })
}

func (s *memStore) AddFollower(ctx context.Context, userID, followerID primitive.ObjectID) error {
	return s.userSetOp(userID, func(u *models.User) { u.Followers = addIDUnique(u.Followers, followerID) })
}

func (s *memStore) RemoveFollower(ctx context.Context, userID, followerID primitive.ObjectID) error {
	return s.userSetOp(userID, func(u *models.User) { u.Followers = removeID(u.Followers, followerID) })
}

func (s *memStore) AddPostRef(ctx context.Context, userID, postID primitive.ObjectID) error {
	return s.userSetOp(userID, func(u *models.User) { u.Posts = addIDUnique(u.Posts, postID) })
}

func (s *memStore) RemovePostRef(ctx context.Context, userID, postID primitive.ObjectID) error {
	return s.userSetOp(userID, func(u *models.User) { u.Posts = removeID(u.Posts, postID) })
}

func (s *memStore) AddBookmark(ctx context.Context, userID, postID primitive.ObjectID) error {
	return s.userSetOp(userID, func(u *models.User) { u.Bookmarks = addIDUnique(u.Bookmarks, postID) })
}

func (s *memStore) RemoveBookmark(ctx context.Context, userID, postID primitive.ObjectID) error {
	return s.userSetOp(userID, func(u *models.User) { u.Bookmarks = removeID(u.Bookmarks, postID) })
}

// --- PostRepository ---

func (s *memStore) CreatePost(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.Likes = []primitive.ObjectID{}
	post.Comments = []primitive.ObjectID{}
	s.posts[post.ID] = clonePost(post)
	s.postSeq[post.ID] = s.next()
	return nil
}

func (s *memStore) GetPostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return clonePost(p), nil
}

func (s *memStore) postsWhere(keep func(p *models.Post) bool) []models.Post {
	var posts []models.Post
	for _, p := range s.posts {
		if keep(p) {
			posts = append(posts, *clonePost(p))
		}
	}
	// newest first
	for i := 0; i < len(posts); i++ {
		for j := i + 1; j < len(posts); j++ {
			if s.postSeq[posts[j].ID] > s.postSeq[posts[i].ID] {
				posts[i], posts[j] = posts[j], posts[i]
			}
		}
	}
	return posts
}

func (s *memStore) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.postsWhere(func(*models.Post) bool { return true }), nil
}

func (s *memStore) GetPostsByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.postsWhere(func(p *models.Post) bool { return p.Author == authorID }), nil
}

func (s *memStore) GetPostsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	return s.postsWhere(func(p *models.Post) bool { return wanted[p.ID] }), nil
}

func (s *memStore) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s *memStore) postSetOp(id primitive.ObjectID, f func(p *models.Post)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return repositories.ErrNotFound
	}
	f(p)
	return nil
}

func (s *memStore) AddLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	return s.postSetOp(postID, func(p *models.Post) { p.Likes = addIDUnique(p.Likes, userID) })
}

func (s *memStore) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	return s.postSetOp(postID, func(p *models.Post) { p.Likes = removeID(p.Likes, userID) })
}

func (s *memStore) AppendComment(ctx context.Context, postID, commentID primitive.ObjectID) error {
	return s.postSetOp(postID, func(p *models.Post) { p.Comments = addIDUnique(p.Comments, commentID) })
}

// --- CommentRepository ---

func (s *memStore) CreateComment(ctx context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	c := *comment
	s.comments[comment.ID] = &c
	s.commentSeq[comment.ID] = s.next()
	return nil
}

func (s *memStore) GetCommentsByPostID(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var comments []models.Comment
	for _, c := range s.comments {
		if c.Post == postID {
			comments = append(comments, *c)
		}
	}
	// creation order
	for i := 0; i < len(comments); i++ {
		for j := i + 1; j < len(comments); j++ {
			if s.commentSeq[comments[j].ID] < s.commentSeq[comments[i].ID] {
				comments[i], comments[j] = comments[j], comments[i]
			}
		}
	}
	return comments, nil
}

func (s *memStore) DeleteCommentsByPostID(ctx context.Context, postID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.comments {
		if c.Post == postID {
			delete(s.comments, id)
		}
	}
	return nil
}

// --- ConversationRepository ---

func (s *memStore) GetConversationByPairKey(ctx context.Context, pairKey string) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, conv := range s.conversations {
		if conv.PairKey == pairKey {
			c := *conv
			c.Participants = cloneIDs(conv.Participants)
			c.Messages = cloneIDs(conv.Messages)
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *memStore) CreateConversation(ctx context.Context, conv *models.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.conversations {
		if existing.PairKey == conv.PairKey {
			return repositories.ErrDuplicateKey
		}
	}
	conv.ID = primitive.NewObjectID()
	conv.Messages = []primitive.ObjectID{}
	c := *conv
	c.Participants = cloneIDs(conv.Participants)
	s.conversations[conv.ID] = &c
	return nil
}

func (s *memStore) AppendMessage(ctx context.Context, convID, messageID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[convID]
	if !ok {
		return repositories.ErrNotFound
	}
	conv.Messages = addIDUnique(conv.Messages, messageID)
	return nil
}

// --- MessageRepository ---

func (s *memStore) CreateMessage(ctx context.Context, message *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	message.ID = primitive.NewObjectID()
	message.CreatedAt = time.Now()
	m := *message
	s.messages[message.ID] = &m
	return nil
}

func (s *memStore) GetMessagesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ordered := make([]models.Message, 0, len(ids))
	for _, id := range ids {
		if m, ok := s.messages[id]; ok {
			ordered = append(ordered, *m)
		}
	}
	return ordered, nil
}

// --- NotificationRepository ---

func (s *memStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.ID = primitive.NewObjectID()
	n.CreatedAt = time.Now()
	c := *n
	s.notifications = append(s.notifications, &c)
	return nil
}

func (s *memStore) GetNotificationsByRecipient(ctx context.Context, recipientID primitive.ObjectID, limit int64) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Notification
	for i := len(s.notifications) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if s.notifications[i].RecipientID == recipientID {
			out = append(out, *s.notifications[i])
		}
	}
	return out, nil
}

func (s *memStore) GetUnreadCount(ctx context.Context, recipientID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, n := range s.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *memStore) MarkAllRead(ctx context.Context, recipientID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifications {
		if n.RecipientID == recipientID {
			n.IsRead = true
		}
	}
	return nil
}
