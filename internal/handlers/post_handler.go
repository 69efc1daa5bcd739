package handlers

import (
	"io"
	"net/http"

	"github.com/NafisTahmid/instagram-clone-vercel/internal/models"
	"github.com/NafisTahmid/instagram-clone-vercel/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles post, comment and engagement HTTP requests
type PostHandler struct {
	postService       *services.PostService
	engagementService *services.EngagementService
	feedService       *services.FeedService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *services.PostService, engagementService *services.EngagementService, feedService *services.FeedService) *PostHandler {
	return &PostHandler{
		postService:       postService,
		engagementService: engagementService,
		feedService:       feedService,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetFeed)
	g.GET("/posts/me", h.GetMyPosts)
	g.DELETE("/posts/:id", h.DeletePost)
	g.POST("/posts/:id/like", h.LikePost)
	g.POST("/posts/:id/dislike", h.DislikePost)
	g.POST("/posts/:id/bookmark", h.BookmarkPost)
	g.POST("/posts/:id/comments", h.AddComment)
	g.GET("/posts/:id/comments", h.GetComments)
}

// CreatePost creates a post from a multipart caption + image upload
func (h *PostHandler) CreatePost(c echo.Context) error {
	currentUserID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Image is required")
	}
	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Could not read uploaded file")
	}
	data, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Could not read uploaded file")
	}

	post, err := h.postService.CreatePost(c.Request().Context(), currentUserID, req.Caption, data)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "message": "New post created", "post": post})
}

// GetFeed returns all posts newest-first with authors and comments
func (h *PostHandler) GetFeed(c echo.Context) error {
	posts, err := h.feedService.GetFeed(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "posts": posts})
}

// GetMyPosts returns the authenticated user's posts
func (h *PostHandler) GetMyPosts(c echo.Context) error {
	currentUserID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	posts, err := h.feedService.GetUserPosts(c.Request().Context(), currentUserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "posts": posts})
}

// DeletePost deletes the post and cascades to its comments
func (h *PostHandler) DeletePost(c echo.Context) error {
	currentUserID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.postService.DeletePost(c.Request().Context(), currentUserID, postID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Post deleted successfully"})
}

// LikePost adds the user to the post's like set
func (h *PostHandler) LikePost(c echo.Context) error {
	currentUserID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.engagementService.LikePost(c.Request().Context(), currentUserID, postID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Post liked"})
}

// DislikePost removes the user from the post's like set
func (h *PostHandler) DislikePost(c echo.Context) error {
	currentUserID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.engagementService.DislikePost(c.Request().Context(), currentUserID, postID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Post disliked"})
}

// BookmarkPost toggles the post in the user's bookmark set
func (h *PostHandler) BookmarkPost(c echo.Context) error {
	currentUserID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	result, err := h.engagementService.BookmarkPost(c.Request().Context(), currentUserID, postID)
	if err != nil {
		return httpError(err)
	}
	message := "Post added to bookmarks"
	if result.Action == services.BookmarkUnsaved {
		message = "Post removed from bookmarks"
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "type": result.Action, "message": message})
}

// AddComment attaches a comment to the post
func (h *PostHandler) AddComment(c echo.Context) error {
	currentUserID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.AddCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.postService.AddComment(c.Request().Context(), currentUserID, postID, req.Text)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "message": "Comment added successfully", "comment": comment})
}

// GetComments returns the post's comments in creation order
func (h *PostHandler) GetComments(c echo.Context) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	comments, err := h.postService.GetCommentsOfPost(c.Request().Context(), postID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "comments": comments})
}
