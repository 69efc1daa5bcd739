package handlers

import (
	"io"
	"net/http"

	"github.com/NafisTahmid/instagram-clone-vercel/internal/models"
	"github.com/NafisTahmid/instagram-clone-vercel/internal/repositories"
	"github.com/NafisTahmid/instagram-clone-vercel/internal/services"
	"github.com/NafisTahmid/instagram-clone-vercel/pkg/media"
	"github.com/labstack/echo/v4"
)

// UserHandler handles profile and follow-graph HTTP requests
type UserHandler struct {
	userRepository  repositories.UserRepository
	relationService *services.RelationService
	feedService     *services.FeedService
	uploader        media.Uploader
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, relationService *services.RelationService, feedService *services.FeedService, uploader media.Uploader) *UserHandler {
	return &UserHandler{
		userRepository:  userRepo,
		relationService: relationService,
		feedService:     feedService,
		uploader:        uploader,
	}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/:id/profile", h.GetProfile)
	g.GET("/users/suggested", h.GetSuggestedUsers)
	g.POST("/users/:id/follow", h.FollowOrUnfollow)
	g.POST("/users/profile/edit", h.EditProfile)
}

// GetProfile returns the profile view of a user with resolved posts and
// bookmarks
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	profile, err := h.feedService.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": profile})
}

// GetSuggestedUsers returns every account except the requester
func (h *UserHandler) GetSuggestedUsers(c echo.Context) error {
	currentUserID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	suggested, err := h.feedService.GetSuggestedUsers(c.Request().Context(), currentUserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "users": suggested})
}

// FollowOrUnfollow toggles the follow edge towards the target user
func (h *UserHandler) FollowOrUnfollow(c echo.Context) error {
	currentUserID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	result, err := h.relationService.FollowOrUnfollow(c.Request().Context(), currentUserID, targetID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": result})
}

// EditProfile updates bio, gender and optionally the profile picture
func (h *UserHandler) EditProfile(c echo.Context) error {
	currentUserID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.EditProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	patch := models.User{Bio: req.Bio, Gender: req.Gender}

	if file, err := c.FormFile("profile_picture"); err == nil {
		src, err := file.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Could not read uploaded file")
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Could not read uploaded file")
		}
		normalized, err := media.Normalize(data)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Uploaded file must be an image")
		}
		url, err := h.uploader.Upload(ctx, normalized, "image/jpeg")
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store profile picture")
		}
		patch.ProfilePicture = url
	}

	if err := h.userRepository.UpdateProfile(ctx, currentUserID, patch); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	profile, err := h.feedService.GetProfile(ctx, currentUserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Profile updated successfully", "user": profile})
}
