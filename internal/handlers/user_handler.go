package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/plumeria-dev/snapfeed/backend/internal/middleware"
	"github.com/plumeria-dev/snapfeed/backend/internal/models"
	"github.com/plumeria-dev/snapfeed/backend/internal/repositories"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const searchResultLimit = 20

// UserHandler handles user sync, profiles and search
type UserHandler struct {
	userRepository   repositories.UserRepository
	postRepository   repositories.PostRepository
	followRepository repositories.FollowRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, postRepo repositories.PostRepository, followRepo repositories.FollowRepository) *UserHandler {
	return &UserHandler{
		userRepository:   userRepo,
		postRepository:   postRepo,
		followRepository: followRepo,
	}
}

// RegisterUserRoutes registers user routes
func (h *UserHandler) RegisterUserRoutes(public, protected *echo.Group) {
	public.GET("/users/search", h.SearchUsers)
	public.GET("/users/:id", h.GetUserProfile)
	protected.POST("/sync-user", h.SyncUser)
	protected.PUT("/users/profile", h.UpdateProfile)
}

// SyncUser upserts the internal user row for the verified principal. The
// upsert is keyed on the external id, so repeated calls are harmless and
// clients need no "already synced" guard.
func (h *UserHandler) SyncUser(c echo.Context) error {
	id := middleware.GetIdentity(c)
	if id == nil {
		return jsonError(c, http.StatusUnauthorized, "Unauthorized")
	}

	user := &models.User{
		AuthUID:   id.UID,
		Name:      id.DisplayName(),
		Username:  id.Username,
		AvatarURL: id.AvatarURL,
	}
	if err := h.userRepository.UpsertByAuthUID(user); err != nil {
		return jsonErrorDetails(c, http.StatusInternalServerError, "Failed to sync user", err)
	}

	// Re-read so the response carries the stored row, not the input.
	synced, err := h.userRepository.GetUserByAuthUID(id.UID)
	if err != nil {
		return jsonErrorDetails(c, http.StatusInternalServerError, "Failed to sync user", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": synced})
}

// GetUserProfile returns a user by external id with derived stats and the
// viewer-relative follow flag. The three counts run concurrently.
func (h *UserHandler) GetUserProfile(c echo.Context) error {
	user, err := h.userRepository.GetUserByAuthUID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, http.StatusNotFound, "User not found")
		}
		return jsonErrorDetails(c, http.StatusInternalServerError, "Failed to fetch user", err)
	}

	profile := models.UserProfile{User: *user}

	g, _ := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		count, err := h.postRepository.CountPostsByUser(user.ID)
		profile.Stats.Posts = count
		return err
	})
	g.Go(func() error {
		count, err := h.followRepository.GetFollowersCount(user.ID)
		profile.Stats.Followers = count
		return err
	})
	g.Go(func() error {
		count, err := h.followRepository.GetFollowingCount(user.ID)
		profile.Stats.Following = count
		return err
	})
	if err := g.Wait(); err != nil {
		return jsonErrorDetails(c, http.StatusInternalServerError, "Failed to fetch user stats", err)
	}

	if viewer := currentUser(c, h.userRepository); viewer != nil {
		profile.IsOwnProfile = viewer.ID == user.ID
		if !profile.IsOwnProfile {
			following, err := h.followRepository.IsFollowing(viewer.ID, user.ID)
			if err != nil {
				return jsonErrorDetails(c, http.StatusInternalServerError, "Failed to fetch user stats", err)
			}
			profile.IsFollowing = following
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": profile})
}

// SearchUsers finds users whose name or username contains the query,
// case-insensitively, capped at 20 rows
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("query")
	if query == "" {
		query = c.QueryParam("q")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return jsonError(c, http.StatusBadRequest, "Search query is required")
	}

	users, err := h.userRepository.SearchUsers(query, searchResultLimit)
	if err != nil {
		return jsonErrorDetails(c, http.StatusInternalServerError, "Search failed", err)
	}

	compact := make([]models.UserCompact, len(users))
	for i := range users {
		compact[i] = users[i].ToCompact()
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": compact})
}

// UpdateProfile edits the authenticated user's display fields
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user, ok, err := requireUser(c, h.userRepository)
	if !ok {
		return err
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return jsonErrorDetails(c, http.StatusBadRequest, "Validation failed", err)
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Username != "" {
		user.Username = req.Username
	}
	if req.AvatarURL != "" {
		user.AvatarURL = req.AvatarURL
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return jsonErrorDetails(c, http.StatusInternalServerError, "Failed to update profile", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": user})
}
