package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/plumeria-dev/snapfeed/backend/internal/models"
	"github.com/plumeria-dev/snapfeed/backend/internal/repositories"
	"gorm.io/gorm"
)

// FollowHandler handles follow/unfollow and follower listings
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
	}
}

// RegisterFollowRoutes registers follow routes
func (h *FollowHandler) RegisterFollowRoutes(public, protected *echo.Group) {
	protected.POST("/follows", h.Follow)
	protected.DELETE("/follows", h.Unfollow)
	protected.GET("/follows", h.GetFollowStatus)
	public.GET("/follows/list", h.ListFollows)
}

// Follow adds a follow edge toward the user named by the external id in the
// body. Adding an existing edge is reported as success; the unique
// constraint, not a pre-check, is what makes the add idempotent.
func (h *FollowHandler) Follow(c echo.Context) error {
	follower, ok, err := requireUser(c, h.userRepository)
	if !ok {
		return err
	}

	target, errResp := h.resolveTarget(c)
	if target == nil {
		return errResp
	}

	if follower.ID == target.ID {
		return jsonError(c, http.StatusBadRequest, "Cannot follow yourself")
	}

	follow := &models.Follow{FollowerID: follower.ID, FollowingID: target.ID}
	if err := h.followRepository.CreateFollow(follow); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.JSON(http.StatusOK, echo.Map{"success": true, "is_following": true, "message": "Already following"})
		}
		return jsonErrorDetails(c, http.StatusInternalServerError, "Failed to follow", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "is_following": true, "message": "Follow successful"})
}

// Unfollow removes the follow edge; removing an absent edge still succeeds
func (h *FollowHandler) Unfollow(c echo.Context) error {
	follower, ok, err := requireUser(c, h.userRepository)
	if !ok {
		return err
	}

	target, errResp := h.resolveTarget(c)
	if target == nil {
		return errResp
	}

	if err := h.followRepository.DeleteFollow(follower.ID, target.ID); err != nil {
		return jsonErrorDetails(c, http.StatusInternalServerError, "Failed to unfollow", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "is_following": false, "message": "Unfollow successful"})
}

// GetFollowStatus reports whether the viewer follows the user named by the
// following_id query param (external id)
func (h *FollowHandler) GetFollowStatus(c echo.Context) error {
	follower, ok, err := requireUser(c, h.userRepository)
	if !ok {
		return err
	}

	followingID := c.QueryParam("following_id")
	if followingID == "" {
		return jsonError(c, http.StatusBadRequest, "following_id is required")
	}

	target, err := h.userRepository.GetUserByAuthUID(followingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, http.StatusNotFound, "Following user not found")
		}
		return jsonErrorDetails(c, http.StatusInternalServerError, "Failed to fetch user", err)
	}

	following, err := h.followRepository.IsFollowing(follower.ID, target.ID)
	if err != nil {
		return jsonErrorDetails(c, http.StatusInternalServerError, "Failed to check follow", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "is_following": following})
}

// ListFollows returns the followers of, or users followed by, the user in
// the userId query param. The two directions are two distinct repository
// queries picked here, not a column swap inside one.
func (h *FollowHandler) ListFollows(c echo.Context) error {
	userParam := c.QueryParam("userId")
	if userParam == "" {
		return jsonError(c, http.StatusBadRequest, "userId is required")
	}
	listType := c.QueryParam("type")
	if listType != "followers" && listType != "following" {
		return jsonError(c, http.StatusBadRequest, "type must be 'followers' or 'following'")
	}

	user, err := h.userRepository.GetUserByAuthUID(userParam)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, http.StatusNotFound, "User not found")
		}
		return jsonErrorDetails(c, http.StatusInternalServerError, "Failed to fetch user", err)
	}

	var users []models.User
	if listType == "followers" {
		users, err = h.followRepository.GetFollowers(user.ID)
	} else {
		users, err = h.followRepository.GetFollowing(user.ID)
	}
	if err != nil {
		return jsonErrorDetails(c, http.StatusInternalServerError, "Failed to fetch follow list", err)
	}

	compact := make([]models.UserCompact, len(users))
	for i := range users {
		compact[i] = users[i].ToCompact()
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": compact, "type": listType})
}

// resolveTarget reads following_id from the body and resolves it to a user.
// Returns nil plus the written error response on failure.
func (h *FollowHandler) resolveTarget(c echo.Context) (*models.User, error) {
	var req models.FollowRequest
	if err := c.Bind(&req); err != nil {
		return nil, jsonError(c, http.StatusBadRequest, "Invalid request payload")
	}
	if req.FollowingID == "" {
		return nil, jsonError(c, http.StatusBadRequest, "following_id is required")
	}

	target, err := h.userRepository.GetUserByAuthUID(req.FollowingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, jsonError(c, http.StatusNotFound, "Following user not found")
		}
		return nil, jsonErrorDetails(c, http.StatusInternalServerError, "Failed to fetch user", err)
	}
	return target, nil
}
