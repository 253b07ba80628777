package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/plumeria-dev/snapfeed/backend/internal/models"
	"github.com/plumeria-dev/snapfeed/backend/internal/repositories"
	"gorm.io/gorm"
)

// LikeHandler handles the like toggle and like-status checks
type LikeHandler struct {
	likeRepository repositories.LikeRepository
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, postRepo repositories.PostRepository, userRepo repositories.UserRepository) *LikeHandler {
	return &LikeHandler{
		likeRepository: likeRepo,
		postRepository: postRepo,
		userRepository: userRepo,
	}
}

// RegisterLikeRoutes registers like routes
func (h *LikeHandler) RegisterLikeRoutes(protected *echo.Group) {
	protected.POST("/likes", h.ToggleLike)
	protected.GET("/likes", h.GetLikeStatus)
}

// ToggleLike flips the like state for (viewer, post): the server decides
// add-vs-remove by row presence, so POSTing twice nets out to zero.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	user, ok, err := requireUser(c, h.userRepository)
	if !ok {
		return err
	}

	var req models.ToggleLikeRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request payload")
	}
	if req.PostID == 0 {
		return jsonError(c, http.StatusBadRequest, "post_id is required")
	}

	if _, err := h.postRepository.GetPostByID(c.Request().Context(), req.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, http.StatusNotFound, "Post not found")
		}
		return jsonErrorDetails(c, http.StatusInternalServerError, "Failed to fetch post", err)
	}

	liked, err := h.likeRepository.HasUserLikedPost(user.ID, req.PostID)
	if err != nil {
		return jsonErrorDetails(c, http.StatusInternalServerError, "Failed to check like", err)
	}

	if liked {
		if err := h.likeRepository.DeleteLike(user.ID, req.PostID); err != nil {
			return jsonErrorDetails(c, http.StatusInternalServerError, "Failed to unlike", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "is_liked": false, "message": "Unlike successful"})
	}

	like := &models.Like{UserID: user.ID, PostID: req.PostID}
	if err := h.likeRepository.CreateLike(like); err != nil {
		// A concurrent toggle won the insert; the row exists, which is the
		// state this request wanted.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.JSON(http.StatusOK, echo.Map{"success": true, "is_liked": true, "message": "Like successful"})
		}
		return jsonErrorDetails(c, http.StatusInternalServerError, "Failed to like", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "is_liked": true, "message": "Like successful"})
}

// GetLikeStatus reports whether the viewer has liked the post
func (h *LikeHandler) GetLikeStatus(c echo.Context) error {
	user, ok, err := requireUser(c, h.userRepository)
	if !ok {
		return err
	}

	postID, err := strconv.ParseUint(c.QueryParam("post_id"), 10, 32)
	if err != nil || postID == 0 {
		return jsonError(c, http.StatusBadRequest, "post_id is required")
	}

	liked, err := h.likeRepository.HasUserLikedPost(user.ID, uint(postID))
	if err != nil {
		return jsonErrorDetails(c, http.StatusInternalServerError, "Failed to check like", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "is_liked": liked})
}
