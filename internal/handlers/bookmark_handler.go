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

// BookmarkHandler handles bookmark add/remove and listings
type BookmarkHandler struct {
	bookmarkRepository repositories.BookmarkRepository
	postRepository     repositories.PostRepository
	userRepository     repositories.UserRepository
}

// NewBookmarkHandler creates a new BookmarkHandler
func NewBookmarkHandler(bookmarkRepo repositories.BookmarkRepository, postRepo repositories.PostRepository, userRepo repositories.UserRepository) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarkRepository: bookmarkRepo,
		postRepository:     postRepo,
		userRepository:     userRepo,
	}
}

// RegisterBookmarkRoutes registers bookmark routes
func (h *BookmarkHandler) RegisterBookmarkRoutes(protected *echo.Group) {
	protected.GET("/bookmarks", h.GetBookmarks)
	protected.POST("/bookmarks", h.AddBookmark)
	protected.DELETE("/bookmarks", h.RemoveBookmark)
}

// GetBookmarks returns either the bookmark state for one post (postId query
// param) or the viewer's full bookmark list
func (h *BookmarkHandler) GetBookmarks(c echo.Context) error {
	user, ok, err := requireUser(c, h.userRepository)
	if !ok {
		return err
	}

	if param := c.QueryParam("postId"); param != "" {
		postID, err := strconv.ParseUint(param, 10, 32)
		if err != nil {
			return jsonError(c, http.StatusBadRequest, "Invalid postId")
		}
		bookmarked, err := h.bookmarkRepository.IsPostBookmarked(user.ID, uint(postID))
		if err != nil {
			return jsonErrorDetails(c, http.StatusInternalServerError, "Failed to check bookmark", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "is_bookmarked": bookmarked})
	}

	bookmarks, err := h.bookmarkRepository.GetBookmarksByUser(user.ID)
	if err != nil {
		if repositories.IsMissingTable(err) {
			return c.JSON(http.StatusOK, echo.Map{"success": true, "data": []models.Bookmark{}})
		}
		return jsonErrorDetails(c, http.StatusInternalServerError, "Failed to fetch bookmarks", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": bookmarks})
}

// AddBookmark bookmarks a post. A duplicate add hits the unique constraint
// and is reported as success, so the operation is idempotent without a
// read-then-write race.
func (h *BookmarkHandler) AddBookmark(c echo.Context) error {
	user, ok, err := requireUser(c, h.userRepository)
	if !ok {
		return err
	}

	var req models.BookmarkRequest
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

	bookmark := &models.Bookmark{UserID: user.ID, PostID: req.PostID}
	if err := h.bookmarkRepository.CreateBookmark(bookmark); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.JSON(http.StatusOK, echo.Map{"success": true, "is_bookmarked": true, "message": "Already bookmarked"})
		}
		return jsonErrorDetails(c, http.StatusInternalServerError, "Failed to bookmark", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "is_bookmarked": true, "message": "Bookmark successful"})
}

// RemoveBookmark removes a bookmark; removing an absent one still succeeds
func (h *BookmarkHandler) RemoveBookmark(c echo.Context) error {
	user, ok, err := requireUser(c, h.userRepository)
	if !ok {
		return err
	}

	var req models.BookmarkRequest
	if err := c.Bind(&req); err == nil && req.PostID != 0 {
		// Body form
	} else if param := c.QueryParam("postId"); param != "" {
		postID, err := strconv.ParseUint(param, 10, 32)
		if err != nil {
			return jsonError(c, http.StatusBadRequest, "Invalid postId")
		}
		req.PostID = uint(postID)
	} else {
		return jsonError(c, http.StatusBadRequest, "post_id is required")
	}

	if err := h.bookmarkRepository.DeleteBookmark(user.ID, req.PostID); err != nil {
		return jsonErrorDetails(c, http.StatusInternalServerError, "Failed to remove bookmark", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "is_bookmarked": false, "message": "Bookmark removed"})
}
