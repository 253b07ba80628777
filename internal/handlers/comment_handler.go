package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/plumeria-dev/snapfeed/backend/internal/models"
	"github.com/plumeria-dev/snapfeed/backend/internal/repositories"
	"gorm.io/gorm"
)

const (
	defaultCommentPageSize = 20
	maxCommentLength       = 1000
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
	userRepository    repositories.UserRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, userRepo repositories.UserRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
		userRepository:    userRepo,
	}
}

// RegisterCommentRoutes registers comment routes
func (h *CommentHandler) RegisterCommentRoutes(public, protected *echo.Group) {
	public.GET("/comments", h.ListComments)
	protected.POST("/comments", h.CreateComment)
	protected.DELETE("/comments/:id", h.DeleteComment)
}

// ListComments returns a page of comments for a post, newest first
func (h *CommentHandler) ListComments(c echo.Context) error {
	postID, err := strconv.ParseUint(c.QueryParam("post_id"), 10, 32)
	if err != nil || postID == 0 {
		return jsonError(c, http.StatusBadRequest, "post_id is required")
	}

	page, pageSize := parsePageParams(c, defaultCommentPageSize)
	offset := (page - 1) * pageSize

	comments, total, err := h.commentRepository.ListCommentsByPost(uint(postID), offset, pageSize)
	if err != nil {
		if repositories.IsMissingTable(err) {
			return c.JSON(http.StatusOK, echo.Map{
				"success":    true,
				"data":       []models.Comment{},
				"pagination": NewPagination(page, pageSize, 0),
			})
		}
		return jsonErrorDetails(c, http.StatusInternalServerError, "Failed to fetch comments", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"data":       comments,
		"pagination": NewPagination(page, pageSize, total),
	})
}

// CreateComment creates a comment on a post. Content is trimmed before the
// emptiness and length checks, so a 1000-character comment wrapped in
// whitespace is still accepted.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	user, ok, err := requireUser(c, h.userRepository)
	if !ok {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request payload")
	}
	if req.PostID == 0 || req.Content == "" {
		return jsonError(c, http.StatusBadRequest, "post_id and content are required")
	}

	content := strings.TrimSpace(req.Content)
	if len([]rune(content)) == 0 {
		return jsonError(c, http.StatusBadRequest, "Content cannot be empty")
	}
	if len([]rune(content)) > maxCommentLength {
		return jsonError(c, http.StatusBadRequest, "Content cannot exceed 1000 characters")
	}

	if _, err := h.postRepository.GetPostByID(c.Request().Context(), req.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, http.StatusNotFound, "Post not found")
		}
		return jsonErrorDetails(c, http.StatusInternalServerError, "Failed to fetch post", err)
	}

	comment := &models.Comment{
		PostID:  req.PostID,
		UserID:  user.ID,
		Content: content,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return jsonErrorDetails(c, http.StatusInternalServerError, "Failed to create comment", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": comment})
}

// DeleteComment deletes a comment authored by the authenticated user
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	user, ok, err := requireUser(c, h.userRepository)
	if !ok {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid comment ID")
	}

	comment, err := h.commentRepository.GetCommentByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, http.StatusNotFound, "Comment not found")
		}
		return jsonErrorDetails(c, http.StatusInternalServerError, "Failed to fetch comment", err)
	}
	if comment.UserID != user.ID {
		return jsonError(c, http.StatusForbidden, "Forbidden")
	}

	if err := h.commentRepository.DeleteComment(comment.ID); err != nil {
		return jsonErrorDetails(c, http.StatusInternalServerError, "Failed to delete comment", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
