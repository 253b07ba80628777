package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/plumeria-dev/snapfeed/backend/internal/models"
	"github.com/plumeria-dev/snapfeed/backend/internal/repositories"
	"github.com/plumeria-dev/snapfeed/backend/internal/stats"
	"gorm.io/gorm"
)

const defaultFeedPageSize = 10

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
	aggregator     *stats.Aggregator
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, aggregator *stats.Aggregator) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		userRepository: userRepo,
		aggregator:     aggregator,
	}
}

// RegisterPostRoutes registers post routes. Reads take optional auth so the
// viewer-dependent flags resolve; writes require it.
func (h *PostHandler) RegisterPostRoutes(public, protected *echo.Group) {
	public.GET("/posts", h.ListPosts)
	public.GET("/posts/:id", h.GetPost)
	protected.POST("/posts", h.CreatePost)
	protected.DELETE("/posts/:id", h.DeletePost)
}

// ListPosts returns a page of posts, newest first, enriched with stats
func (h *PostHandler) ListPosts(c echo.Context) error {
	page, pageSize := parsePageParams(c, defaultFeedPageSize)

	authorID, ok := h.resolveAuthorFilter(c.QueryParam("userId"))
	if !ok {
		// Unknown author: an empty page, not an error.
		return c.JSON(http.StatusOK, echo.Map{
			"success":    true,
			"data":       []models.EnrichedPost{},
			"pagination": NewPagination(page, pageSize, 0),
		})
	}

	offset := (page - 1) * pageSize
	posts, total, err := h.postRepository.ListPosts(c.Request().Context(), offset, pageSize, authorID)
	if err != nil {
		// Pre-migration state degrades to an empty page so the UI can come
		// up before the schema is provisioned.
		if repositories.IsMissingTable(err) {
			return c.JSON(http.StatusOK, echo.Map{
				"success":    true,
				"data":       []models.EnrichedPost{},
				"pagination": NewPagination(page, pageSize, 0),
			})
		}
		return jsonErrorDetails(c, http.StatusInternalServerError, "Failed to fetch posts", err)
	}

	var viewerID uint
	if viewer := currentUser(c, h.userRepository); viewer != nil {
		viewerID = viewer.ID
	}
	enriched := h.aggregator.Enrich(c.Request().Context(), posts, viewerID)

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"data":       enriched,
		"pagination": NewPagination(page, pageSize, total),
	})
}

// GetPost returns a single post enriched with stats
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, http.StatusNotFound, "Post not found")
		}
		return jsonErrorDetails(c, http.StatusInternalServerError, "Failed to fetch post", err)
	}

	var viewerID uint
	if viewer := currentUser(c, h.userRepository); viewer != nil {
		viewerID = viewer.ID
	}
	enriched := h.aggregator.EnrichOne(c.Request().Context(), *post, viewerID)

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": enriched})
}

// CreatePost creates a post for the authenticated user
func (h *PostHandler) CreatePost(c echo.Context) error {
	user, ok, err := requireUser(c, h.userRepository)
	if !ok {
		return err
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return jsonErrorDetails(c, http.StatusBadRequest, "Validation failed", err)
	}
	if req.ImageURL == "" && req.VideoURL == "" {
		return jsonError(c, http.StatusBadRequest, "image_url or video_url is required")
	}

	mediaType := req.MediaType
	if mediaType == "" {
		if req.ImageURL != "" {
			mediaType = models.MediaTypeImage
		} else {
			mediaType = models.MediaTypeVideo
		}
	}

	post := &models.Post{
		UserID:    user.ID,
		ImageURL:  req.ImageURL,
		VideoURL:  req.VideoURL,
		MediaType: mediaType,
		Caption:   req.Caption,
	}
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return jsonErrorDetails(c, http.StatusInternalServerError, "Failed to create post", err)
	}

	// A fresh post has no likes or comments yet; skip the count queries.
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    models.EnrichedPost{Post: *post},
	})
}

// DeletePost deletes a post owned by the authenticated user
func (h *PostHandler) DeletePost(c echo.Context) error {
	user, ok, err := requireUser(c, h.userRepository)
	if !ok {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, http.StatusNotFound, "Post not found")
		}
		return jsonErrorDetails(c, http.StatusInternalServerError, "Failed to fetch post", err)
	}
	if post.UserID != user.ID {
		return jsonError(c, http.StatusForbidden, "Forbidden")
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), post.ID); err != nil {
		return jsonErrorDetails(c, http.StatusInternalServerError, "Failed to delete post", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// resolveAuthorFilter maps the userId query param to an internal user id.
// Accepts either an internal numeric id or an external identity id. The
// bool is false when the param named a user that does not exist.
func (h *PostHandler) resolveAuthorFilter(param string) (uint, bool) {
	if param == "" {
		return 0, true
	}
	if id, err := strconv.ParseUint(param, 10, 32); err == nil {
		return uint(id), true
	}
	if user, err := h.userRepository.GetUserByAuthUID(param); err == nil {
		return user.ID, true
	}
	return 0, false
}
