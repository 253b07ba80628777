package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/plumeria-dev/snapfeed/backend/internal/middleware"
	"github.com/plumeria-dev/snapfeed/backend/internal/models"
	"github.com/plumeria-dev/snapfeed/backend/internal/repositories"
	"gorm.io/gorm"
)

// Pagination is the page envelope returned by every list endpoint.
// Pages are 1-indexed; HasMore compares the total against the last offset
// served, not against the size of the returned page.
type Pagination struct {
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
	HasMore  bool  `json:"hasMore"`
}

// NewPagination builds the envelope for a page
func NewPagination(page, pageSize int, total int64) Pagination {
	return Pagination{
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		HasMore:  total > int64(page*pageSize),
	}
}

// maxPageSize caps how many rows one list request may ask for
const maxPageSize = 50

// parsePageParams reads page/pageSize query params. Missing or invalid
// values fall back to the endpoint default; oversized values clamp to the
// cap rather than resetting.
func parsePageParams(c echo.Context, defaultSize int) (page, pageSize int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.QueryParam("pageSize"))
	if pageSize < 1 {
		pageSize = defaultSize
	} else if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// jsonError writes the error body shared by every endpoint
func jsonError(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"error": message})
}

// jsonErrorDetails writes an error body with the underlying cause attached
func jsonErrorDetails(c echo.Context, status int, message string, err error) error {
	body := echo.Map{"error": message}
	if err != nil {
		body["details"] = err.Error()
	}
	return c.JSON(status, body)
}

// currentUser resolves the authenticated principal to its internal user row.
// Returns nil without replying when the request is anonymous or the user
// was never synced; callers needing a user respond 401/404 themselves.
func currentUser(c echo.Context, users repositories.UserRepository) *models.User {
	id := middleware.GetIdentity(c)
	if id == nil {
		return nil
	}
	user, err := users.GetUserByAuthUID(id.UID)
	if err != nil {
		return nil
	}
	return user
}

// requireUser resolves the principal or writes the 401/404 response.
// The bool reports whether the caller may proceed.
func requireUser(c echo.Context, users repositories.UserRepository) (*models.User, bool, error) {
	id := middleware.GetIdentity(c)
	if id == nil {
		return nil, false, jsonError(c, http.StatusUnauthorized, "Unauthorized")
	}
	user, err := users.GetUserByAuthUID(id.UID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, jsonError(c, http.StatusNotFound, "User not found")
		}
		return nil, false, jsonErrorDetails(c, http.StatusInternalServerError, "Internal server error", err)
	}
	return user, true, nil
}
