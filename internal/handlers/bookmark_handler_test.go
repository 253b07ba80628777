package handlers_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/plumeria-dev/snapfeed/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *HandlersTestSuite) TestAddBookmarkIdempotent() {
	author, _ := s.createUser("bookmark-author")
	reader, token := s.createUser("bookmark-reader")
	post := s.createPost(author, "save-me", time.Minute)

	rec := s.request(http.MethodPost, "/api/bookmarks", token, map[string]any{"post_id": post.ID})
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Equal(s.T(), "Bookmark successful", s.decode(rec)["message"])

	rec = s.request(http.MethodPost, "/api/bookmarks", token, map[string]any{"post_id": post.ID})
	require.Equal(s.T(), http.StatusOK, rec.Code)
	body := s.decode(rec)
	assert.Equal(s.T(), true, body["is_bookmarked"])
	assert.Equal(s.T(), "Already bookmarked", body["message"])

	var count int64
	s.db.Model(&models.Bookmark{}).
		Where("user_id = ? AND post_id = ?", reader.ID, post.ID).
		Count(&count)
	assert.EqualValues(s.T(), 1, count)
}

func (s *HandlersTestSuite) TestAddBookmarkPostNotFound() {
	_, token := s.createUser("bookmark-nopost")

	rec := s.request(http.MethodPost, "/api/bookmarks", token, map[string]any{"post_id": 999999})
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
}

func (s *HandlersTestSuite) TestBookmarkStateQuery() {
	author, _ := s.createUser("bookmark-state-author")
	_, token := s.createUser("bookmark-state-reader")
	post := s.createPost(author, "state-query", time.Minute)

	rec := s.request(http.MethodGet, fmt.Sprintf("/api/bookmarks?postId=%d", post.ID), token, nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Equal(s.T(), false, s.decode(rec)["is_bookmarked"])

	s.request(http.MethodPost, "/api/bookmarks", token, map[string]any{"post_id": post.ID})

	rec = s.request(http.MethodGet, fmt.Sprintf("/api/bookmarks?postId=%d", post.ID), token, nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Equal(s.T(), true, s.decode(rec)["is_bookmarked"])
}

func (s *HandlersTestSuite) TestListBookmarksEmbedsPost() {
	author, _ := s.createUser("bookmark-list-author")
	_, token := s.createUser("bookmark-list-reader")
	older := s.createPost(author, "bm-older", time.Hour)
	newer := s.createPost(author, "bm-newer", time.Minute)

	for _, p := range []*models.Post{older, newer} {
		rec := s.request(http.MethodPost, "/api/bookmarks", token, map[string]any{"post_id": p.ID})
		require.Equal(s.T(), http.StatusOK, rec.Code)
	}

	rec := s.request(http.MethodGet, "/api/bookmarks", token, nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)

	bookmarks := s.decode(rec)["data"].([]any)
	require.Len(s.T(), bookmarks, 2)

	// Each entry embeds its post, with the post's author resolved.
	first := bookmarks[0].(map[string]any)["post"].(map[string]any)
	assert.Equal(s.T(), author.Name, first["user"].(map[string]any)["name"])
}

func (s *HandlersTestSuite) TestRemoveBookmarkBodyAndQuery() {
	author, _ := s.createUser("bookmark-remove-author")
	reader, token := s.createUser("bookmark-remover")
	post := s.createPost(author, "unsave-me", time.Minute)

	s.request(http.MethodPost, "/api/bookmarks", token, map[string]any{"post_id": post.ID})

	// Query param form.
	rec := s.request(http.MethodDelete, fmt.Sprintf("/api/bookmarks?postId=%d", post.ID), token, nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Equal(s.T(), false, s.decode(rec)["is_bookmarked"])

	var count int64
	s.db.Model(&models.Bookmark{}).
		Where("user_id = ? AND post_id = ?", reader.ID, post.ID).
		Count(&count)
	assert.Zero(s.T(), count)

	// Removing again, body form this time, still succeeds.
	rec = s.request(http.MethodDelete, "/api/bookmarks", token, map[string]any{"post_id": post.ID})
	assert.Equal(s.T(), http.StatusOK, rec.Code)
}

func (s *HandlersTestSuite) TestRemoveBookmarkRequiresPostID() {
	_, token := s.createUser("bookmark-remove-missing")

	rec := s.request(http.MethodDelete, "/api/bookmarks", token, nil)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}
