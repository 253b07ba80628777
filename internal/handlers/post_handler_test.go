package handlers_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/plumeria-dev/snapfeed/backend/internal/identity"
	"github.com/plumeria-dev/snapfeed/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *HandlersTestSuite) TestCreatePostRequiresAuth() {
	rec := s.request(http.MethodPost, "/api/posts", "", map[string]string{
		"image_url": "https://cdn.example.com/a.jpg",
	})
	assert.Equal(s.T(), http.StatusUnauthorized, rec.Code)
}

func (s *HandlersTestSuite) TestCreatePostRequiresMedia() {
	_, token := s.createUser("poster")

	rec := s.request(http.MethodPost, "/api/posts", token, map[string]string{
		"caption": "no media here",
	})
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
	assert.Equal(s.T(), "image_url or video_url is required", s.decode(rec)["error"])
}

func (s *HandlersTestSuite) TestCreatePostDefaultsMediaType() {
	_, token := s.createUser("poster")

	rec := s.request(http.MethodPost, "/api/posts", token, map[string]string{
		"video_url": "https://cdn.example.com/clip.mp4",
		"caption":   "a clip",
	})
	require.Equal(s.T(), http.StatusOK, rec.Code)

	body := s.decode(rec)
	data := body["data"].(map[string]any)
	assert.Equal(s.T(), models.MediaTypeVideo, data["media_type"])
	assert.EqualValues(s.T(), 0, data["likes_count"])
	assert.EqualValues(s.T(), 0, data["comments_count"])
}

func (s *HandlersTestSuite) TestCreatePostUnsyncedUser() {
	token, err := s.verifier.SignToken(&identity.Identity{UID: "ghost-never-synced"})
	require.NoError(s.T(), err)

	rec := s.request(http.MethodPost, "/api/posts", token, map[string]string{
		"image_url": "https://cdn.example.com/a.jpg",
	})
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
}

func (s *HandlersTestSuite) TestGetPostNotFound() {
	rec := s.request(http.MethodGet, "/api/posts/999999", "", nil)
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
}

func (s *HandlersTestSuite) TestGetPostViewerDependentLikeState() {
	author, _ := s.createUser("author-a")
	viewer, viewerToken := s.createUser("viewer-b")
	post := s.createPost(author, "liked-once", time.Minute)

	require.NoError(s.T(), s.db.Create(&models.Like{UserID: viewer.ID, PostID: post.ID}).Error)

	// Liking viewer sees is_liked true and the count.
	rec := s.request(http.MethodGet, fmt.Sprintf("/api/posts/%d", post.ID), viewerToken, nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	data := s.decode(rec)["data"].(map[string]any)
	assert.EqualValues(s.T(), 1, data["likes_count"])
	assert.Equal(s.T(), true, data["is_liked"])

	// Anonymous viewer sees the same count but is_liked false.
	rec = s.request(http.MethodGet, fmt.Sprintf("/api/posts/%d", post.ID), "", nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	data = s.decode(rec)["data"].(map[string]any)
	assert.EqualValues(s.T(), 1, data["likes_count"])
	assert.Equal(s.T(), false, data["is_liked"])
}

func (s *HandlersTestSuite) TestListPostsPagination() {
	author, _ := s.createUser("pager-author")
	for i := 0; i < 12; i++ {
		s.createPost(author, fmt.Sprintf("page-post-%d", i), time.Duration(i)*time.Minute)
	}

	target := fmt.Sprintf("/api/posts?userId=%d&page=1&pageSize=10", author.ID)
	rec := s.request(http.MethodGet, target, "", nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)

	body := s.decode(rec)
	assert.Len(s.T(), body["data"], 10)
	pagination := body["pagination"].(map[string]any)
	assert.EqualValues(s.T(), 12, pagination["total"])
	assert.Equal(s.T(), true, pagination["hasMore"])

	target = fmt.Sprintf("/api/posts?userId=%d&page=2&pageSize=10", author.ID)
	rec = s.request(http.MethodGet, target, "", nil)
	body = s.decode(rec)
	assert.Len(s.T(), body["data"], 2)
	assert.Equal(s.T(), false, body["pagination"].(map[string]any)["hasMore"])
}

func (s *HandlersTestSuite) TestListPostsNewestFirst() {
	author, _ := s.createUser("order-author")
	s.createPost(author, "older", time.Hour)
	s.createPost(author, "newer", time.Minute)

	target := fmt.Sprintf("/api/posts?userId=%d", author.ID)
	rec := s.request(http.MethodGet, target, "", nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)

	posts := s.decode(rec)["data"].([]any)
	require.Len(s.T(), posts, 2)
	assert.Equal(s.T(), "newer", posts[0].(map[string]any)["caption"])
	assert.Equal(s.T(), "older", posts[1].(map[string]any)["caption"])
}

func (s *HandlersTestSuite) TestListPostsUnknownAuthorIsEmpty() {
	rec := s.request(http.MethodGet, "/api/posts?userId=ext-nobody", "", nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)

	body := s.decode(rec)
	assert.Empty(s.T(), body["data"])
	assert.EqualValues(s.T(), 0, body["pagination"].(map[string]any)["total"])
}

func (s *HandlersTestSuite) TestDeletePostNotOwner() {
	author, _ := s.createUser("delete-owner")
	_, strangerToken := s.createUser("delete-stranger")
	post := s.createPost(author, "keep-me", time.Minute)

	rec := s.request(http.MethodDelete, fmt.Sprintf("/api/posts/%d", post.ID), strangerToken, nil)
	assert.Equal(s.T(), http.StatusForbidden, rec.Code)

	// No mutation happened.
	var count int64
	s.db.Model(&models.Post{}).Where("id = ?", post.ID).Count(&count)
	assert.EqualValues(s.T(), 1, count)
}

func (s *HandlersTestSuite) TestDeletePostRemovesDependents() {
	author, token := s.createUser("cascade-owner")
	commenter, _ := s.createUser("cascade-commenter")
	post := s.createPost(author, "cascade", time.Minute)

	require.NoError(s.T(), s.db.Create(&models.Like{UserID: commenter.ID, PostID: post.ID}).Error)
	require.NoError(s.T(), s.db.Create(&models.Comment{UserID: commenter.ID, PostID: post.ID, Content: "bye"}).Error)
	require.NoError(s.T(), s.db.Create(&models.Bookmark{UserID: commenter.ID, PostID: post.ID}).Error)

	rec := s.request(http.MethodDelete, fmt.Sprintf("/api/posts/%d", post.ID), token, nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)

	var likes, comments, bookmarks int64
	s.db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likes)
	s.db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&comments)
	s.db.Model(&models.Bookmark{}).Where("post_id = ?", post.ID).Count(&bookmarks)
	assert.Zero(s.T(), likes)
	assert.Zero(s.T(), comments)
	assert.Zero(s.T(), bookmarks)
}
