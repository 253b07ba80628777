package handlers_test

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/plumeria-dev/snapfeed/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *HandlersTestSuite) TestCreateCommentAndList() {
	author, _ := s.createUser("comment-author")
	commenter, token := s.createUser("commenter")
	post := s.createPost(author, "commented", time.Minute)

	rec := s.request(http.MethodPost, "/api/comments", token, map[string]any{
		"post_id": post.ID,
		"content": "  nice shot  ",
	})
	require.Equal(s.T(), http.StatusOK, rec.Code)

	data := s.decode(rec)["data"].(map[string]any)
	assert.Equal(s.T(), "nice shot", data["content"])
	assert.Equal(s.T(), commenter.Name, data["user"].(map[string]any)["name"])

	rec = s.request(http.MethodGet, fmt.Sprintf("/api/comments?post_id=%d", post.ID), "", nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	body := s.decode(rec)
	assert.Len(s.T(), body["data"], 1)
	assert.EqualValues(s.T(), 1, body["pagination"].(map[string]any)["total"])
}

func (s *HandlersTestSuite) TestListCommentsNewestFirst() {
	author, token := s.createUser("comment-order")
	post := s.createPost(author, "ordered-comments", time.Minute)

	for _, content := range []string{"first", "second", "third"} {
		rec := s.request(http.MethodPost, "/api/comments", token, map[string]any{
			"post_id": post.ID,
			"content": content,
		})
		require.Equal(s.T(), http.StatusOK, rec.Code)
	}

	rec := s.request(http.MethodGet, fmt.Sprintf("/api/comments?post_id=%d", post.ID), "", nil)
	comments := s.decode(rec)["data"].([]any)
	require.Len(s.T(), comments, 3)
	assert.Equal(s.T(), "third", comments[0].(map[string]any)["content"])
	assert.Equal(s.T(), "first", comments[2].(map[string]any)["content"])
}

func (s *HandlersTestSuite) TestListCommentsRequiresPostID() {
	rec := s.request(http.MethodGet, "/api/comments", "", nil)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *HandlersTestSuite) TestCreateCommentLengthBounds() {
	author, token := s.createUser("comment-length")
	post := s.createPost(author, "length-bounds", time.Minute)

	// Exactly at the limit is accepted.
	rec := s.request(http.MethodPost, "/api/comments", token, map[string]any{
		"post_id": post.ID,
		"content": strings.Repeat("a", 1000),
	})
	assert.Equal(s.T(), http.StatusOK, rec.Code)

	// One over is rejected.
	rec = s.request(http.MethodPost, "/api/comments", token, map[string]any{
		"post_id": post.ID,
		"content": strings.Repeat("a", 1001),
	})
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
	assert.Equal(s.T(), "Content cannot exceed 1000 characters", s.decode(rec)["error"])

	// The limit counts characters, not bytes.
	rec = s.request(http.MethodPost, "/api/comments", token, map[string]any{
		"post_id": post.ID,
		"content": strings.Repeat("é", 1000),
	})
	assert.Equal(s.T(), http.StatusOK, rec.Code)
}

func (s *HandlersTestSuite) TestCreateCommentWhitespaceOnly() {
	author, token := s.createUser("comment-blank")
	post := s.createPost(author, "blank-comment", time.Minute)

	rec := s.request(http.MethodPost, "/api/comments", token, map[string]any{
		"post_id": post.ID,
		"content": "   \t\n  ",
	})
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
	assert.Equal(s.T(), "Content cannot be empty", s.decode(rec)["error"])
}

func (s *HandlersTestSuite) TestCreateCommentMissingFields() {
	_, token := s.createUser("comment-missing")

	rec := s.request(http.MethodPost, "/api/comments", token, map[string]any{
		"content": "no post",
	})
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
	assert.Equal(s.T(), "post_id and content are required", s.decode(rec)["error"])
}

func (s *HandlersTestSuite) TestCreateCommentPostNotFound() {
	_, token := s.createUser("comment-nopost")

	rec := s.request(http.MethodPost, "/api/comments", token, map[string]any{
		"post_id": 999999,
		"content": "into the void",
	})
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
}

func (s *HandlersTestSuite) TestDeleteCommentNotAuthor() {
	author, _ := s.createUser("comment-owner")
	_, strangerToken := s.createUser("comment-stranger")
	post := s.createPost(author, "protected-comment", time.Minute)

	comment := &models.Comment{PostID: post.ID, UserID: author.ID, Content: "mine"}
	require.NoError(s.T(), s.db.Create(comment).Error)

	rec := s.request(http.MethodDelete, fmt.Sprintf("/api/comments/%d", comment.ID), strangerToken, nil)
	assert.Equal(s.T(), http.StatusForbidden, rec.Code)
}

func (s *HandlersTestSuite) TestDeleteComment() {
	author, token := s.createUser("comment-deleter")
	post := s.createPost(author, "deleted-comment", time.Minute)

	comment := &models.Comment{PostID: post.ID, UserID: author.ID, Content: "fleeting"}
	require.NoError(s.T(), s.db.Create(comment).Error)

	rec := s.request(http.MethodDelete, fmt.Sprintf("/api/comments/%d", comment.ID), token, nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)

	var count int64
	s.db.Model(&models.Comment{}).Where("id = ?", comment.ID).Count(&count)
	assert.Zero(s.T(), count)
}
