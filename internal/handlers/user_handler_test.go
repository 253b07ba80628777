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

func (s *HandlersTestSuite) TestSyncUserCreatesAndUpdates() {
	uid := fmt.Sprintf("ext-sync-%d", time.Now().UnixNano())
	token, err := s.verifier.SignToken(&identity.Identity{
		UID:      uid,
		Name:     "Sync Test",
		Username: "synctest",
	})
	require.NoError(s.T(), err)

	rec := s.request(http.MethodPost, "/api/sync-user", token, nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	user := s.decode(rec)["user"].(map[string]any)
	assert.Equal(s.T(), "Sync Test", user["name"])
	firstID := user["id"]

	// A second sync with fresh provider data updates in place.
	token, err = s.verifier.SignToken(&identity.Identity{
		UID:      uid,
		Name:     "Sync Renamed",
		Username: "synctest",
	})
	require.NoError(s.T(), err)

	rec = s.request(http.MethodPost, "/api/sync-user", token, nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	user = s.decode(rec)["user"].(map[string]any)
	assert.Equal(s.T(), "Sync Renamed", user["name"])
	assert.Equal(s.T(), firstID, user["id"])

	var count int64
	s.db.Model(&models.User{}).Where("auth_uid = ?", uid).Count(&count)
	assert.EqualValues(s.T(), 1, count)
}

func (s *HandlersTestSuite) TestSyncUserFallsBackToUsername() {
	uid := fmt.Sprintf("ext-sync-noname-%d", time.Now().UnixNano())
	token, err := s.verifier.SignToken(&identity.Identity{UID: uid, Username: "handleonly"})
	require.NoError(s.T(), err)

	rec := s.request(http.MethodPost, "/api/sync-user", token, nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Equal(s.T(), "handleonly", s.decode(rec)["user"].(map[string]any)["name"])
}

func (s *HandlersTestSuite) TestGetUserProfileStats() {
	user, token := s.createUser("profile-subject")
	_, fanToken := s.createUser("profile-fan")
	idol, _ := s.createUser("profile-idol")

	s.createPost(user, "profile-post-1", time.Hour)
	s.createPost(user, "profile-post-2", time.Minute)
	s.follow(fanToken, user.AuthUID)
	s.follow(token, idol.AuthUID)

	rec := s.request(http.MethodGet, "/api/users/"+user.AuthUID, "", nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)

	data := s.decode(rec)["data"].(map[string]any)
	stats := data["stats"].(map[string]any)
	assert.EqualValues(s.T(), 2, stats["posts"])
	assert.EqualValues(s.T(), 1, stats["followers"])
	assert.EqualValues(s.T(), 1, stats["following"])
	assert.Equal(s.T(), false, data["is_own_profile"])
	assert.Equal(s.T(), false, data["is_following"])

	// The follower sees is_following true.
	rec = s.request(http.MethodGet, "/api/users/"+user.AuthUID, fanToken, nil)
	data = s.decode(rec)["data"].(map[string]any)
	assert.Equal(s.T(), true, data["is_following"])
	assert.Equal(s.T(), false, data["is_own_profile"])

	// The owner sees is_own_profile true.
	rec = s.request(http.MethodGet, "/api/users/"+user.AuthUID, token, nil)
	data = s.decode(rec)["data"].(map[string]any)
	assert.Equal(s.T(), true, data["is_own_profile"])
}

func (s *HandlersTestSuite) TestGetUserProfileNotFound() {
	rec := s.request(http.MethodGet, "/api/users/ext-missing-profile", "", nil)
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
}

func (s *HandlersTestSuite) TestSearchUsers() {
	s.createUser("Zqalia Vex")
	s.createUser("zqalia minor")
	s.createUser("Unrelated Person")

	rec := s.request(http.MethodGet, "/api/users/search?query=ZQALIA", "", nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	results := s.decode(rec)["data"].([]any)
	assert.Len(s.T(), results, 2)

	// The q alias works too.
	rec = s.request(http.MethodGet, "/api/users/search?q=zqalia+vex", "", nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Len(s.T(), s.decode(rec)["data"], 1)
}

func (s *HandlersTestSuite) TestSearchUsersRequiresQuery() {
	rec := s.request(http.MethodGet, "/api/users/search?query=++", "", nil)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
	assert.Equal(s.T(), "Search query is required", s.decode(rec)["error"])
}

func (s *HandlersTestSuite) TestUpdateProfile() {
	user, token := s.createUser("profile-editor")

	rec := s.request(http.MethodPut, "/api/users/profile", token, map[string]string{
		"username": "editor",
		"bio":      "edits things",
	})
	require.Equal(s.T(), http.StatusOK, rec.Code)

	var stored models.User
	require.NoError(s.T(), s.db.First(&stored, user.ID).Error)
	assert.Equal(s.T(), "editor", stored.Username)
	assert.Equal(s.T(), "edits things", stored.Bio)
	// Untouched fields keep their values.
	assert.Equal(s.T(), user.Name, stored.Name)
}

func (s *HandlersTestSuite) TestUpdateProfileRejectsBadAvatar() {
	_, token := s.createUser("profile-bad-avatar")

	rec := s.request(http.MethodPut, "/api/users/profile", token, map[string]string{
		"avatar_url": "not-a-url",
	})
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}
