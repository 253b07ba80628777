package handlers_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *HandlersTestSuite) TestUnauthorizedBodyShape() {
	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"malformed header", "Token abc"},
		{"invalid token", "Bearer not-a-token"},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			req := httptest.NewRequest(http.MethodPost, "/api/likes", nil)
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			if tc.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.header)
			}
			rec := httptest.NewRecorder()
			s.echo.ServeHTTP(rec, req)

			require.Equal(s.T(), http.StatusUnauthorized, rec.Code)

			// Every rejection carries the error body shared by the handlers.
			body := s.decode(rec)
			msg, ok := body["error"].(string)
			assert.True(s.T(), ok)
			assert.NotEmpty(s.T(), msg)
		})
	}
}

func (s *HandlersTestSuite) TestPageSizeClampedNotReset() {
	rec := s.request(http.MethodGet, "/api/posts?pageSize=500", "", nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)

	pagination := s.decode(rec)["pagination"].(map[string]any)
	assert.EqualValues(s.T(), 50, pagination["pageSize"])

	// Invalid values still fall back to the endpoint default.
	rec = s.request(http.MethodGet, "/api/posts?pageSize=0", "", nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.EqualValues(s.T(), 10, s.decode(rec)["pagination"].(map[string]any)["pageSize"])
}
