package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mytheresa/catalog-admin/app/apperrors"
	"github.com/mytheresa/catalog-admin/app/logging"
)

const secret = "test-secret"

func TestIssueAndParseToken(t *testing.T) {
	token, err := IssueToken(secret, 42, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "42", claims.Subject)

	_, err = ParseToken(token, "other-secret")
	assert.Error(t, err)

	expired, err := IssueToken(secret, 42, -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(expired, secret)
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	valid, err := IssueToken(secret, 7, time.Hour)
	require.NoError(t, err)

	testCases := []struct {
		name               string
		setup              func(req *http.Request)
		expectedStatusCode int
		expectedUserID     string
	}{
		{
			name:               "Missing token",
			setup:              func(req *http.Request) {},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "Garbage token",
			setup:              func(req *http.Request) { req.Header.Set("Authorization", "Bearer nope") },
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "Bearer header",
			setup:              func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+valid) },
			expectedStatusCode: http.StatusOK,
			expectedUserID:     "7",
		},
		{
			name:               "Cookie",
			setup:              func(req *http.Request) { req.AddCookie(&http.Cookie{Name: CookieName, Value: valid}) },
			expectedStatusCode: http.StatusOK,
			expectedUserID:     "7",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var loggedUser string
			r := gin.New()
			r.Use(Middleware(secret, func(c *gin.Context, err error) {
				c.String(apperrors.From(err).HTTPCode, "unauthorized")
			}))
			r.GET("/me", func(c *gin.Context) {
				id, ok := UserID(c)
				require.True(t, ok)
				assert.Equal(t, uint(7), id)
				loggedUser = logging.UserID(c.Request.Context())
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tc.setup(req)
			rec := httptest.NewRecorder()

			// Act
			r.ServeHTTP(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			assert.Equal(t, tc.expectedUserID, loggedUser)
		})
	}
}
