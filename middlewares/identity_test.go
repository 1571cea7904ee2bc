package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"debato/services"
	"debato/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newIdentityRouter(t *testing.T) (*gin.Engine, *services.Owner) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var seen services.Owner
	router := gin.New()
	router.Use(Identity())
	router.GET("/whoami", func(c *gin.Context) {
		seen = CurrentOwner(c)
		c.Status(http.StatusOK)
	})
	return router, &seen
}

func TestIdentityAllocatesGuestCookie(t *testing.T) {
	router, seen := newIdentityRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, seen.IsGuest)
	assert.NotEmpty(t, seen.SessionToken)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == GuestCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "a fresh guest gets a session cookie")
	assert.Equal(t, seen.SessionToken, cookie.Value)
}

func TestIdentityKeepsExistingGuestToken(t *testing.T) {
	router, seen := newIdentityRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: GuestCookieName, Value: "existing-token"})
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, seen.IsGuest)
	assert.Equal(t, "existing-token", seen.SessionToken)
}

func TestIdentityResolvesAccountFromJWT(t *testing.T) {
	utils.SetJWTSecret("test-secret")
	userID := primitive.NewObjectID()
	token, err := utils.GenerateJWTToken(userID.Hex(), "alice@example.com")
	require.NoError(t, err)

	router, seen := newIdentityRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, seen.IsGuest)
	assert.Equal(t, userID, seen.UserID)
}

func TestIdentityRejectsMalformedAuthHeader(t *testing.T) {
	utils.SetJWTSecret("test-secret")
	router, _ := newIdentityRouter(t)

	for _, header := range []string{"Bearer", "Basic abc123", "Bearer garbage.token.here"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestRequireAccountRejectsGuests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Identity(), RequireAccount())
	router.GET("/private", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAccountAllowsAccounts(t *testing.T) {
	utils.SetJWTSecret("test-secret")
	token, err := utils.GenerateJWTToken(primitive.NewObjectID().Hex(), "bob@example.com")
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Identity(), RequireAccount())
	router.GET("/private", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
