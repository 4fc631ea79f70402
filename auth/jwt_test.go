package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	Init("test-secret")

	token, err := GenerateToken("github|42", "Ada")
	require.NoError(t, err)

	userID, name, err := VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "github|42", userID)
	assert.Equal(t, "Ada", name)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	Init("test-secret")

	_, _, err := VerifyToken("not-a-token")
	assert.Error(t, err)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	Init("first-secret")
	token, err := GenerateToken("github|42", "Ada")
	require.NoError(t, err)

	Init("second-secret")
	_, _, err = VerifyToken(token)
	assert.Error(t, err)
}

func TestStatusEndpoint(t *testing.T) {
	Init("test-secret")
	gin.SetMode(gin.TestMode)

	handler := NewHandler()
	router := gin.New()
	router.GET("/auth/status", handler.Status)

	t.Run("without token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/auth/status", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, false, body["authenticated"])
	})

	t.Run("with token", func(t *testing.T) {
		token, err := GenerateToken("github|42", "Ada")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/auth/status", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, true, body["authenticated"])
	})
}

func TestMiddlewareSetsSubject(t *testing.T) {
	Init("test-secret")
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/protected", Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString("userID")})
	})

	token, err := GenerateToken("github|42", "Ada")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "github|42")

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
