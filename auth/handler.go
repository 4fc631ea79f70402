package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cheatsheet-editor/internal/errors"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

type sessionRequest struct {
	Subject string `json:"subject" binding:"required"`
	Name    string `json:"name"`
}

// CreateSession handles POST /auth/session. The OAuth handshake itself
// lives in the provider callback; this endpoint mints the session
// credential for an already-authenticated subject.
func (h *Handler) CreateSession(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.BadRequest("Invalid session payload", err))
		return
	}

	token, err := GenerateToken(req.Subject, req.Name)
	if err != nil {
		errors.HandleError(c, errors.Internal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Status handles GET /auth/status. Never fails: an absent or invalid
// credential reports authenticated=false.
func (h *Handler) Status(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	userID, name, err := VerifyToken(token)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user":          gin.H{"id": userID, "name": name},
	})
}

// Logout handles POST /auth/logout. Sessions are stateless tokens; the
// client discards its credential.
func (h *Handler) Logout(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
