package content

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cheatsheet-editor/internal/errors"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Show handles GET /api/content
func (h *Handler) Show(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		errors.HandleError(c, errors.Unauthorized("Not authenticated", nil))
		return
	}

	resp, err := h.service.GetForUser(c.Request.Context(), userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Update handles PUT /api/content
func (h *Handler) Update(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		errors.HandleError(c, errors.Unauthorized("Not authenticated", nil))
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.BadRequest("Invalid content payload", err))
		return
	}

	resp, err := h.service.UpdateForUser(c.Request.Context(), userID, req)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
