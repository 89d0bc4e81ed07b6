package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	TelegramID int64  `json:"telegram_id" binding:"required"`
	Username   string `json:"username"`
}

// Register is the idempotent entry point for new users; re-registering
// only refreshes the display name.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.BindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	user, err := h.Users.Register(c.Request.Context(), req.TelegramID, req.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"telegram_id": user.TelegramID,
		"username":    user.Username,
	})
}

// telegramIDQuery extracts ?telegram_id= for the GET endpoints.
func telegramIDQuery(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Query("telegram_id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "telegram_id is required"})
		return 0, false
	}
	return id, true
}
