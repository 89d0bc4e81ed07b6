package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListTags returns the user's tags sorted by name.
func (h *Handler) ListTags(c *gin.Context) {
	telegramID, ok := telegramIDQuery(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	user, err := h.Users.GetOrCreate(ctx, telegramID)
	if err != nil {
		respondError(c, err)
		return
	}

	tags, err := h.Tags.List(ctx, user.TelegramID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(tags))
	for _, t := range tags {
		out = append(out, gin.H{"id": t.ID, "name": t.Name})
	}
	c.JSON(http.StatusOK, gin.H{"tags": out})
}

type createTagRequest struct {
	TelegramID int64  `json:"telegram_id" binding:"required"`
	Name       string `json:"name"`
}

func (h *Handler) CreateTag(c *gin.Context) {
	var req createTagRequest
	if err := c.BindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	ctx := c.Request.Context()
	user, err := h.Users.GetOrCreate(ctx, req.TelegramID)
	if err != nil {
		respondError(c, err)
		return
	}

	tag, err := h.Tags.Create(ctx, user.TelegramID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": tag.ID, "name": tag.Name})
}

type tagActionRequest struct {
	TelegramID int64 `json:"telegram_id" binding:"required"`
	TagID      int64 `json:"tag_id" binding:"required"`
}

func (h *Handler) DeleteTag(c *gin.Context) {
	var req tagActionRequest
	if err := c.BindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	ctx := c.Request.Context()
	user, err := h.Users.GetOrCreate(ctx, req.TelegramID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.Tags.Delete(ctx, user.TelegramID, req.TagID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
