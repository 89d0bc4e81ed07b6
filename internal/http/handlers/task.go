package handlers

import (
	"context"
	"net/http"
	"time"

	"telegram_tasks/internal/domain"
	"telegram_tasks/internal/logger"
	"telegram_tasks/internal/service"

	"github.com/gin-gonic/gin"
)

// Timestamp formats in API responses, kept as the bot renders them.
const (
	createdAtFormat = "2006-01-02 15:04"
	dueDateFormat   = "2006-01-02 15:04:05"
)

// dueDateLayouts accepted in requests. Naive timestamps are read as UTC,
// which is what the bot sends.
var dueDateLayouts = []string{
	dueDateFormat,
	time.RFC3339,
	"2006-01-02 15:04",
}

func parseDueDate(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, true
		}
	}
	return nil, false
}

func taskJSON(t *domain.Task) gin.H {
	var due any
	if t.DueDate != nil {
		due = t.DueDate.UTC().Format(dueDateFormat)
	}
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return gin.H{
		"id":         t.ID,
		"title":      t.Title,
		"status":     t.Status,
		"created_at": t.CreatedAt.UTC().Format(createdAtFormat),
		"due_date":   due,
		"tags":       tags,
	}
}

func tasksJSON(tasks []*domain.Task) []gin.H {
	out := make([]gin.H, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskJSON(t))
	}
	return out
}

// ListTasks returns the user's pending tasks with their tags.
func (h *Handler) ListTasks(c *gin.Context) {
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

	tasks, err := h.Tasks.ListPending(ctx, user.TelegramID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasksJSON(tasks)})
}

// Archive returns the most recent completed/deleted tasks.
func (h *Handler) Archive(c *gin.Context) {
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

	tasks, err := h.Tasks.ListArchive(ctx, user.TelegramID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasksJSON(tasks)})
}

type createTaskRequest struct {
	TelegramID int64    `json:"telegram_id" binding:"required"`
	Title      string   `json:"title"`
	DueDate    string   `json:"due_date"`
	Tags       []string `json:"tags"`
}

// CreateTask creates a pending task and, when a due date is present,
// schedules its reminder keyed by the new task id.
func (h *Handler) CreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.BindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	if len(req.Tags) > domain.MaxTagsPerUser {
		respondError(c, service.ErrTooManyTags)
		return
	}

	due, ok := parseDueDate(req.DueDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due_date"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.Users.GetOrCreate(ctx, req.TelegramID)
	if err != nil {
		respondError(c, err)
		return
	}

	task, err := h.Tasks.Create(ctx, user.TelegramID, req.Title, due, req.Tags)
	if err != nil {
		respondError(c, err)
		return
	}

	if task.DueDate != nil && h.Scheduler != nil {
		// fire-and-forget: a scheduling failure must not fail the create
		if err := h.Scheduler.Schedule(ctx, task.ID, *task.DueDate); err != nil {
			logger.Error("schedule reminder", "task_id", task.ID, "error", err)
		}
	}

	c.JSON(http.StatusOK, taskJSON(task))
}

type taskActionRequest struct {
	TelegramID int64 `json:"telegram_id" binding:"required"`
	TaskID     int64 `json:"task_id" binding:"required"`
}

func (h *Handler) CompleteTask(c *gin.Context) {
	h.taskAction(c, h.Tasks.Complete)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	h.taskAction(c, h.Tasks.Delete)
}

func (h *Handler) taskAction(c *gin.Context, action func(ctx context.Context, userID, taskID int64) error) {
	var req taskActionRequest
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

	if err := action(ctx, user.TelegramID, req.TaskID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type clearAllRequest struct {
	TelegramID int64 `json:"telegram_id" binding:"required"`
}

// ClearAll wipes the user's tasks and tags. Irreversible.
func (h *Handler) ClearAll(c *gin.Context) {
	var req clearAllRequest
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

	if err := h.Tasks.ClearAll(ctx, user.TelegramID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
