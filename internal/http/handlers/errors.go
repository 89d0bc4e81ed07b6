package handlers

import (
	"errors"
	"net/http"

	"telegram_tasks/internal/logger"
	"telegram_tasks/internal/repository"
	"telegram_tasks/internal/service"

	"github.com/gin-gonic/gin"
)

// respondError maps domain errors to status codes and the stable
// {"error": string} body. Anything unrecognized is a 500 with a generic
// message; the detail goes to the log only.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage(err)})

	case errors.Is(err, repository.ErrPendingTaskLimit),
		errors.Is(err, repository.ErrTagLimit),
		errors.Is(err, repository.ErrDuplicateTag),
		errors.Is(err, service.ErrEmptyTitle),
		errors.Is(err, service.ErrEmptyTagName),
		errors.Is(err, service.ErrTooManyTags):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		logger.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, repository.ErrTaskNotFound):
		return "Task not found"
	case errors.Is(err, repository.ErrTagNotFound):
		return "Tag not found"
	case errors.Is(err, repository.ErrUserNotFound):
		return "User not found"
	default:
		return "Not found"
	}
}

func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
}
