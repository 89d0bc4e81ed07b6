package handlers

import (
	"context"
	"time"

	"telegram_tasks/internal/service"
)

// ReminderScheduler enqueues a one-shot reminder job. The boundary
// schedules it right after a task with a due date is created.
type ReminderScheduler interface {
	Schedule(ctx context.Context, taskID int64, at time.Time) error
}

type Handler struct {
	Users     *service.UserService
	Tags      *service.TagService
	Tasks     *service.TaskService
	Scheduler ReminderScheduler
}

func NewHandler(users *service.UserService, tags *service.TagService, tasks *service.TaskService, scheduler ReminderScheduler) *Handler {
	return &Handler{
		Users:     users,
		Tags:      tags,
		Tasks:     tasks,
		Scheduler: scheduler,
	}
}
