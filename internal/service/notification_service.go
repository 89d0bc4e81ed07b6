package service

import (
	"context"
	"fmt"

	"telegram_tasks/internal/domain"
	"telegram_tasks/internal/logger"
)

// Sender delivers a text message to a Telegram chat.
type Sender interface {
	Send(chatID int64, text string) error
}

// NotificationService executes due reminder jobs. It owns no retry logic;
// a failed delivery leaves the task untouched for the queue's own retry
// policy, if any.
type NotificationService struct {
	tasks  TaskStore
	sender Sender
}

func NewNotificationService(tasks TaskStore, sender Sender) *NotificationService {
	return &NotificationService{tasks: tasks, sender: sender}
}

// Deliver fires the reminder for a task. Tasks already notified or no
// longer pending are skipped: the user completed or deleted the task after
// the job was scheduled, and this guard is the only cancellation
// mechanism. On success the task is flagged notified and completed in a
// single update.
func (s *NotificationService) Deliver(ctx context.Context, taskID int64) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	if task.Notified || task.Status != domain.TaskStatusPending {
		logger.Info("reminder skipped", "task_id", taskID, "status", task.Status, "notified", task.Notified)
		return nil
	}

	if err := s.sender.Send(task.UserID, "⏰ Напоминание: "+task.Title); err != nil {
		return fmt.Errorf("send reminder for task %d: %w", taskID, err)
	}

	return s.tasks.MarkDelivered(ctx, taskID)
}
