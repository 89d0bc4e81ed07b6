package service

import (
	"context"
	"strings"
	"time"

	"telegram_tasks/internal/domain"
	"telegram_tasks/internal/repository"
)

type TaskService struct {
	tasks TaskStore
	tags  TagStore
}

func NewTaskService(tasks TaskStore, tags TagStore) *TaskService {
	return &TaskService{tasks: tasks, tags: tags}
}

func (s *TaskService) ListPending(ctx context.Context, userID int64) ([]*domain.Task, error) {
	return s.tasks.ListPending(ctx, userID)
}

func (s *TaskService) ListArchive(ctx context.Context, userID int64) ([]*domain.Task, error) {
	return s.tasks.ListArchive(ctx, userID)
}

// Create makes a pending task. The quota check deliberately precedes title
// validation; that order is part of the API contract. The store re-checks
// the quota transactionally, this pre-check only pins the error order.
// Tag names that don't match an existing tag of the user are dropped
// silently.
func (s *TaskService) Create(ctx context.Context, userID int64, title string, dueDate *time.Time, tagNames []string) (*domain.Task, error) {
	count, err := s.tasks.CountPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= domain.MaxPendingTasksPerUser {
		return nil, repository.ErrPendingTaskLimit
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	task := &domain.Task{UserID: userID, Title: title, DueDate: dueDate}
	if err := s.tasks.Create(ctx, task, tagNames); err != nil {
		return nil, err
	}
	return task, nil
}

// Complete marks the task completed. Idempotent: completing a terminal
// task succeeds and leaves it terminal.
func (s *TaskService) Complete(ctx context.Context, userID, taskID int64) error {
	return s.tasks.SetStatus(ctx, userID, taskID, domain.TaskStatusCompleted)
}

// Delete soft-deletes the task into the archive.
func (s *TaskService) Delete(ctx context.Context, userID, taskID int64) error {
	return s.tasks.SetStatus(ctx, userID, taskID, domain.TaskStatusDeleted)
}

// ClearAll wipes every task and tag of the user regardless of status.
// Not reversible.
func (s *TaskService) ClearAll(ctx context.Context, userID int64) error {
	if err := s.tasks.DeleteAllByUser(ctx, userID); err != nil {
		return err
	}
	return s.tags.DeleteAllByUser(ctx, userID)
}
