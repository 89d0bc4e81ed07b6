package service

import (
	"context"

	"telegram_tasks/internal/domain"
)

// Store interfaces consumed by the services. The pgx repositories in
// internal/repository satisfy them; tests substitute in-memory fakes.

type UserStore interface {
	GetOrCreate(ctx context.Context, telegramID int64, username string) (*domain.User, error)
	SetUsername(ctx context.Context, telegramID int64, username string) error
}

type TagStore interface {
	ListByUser(ctx context.Context, userID int64) ([]*domain.Tag, error)
	Create(ctx context.Context, tag *domain.Tag) error
	Delete(ctx context.Context, userID, tagID int64) error
	DeleteAllByUser(ctx context.Context, userID int64) error
}

type TaskStore interface {
	ListPending(ctx context.Context, userID int64) ([]*domain.Task, error)
	ListArchive(ctx context.Context, userID int64) ([]*domain.Task, error)
	CountPending(ctx context.Context, userID int64) (int, error)
	Create(ctx context.Context, task *domain.Task, tagNames []string) error
	SetStatus(ctx context.Context, userID, taskID int64, status domain.TaskStatus) error
	GetByID(ctx context.Context, taskID int64) (*domain.Task, error)
	MarkDelivered(ctx context.Context, taskID int64) error
	DeleteAllByUser(ctx context.Context, userID int64) error
}
