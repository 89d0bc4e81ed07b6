package repository

import (
	"errors"
	"fmt"

	"telegram_tasks/internal/domain"
)

const (
	tagLimit         = domain.MaxTagsPerUser
	pendingTaskLimit = domain.MaxPendingTasksPerUser
)

var (
	// ErrNotFound is the base error for lookups scoped to an owner that
	// matched no row.
	ErrNotFound = errors.New("not found")

	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)
	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)
	ErrTagNotFound  = fmt.Errorf("%w: tag", ErrNotFound)

	// ErrDuplicateTag is returned when a user already owns a tag with the
	// same name (case-sensitive).
	ErrDuplicateTag = errors.New("Tag already exists")

	// Quota errors. The messages are what API clients show to users, so
	// they stay identical to the bot's wording.
	ErrTagLimit         = fmt.Errorf("Лимит тегов: %d", tagLimit)
	ErrPendingTaskLimit = fmt.Errorf("Лимит задач: %d", pendingTaskLimit)
)
