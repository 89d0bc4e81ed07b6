package service

import (
	"context"
	"sort"
	"time"

	"telegram_tasks/internal/domain"
	"telegram_tasks/internal/repository"
)

// In-memory stores mirroring the repository contracts, including the
// quota and duplicate errors the pgx implementations return.

type fakeUserStore struct {
	users map[int64]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*domain.User)}
}

func (s *fakeUserStore) GetOrCreate(_ context.Context, telegramID int64, username string) (*domain.User, error) {
	if u, ok := s.users[telegramID]; ok {
		cp := *u
		return &cp, nil
	}
	u := &domain.User{TelegramID: telegramID, Username: username}
	s.users[telegramID] = u
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) SetUsername(_ context.Context, telegramID int64, username string) error {
	u, ok := s.users[telegramID]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Username = username
	return nil
}

type fakeTagStore struct {
	nextID int64
	tags   []*domain.Tag
}

func newFakeTagStore() *fakeTagStore {
	return &fakeTagStore{}
}

func (s *fakeTagStore) ListByUser(_ context.Context, userID int64) ([]*domain.Tag, error) {
	var out []*domain.Tag
	for _, t := range s.tags {
		if t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *fakeTagStore) Create(_ context.Context, tag *domain.Tag) error {
	count := 0
	for _, t := range s.tags {
		if t.UserID != tag.UserID {
			continue
		}
		count++
		if t.Name == tag.Name {
			return repository.ErrDuplicateTag
		}
	}
	if count >= domain.MaxTagsPerUser {
		return repository.ErrTagLimit
	}
	s.nextID++
	tag.ID = s.nextID
	cp := *tag
	s.tags = append(s.tags, &cp)
	return nil
}

func (s *fakeTagStore) Delete(_ context.Context, userID, tagID int64) error {
	for i, t := range s.tags {
		if t.UserID == userID && t.ID == tagID {
			s.tags = append(s.tags[:i], s.tags[i+1:]...)
			return nil
		}
	}
	return repository.ErrTagNotFound
}

func (s *fakeTagStore) DeleteAllByUser(_ context.Context, userID int64) error {
	kept := s.tags[:0]
	for _, t := range s.tags {
		if t.UserID != userID {
			kept = append(kept, t)
		}
	}
	s.tags = kept
	return nil
}

type fakeTaskStore struct {
	nextID int64
	tasks  []*domain.Task

	// tag names that exist for the purpose of attaching; anything else
	// is dropped like the SQL join does
	knownTags map[string]bool
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{knownTags: make(map[string]bool)}
}

func (s *fakeTaskStore) find(taskID int64) *domain.Task {
	for _, t := range s.tasks {
		if t.ID == taskID {
			return t
		}
	}
	return nil
}

func (s *fakeTaskStore) ListPending(_ context.Context, userID int64) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range s.tasks {
		if t.UserID == userID && t.Status == domain.TaskStatusPending {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeTaskStore) ListArchive(_ context.Context, userID int64) ([]*domain.Task, error) {
	var out []*domain.Task
	for i := len(s.tasks) - 1; i >= 0; i-- {
		t := s.tasks[i]
		if t.UserID != userID || t.Status == domain.TaskStatusPending {
			continue
		}
		cp := *t
		out = append(out, &cp)
		if len(out) == domain.MaxArchiveTasksPerUser {
			break
		}
	}
	return out, nil
}

func (s *fakeTaskStore) CountPending(_ context.Context, userID int64) (int, error) {
	count := 0
	for _, t := range s.tasks {
		if t.UserID == userID && t.Status == domain.TaskStatusPending {
			count++
		}
	}
	return count, nil
}

func (s *fakeTaskStore) Create(ctx context.Context, task *domain.Task, tagNames []string) error {
	count, _ := s.CountPending(ctx, task.UserID)
	if count >= domain.MaxPendingTasksPerUser {
		return repository.ErrPendingTaskLimit
	}

	s.nextID++
	task.ID = s.nextID
	task.Status = domain.TaskStatusPending
	task.CreatedAt = time.Now().UTC()
	task.Tags = nil
	for _, name := range tagNames {
		if s.knownTags[name] {
			task.Tags = append(task.Tags, name)
		}
	}
	cp := *task
	s.tasks = append(s.tasks, &cp)
	return nil
}

func (s *fakeTaskStore) SetStatus(_ context.Context, userID, taskID int64, status domain.TaskStatus) error {
	t := s.find(taskID)
	if t == nil || t.UserID != userID {
		return repository.ErrTaskNotFound
	}
	t.Status = status
	return nil
}

func (s *fakeTaskStore) GetByID(_ context.Context, taskID int64) (*domain.Task, error) {
	t := s.find(taskID)
	if t == nil {
		return nil, repository.ErrTaskNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *fakeTaskStore) MarkDelivered(_ context.Context, taskID int64) error {
	t := s.find(taskID)
	if t == nil {
		return repository.ErrTaskNotFound
	}
	t.Notified = true
	t.Status = domain.TaskStatusCompleted
	return nil
}

func (s *fakeTaskStore) DeleteAllByUser(_ context.Context, userID int64) error {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.UserID != userID {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	return nil
}
