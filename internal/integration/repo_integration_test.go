package integration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"telegram_tasks/internal/db"
	"telegram_tasks/internal/domain"
	"telegram_tasks/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// These tests need a real Postgres; they run only when DATABASE_URL is
// set and wipe the tables they touch.

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := db.Migrate(dsn); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	if _, err := pool.Exec(context.Background(), "TRUNCATE users, tags, tasks, task_tags CASCADE"); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return pool
}

func TestUserRepositoryGetOrCreate(t *testing.T) {
	pool := testPool(t)
	repo := repository.NewUserRepository(pool)
	ctx := context.Background()

	u, err := repo.GetOrCreate(ctx, 42, "alice")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.TelegramID != 42 || u.Username != "alice" {
		t.Fatalf("unexpected user: %+v", u)
	}

	// second call returns the existing row without touching the name
	u, err = repo.GetOrCreate(ctx, 42, "someone_else")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if u.Username != "alice" {
		t.Fatalf("username overwritten: %q", u.Username)
	}
}

func TestTagRepositoryQuotaAndDuplicate(t *testing.T) {
	pool := testPool(t)
	users := repository.NewUserRepository(pool)
	tags := repository.NewTagRepository(pool)
	ctx := context.Background()

	if _, err := users.GetOrCreate(ctx, 42, ""); err != nil {
		t.Fatalf("create user: %v", err)
	}

	for i := 0; i < domain.MaxTagsPerUser; i++ {
		tag := &domain.Tag{UserID: 42, Name: fmt.Sprintf("tag%d", i)}
		if err := tags.Create(ctx, tag); err != nil {
			t.Fatalf("create tag %d: %v", i, err)
		}
		if tag.ID == 0 {
			t.Fatal("tag id not assigned")
		}
	}

	err := tags.Create(ctx, &domain.Tag{UserID: 42, Name: "overflow"})
	if !errors.Is(err, repository.ErrTagLimit) {
		t.Fatalf("expected tag limit error, got %v", err)
	}

	list, err := tags.ListByUser(ctx, 42)
	if err != nil {
		t.Fatalf("list tags: %v", err)
	}
	if err := tags.Delete(ctx, 42, list[0].ID); err != nil {
		t.Fatalf("delete tag: %v", err)
	}

	err = tags.Create(ctx, &domain.Tag{UserID: 42, Name: "tag1"})
	if !errors.Is(err, repository.ErrDuplicateTag) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestTaskRepositoryCreateWithTags(t *testing.T) {
	pool := testPool(t)
	users := repository.NewUserRepository(pool)
	tags := repository.NewTagRepository(pool)
	tasks := repository.NewTaskRepository(pool)
	ctx := context.Background()

	if _, err := users.GetOrCreate(ctx, 42, ""); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := tags.Create(ctx, &domain.Tag{UserID: 42, Name: "home"}); err != nil {
		t.Fatalf("create tag: %v", err)
	}

	due := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	task := &domain.Task{UserID: 42, Title: "buy milk", DueDate: &due}
	if err := tasks.Create(ctx, task, []string{"home", "unknown"}); err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task.ID == 0 || task.CreatedAt.IsZero() {
		t.Fatalf("task not populated: %+v", task)
	}

	pending, err := tasks.ListPending(ctx, 42)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending task, got %d", len(pending))
	}
	got := pending[0]
	if got.Title != "buy milk" || got.Status != domain.TaskStatusPending {
		t.Fatalf("unexpected task: %+v", got)
	}
	// the unknown tag name was dropped silently
	if len(got.Tags) != 1 || got.Tags[0] != "home" {
		t.Fatalf("unexpected tags: %v", got.Tags)
	}
	if got.DueDate == nil || !got.DueDate.UTC().Equal(due) {
		t.Fatalf("unexpected due date: %v want %v", got.DueDate, due)
	}
}

func TestTaskRepositoryPendingQuota(t *testing.T) {
	pool := testPool(t)
	users := repository.NewUserRepository(pool)
	tasks := repository.NewTaskRepository(pool)
	ctx := context.Background()

	if _, err := users.GetOrCreate(ctx, 42, ""); err != nil {
		t.Fatalf("create user: %v", err)
	}

	for i := 0; i < domain.MaxPendingTasksPerUser; i++ {
		if err := tasks.Create(ctx, &domain.Task{UserID: 42, Title: "task"}, nil); err != nil {
			t.Fatalf("create task %d: %v", i, err)
		}
	}

	err := tasks.Create(ctx, &domain.Task{UserID: 42, Title: "overflow"}, nil)
	if !errors.Is(err, repository.ErrPendingTaskLimit) {
		t.Fatalf("expected pending limit error, got %v", err)
	}
}

func TestTaskRepositoryArchiveCap(t *testing.T) {
	pool := testPool(t)
	users := repository.NewUserRepository(pool)
	tasks := repository.NewTaskRepository(pool)
	ctx := context.Background()

	if _, err := users.GetOrCreate(ctx, 42, ""); err != nil {
		t.Fatalf("create user: %v", err)
	}

	for i := 0; i < domain.MaxArchiveTasksPerUser+2; i++ {
		task := &domain.Task{UserID: 42, Title: fmt.Sprintf("task%d", i)}
		if err := tasks.Create(ctx, task, nil); err != nil {
			t.Fatalf("create task: %v", err)
		}
		if err := tasks.SetStatus(ctx, 42, task.ID, domain.TaskStatusCompleted); err != nil {
			t.Fatalf("complete task: %v", err)
		}
	}

	archive, err := tasks.ListArchive(ctx, 42)
	if err != nil {
		t.Fatalf("list archive: %v", err)
	}
	if len(archive) != domain.MaxArchiveTasksPerUser {
		t.Fatalf("expected %d archived tasks, got %d", domain.MaxArchiveTasksPerUser, len(archive))
	}
}

func TestTaskRepositorySetStatusScope(t *testing.T) {
	pool := testPool(t)
	users := repository.NewUserRepository(pool)
	tasks := repository.NewTaskRepository(pool)
	ctx := context.Background()

	if _, err := users.GetOrCreate(ctx, 42, ""); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := users.GetOrCreate(ctx, 43, ""); err != nil {
		t.Fatalf("create user: %v", err)
	}

	task := &domain.Task{UserID: 42, Title: "mine"}
	if err := tasks.Create(ctx, task, nil); err != nil {
		t.Fatalf("create task: %v", err)
	}

	err := tasks.SetStatus(ctx, 43, task.ID, domain.TaskStatusDeleted)
	if !errors.Is(err, repository.ErrTaskNotFound) {
		t.Fatalf("expected not found for foreign task, got %v", err)
	}
}

func TestTaskRepositoryMarkDelivered(t *testing.T) {
	pool := testPool(t)
	users := repository.NewUserRepository(pool)
	tasks := repository.NewTaskRepository(pool)
	ctx := context.Background()

	if _, err := users.GetOrCreate(ctx, 42, ""); err != nil {
		t.Fatalf("create user: %v", err)
	}

	task := &domain.Task{UserID: 42, Title: "remind me"}
	if err := tasks.Create(ctx, task, nil); err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := tasks.MarkDelivered(ctx, task.ID); err != nil {
		t.Fatalf("mark delivered: %v", err)
	}

	got, err := tasks.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if !got.Notified || got.Status != domain.TaskStatusCompleted {
		t.Fatalf("expected notified+completed, got %+v", got)
	}
}
