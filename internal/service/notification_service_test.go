package service

import (
	"context"
	"errors"
	"testing"

	"telegram_tasks/internal/domain"
	"telegram_tasks/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []string
	err  error
}

func (s *fakeSender) Send(chatID int64, text string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, text)
	return nil
}

func TestDeliverPendingTask(t *testing.T) {
	tasks := newFakeTaskStore()
	sender := &fakeSender{}
	svc := NewNotificationService(tasks, sender)
	ctx := context.Background()

	task := &domain.Task{UserID: 42, Title: "call mom"}
	require.NoError(t, tasks.Create(ctx, task, nil))

	require.NoError(t, svc.Deliver(ctx, task.ID))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "⏰ Напоминание: call mom", sender.sent[0])

	got, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, got.Notified)
	assert.Equal(t, domain.TaskStatusCompleted, got.Status)
}

func TestDeliverSkipsTerminalTask(t *testing.T) {
	for _, status := range []domain.TaskStatus{domain.TaskStatusCompleted, domain.TaskStatusDeleted} {
		tasks := newFakeTaskStore()
		sender := &fakeSender{}
		svc := NewNotificationService(tasks, sender)
		ctx := context.Background()

		task := &domain.Task{UserID: 42, Title: "stale"}
		require.NoError(t, tasks.Create(ctx, task, nil))
		require.NoError(t, tasks.SetStatus(ctx, 42, task.ID, status))

		require.NoError(t, svc.Deliver(ctx, task.ID))
		assert.Empty(t, sender.sent, "status %s", status)

		got, err := tasks.GetByID(ctx, task.ID)
		require.NoError(t, err)
		assert.False(t, got.Notified)
		assert.Equal(t, status, got.Status)
	}
}

func TestDeliverSkipsAlreadyNotified(t *testing.T) {
	tasks := newFakeTaskStore()
	sender := &fakeSender{}
	svc := NewNotificationService(tasks, sender)
	ctx := context.Background()

	task := &domain.Task{UserID: 42, Title: "done"}
	require.NoError(t, tasks.Create(ctx, task, nil))
	require.NoError(t, tasks.MarkDelivered(ctx, task.ID))

	require.NoError(t, svc.Deliver(ctx, task.ID))
	assert.Empty(t, sender.sent)
}

func TestDeliverSendFailureLeavesTaskUntouched(t *testing.T) {
	tasks := newFakeTaskStore()
	sender := &fakeSender{err: errors.New("telegram down")}
	svc := NewNotificationService(tasks, sender)
	ctx := context.Background()

	task := &domain.Task{UserID: 42, Title: "flaky"}
	require.NoError(t, tasks.Create(ctx, task, nil))

	err := svc.Deliver(ctx, task.ID)
	require.Error(t, err)

	got, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, got.Notified)
	assert.Equal(t, domain.TaskStatusPending, got.Status)
}

func TestDeliverMissingTask(t *testing.T) {
	svc := NewNotificationService(newFakeTaskStore(), &fakeSender{})

	err := svc.Deliver(context.Background(), 999)
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
}
