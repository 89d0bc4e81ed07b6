package scheduler

import (
	"context"
	"sync"
	"time"

	"telegram_tasks/internal/logger"
)

// Dispatcher executes a due reminder job.
type Dispatcher interface {
	Deliver(ctx context.Context, taskID int64) error
}

// Worker polls the queue and hands due jobs to the dispatcher. Delivery is
// best-effort: a failed job is logged and dropped, not re-enqueued.
type Worker struct {
	queue      *Queue
	dispatcher Dispatcher
	interval   time.Duration
	stopCh     chan struct{}
	wg         sync.WaitGroup
}

func NewWorker(queue *Queue, dispatcher Dispatcher, interval time.Duration) *Worker {
	return &Worker{
		queue:      queue,
		dispatcher: dispatcher,
		interval:   interval,
		stopCh:     make(chan struct{}),
	}
}

func (w *Worker) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		logger.Info("reminder worker started", "interval", w.interval)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.stopCh:
				logger.Info("reminder worker stopped")
				return
			case <-ticker.C:
				w.poll()
			}
		}
	}()
}

func (w *Worker) poll() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ids, err := w.queue.PopDue(ctx, time.Now(), 100)
	if err != nil {
		logger.Error("poll reminder queue", "error", err)
		return
	}

	for _, id := range ids {
		if err := w.dispatcher.Deliver(ctx, id); err != nil {
			remindersFailed.Inc()
			logger.Error("reminder delivery failed", "task_id", id, "error", err)
			continue
		}
		remindersProcessed.Inc()
	}
}

// Stop shuts the worker down, waiting briefly for an in-flight poll.
func (w *Worker) Stop() {
	close(w.stopCh)

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		logger.Warn("reminder worker shutdown timeout")
	}
}
