package repository

import (
	"context"

	"telegram_tasks/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskWithTagsQuery = `
	SELECT t.id, t.user_id, t.title, t.status, t.created_at, t.due_date, t.notified,
	       COALESCE(array_agg(tg.name ORDER BY tg.name) FILTER (WHERE tg.id IS NOT NULL), '{}')
	FROM tasks t
	LEFT JOIN task_tags tt ON tt.task_id = t.id
	LEFT JOIN tags tg ON tg.id = tt.tag_id`

func (r *TaskRepository) scanTasks(rows pgx.Rows) ([]*domain.Task, error) {
	defer rows.Close()

	var res []*domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Status, &t.CreatedAt,
			&t.DueDate, &t.Notified, &t.Tags); err != nil {
			return nil, err
		}
		res = append(res, &t)
	}
	return res, rows.Err()
}

// ListPending returns the user's pending tasks with tag names attached,
// soonest due first (tasks with no due date sort last), newest first
// within the same due date.
func (r *TaskRepository) ListPending(ctx context.Context, userID int64) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx, taskWithTagsQuery+`
		WHERE t.user_id = $1 AND t.status = $2
		GROUP BY t.id
		ORDER BY t.due_date ASC, t.created_at DESC`,
		userID, domain.TaskStatusPending,
	)
	if err != nil {
		return nil, err
	}
	return r.scanTasks(rows)
}

// ListArchive returns the most recent completed/deleted tasks, capped at
// the archive view limit.
func (r *TaskRepository) ListArchive(ctx context.Context, userID int64) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx, taskWithTagsQuery+`
		WHERE t.user_id = $1 AND t.status IN ($2, $3)
		GROUP BY t.id
		ORDER BY t.created_at DESC
		LIMIT $4`,
		userID, domain.TaskStatusCompleted, domain.TaskStatusDeleted, domain.MaxArchiveTasksPerUser,
	)
	if err != nil {
		return nil, err
	}
	return r.scanTasks(rows)
}

func (r *TaskRepository) CountPending(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM tasks WHERE user_id = $1 AND status = $2`,
		userID, domain.TaskStatusPending,
	).Scan(&count)
	return count, err
}

// Create inserts a pending task and attaches the caller's own tags matching
// tagNames. Names that resolve to no tag are ignored. The pending-count cap
// is re-checked inside a serializable transaction.
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task, tagNames []string) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var count int
	if err := tx.QueryRow(ctx,
		`SELECT count(*) FROM tasks WHERE user_id = $1 AND status = $2`,
		task.UserID, domain.TaskStatusPending,
	).Scan(&count); err != nil {
		return err
	}
	if count >= domain.MaxPendingTasksPerUser {
		return ErrPendingTaskLimit
	}

	task.Status = domain.TaskStatusPending
	if err := tx.QueryRow(ctx,
		`INSERT INTO tasks (user_id, title, due_date) VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		task.UserID, task.Title, task.DueDate,
	).Scan(&task.ID, &task.CreatedAt); err != nil {
		return err
	}

	task.Tags = []string{}
	if len(tagNames) > 0 {
		rows, err := tx.Query(ctx,
			`INSERT INTO task_tags (task_id, tag_id)
			 SELECT $1, id FROM tags WHERE user_id = $2 AND name = ANY($3)
			 RETURNING (SELECT name FROM tags WHERE id = tag_id)`,
			task.ID, task.UserID, tagNames,
		)
		if err != nil {
			return err
		}
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				rows.Close()
				return err
			}
			task.Tags = append(task.Tags, name)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// SetStatus updates the task status scoped to (id, user). No transition
// check: re-completing or re-deleting a terminal task is a no-op update.
func (r *TaskRepository) SetStatus(ctx context.Context, userID, taskID int64, status domain.TaskStatus) error {
	res, err := r.db.Exec(ctx,
		`UPDATE tasks SET status = $1 WHERE id = $2 AND user_id = $3`,
		status, taskID, userID,
	)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// GetByID loads a task without owner scoping. Used by the reminder
// dispatcher, which is keyed by task id alone.
func (r *TaskRepository) GetByID(ctx context.Context, taskID int64) (*domain.Task, error) {
	var t domain.Task
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, title, status, created_at, due_date, notified
		 FROM tasks WHERE id = $1`,
		taskID,
	).Scan(&t.ID, &t.UserID, &t.Title, &t.Status, &t.CreatedAt, &t.DueDate, &t.Notified)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

// MarkDelivered records a successful reminder in one update: the task is
// flagged notified and treated as implicitly completed.
func (r *TaskRepository) MarkDelivered(ctx context.Context, taskID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE tasks SET notified = true, status = $1 WHERE id = $2`,
		domain.TaskStatusCompleted, taskID,
	)
	return err
}

func (r *TaskRepository) DeleteAllByUser(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE user_id = $1`, userID)
	return err
}
