package domain

import "time"

// TaskStatus is the task lifecycle state. Tasks start pending; completed
// and deleted are terminal.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusDeleted   TaskStatus = "deleted"
)

// Per-user caps. These match the limits the bot advertises to users.
const (
	MaxTagsPerUser         = 4
	MaxPendingTasksPerUser = 6
	MaxArchiveTasksPerUser = 5
)

type Task struct {
	ID        int64      `db:"id" json:"id"`
	UserID    int64      `db:"user_id" json:"-"`
	Title     string     `db:"title" json:"title"`
	Status    TaskStatus `db:"status" json:"status"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	DueDate   *time.Time `db:"due_date" json:"due_date"`
	Notified  bool       `db:"notified" json:"-"`

	// Tag names attached to the task, populated by list queries.
	Tags []string `json:"tags"`
}
