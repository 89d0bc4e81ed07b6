package scheduler

import (
	"context"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"
)

const defaultQueueKey = "reminders:due"

// Queue is a one-shot delayed job queue on a Redis sorted set. Members are
// task ids, scores are the absolute fire times. Jobs survive process
// restarts; they are never removed on task completion. The dispatcher
// re-validates task state at fire time instead.
type Queue struct {
	rdb *redis.Client
	key string
}

func NewQueue(rdb *redis.Client) *Queue {
	return &Queue{rdb: rdb, key: defaultQueueKey}
}

// Schedule enqueues a reminder for the task at the given wall-clock time.
// Scheduling the same task again moves its fire time.
func (q *Queue) Schedule(ctx context.Context, taskID int64, at time.Time) error {
	return q.rdb.ZAdd(ctx, q.key, redis.Z{
		Score:  float64(at.Unix()),
		Member: strconv.FormatInt(taskID, 10),
	}).Err()
}

// PopDue claims up to limit jobs due at or before now. A job counts as
// claimed only when this caller's ZREM removed it, so concurrent workers
// never deliver the same reminder twice.
func (q *Queue) PopDue(ctx context.Context, now time.Time, limit int64) ([]int64, error) {
	members, err := q.rdb.ZRangeByScore(ctx, q.key, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(now.Unix(), 10),
		Count: limit,
	}).Result()
	if err != nil {
		return nil, err
	}

	var claimed []int64
	for _, m := range members {
		removed, err := q.rdb.ZRem(ctx, q.key, m).Result()
		if err != nil {
			return claimed, err
		}
		if removed == 0 {
			continue
		}
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			// foreign member in the set, drop it
			continue
		}
		claimed = append(claimed, id)
	}
	return claimed, nil
}
