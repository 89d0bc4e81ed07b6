package repository

import (
	"context"
	"errors"

	"telegram_tasks/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TagRepository struct {
	db *pgxpool.Pool
}

func NewTagRepository(db *pgxpool.Pool) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Tag, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, name FROM tags WHERE user_id = $1 ORDER BY name`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Tag
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name); err != nil {
			return nil, err
		}
		res = append(res, &t)
	}
	return res, rows.Err()
}

// Create inserts a tag for the user, enforcing the per-user cap and name
// uniqueness inside one serializable transaction so concurrent creates
// cannot overshoot the limit.
func (r *TagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var count int
	if err := tx.QueryRow(ctx,
		`SELECT count(*) FROM tags WHERE user_id = $1`, tag.UserID,
	).Scan(&count); err != nil {
		return err
	}
	if count >= domain.MaxTagsPerUser {
		return ErrTagLimit
	}

	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM tags WHERE user_id = $1 AND name = $2)`,
		tag.UserID, tag.Name,
	).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrDuplicateTag
	}

	if err := tx.QueryRow(ctx,
		`INSERT INTO tags (user_id, name) VALUES ($1, $2) RETURNING id`,
		tag.UserID, tag.Name,
	).Scan(&tag.ID); err != nil {
		// the unique constraint backs up the exists check under contention
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateTag
		}
		return err
	}

	return tx.Commit(ctx)
}

// Delete removes the tag if owned by the user. The affected-row count is
// the sole existence signal; task_tags rows go away via the FK cascade.
func (r *TagRepository) Delete(ctx context.Context, userID, tagID int64) error {
	res, err := r.db.Exec(ctx,
		`DELETE FROM tags WHERE id = $1 AND user_id = $2`,
		tagID, userID,
	)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrTagNotFound
	}
	return nil
}

func (r *TagRepository) DeleteAllByUser(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tags WHERE user_id = $1`, userID)
	return err
}
