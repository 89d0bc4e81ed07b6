package repository

import (
	"context"

	"telegram_tasks/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// GetOrCreate inserts the user if absent. An existing username is never
// overwritten here.
func (r *UserRepository) GetOrCreate(ctx context.Context, telegramID int64, username string) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (telegram_id, username)
		 VALUES ($1, $2)
		 ON CONFLICT (telegram_id) DO UPDATE SET telegram_id = users.telegram_id
		 RETURNING telegram_id, username`,
		telegramID, username,
	).Scan(&u.TelegramID, &u.Username)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SetUsername updates the display name of an existing user.
func (r *UserRepository) SetUsername(ctx context.Context, telegramID int64, username string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET username = $1 WHERE telegram_id = $2`,
		username, telegramID,
	)
	return err
}
