package service

import (
	"context"

	"telegram_tasks/internal/domain"
)

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// GetOrCreate looks the user up by Telegram id, creating the row on first
// contact. An existing username is left as-is.
func (s *UserService) GetOrCreate(ctx context.Context, telegramID int64) (*domain.User, error) {
	return s.users.GetOrCreate(ctx, telegramID, "")
}

// Register ensures the user exists and, when a username is supplied,
// updates the display name.
func (s *UserService) Register(ctx context.Context, telegramID int64, username string) (*domain.User, error) {
	user, err := s.users.GetOrCreate(ctx, telegramID, username)
	if err != nil {
		return nil, err
	}
	if username != "" && user.Username != username {
		if err := s.users.SetUsername(ctx, telegramID, username); err != nil {
			return nil, err
		}
		user.Username = username
	}
	return user, nil
}
