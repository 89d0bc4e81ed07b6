package service

import (
	"context"
	"strings"

	"telegram_tasks/internal/domain"
)

type TagService struct {
	tags TagStore
}

func NewTagService(tags TagStore) *TagService {
	return &TagService{tags: tags}
}

func (s *TagService) List(ctx context.Context, userID int64) ([]*domain.Tag, error) {
	return s.tags.ListByUser(ctx, userID)
}

// Create adds a tag for the user. Check order is fixed for deterministic
// error reporting: empty name, then the per-user cap, then duplicates
// (the latter two inside the store transaction).
func (s *TagService) Create(ctx context.Context, userID int64, name string) (*domain.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyTagName
	}

	tag := &domain.Tag{UserID: userID, Name: name}
	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *TagService) Delete(ctx context.Context, userID, tagID int64) error {
	return s.tags.Delete(ctx, userID, tagID)
}
