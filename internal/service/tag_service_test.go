package service

import (
	"context"
	"fmt"
	"testing"

	"telegram_tasks/internal/domain"
	"telegram_tasks/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagCreate(t *testing.T) {
	svc := NewTagService(newFakeTagStore())

	tag, err := svc.Create(context.Background(), 1, "  work  ")
	require.NoError(t, err)
	assert.Equal(t, "work", tag.Name)
	assert.NotZero(t, tag.ID)
}

func TestTagCreateEmptyName(t *testing.T) {
	svc := NewTagService(newFakeTagStore())

	_, err := svc.Create(context.Background(), 1, "   ")
	assert.ErrorIs(t, err, ErrEmptyTagName)
}

func TestTagCreateDuplicate(t *testing.T) {
	svc := NewTagService(newFakeTagStore())
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, "work")
	require.NoError(t, err)

	_, err = svc.Create(ctx, 1, "work")
	assert.ErrorIs(t, err, repository.ErrDuplicateTag)

	// same name for another user is fine
	_, err = svc.Create(ctx, 2, "work")
	assert.NoError(t, err)
}

func TestTagCreateQuota(t *testing.T) {
	svc := NewTagService(newFakeTagStore())
	ctx := context.Background()

	for i := 0; i < domain.MaxTagsPerUser; i++ {
		_, err := svc.Create(ctx, 1, fmt.Sprintf("tag%d", i))
		require.NoError(t, err)
	}

	_, err := svc.Create(ctx, 1, "overflow")
	assert.ErrorIs(t, err, repository.ErrTagLimit)

	// deleting one frees a slot
	tags, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, 1, tags[0].ID))

	_, err = svc.Create(ctx, 1, "overflow")
	assert.NoError(t, err)
}

func TestTagListSortedByName(t *testing.T) {
	svc := NewTagService(newFakeTagStore())
	ctx := context.Background()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := svc.Create(ctx, 1, name)
		require.NoError(t, err)
	}

	tags, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, tags, 3)
	assert.Equal(t, "alpha", tags[0].Name)
	assert.Equal(t, "mid", tags[1].Name)
	assert.Equal(t, "zeta", tags[2].Name)
}

func TestTagDeleteScopedToOwner(t *testing.T) {
	svc := NewTagService(newFakeTagStore())
	ctx := context.Background()

	tag, err := svc.Create(ctx, 1, "work")
	require.NoError(t, err)

	err = svc.Delete(ctx, 2, tag.ID)
	assert.ErrorIs(t, err, repository.ErrTagNotFound)
}
