package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dwa/backend/internal/model"
	"dwa/backend/internal/repository"
)

func TestUserStore_CreateAndLookup(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()

	u := &model.User{FullName: "Ada", Email: "ada@example.com", Password: "hash"}
	require.NoError(t, store.CreateUser(ctx, u))
	assert.Equal(t, int64(1), u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	byEmail, err := store.UserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada", byEmail.FullName)

	byID, err := store.UserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash", byID.Password)
}

func TestUserStore_DuplicateEmail(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, &model.User{Email: "a@b.c"}))
	err := store.CreateUser(ctx, &model.User{Email: "a@b.c"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestUserStore_NotFound(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()

	_, err := store.UserByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = store.UserByID(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
