package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Postgres(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	created, err := repo.GetOrCreateUser(ctx, 2001, "alice", "Alice", "")
	require.NoError(t, err)
	again, err := repo.GetOrCreateUser(ctx, 2001, "alice", "Alice", "")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	byTelegram, err := repo.GetUserByTelegramID(ctx, 2001)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byTelegram.ID)

	byID, err := repo.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2001), byID.TelegramID)

	_, err = repo.GetUserByID(ctx, created.ID+1000)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = repo.GetUserByTelegramID(ctx, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
