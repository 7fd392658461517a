package repository

import (
	"context"
	"testing"
	"time"
	"todo_api/internal/common"
	"todo_api/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUserRepository_DuplicateUsername(t *testing.T) {
	t.Parallel()
	r := NewMemoryUserRepository()
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, &model.User{ID: "u1", Username: "alice"}))
	err := r.Create(ctx, &model.User{ID: "u2", Username: "alice"})
	require.ErrorIs(t, err, common.ErrDuplicateUser)

	// The failed create left no second record.
	_, err = r.FindByID(ctx, "u2")
	require.ErrorIs(t, err, common.ErrNotFound)

	user, err := r.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

func TestMemoryTodoRepository_OwnerScoping(t *testing.T) {
	t.Parallel()
	r := NewMemoryTodoRepository()
	ctx := context.Background()

	base := time.Now().UTC()
	for i, id := range []string{"t1", "t2", "t3"} {
		require.NoError(t, r.Create(ctx, &model.Todo{
			ID:        id,
			UserID:    "alice",
			Title:     id,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}
	require.NoError(t, r.Create(ctx, &model.Todo{ID: "b1", UserID: "bob", Title: "b1", CreatedAt: base}))

	todos, err := r.FindByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, todos, 3)
	assert.Equal(t, "t3", todos[0].ID, "newest first")
	assert.Equal(t, "t1", todos[2].ID)

	_, err = r.FindByIDAndOwner(ctx, "t1", "bob")
	require.ErrorIs(t, err, common.ErrNotFound)

	err = r.Update(ctx, &model.Todo{ID: "t1", UserID: "bob", Title: "stolen"})
	require.ErrorIs(t, err, common.ErrNotFound)

	err = r.DeleteByIDAndOwner(ctx, "t1", "bob")
	require.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, r.DeleteByIDAndOwner(ctx, "t1", "alice"))
	_, err = r.FindByIDAndOwner(ctx, "t1", "alice")
	require.ErrorIs(t, err, common.ErrNotFound)
}
