package service

import (
	"context"
	"testing"
	"time"
	"todo_api/internal/common"
	"todo_api/internal/domain/model"
	"todo_api/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTodoService() *TodoService {
	return NewTodoService(repository.NewMemoryTodoRepository())
}

func TestCreateTodo_Defaults(t *testing.T) {
	t.Parallel()
	s := newTodoService()

	todo, err := s.Create(context.Background(), "alice-id", CreateTodoRequest{Title: "buy milk"})
	require.NoError(t, err)
	assert.Equal(t, "alice-id", todo.UserID)
	assert.Equal(t, "buy milk", todo.Title)
	assert.False(t, todo.Completed)
	assert.Equal(t, model.PriorityMedium, todo.Priority)
	assert.Nil(t, todo.DueDate)
	assert.NotEmpty(t, todo.ID)
}

func TestCreateTodo_TitleRequired(t *testing.T) {
	t.Parallel()
	s := newTodoService()

	for _, title := range []string{"", "   "} {
		_, err := s.Create(context.Background(), "alice-id", CreateTodoRequest{Title: title})
		var verr *common.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "title is required", verr.Fields["title"])
	}
}

func TestCreateTodo_InvalidPriority(t *testing.T) {
	t.Parallel()
	s := newTodoService()

	_, err := s.Create(context.Background(), "alice-id", CreateTodoRequest{
		Title:    "buy milk",
		Priority: model.Priority("urgent"),
	})
	var verr *common.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "priority")
}

func TestListTodos_NewestFirstAndOwnerScoped(t *testing.T) {
	t.Parallel()
	s := newTodoService()
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		_, err := s.Create(ctx, "alice-id", CreateTodoRequest{Title: title})
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}
	_, err := s.Create(ctx, "bob-id", CreateTodoRequest{Title: "bob's"})
	require.NoError(t, err)

	todos, err := s.List(ctx, "alice-id")
	require.NoError(t, err)
	require.Len(t, todos, 3)
	assert.Equal(t, "third", todos[0].Title)
	assert.Equal(t, "second", todos[1].Title)
	assert.Equal(t, "first", todos[2].Title)

	bobs, err := s.List(ctx, "bob-id")
	require.NoError(t, err)
	require.Len(t, bobs, 1)
	assert.Equal(t, "bob's", bobs[0].Title)
}

func TestCrossUserAccessLooksLikeNotFound(t *testing.T) {
	t.Parallel()
	s := newTodoService()
	ctx := context.Background()

	todo, err := s.Create(ctx, "alice-id", CreateTodoRequest{Title: "buy milk"})
	require.NoError(t, err)

	_, err = s.Get(ctx, "bob-id", todo.ID)
	require.ErrorIs(t, err, common.ErrNotFound)

	_, err = s.Update(ctx, "bob-id", todo.ID, UpdateTodoRequest{Title: strPtr("stolen")})
	require.ErrorIs(t, err, common.ErrNotFound)

	err = s.Delete(ctx, "bob-id", todo.ID)
	require.ErrorIs(t, err, common.ErrNotFound)

	_, err = s.Toggle(ctx, "bob-id", todo.ID)
	require.ErrorIs(t, err, common.ErrNotFound)

	// The owner is untouched by all of the above.
	got, err := s.Get(ctx, "alice-id", todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "buy milk", got.Title)
}

func TestUpdateTodo_PartialFields(t *testing.T) {
	t.Parallel()
	s := newTodoService()
	ctx := context.Background()

	due := time.Now().UTC().Add(24 * time.Hour)
	todo, err := s.Create(ctx, "alice-id", CreateTodoRequest{
		Title:       "buy milk",
		Description: "two liters",
		Priority:    model.PriorityHigh,
		DueDate:     &due,
	})
	require.NoError(t, err)

	updated, err := s.Update(ctx, "alice-id", todo.ID, UpdateTodoRequest{Title: strPtr("buy oat milk")})
	require.NoError(t, err)

	// Omitted fields keep their previous values.
	assert.Equal(t, "buy oat milk", updated.Title)
	assert.Equal(t, "two liters", updated.Description)
	assert.Equal(t, model.PriorityHigh, updated.Priority)
	require.NotNil(t, updated.DueDate)
	assert.True(t, updated.DueDate.Equal(due))
	assert.False(t, updated.Completed)
	assert.Equal(t, todo.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(todo.UpdatedAt))
}

func TestUpdateTodo_EmptyTitleRejected(t *testing.T) {
	t.Parallel()
	s := newTodoService()
	ctx := context.Background()

	todo, err := s.Create(ctx, "alice-id", CreateTodoRequest{Title: "buy milk"})
	require.NoError(t, err)

	_, err = s.Update(ctx, "alice-id", todo.ID, UpdateTodoRequest{Title: strPtr("   ")})
	var verr *common.ValidationError
	require.ErrorAs(t, err, &verr)

	// The failed update changed nothing.
	got, err := s.Get(ctx, "alice-id", todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "buy milk", got.Title)
}

func TestToggleTodo(t *testing.T) {
	t.Parallel()
	s := newTodoService()
	ctx := context.Background()

	todo, err := s.Create(ctx, "alice-id", CreateTodoRequest{Title: "buy milk"})
	require.NoError(t, err)
	require.False(t, todo.Completed)

	once, err := s.Toggle(ctx, "alice-id", todo.ID)
	require.NoError(t, err)
	assert.True(t, once.Completed)

	twice, err := s.Toggle(ctx, "alice-id", todo.ID)
	require.NoError(t, err)
	assert.False(t, twice.Completed, "toggling twice restores the original value")
}

func TestDeleteTodo(t *testing.T) {
	t.Parallel()
	s := newTodoService()
	ctx := context.Background()

	todo, err := s.Create(ctx, "alice-id", CreateTodoRequest{Title: "buy milk"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "alice-id", todo.ID))

	_, err = s.Get(ctx, "alice-id", todo.ID)
	require.ErrorIs(t, err, common.ErrNotFound)

	err = s.Delete(ctx, "alice-id", todo.ID)
	require.ErrorIs(t, err, common.ErrNotFound)
}
