package inmemory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"todoList/internal/models/todo"
	repo "todoList/internal/repository"
	"todoList/internal/repository/todo/inmemory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorageWith(t *testing.T, titles ...string) *inmemory.TodoStorage {
	t.Helper()
	storage := inmemory.NewTodoStorage()
	for _, title := range titles {
		require.NoError(t, storage.Create(context.Background(), &todo.Todo{Title: title}))
	}
	return storage
}

func TestTodoStorage_Create(t *testing.T) {
	storage := inmemory.NewTodoStorage()
	ctx := context.Background()

	first := &todo.Todo{Title: "first"}
	require.NoError(t, storage.Create(ctx, first))

	assert.Equal(t, int64(1), first.ID)
	assert.False(t, first.Completed)
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)

	second := &todo.Todo{Title: "second"}
	require.NoError(t, storage.Create(ctx, second))
	assert.Equal(t, int64(2), second.ID)
}

func TestTodoStorage_GetByID(t *testing.T) {
	storage := newStorageWith(t, "a")
	ctx := context.Background()

	got, err := storage.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Title)

	_, err = storage.GetByID(ctx, 99)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestTodoStorage_Toggle(t *testing.T) {
	storage := newStorageWith(t, "a")
	ctx := context.Background()

	original, err := storage.GetByID(ctx, 1)
	require.NoError(t, err)
	require.False(t, original.Completed)

	time.Sleep(2 * time.Millisecond)
	once, err := storage.Toggle(ctx, 1)
	require.NoError(t, err)
	assert.True(t, once.Completed)
	assert.True(t, once.UpdatedAt.After(original.UpdatedAt))

	time.Sleep(2 * time.Millisecond)
	twice, err := storage.Toggle(ctx, 1)
	require.NoError(t, err)
	// двойное переключение возвращает исходное значение
	assert.Equal(t, original.Completed, twice.Completed)
	assert.True(t, twice.UpdatedAt.After(once.UpdatedAt))

	_, err = storage.Toggle(ctx, 99)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestTodoStorage_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("null description applies, rest untouched", func(t *testing.T) {
		storage := inmemory.NewTodoStorage()
		description := "keep me not"
		created := &todo.Todo{Title: "a", Description: &description}
		require.NoError(t, storage.Create(ctx, created))

		patch := todo.NewPatch(todo.WithDescription(nil))
		updated, err := storage.Update(ctx, created.ID, patch)
		require.NoError(t, err)

		assert.Nil(t, updated.Description)
		assert.Equal(t, "a", updated.Title)
		assert.False(t, updated.Completed)
	})

	t.Run("only present fields change", func(t *testing.T) {
		storage := newStorageWith(t, "a")

		patch := todo.NewPatch(todo.WithCompleted(true))
		updated, err := storage.Update(ctx, 1, patch)
		require.NoError(t, err)

		assert.True(t, updated.Completed)
		assert.Equal(t, "a", updated.Title)
	})

	t.Run("not found", func(t *testing.T) {
		storage := inmemory.NewTodoStorage()
		_, err := storage.Update(ctx, 99, todo.NewPatch(todo.WithCompleted(true)))
		assert.ErrorIs(t, err, repo.ErrNotFound)
	})
}

func TestTodoStorage_Delete(t *testing.T) {
	storage := newStorageWith(t, "a")
	ctx := context.Background()

	require.NoError(t, storage.Delete(ctx, 1))

	_, err := storage.GetByID(ctx, 1)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	assert.ErrorIs(t, storage.Delete(ctx, 1), repo.ErrNotFound)
}

func TestTodoStorage_List(t *testing.T) {
	ctx := context.Background()

	storage := inmemory.NewTodoStorage()
	for i := 1; i <= 25; i++ {
		require.NoError(t, storage.Create(ctx, &todo.Todo{Title: fmt.Sprintf("todo-%d", i)}))
	}

	total, err := storage.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)

	// порядок обратный хронологическому: свежие впереди
	page1, err := storage.List(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, page1, 10)
	assert.Equal(t, "todo-25", page1[0].Title)

	page2, err := storage.List(ctx, 2, 10)
	require.NoError(t, err)
	assert.Len(t, page2, 10)

	page3, err := storage.List(ctx, 3, 10)
	require.NoError(t, err)
	assert.Len(t, page3, 5)
	assert.Equal(t, "todo-1", page3[4].Title)

	// страница за границей - пустой срез, не ошибка
	page4, err := storage.List(ctx, 4, 10)
	require.NoError(t, err)
	assert.Empty(t, page4)
}

func TestTodoStorage_DeleteAll(t *testing.T) {
	storage := newStorageWith(t, "a", "b", "c")
	ctx := context.Background()

	require.NoError(t, storage.DeleteAll(ctx))

	total, err := storage.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)
}
