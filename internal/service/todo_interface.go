package service

import (
	"context"

	"todoList/internal/models/todo"
)

type TodoRepository interface {
	Create(ctx context.Context, t *todo.Todo) error
	GetByID(ctx context.Context, id int64) (*todo.Todo, error)
	List(ctx context.Context, page, limit int) ([]*todo.Todo, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id int64, patch *todo.Patch) (*todo.Todo, error)
	Toggle(ctx context.Context, id int64) (*todo.Todo, error)
	Delete(ctx context.Context, id int64) error
	HealthCheck(ctx context.Context) error
}
