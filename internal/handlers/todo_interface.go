package handlers

import (
	"context"

	"todoList/internal/models/todo"
	"todoList/internal/service"
)

type Service interface {
	HealthCheck(ctx context.Context) error
	ListTodos(ctx context.Context, page, limit int) ([]*todo.Todo, *service.Pagination, error)
	GetTodoByID(ctx context.Context, id int64) (*todo.Todo, error)
	CreateTodo(ctx context.Context, title string, description *string) (*todo.Todo, error)
	UpdateTodo(ctx context.Context, id int64, options ...todo.PatchOption) (*todo.Todo, error)
	ToggleTodo(ctx context.Context, id int64) (*todo.Todo, error)
	DeleteTodo(ctx context.Context, id int64) error
}
