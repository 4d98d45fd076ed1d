package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"todoList/internal/logger"
	"todoList/internal/models/todo"
	"todoList/internal/repository"

	"go.uber.org/zap"
)

// здесь происходит проверка бизнес-правил: валидация заголовка,
// presence-семантика частичного обновления, расчёт пагинации

type TodoService struct {
	repo TodoRepository
}

func NewTodoService(repo TodoRepository) TodoService {
	return TodoService{
		repo: repo,
	}
}

func (s *TodoService) HealthCheck(ctx context.Context) error {
	return s.repo.HealthCheck(ctx)
}

func (s *TodoService) ListTodos(ctx context.Context, page, limit int) ([]*todo.Todo, *Pagination, error) {
	page, limit = NormalizePageLimit(page, limit)

	// total считается отдельным запросом и не связан транзакцией со страницей:
	// под конкурентной записью он может на мгновение разойтись с выборкой,
	// это принятое поведение
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("подсчёт todo: %w", err)
	}

	todos, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("получение списка todo: %w", err)
	}

	return todos, NewPagination(page, limit, total), nil
}

func (s *TodoService) GetTodoByID(ctx context.Context, id int64) (*todo.Todo, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Info("Service: Todo не найден", zap.Int64("target_id", id))
			return nil, NewNotFound(id)
		}
		return nil, fmt.Errorf("получение todo: %w", err)
	}
	return t, nil
}

func (s *TodoService) CreateTodo(ctx context.Context, title string, description *string) (*todo.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		logger.Info("Service: Пустой заголовок при создании")
		return nil, NewValidationError("title", "заголовок не может быть пустым")
	}

	t := &todo.Todo{
		Title:       title,
		Description: description,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("создание todo: %w", err)
	}
	return t, nil
}

func (s *TodoService) UpdateTodo(ctx context.Context, id int64, options ...todo.PatchOption) (*todo.Todo, error) {
	// существование проверяется раньше всего остального: по несуществующему
	// id отвечаем 404 даже на пустое или невалидное тело
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Info("Service: Todo не найден", zap.Int64("target_id", id))
			return nil, NewNotFound(id)
		}
		return nil, fmt.Errorf("получение todo: %w", err)
	}

	patch := todo.NewPatch(options...)
	if patch.Empty() {
		logger.Info("Service: Обновление без единого поля", zap.Int64("target_id", id))
		return nil, NewNoFieldsProvided()
	}

	if err := s.validatePatch(patch); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// запись успела исчезнуть между проверкой и записью
			return nil, NewNotFound(id)
		}
		return nil, fmt.Errorf("обновление todo: %w", err)
	}
	return updated, nil
}

// validatePatch нормализует заголовок на месте: trim и отказ на пустоту,
// чтобы инвариант "title никогда не пустой" держался и на обновлении
func (s *TodoService) validatePatch(patch *todo.Patch) error {
	fields := patch.Fields()
	for i := range fields {
		if fields[i].Column != todo.ColumnTitle {
			continue
		}
		title, _ := fields[i].Value.(string)
		title = strings.TrimSpace(title)
		if title == "" {
			return NewValidationError("title", "заголовок не может быть пустым")
		}
		fields[i].Value = title
	}
	return nil
}

func (s *TodoService) ToggleTodo(ctx context.Context, id int64) (*todo.Todo, error) {
	t, err := s.repo.Toggle(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Info("Service: Todo не найден", zap.Int64("target_id", id))
			return nil, NewNotFound(id)
		}
		return nil, fmt.Errorf("переключение todo: %w", err)
	}
	return t, nil
}

func (s *TodoService) DeleteTodo(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Info("Service: Todo не найден", zap.Int64("target_id", id))
			return NewNotFound(id)
		}
		return fmt.Errorf("удаление todo: %w", err)
	}
	return nil
}
