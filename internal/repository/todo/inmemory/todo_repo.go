package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"todoList/internal/models/todo"
	repo "todoList/internal/repository"
)

// TodoStorage - репозиторий в памяти для тестов и режима repository.type=inmemory
type TodoStorage struct {
	storage map[int64]*todo.Todo
	mtx     *sync.RWMutex
	nextID  int64
}

func NewTodoStorage() *TodoStorage {
	return &TodoStorage{
		storage: make(map[int64]*todo.Todo),
		mtx:     &sync.RWMutex{},
		nextID:  1,
	}
}

func (s *TodoStorage) HealthCheck(ctx context.Context) error {
	return nil
}

func (s *TodoStorage) Create(ctx context.Context, t *todo.Todo) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	now := time.Now()
	t.ID = s.nextID
	s.nextID++
	t.CreatedAt = now
	t.UpdatedAt = now

	clone := *t
	s.storage[t.ID] = &clone
	return nil
}

func (s *TodoStorage) GetByID(ctx context.Context, id int64) (*todo.Todo, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	t, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	clone := *t
	return &clone, nil
}

func (s *TodoStorage) List(ctx context.Context, page, limit int) ([]*todo.Todo, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	all := make([]*todo.Todo, 0, len(s.storage))
	for _, t := range s.storage {
		clone := *t
		all = append(all, &clone)
	}

	// тот же порядок, что и в postgres: created_at DESC, id DESC
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	offset := (page - 1) * limit
	if offset >= len(all) {
		return []*todo.Todo{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *TodoStorage) Count(ctx context.Context) (int64, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return int64(len(s.storage)), nil
}

func (s *TodoStorage) Update(ctx context.Context, id int64, patch *todo.Patch) (*todo.Todo, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	t, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}

	for _, f := range patch.Fields() {
		switch f.Column {
		case todo.ColumnTitle:
			if title, ok := f.Value.(string); ok {
				t.Title = title
			}
		case todo.ColumnDescription:
			if description, ok := f.Value.(*string); ok {
				t.Description = description
			}
		case todo.ColumnCompleted:
			if completed, ok := f.Value.(bool); ok {
				t.Completed = completed
			}
		}
	}
	t.UpdatedAt = time.Now()

	clone := *t
	return &clone, nil
}

// Toggle инвертирует флаг под write-блокировкой, аналог атомарного UPDATE
func (s *TodoStorage) Toggle(ctx context.Context, id int64) (*todo.Todo, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	t, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}

	t.Completed = !t.Completed
	t.UpdatedAt = time.Now()

	clone := *t
	return &clone, nil
}

func (s *TodoStorage) Delete(ctx context.Context, id int64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.storage, id)
	return nil
}

func (s *TodoStorage) DeleteAll(ctx context.Context) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.storage = make(map[int64]*todo.Todo)
	return nil
}
