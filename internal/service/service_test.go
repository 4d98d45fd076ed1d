package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"todoList/internal/logger"
	"todoList/internal/models/todo"
	"todoList/internal/repository"
	"todoList/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init(true)
	m.Run()
}

// MockTodoRepository - мок репозитория
type MockTodoRepository struct {
	mock.Mock
}

func (m *MockTodoRepository) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTodoRepository) Create(ctx context.Context, t *todo.Todo) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTodoRepository) GetByID(ctx context.Context, id int64) (*todo.Todo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*todo.Todo), args.Error(1)
}

func (m *MockTodoRepository) List(ctx context.Context, page, limit int) ([]*todo.Todo, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*todo.Todo), args.Error(1)
}

func (m *MockTodoRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTodoRepository) Update(ctx context.Context, id int64, patch *todo.Patch) (*todo.Todo, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*todo.Todo), args.Error(1)
}

func (m *MockTodoRepository) Toggle(ctx context.Context, id int64) (*todo.Todo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*todo.Todo), args.Error(1)
}

func (m *MockTodoRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ service.TodoRepository = (*MockTodoRepository)(nil)

func assertBusinessCode(t *testing.T, err error, code string) {
	t.Helper()
	var businessErr *service.BusinessError
	require.True(t, errors.As(err, &businessErr), "ожидалась бизнес-ошибка, получили: %v", err)
	assert.Equal(t, code, businessErr.Code)
}

// TestTodoService_CreateTodo тестирует создание с валидацией заголовка
func TestTodoService_CreateTodo(t *testing.T) {
	tests := []struct {
		name         string
		title        string
		description  *string
		setupMock    func(*MockTodoRepository)
		expectedCode string
		expectTitle  string
	}{
		{
			name:  "success - create todo",
			title: "Buy milk",
			setupMock: func(m *MockTodoRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(tt *todo.Todo) bool {
					return tt.Title == "Buy milk" && !tt.Completed
				})).Return(nil)
			},
			expectTitle: "Buy milk",
		},
		{
			name:  "success - title is trimmed",
			title: "  Buy milk  ",
			setupMock: func(m *MockTodoRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(tt *todo.Todo) bool {
					return tt.Title == "Buy milk"
				})).Return(nil)
			},
			expectTitle: "Buy milk",
		},
		{
			name:         "error - empty title",
			title:        "",
			setupMock:    func(m *MockTodoRepository) {},
			expectedCode: service.CodeValidation,
		},
		{
			name:         "error - whitespace title",
			title:        "   ",
			setupMock:    func(m *MockTodoRepository) {},
			expectedCode: service.CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTodoRepository)
			tt.setupMock(mockRepo)

			svc := service.NewTodoService(mockRepo)
			created, err := svc.CreateTodo(context.Background(), tt.title, tt.description)

			if tt.expectedCode != "" {
				assertBusinessCode(t, err, tt.expectedCode)
				mockRepo.AssertNotCalled(t, "Create")
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectTitle, created.Title)
				assert.False(t, created.Completed)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

// TestTodoService_UpdateTodo тестирует presence-семантику частичного обновления
func TestTodoService_UpdateTodo(t *testing.T) {
	existing := &todo.Todo{ID: 1, Title: "Old", CreatedAt: time.Now(), UpdatedAt: time.Now()}

	t.Run("error - no fields provided", func(t *testing.T) {
		mockRepo := new(MockTodoRepository)
		mockRepo.On("GetByID", mock.Anything, int64(1)).Return(existing, nil)
		svc := service.NewTodoService(mockRepo)

		_, err := svc.UpdateTodo(context.Background(), 1)

		assertBusinessCode(t, err, service.CodeNoFields)
		mockRepo.AssertNotCalled(t, "Update")
		mockRepo.AssertExpectations(t)
	})

	t.Run("error - empty title in patch", func(t *testing.T) {
		mockRepo := new(MockTodoRepository)
		mockRepo.On("GetByID", mock.Anything, int64(1)).Return(existing, nil)
		svc := service.NewTodoService(mockRepo)

		_, err := svc.UpdateTodo(context.Background(), 1, todo.WithTitle("   "))

		assertBusinessCode(t, err, service.CodeValidation)
		mockRepo.AssertNotCalled(t, "Update")
		mockRepo.AssertExpectations(t)
	})

	t.Run("error - todo not found", func(t *testing.T) {
		mockRepo := new(MockTodoRepository)
		mockRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, repository.ErrNotFound)
		svc := service.NewTodoService(mockRepo)

		_, err := svc.UpdateTodo(context.Background(), 99, todo.WithCompleted(true))

		assertBusinessCode(t, err, service.CodeNotFound)
		mockRepo.AssertNotCalled(t, "Update")
		mockRepo.AssertExpectations(t)
	})

	// несуществующий id важнее содержимого тела: сначала 404, потом валидация
	t.Run("error - not found wins over empty body", func(t *testing.T) {
		mockRepo := new(MockTodoRepository)
		mockRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, repository.ErrNotFound)
		svc := service.NewTodoService(mockRepo)

		_, err := svc.UpdateTodo(context.Background(), 99)

		assertBusinessCode(t, err, service.CodeNotFound)
		mockRepo.AssertNotCalled(t, "Update")
		mockRepo.AssertExpectations(t)
	})

	t.Run("error - not found wins over invalid title", func(t *testing.T) {
		mockRepo := new(MockTodoRepository)
		mockRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, repository.ErrNotFound)
		svc := service.NewTodoService(mockRepo)

		_, err := svc.UpdateTodo(context.Background(), 99, todo.WithTitle("   "))

		assertBusinessCode(t, err, service.CodeNotFound)
		mockRepo.AssertNotCalled(t, "Update")
		mockRepo.AssertExpectations(t)
	})

	t.Run("success - explicit null description applies", func(t *testing.T) {
		mockRepo := new(MockTodoRepository)
		mockRepo.On("GetByID", mock.Anything, int64(1)).Return(existing, nil)
		mockRepo.On("Update", mock.Anything, int64(1), mock.MatchedBy(func(p *todo.Patch) bool {
			fields := p.Fields()
			if len(fields) != 1 || fields[0].Column != todo.ColumnDescription {
				return false
			}
			value, ok := fields[0].Value.(*string)
			return ok && value == nil
		})).Return(&todo.Todo{ID: 1, Title: "Old", Description: nil}, nil)
		svc := service.NewTodoService(mockRepo)

		updated, err := svc.UpdateTodo(context.Background(), 1, todo.WithDescription(nil))

		require.NoError(t, err)
		assert.Nil(t, updated.Description)
		assert.Equal(t, "Old", updated.Title)
		mockRepo.AssertExpectations(t)
	})

	t.Run("success - title is trimmed in patch", func(t *testing.T) {
		mockRepo := new(MockTodoRepository)
		mockRepo.On("GetByID", mock.Anything, int64(1)).Return(existing, nil)
		mockRepo.On("Update", mock.Anything, int64(1), mock.MatchedBy(func(p *todo.Patch) bool {
			fields := p.Fields()
			return len(fields) == 1 && fields[0].Value == "New title"
		})).Return(&todo.Todo{ID: 1, Title: "New title"}, nil)
		svc := service.NewTodoService(mockRepo)

		updated, err := svc.UpdateTodo(context.Background(), 1, todo.WithTitle("  New title  "))

		require.NoError(t, err)
		assert.Equal(t, "New title", updated.Title)
		mockRepo.AssertExpectations(t)
	})
}

// TestTodoService_ListTodos тестирует нормализацию параметров и расчёт курсора
func TestTodoService_ListTodos(t *testing.T) {
	tests := []struct {
		name          string
		page, limit   int
		total         int64
		rows          int
		expectedPage  int
		expectedLimit int
		expectedPages int
		expectedMore  bool
	}{
		{"defaults on zero values", 0, 0, 25, 10, 1, 10, 3, true},
		{"defaults on negative values", -5, -1, 25, 10, 1, 10, 3, true},
		{"page 2 of 25/10", 2, 10, 25, 10, 2, 10, 3, true},
		{"page 3 of 25/10 - last", 3, 10, 25, 5, 3, 10, 3, false},
		{"page 4 of 25/10 - out of range", 4, 10, 25, 0, 4, 10, 3, false},
		{"empty table", 1, 10, 0, 0, 1, 10, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([]*todo.Todo, tt.rows)
			for i := range rows {
				rows[i] = &todo.Todo{ID: int64(i + 1), Title: "t"}
			}

			mockRepo := new(MockTodoRepository)
			mockRepo.On("Count", mock.Anything).Return(tt.total, nil)
			mockRepo.On("List", mock.Anything, tt.expectedPage, tt.expectedLimit).Return(rows, nil)
			svc := service.NewTodoService(mockRepo)

			todos, pagination, err := svc.ListTodos(context.Background(), tt.page, tt.limit)

			require.NoError(t, err)
			assert.Len(t, todos, tt.rows)
			assert.Equal(t, tt.expectedPage, pagination.Page)
			assert.Equal(t, tt.expectedLimit, pagination.Limit)
			assert.Equal(t, tt.total, pagination.Total)
			assert.Equal(t, tt.expectedPages, pagination.TotalPages)
			assert.Equal(t, tt.expectedMore, pagination.HasMore)
			mockRepo.AssertExpectations(t)
		})
	}

	t.Run("error - count fails", func(t *testing.T) {
		mockRepo := new(MockTodoRepository)
		mockRepo.On("Count", mock.Anything).Return(int64(0), errors.New("db down"))
		svc := service.NewTodoService(mockRepo)

		_, _, err := svc.ListTodos(context.Background(), 1, 10)

		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "List")
	})
}

// TestTodoService_ToggleTodo тестирует переключение
func TestTodoService_ToggleTodo(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockRepo := new(MockTodoRepository)
		mockRepo.On("Toggle", mock.Anything, int64(1)).Return(&todo.Todo{ID: 1, Completed: true}, nil)
		svc := service.NewTodoService(mockRepo)

		toggled, err := svc.ToggleTodo(context.Background(), 1)

		require.NoError(t, err)
		assert.True(t, toggled.Completed)
		mockRepo.AssertExpectations(t)
	})

	t.Run("error - not found", func(t *testing.T) {
		mockRepo := new(MockTodoRepository)
		mockRepo.On("Toggle", mock.Anything, int64(99)).Return(nil, repository.ErrNotFound)
		svc := service.NewTodoService(mockRepo)

		_, err := svc.ToggleTodo(context.Background(), 99)

		assertBusinessCode(t, err, service.CodeNotFound)
		mockRepo.AssertExpectations(t)
	})
}

// TestTodoService_DeleteTodo тестирует удаление
func TestTodoService_DeleteTodo(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockRepo := new(MockTodoRepository)
		mockRepo.On("Delete", mock.Anything, int64(1)).Return(nil)
		svc := service.NewTodoService(mockRepo)

		err := svc.DeleteTodo(context.Background(), 1)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("error - not found", func(t *testing.T) {
		mockRepo := new(MockTodoRepository)
		mockRepo.On("Delete", mock.Anything, int64(99)).Return(repository.ErrNotFound)
		svc := service.NewTodoService(mockRepo)

		err := svc.DeleteTodo(context.Background(), 99)

		assertBusinessCode(t, err, service.CodeNotFound)
		mockRepo.AssertExpectations(t)
	})
}

// TestTodoService_GetTodoByID тестирует получение по id
func TestTodoService_GetTodoByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockRepo := new(MockTodoRepository)
		mockRepo.On("GetByID", mock.Anything, int64(1)).Return(&todo.Todo{ID: 1, Title: "t"}, nil)
		svc := service.NewTodoService(mockRepo)

		got, err := svc.GetTodoByID(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ID)
	})

	t.Run("error - not found", func(t *testing.T) {
		mockRepo := new(MockTodoRepository)
		mockRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, repository.ErrNotFound)
		svc := service.NewTodoService(mockRepo)

		_, err := svc.GetTodoByID(context.Background(), 99)

		assertBusinessCode(t, err, service.CodeNotFound)
	})
}
