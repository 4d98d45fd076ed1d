package seed

import (
	"context"
	"fmt"

	"todoList/internal/logger"
	"todoList/internal/models/todo"

	"go.uber.org/zap"
)

// Repository - ровно то, что нужно сидеру, остальной интерфейс хранилища не тянем
type Repository interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, t *todo.Todo) error
	DeleteAll(ctx context.Context) error
}

type sample struct {
	title       string
	description string
	completed   bool
}

// демо-данные, в рантайм-контракт не входят
var samples = []sample{
	{"Complete project documentation", "Write comprehensive documentation for the Todo List API including all endpoints and examples", false},
	{"Review pull requests", "Review and provide feedback on open PRs from team members", true},
	{"Update dependencies", "Check and update all packages to their latest stable versions", false},
	{"Write unit tests", "Add unit tests for all handlers to improve code coverage", false},
	{"Deploy to production", "Deploy the latest version to the production server and monitor for issues", true},
	{"Database backup setup", "Configure automated daily backups for the PostgreSQL database", false},
	{"Implement authentication", "Add JWT-based authentication to secure the API endpoints", false},
	{"Optimize database queries", "Review and optimize slow queries, add necessary indexes", false},
	{"Setup CI/CD pipeline", "Configure GitHub Actions for automated testing and deployment", true},
	{"Add error logging", "Integrate error tracking for production monitoring", false},
	{"Create API documentation", "Use Swagger/OpenAPI to create interactive API documentation", false},
	{"Implement rate limiting", "Add rate limiting to prevent API abuse and ensure fair usage", false},
	{"Add data validation", "Implement comprehensive input validation", true},
	{"Configure CORS properly", "Update CORS settings to only allow specific domains in production", true},
	{"Implement caching", "Add a caching layer to improve API response times", false},
	{"Add pagination", "Implement pagination for the list endpoint to handle large datasets", true},
	{"Write integration tests", "Add end-to-end integration tests for critical user flows", false},
	{"Add dark mode", "Implement dark mode theme option for better user experience", true},
	{"Implement search feature", "Add full-text search capability to find todos quickly", false},
	{"Add due dates", "Implement due date functionality with reminders", false},
}

type Seeder struct {
	repo Repository
}

func NewSeeder(repo Repository) Seeder {
	return Seeder{repo: repo}
}

// Run заливает демо-данные. Без force работаем только по пустой таблице.
func (s *Seeder) Run(ctx context.Context, force bool) error {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("проверка таблицы перед сидом: %w", err)
	}

	if total > 0 && !force {
		logger.Info("Seed: В таблице уже есть данные, пропускаем",
			zap.Int64("total", total))
		return nil
	}

	if force && total > 0 {
		logger.Info("Seed: Принудительная перезаливка, чистим таблицу",
			zap.Int64("total", total))
		if err := s.repo.DeleteAll(ctx); err != nil {
			return fmt.Errorf("очистка перед сидом: %w", err)
		}
	}

	inserted := 0
	completed := 0
	for _, sm := range samples {
		description := sm.description
		t := &todo.Todo{
			Title:       sm.title,
			Description: &description,
			Completed:   sm.completed,
		}
		if err := s.repo.Create(ctx, t); err != nil {
			return fmt.Errorf("вставка демо-записи %q: %w", sm.title, err)
		}
		inserted++
		if sm.completed {
			completed++
		}
	}

	logger.Info("Seed: Демо-данные залиты",
		zap.Int("total", inserted),
		zap.Int("completed", completed),
		zap.Int("active", inserted-completed))
	return nil
}
