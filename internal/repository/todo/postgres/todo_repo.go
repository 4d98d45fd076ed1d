package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"todoList/internal/logger"
	"todoList/internal/models/todo"
	repo "todoList/internal/repository"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Config struct {
	URL            string
	MaxConnections int32
	MinConnections int32
	IdleTimeout    time.Duration
}

type Storage struct {
	pool *pgxpool.Pool
}

// squirrel собирает только динамические запросы, остальное - обычный SQL
var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func New(ctx context.Context, cfg Config) (*Storage, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		logger.Error("Repository: Ошибка разбора строки подключения", err)
		return nil, fmt.Errorf("разбор строки подключения: %w", err)
	}

	if cfg.MaxConnections > 0 {
		poolConfig.MaxConns = cfg.MaxConnections
	}
	if cfg.MinConnections > 0 {
		poolConfig.MinConns = cfg.MinConnections
	}
	if cfg.IdleTimeout > 0 {
		poolConfig.MaxConnIdleTime = cfg.IdleTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("Repository: Ошибка создания пула", err)
		return nil, fmt.Errorf("создание пула: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Error("Repository: Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	logger.Info("Repository: Успешное подключение к PostgreSQL")
	return &Storage{pool: pool}, nil
}

func (s *Storage) Close() {
	s.pool.Close()
	logger.Info("Repository: Закрытие всех соединений PostgreSQL")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

const todoColumns = `id, title, description, completed, created_at, updated_at`

func scanTodo(row pgx.Row, t *todo.Todo) error {
	return row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Completed,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
}

// Create заполняет серверные поля прямо в переданной структуре.
// completed вставляется явно ради сидера, сервис всегда передаёт false.
func (s *Storage) Create(ctx context.Context, t *todo.Todo) error {
	start := time.Now()

	query := `INSERT INTO todos (title, description, completed)
				VALUES ($1, $2, $3)
				RETURNING ` + todoColumns

	err := scanTodo(s.pool.QueryRow(ctx, query, t.Title, t.Description, t.Completed), t)
	if err != nil {
		logger.Error("Repository: Не удалось добавить todo", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление todo: %w", err)
	}

	if time.Since(start) > time.Millisecond*50 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) GetByID(ctx context.Context, id int64) (*todo.Todo, error) {
	start := time.Now()

	query := `SELECT ` + todoColumns + `
				FROM todos
				WHERE id = $1`

	t := &todo.Todo{}
	err := scanTodo(s.pool.QueryRow(ctx, query, id), t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить todo", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение todo: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return t, nil
}

// List отдаёт страницу в обратном хронологическом порядке.
// id в ORDER BY держит порядок стабильным при одинаковых created_at.
func (s *Storage) List(ctx context.Context, page, limit int) ([]*todo.Todo, error) {
	start := time.Now()
	offset := (page - 1) * limit

	query := `SELECT ` + todoColumns + `
				FROM todos
				ORDER BY created_at DESC, id DESC
				LIMIT $1 OFFSET $2`

	rows, err := s.pool.Query(ctx, query, limit, offset)
	if err != nil {
		logger.Error("Repository: Не удалось получить список todo", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение списка todo: %w", err)
	}
	defer rows.Close()

	todos := []*todo.Todo{}
	for rows.Next() {
		t := &todo.Todo{}
		if err := scanTodo(rows, t); err != nil {
			logger.Warn("Repository: Ошибка сканирования todo", zap.Error(err))
			continue
		}
		todos = append(todos, t)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	if time.Since(start) > time.Millisecond*50+time.Millisecond*10*time.Duration(limit) {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return todos, nil
}

// Count - независимый полный подсчёт, не связанный транзакцией со страницей
func (s *Storage) Count(ctx context.Context) (int64, error) {
	var total int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM todos`).Scan(&total)
	if err != nil {
		logger.Error("Repository: Не удалось посчитать todo", err)
		return 0, fmt.Errorf("подсчёт todo: %w", err)
	}
	return total, nil
}

// Update собирает SET только из явно присутствовавших полей
func (s *Storage) Update(ctx context.Context, id int64, patch *todo.Patch) (*todo.Todo, error) {
	start := time.Now()

	builder := qb.Update("todos")
	for _, f := range patch.Fields() {
		builder = builder.Set(f.Column, f.Value)
	}
	builder = builder.
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + todoColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		logger.Error("Repository: Не удалось собрать запрос обновления", err)
		return nil, fmt.Errorf("сборка запроса обновления: %w", err)
	}

	t := &todo.Todo{}
	if err := scanTodo(s.pool.QueryRow(ctx, query, args...), t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось обновить todo", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("обновление todo: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}
	return t, nil
}

// Toggle - единственное место, где атомарность решает:
// отрицание считается в самом UPDATE, без чтения текущего значения
func (s *Storage) Toggle(ctx context.Context, id int64) (*todo.Todo, error) {
	start := time.Now()

	query := `UPDATE todos
				SET completed = NOT completed,
					updated_at = now()
				WHERE id = $1
				RETURNING ` + todoColumns

	t := &todo.Todo{}
	if err := scanTodo(s.pool.QueryRow(ctx, query, id), t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось переключить todo", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("переключение todo: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}
	return t, nil
}

func (s *Storage) Delete(ctx context.Context, id int64) error {
	start := time.Now()

	tag, err := s.pool.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		logger.Error("Repository: Не удалось удалить todo", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("удаление todo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

// DeleteAll нужен только сидеру для принудительной перезаливки
func (s *Storage) DeleteAll(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM todos`); err != nil {
		logger.Error("Repository: Не удалось очистить таблицу", err)
		return fmt.Errorf("очистка таблицы: %w", err)
	}
	return nil
}
