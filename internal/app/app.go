package app

import (
	"context"
	"fmt"
	"net/http"

	"todoList/internal/config"
	"todoList/internal/handlers"
	"todoList/internal/logger"
	"todoList/internal/middleware"
	"todoList/internal/repository/todo/inmemory"
	"todoList/internal/repository/todo/postgres"
	"todoList/internal/seed"
	"todoList/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type App struct {
	config    *config.Config
	server    *http.Server
	router    *chi.Mux
	service   service.TodoService
	shutdowns []func() // функции для graceful shutdown, выполняются в обратном порядке
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логирования...")
		logger.Sync()
	})

	repo, err := a.initRepository(ctx)
	if err != nil {
		return err
	}

	a.service = service.NewTodoService(repo)
	handler := handlers.NewTodoHandler(&a.service)

	a.router = a.initRouter(&handler)
	a.server = &http.Server{
		Addr:         a.config.ServerAddr(),
		Handler:      a.router,
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
	}

	return nil
}

func (a *App) initRepository(ctx context.Context) (service.TodoRepository, error) {
	switch a.config.Repository.Type {
	case config.RepoTypeInMemory:
		logger.Info("App: Репозиторий в памяти")
		storage := inmemory.NewTodoStorage()
		a.maybeSeed(ctx, storage)
		return storage, nil

	case config.RepoTypePostgres:
		if err := postgres.Migrate(a.config.Database.URL); err != nil {
			return nil, err
		}

		storage, err := postgres.New(ctx, postgres.Config{
			URL:            a.config.Database.URL,
			MaxConnections: a.config.Database.MaxConnections,
			MinConnections: a.config.Database.MinConnections,
			IdleTimeout:    a.config.Database.IdleTimeout,
		})
		if err != nil {
			return nil, err
		}
		a.shutdowns = append(a.shutdowns, storage.Close)

		a.maybeSeed(ctx, storage)
		return storage, nil

	default:
		return nil, fmt.Errorf("неизвестный тип репозитория: %q", a.config.Repository.Type)
	}
}

func (a *App) maybeSeed(ctx context.Context, repo seed.Repository) {
	if !a.config.Seed.Auto {
		return
	}
	seeder := seed.NewSeeder(repo)
	if err := seeder.Run(ctx, a.config.Seed.Force); err != nil {
		// сид - удобство для демо, сервер из-за него не падает
		logger.Error("App: Сид не удался", err)
	}
}

func (a *App) initRouter(handler *handlers.TodoHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.Recover)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.config.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	if a.config.Server.RateLimit > 0 {
		r.Use(middleware.RateLimit(a.config.Server.RateLimit))
	}

	r.Route("/todos", func(r chi.Router) {
		r.Get("/", handler.GetTodos)  // GET /todos
		r.Post("/", handler.PostTodo) // POST /todos

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handler.GetTodoByID)       // GET /todos/{id}
			r.Put("/", handler.UpdateTodoByID)    // PUT /todos/{id}
			r.Delete("/", handler.DeleteTodoByID) // DELETE /todos/{id}

			r.Patch("/toggle", handler.ToggleTodoByID) // PATCH /todos/{id}/toggle
		})
	})

	r.Get("/", handler.Root)
	r.Get("/health", handler.HealthCheck)
	r.NotFound(handler.NotFound)

	return r
}

func (a *App) Run() error {
	logger.Info("App: Сервер запущен на " + a.server.Addr)
	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("запуск сервера: %w", err)
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			logger.Error("App: Ошибка остановки сервера", err)
		}
	}

	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
}
