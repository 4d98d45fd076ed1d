package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"todoList/internal/handlers/dto"
	"todoList/internal/logger"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TodoHandler struct {
	TodoService Service
}

func NewTodoHandler(todoService Service) TodoHandler {
	return TodoHandler{
		TodoService: todoService,
	}
}

// parseID вытаскивает числовой id из пути, ошибка разбора - это 400
func parseID(r *http.Request) (int64, bool) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// parsePageParam возвращает дефолт на отсутствующее или кривое значение,
// список обязан открываться и без параметров
func parsePageParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		logger.Warn("HTTP: Неверное значение параметра, берём дефолт",
			zap.String("query", name),
			zap.String("raw", raw),
			zap.String("client_ip", r.RemoteAddr))
		return def
	}
	return value
}

func (h *TodoHandler) GetTodos(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	page := parsePageParam(r, "page", 1)
	limit := parsePageParam(r, "limit", 10)

	todos, pagination, err := h.TodoService.ListTodos(r.Context(), page, limit)
	if err != nil {
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "list_todos"),
			zap.String("client_ip", r.RemoteAddr))
		respondError(w, http.StatusInternalServerError, "Failed to fetch todos")
		return
	}

	logger.Info("HTTP_OUT: Список todo получен",
		zap.Int("count", len(todos)),
		zap.Int64("total", pagination.Total),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	respondPage(w, dto.FromTodoList(todos), pagination)
}

func (h *TodoHandler) GetTodoByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(r)
	if !ok {
		logger.Warn("HTTP: Не удалось получить id",
			zap.String("raw", chi.URLParam(r, "id")),
			zap.String("client_ip", r.RemoteAddr))
		respondError(w, http.StatusBadRequest, "id должен быть положительным числом")
		return
	}

	t, err := h.TodoService.GetTodoByID(r.Context(), id)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "get_todo"),
			zap.String("client_ip", r.RemoteAddr))
		respondError(w, http.StatusInternalServerError, "Failed to fetch todo")
		return
	}

	logger.Info("HTTP_OUT: Todo получен",
		zap.Int64("todo_id", t.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	respondData(w, http.StatusOK, dto.FromTodo(t), "")
}

func (h *TodoHandler) PostTodo(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))
		respondError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return
	}

	var request dto.CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		respondError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	t, err := h.TodoService.CreateTodo(r.Context(), request.Title, request.Description)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "create_todo"),
			zap.String("client_ip", r.RemoteAddr),
			zap.Duration("ms", time.Since(start)))
		respondError(w, http.StatusInternalServerError, "Failed to create todo")
		return
	}

	logger.Info("HTTP_OUT: Todo создан",
		zap.Int64("todo_id", t.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	respondData(w, http.StatusCreated, dto.FromTodo(t), "Todo created successfully")
}

func (h *TodoHandler) UpdateTodoByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(r)
	if !ok {
		logger.Warn("HTTP: Не удалось получить id",
			zap.String("raw", chi.URLParam(r, "id")),
			zap.String("client_ip", r.RemoteAddr))
		respondError(w, http.StatusBadRequest, "id должен быть положительным числом")
		return
	}

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))
		respondError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return
	}

	var request dto.UpdateTodoRequest
	decoder := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := decoder.Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		respondError(w, http.StatusBadRequest, "неверно переданы параметры обновления: "+err.Error())
		return
	}

	t, err := h.TodoService.UpdateTodo(r.Context(), id, request.Options()...)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: ошибка в Service", err,
			zap.String("operation", "update_todo"),
			zap.String("client_ip", r.RemoteAddr))
		respondError(w, http.StatusInternalServerError, "Failed to update todo")
		return
	}

	logger.Info("HTTP_OUT: Todo обновлён",
		zap.Int64("todo_id", t.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	respondData(w, http.StatusOK, dto.FromTodo(t), "Todo updated successfully")
}

func (h *TodoHandler) ToggleTodoByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(r)
	if !ok {
		logger.Warn("HTTP: Не удалось получить id",
			zap.String("raw", chi.URLParam(r, "id")),
			zap.String("client_ip", r.RemoteAddr))
		respondError(w, http.StatusBadRequest, "id должен быть положительным числом")
		return
	}

	t, err := h.TodoService.ToggleTodo(r.Context(), id)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: ошибка в Service", err,
			zap.String("operation", "toggle_todo"),
			zap.String("client_ip", r.RemoteAddr))
		respondError(w, http.StatusInternalServerError, "Failed to toggle todo")
		return
	}

	logger.Info("HTTP_OUT: Todo переключён",
		zap.Int64("todo_id", t.ID),
		zap.Bool("completed", t.Completed),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	respondData(w, http.StatusOK, dto.FromTodo(t), "Todo toggled successfully")
}

func (h *TodoHandler) DeleteTodoByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(r)
	if !ok {
		logger.Warn("HTTP: Не удалось получить id",
			zap.String("raw", chi.URLParam(r, "id")),
			zap.String("client_ip", r.RemoteAddr))
		respondError(w, http.StatusBadRequest, "id должен быть положительным числом")
		return
	}

	if err := h.TodoService.DeleteTodo(r.Context(), id); err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: ошибка в Service", err,
			zap.String("operation", "delete_todo"),
			zap.String("client_ip", r.RemoteAddr))
		respondError(w, http.StatusInternalServerError, "Failed to delete todo")
		return
	}

	logger.Info("HTTP_OUT: Todo удалён",
		zap.Int64("todo_id", id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	respondMessage(w, http.StatusOK, "Todo deleted successfully")
}

func (h *TodoHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	if err := h.TodoService.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: Хранилище недоступно", err)
		respondError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	respondMessage(w, http.StatusOK, "ok")
}

// Root - статический ответ живости, вне основного контракта
func (h *TodoHandler) Root(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Root check")

	respondJSON(w, http.StatusOK, Envelope{
		Success: true,
		Message: "Todo List API is running!",
		Data:    map[string]string{"timestamp": time.Now().Format(time.RFC3339)},
	})
}

func (h *TodoHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	logger.Warn("HTTP: Неизвестный маршрут",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))
	respondError(w, http.StatusNotFound, "Route not found")
}
