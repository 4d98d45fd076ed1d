package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"todoList/internal/models/todo"
)

// Client - типизированная обёртка над HTTP API. Хранит только базовый адрес,
// всё состояние коллекции живёт выше, в контроллере.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasMore    bool  `json:"hasMore"`
}

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Pagination *Pagination     `json:"pagination"`
}

// TodoUpdate - частичное обновление: nil-поле не попадает в тело запроса
type TodoUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("кодирование тела запроса: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("создание запроса: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("запрос %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("разбор ответа %s %s: %w", method, path, err)
	}

	if !env.Success {
		message := env.Message
		if message == "" {
			message = fmt.Sprintf("запрос завершился со статусом %d", resp.StatusCode)
		}
		return nil, errors.New(message)
	}
	return &env, nil
}

func (c *Client) ListTodos(ctx context.Context, page, limit int) ([]todo.Todo, *Pagination, error) {
	path := fmt.Sprintf("/todos?page=%d&limit=%d", page, limit)
	env, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, nil, err
	}

	var todos []todo.Todo
	if err := json.Unmarshal(env.Data, &todos); err != nil {
		return nil, nil, fmt.Errorf("разбор списка todo: %w", err)
	}
	return todos, env.Pagination, nil
}

func (c *Client) GetTodo(ctx context.Context, id int64) (*todo.Todo, error) {
	env, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/todos/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeTodo(env)
}

func (c *Client) CreateTodo(ctx context.Context, title string, description *string) (*todo.Todo, error) {
	body := map[string]any{"title": title}
	if description != nil {
		body["description"] = *description
	}

	env, err := c.do(ctx, http.MethodPost, "/todos", body)
	if err != nil {
		return nil, err
	}
	return decodeTodo(env)
}

func (c *Client) UpdateTodo(ctx context.Context, id int64, update TodoUpdate) (*todo.Todo, error) {
	env, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/todos/%d", id), update)
	if err != nil {
		return nil, err
	}
	return decodeTodo(env)
}

func (c *Client) ToggleTodo(ctx context.Context, id int64) (*todo.Todo, error) {
	env, err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/todos/%d/toggle", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeTodo(env)
}

func (c *Client) DeleteTodo(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/todos/%d", id), nil)
	return err
}

func decodeTodo(env *envelope) (*todo.Todo, error) {
	var t todo.Todo
	if err := json.Unmarshal(env.Data, &t); err != nil {
		return nil, fmt.Errorf("разбор todo: %w", err)
	}
	return &t, nil
}
