package client_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"todoList/internal/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write([]byte(body))
	require.NoError(t, err)
}

func TestClient_ListTodos(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/todos", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))

		writeJSON(t, w, http.StatusOK, `{
			"success": true,
			"data": [
				{"id": 11, "title": "первая", "completed": false},
				{"id": 12, "title": "вторая", "completed": true}
			],
			"pagination": {"page": 2, "limit": 10, "total": 25, "totalPages": 3, "hasMore": true}
		}`)
	}))
	defer server.Close()

	api := client.New(server.URL)
	todos, pagination, err := api.ListTodos(context.Background(), 2, 10)

	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, int64(11), todos[0].ID)
	assert.Equal(t, "первая", todos[0].Title)
	assert.True(t, todos[1].Completed)

	require.NotNil(t, pagination)
	assert.Equal(t, 2, pagination.Page)
	assert.Equal(t, int64(25), pagination.Total)
	assert.True(t, pagination.HasMore)
}

func TestClient_CreateTodo(t *testing.T) {
	description := "подробности"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/todos", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var payload map[string]any
		require.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, "новая задача", payload["title"])
		assert.Equal(t, description, payload["description"])

		writeJSON(t, w, http.StatusCreated, `{
			"success": true,
			"data": {"id": 1, "title": "новая задача", "description": "подробности", "completed": false},
			"message": "Todo created successfully"
		}`)
	}))
	defer server.Close()

	api := client.New(server.URL)
	created, err := api.CreateTodo(context.Background(), "новая задача", &description)

	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	require.NotNil(t, created.Description)
	assert.Equal(t, description, *created.Description)
}

func TestClient_UpdateTodo_OmitsAbsentFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/todos/7", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var payload map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(body, &payload))
		// в теле только title, остальные ключи не отправляются вовсе
		assert.Contains(t, payload, "title")
		assert.NotContains(t, payload, "description")
		assert.NotContains(t, payload, "completed")

		writeJSON(t, w, http.StatusOK, `{
			"success": true,
			"data": {"id": 7, "title": "переименовано", "completed": false},
			"message": "Todo updated successfully"
		}`)
	}))
	defer server.Close()

	title := "переименовано"
	api := client.New(server.URL)
	updated, err := api.UpdateTodo(context.Background(), 7, client.TodoUpdate{Title: &title})

	require.NoError(t, err)
	assert.Equal(t, "переименовано", updated.Title)
}

func TestClient_ToggleTodo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/todos/3/toggle", r.URL.Path)

		writeJSON(t, w, http.StatusOK, `{
			"success": true,
			"data": {"id": 3, "title": "задача", "completed": true},
			"message": "Todo toggled successfully"
		}`)
	}))
	defer server.Close()

	api := client.New(server.URL)
	toggled, err := api.ToggleTodo(context.Background(), 3)

	require.NoError(t, err)
	assert.True(t, toggled.Completed)
}

func TestClient_DeleteTodo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/todos/9", r.URL.Path)

		writeJSON(t, w, http.StatusOK, `{"success": true, "message": "Todo deleted successfully"}`)
	}))
	defer server.Close()

	api := client.New(server.URL)
	assert.NoError(t, api.DeleteTodo(context.Background(), 9))
}

func TestClient_ErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, `{"success": false, "message": "Todo not found"}`)
	}))
	defer server.Close()

	api := client.New(server.URL)
	_, err := api.GetTodo(context.Background(), 999)

	require.Error(t, err)
	assert.EqualError(t, err, "Todo not found")
}

func TestClient_ErrorWithoutMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusInternalServerError, `{"success": false}`)
	}))
	defer server.Close()

	api := client.New(server.URL)
	_, err := api.GetTodo(context.Background(), 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
