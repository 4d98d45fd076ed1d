package dto

import (
	"encoding/json"
	"time"

	"todoList/internal/models/todo"
)

type CreateTodoRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// UpdateTodoRequest различает "ключа нет в запросе" и "ключ есть со значением
// null или пустой строкой". Обычный Unmarshal в указатели этой разницы не видит,
// поэтому тело разбирается через map[string]json.RawMessage.
type UpdateTodoRequest struct {
	Title       *string
	Description *string
	Completed   *bool

	TitleSet       bool
	DescriptionSet bool
	CompletedSet   bool
}

func (r *UpdateTodoRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["title"]; ok {
		r.TitleSet = true
		if err := json.Unmarshal(v, &r.Title); err != nil {
			return err
		}
	}
	if v, ok := raw["description"]; ok {
		r.DescriptionSet = true
		if err := json.Unmarshal(v, &r.Description); err != nil {
			return err
		}
	}
	if v, ok := raw["completed"]; ok {
		r.CompletedSet = true
		if err := json.Unmarshal(v, &r.Completed); err != nil {
			return err
		}
	}
	return nil
}

// Options переводит присутствовавшие поля в опции частичного обновления.
// title:null превращается в пустую строку и дальше срезается валидацией,
// completed:null считается отсутствующим - NULL в NOT NULL колонку не кладём.
func (r *UpdateTodoRequest) Options() []todo.PatchOption {
	options := []todo.PatchOption{}

	if r.TitleSet {
		title := ""
		if r.Title != nil {
			title = *r.Title
		}
		options = append(options, todo.WithTitle(title))
	}
	if r.DescriptionSet {
		options = append(options, todo.WithDescription(r.Description))
	}
	if r.CompletedSet && r.Completed != nil {
		options = append(options, todo.WithCompleted(*r.Completed))
	}
	return options
}

type TodoResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromTodo(t *todo.Todo) TodoResponse {
	return TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func FromTodoList(todos []*todo.Todo) []TodoResponse {
	result := make([]TodoResponse, len(todos))
	for i, t := range todos {
		result[i] = FromTodo(t)
	}
	return result
}
