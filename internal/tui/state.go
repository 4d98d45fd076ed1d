package tui

import (
	"todoList/internal/models/todo"
)

// Чистые переходы над локальной коллекцией. Коллекция - кэш,
// авторитетная копия всегда на сервере: каждая функция строит
// новое состояние из ответа сервера, ничего не досчитывая локально.

// visible - производная проекция фильтра, коллекцию не трогает
func visible(todos []todo.Todo, filter todo.Filter) []todo.Todo {
	if filter == todo.FilterAll {
		return todos
	}

	wantCompleted := filter == todo.FilterCompleted
	result := []todo.Todo{}
	for _, t := range todos {
		if t.Completed == wantCompleted {
			result = append(result, t)
		}
	}
	return result
}

// prepend ставит серверную запись в начало, как и сортировка сервера
func prepend(todos []todo.Todo, t todo.Todo) []todo.Todo {
	result := make([]todo.Todo, 0, len(todos)+1)
	result = append(result, t)
	result = append(result, todos...)
	return result
}

// replaceByID подменяет запись целиком серверной копией,
// локальный флаг никогда не инвертируется на месте
func replaceByID(todos []todo.Todo, t todo.Todo) []todo.Todo {
	result := make([]todo.Todo, len(todos))
	for i, existing := range todos {
		if existing.ID == t.ID {
			result[i] = t
		} else {
			result[i] = existing
		}
	}
	return result
}

func removeByID(todos []todo.Todo, id int64) []todo.Todo {
	result := []todo.Todo{}
	for _, t := range todos {
		if t.ID != id {
			result = append(result, t)
		}
	}
	return result
}

func cycleFilter(filter todo.Filter) todo.Filter {
	switch filter {
	case todo.FilterAll:
		return todo.FilterActive
	case todo.FilterActive:
		return todo.FilterCompleted
	default:
		return todo.FilterAll
	}
}

func counts(todos []todo.Todo) (active, completed int) {
	for _, t := range todos {
		if t.Completed {
			completed++
		} else {
			active++
		}
	}
	return active, completed
}
