package tui

import (
	"context"
	"time"

	"todoList/internal/client"
	"todoList/internal/models/todo"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const requestTimeout = 10 * time.Second
const pageLimit = 10

// api - ровно те вызовы, которые нужны контроллеру
type api interface {
	ListTodos(ctx context.Context, page, limit int) ([]todo.Todo, *client.Pagination, error)
	CreateTodo(ctx context.Context, title string, description *string) (*todo.Todo, error)
	UpdateTodo(ctx context.Context, id int64, update client.TodoUpdate) (*todo.Todo, error)
	ToggleTodo(ctx context.Context, id int64) (*todo.Todo, error)
	DeleteTodo(ctx context.Context, id int64) error
}

type mode int

const (
	modeList mode = iota
	modeAdding
	modeEditing
	modeConfirmDelete
)

type Model struct {
	api api

	todos   []todo.Todo
	filter  todo.Filter
	loading bool
	errMsg  string

	page    int
	hasMore bool

	cursor int
	mode   mode
	editID int64

	input   textinput.Model
	spinner spinner.Model
}

func New(api api) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Новая задача..."
	ti.CharLimit = 200

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		api:     api,
		todos:   []todo.Todo{},
		filter:  todo.FilterAll,
		loading: true, // первая загрузка стартует из Init
		page:    1,
		input:   ti,
		spinner: sp,
	}
}

// сообщения от команд: каждое несёт авторитетную серверную копию

type todosLoadedMsg struct {
	todos   []todo.Todo
	page    int
	hasMore bool
	append  bool
}

type todoCreatedMsg struct{ todo todo.Todo }
type todoUpdatedMsg struct{ todo todo.Todo }
type todoToggledMsg struct{ todo todo.Todo }
type todoDeletedMsg struct{ id int64 }
type apiErrMsg struct{ err error }

func (m Model) loadCmd(page int, appendRows bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		todos, pagination, err := m.api.ListTodos(ctx, page, pageLimit)
		if err != nil {
			return apiErrMsg{err: err}
		}

		hasMore := false
		if pagination != nil {
			hasMore = pagination.HasMore
		}
		return todosLoadedMsg{todos: todos, page: page, hasMore: hasMore, append: appendRows}
	}
}

func (m Model) createCmd(title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		created, err := m.api.CreateTodo(ctx, title, nil)
		if err != nil {
			return apiErrMsg{err: err}
		}
		return todoCreatedMsg{todo: *created}
	}
}

func (m Model) updateTitleCmd(id int64, title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		updated, err := m.api.UpdateTodo(ctx, id, client.TodoUpdate{Title: &title})
		if err != nil {
			return apiErrMsg{err: err}
		}
		return todoUpdatedMsg{todo: *updated}
	}
}

func (m Model) toggleCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		toggled, err := m.api.ToggleTodo(ctx, id)
		if err != nil {
			return apiErrMsg{err: err}
		}
		return todoToggledMsg{todo: *toggled}
	}
}

func (m Model) deleteCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := m.api.DeleteTodo(ctx, id); err != nil {
			return apiErrMsg{err: err}
		}
		return todoDeletedMsg{id: id}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(1, false), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case todosLoadedMsg:
		m.loading = false
		m.errMsg = ""
		if msg.append {
			m.todos = append(m.todos, msg.todos...)
		} else {
			m.todos = msg.todos
		}
		m.page = msg.page
		m.hasMore = msg.hasMore
		m.clampCursor()
		return m, nil

	case todoCreatedMsg:
		m.loading = false
		m.errMsg = ""
		m.todos = prepend(m.todos, msg.todo)
		return m, nil

	case todoUpdatedMsg:
		m.loading = false
		m.errMsg = ""
		m.todos = replaceByID(m.todos, msg.todo)
		return m, nil

	case todoToggledMsg:
		m.loading = false
		m.errMsg = ""
		m.todos = replaceByID(m.todos, msg.todo)
		return m, nil

	case todoDeletedMsg:
		m.loading = false
		m.errMsg = ""
		m.todos = removeByID(m.todos, msg.id)
		m.clampCursor()
		return m, nil

	case apiErrMsg:
		// коллекция остаётся прежней, показываем только сообщение
		m.loading = false
		m.errMsg = msg.err.Error()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeAdding, modeEditing:
		return m.handleInputKey(msg)
	case modeConfirmDelete:
		return m.handleConfirmKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := visible(m.todos, m.filter)

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.errMsg = ""
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
		return m, nil

	case "r":
		m.loading = true
		return m, m.loadCmd(1, false)

	case "n":
		if !m.hasMore || m.loading {
			return m, nil
		}
		m.loading = true
		return m, m.loadCmd(m.page+1, true)

	case "f", "tab":
		m.filter = cycleFilter(m.filter)
		m.clampCursor()
		return m, nil

	case "a":
		m.mode = modeAdding
		m.input.SetValue("")
		m.input.Placeholder = "Новая задача..."
		m.input.Focus()
		return m, textinput.Blink

	case "e":
		if m.cursor >= len(rows) {
			return m, nil
		}
		current := rows[m.cursor]
		m.mode = modeEditing
		m.editID = current.ID
		m.input.SetValue(current.Title)
		m.input.Placeholder = "Заголовок..."
		m.input.Focus()
		return m, textinput.Blink

	case " ", "enter":
		if m.cursor >= len(rows) {
			return m, nil
		}
		m.loading = true
		return m, m.toggleCmd(rows[m.cursor].ID)

	case "d":
		if m.cursor >= len(rows) {
			return m, nil
		}
		// удаление только через явное подтверждение
		m.mode = modeConfirmDelete
		m.editID = rows[m.cursor].ID
		return m, nil
	}

	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.input.Blur()
		return m, nil

	case "enter":
		title := m.input.Value()
		m.input.Blur()

		if m.mode == modeEditing {
			id := m.editID
			m.mode = modeList
			m.loading = true
			return m, m.updateTitleCmd(id, title)
		}

		m.mode = modeList
		m.loading = true
		return m, m.createCmd(title)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id := m.editID
		m.mode = modeList
		m.loading = true
		return m, m.deleteCmd(id)

	case "n", "N", "esc":
		m.mode = modeList
		return m, nil
	}
	return m, nil
}

func (m *Model) clampCursor() {
	rows := visible(m.todos, m.filter)
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
