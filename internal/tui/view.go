package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const boxUnchecked = "☐"
const boxChecked = "☑"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	doneStyle     = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("241"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m Model) View() string {
	var b strings.Builder

	active, completed := counts(m.todos)
	header := fmt.Sprintf("%s   %s %d  %s %d  %s %d   [%s]",
		titleStyle.Render("Todos"),
		successStyle.Render(boxChecked), completed,
		pendingStyle.Render("•"), active,
		accentStyle.Render("Всего"), len(m.todos),
		accentStyle.Render(string(m.filter)),
	)
	b.WriteString(header)
	b.WriteString("\n\n")

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render("✗ " + m.errMsg))
		b.WriteString("\n\n")
	}

	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteString(mutedStyle.Render(" загрузка..."))
		b.WriteString("\n\n")
	}

	rows := visible(m.todos, m.filter)
	if len(rows) == 0 && !m.loading {
		b.WriteString(mutedStyle.Render("  пусто"))
		b.WriteString("\n")
	}

	for i, t := range rows {
		box := mutedStyle.Render(boxUnchecked)
		text := t.Title
		if t.Completed {
			box = successStyle.Render(boxChecked)
			text = doneStyle.Render(t.Title)
		}

		prefix := "  "
		if i == m.cursor && m.mode == modeList {
			prefix = selectedStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", prefix, box, text))
	}

	if m.hasMore {
		b.WriteString(mutedStyle.Render("\n  n - следующая страница"))
		b.WriteString("\n")
	}

	switch m.mode {
	case modeAdding:
		b.WriteString("\n" + accentStyle.Render("Новая задача:") + "\n" + m.input.View() + "\n")
	case modeEditing:
		b.WriteString("\n" + accentStyle.Render("Редактирование:") + "\n" + m.input.View() + "\n")
	case modeConfirmDelete:
		b.WriteString("\n" + errorStyle.Render("Удалить задачу? (y/n)") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("a добавить • e изменить • space/enter отметить • d удалить • f фильтр • r обновить • q выход"))
	b.WriteString("\n")

	return b.String()
}
