package main

import (
	"fmt"
	"log"
	"os"

	"todoList/internal/client"
	"todoList/internal/config"
	"todoList/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("загрузка конфигурации: %v", err)
	}

	api := client.New(cfg.Client.BaseURL)

	p := tea.NewProgram(tui.New(api), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "ошибка интерфейса: %v\n", err)
		os.Exit(1)
	}
}
