package main

import (
	"context"
	"flag"
	"log"

	"todoList/internal/config"
	"todoList/internal/logger"
	"todoList/internal/repository/todo/postgres"
	"todoList/internal/seed"
)

// отдельная утилита: миграции + заливка демо-данных
// go run ./cmd/seed [-force] [-down]
func main() {
	force := flag.Bool("force", false, "очистить таблицу и залить демо-данные заново")
	down := flag.Bool("down", false, "откатить миграции и выйти")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("загрузка конфигурации: %v", err)
	}

	if err := logger.Init(cfg.Logging.Development); err != nil {
		log.Fatalf("инициализация логгера: %v", err)
	}
	defer logger.Sync()

	if *down {
		if err := postgres.MigrateDown(cfg.Database.URL); err != nil {
			logger.Error("Seed: Откат миграций не удался", err)
			return
		}
		return
	}

	if err := postgres.Migrate(cfg.Database.URL); err != nil {
		logger.Error("Seed: Миграции не применились", err)
		return
	}

	ctx := context.Background()
	storage, err := postgres.New(ctx, postgres.Config{
		URL:            cfg.Database.URL,
		MaxConnections: cfg.Database.MaxConnections,
		MinConnections: cfg.Database.MinConnections,
		IdleTimeout:    cfg.Database.IdleTimeout,
	})
	if err != nil {
		logger.Error("Seed: Не удалось подключиться к базе", err)
		return
	}
	defer storage.Close()

	seeder := seed.NewSeeder(storage)
	if err := seeder.Run(ctx, *force); err != nil {
		logger.Error("Seed: Заливка не удалась", err)
		return
	}
}
