package todo

import (
	"time"
)

type Todo struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description" db:"description"`
	Completed   bool      `json:"completed" db:"completed"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type Filter string

const FilterAll Filter = "all"
const FilterActive Filter = "active"
const FilterCompleted Filter = "completed"

// имена колонок для частичного обновления
const ColumnTitle = "title"
const ColumnDescription = "description"
const ColumnCompleted = "completed"
