package domain

import (
	"time"
)

// Exercise представляет запись о выполненном упражнении,
// соответствует таблице exercises в бд
type Exercise struct {
	ID          string    `json:"_id" db:"id" gorm:"type:uuid;primaryKey"`
	UserID      string    `json:"userId" db:"user_id" gorm:"type:uuid;index;not null"`
	Description string    `json:"description" db:"description"`
	Duration    float64   `json:"duration" db:"duration"`
	Date        time.Time `json:"date" db:"date"`
	CreatedAt   time.Time `json:"-" db:"created_at"`
}

func (Exercise) TableName() string {
	return "exercises"
}

// LogEntry — проекция упражнения для журнала пользователя (без идентификаторов)
type LogEntry struct {
	Description string    `json:"description"`
	Duration    float64   `json:"duration"`
	Date        time.Time `json:"date"`
}

// LogFilter ограничивает выборку журнала.
// From и To включительные (по календарным дням), Limit <= 0 — без ограничения.
type LogFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

// UpperBound возвращает исключающую верхнюю границу для To: начало следующего дня.
func (f LogFilter) UpperBound() *time.Time {
	if f.To == nil {
		return nil
	}
	next := StartOfDay(*f.To).AddDate(0, 0, 1)
	return &next
}

// LowerBound возвращает начало дня From.
func (f LogFilter) LowerBound() *time.Time {
	if f.From == nil {
		return nil
	}
	start := StartOfDay(*f.From)
	return &start
}
