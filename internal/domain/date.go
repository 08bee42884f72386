package domain

import (
	"fmt"
	"strings"
	"time"
)

// DisplayDateLayout — формат даты в ответе на добавление упражнения, например "Mon, 01 Jan 2024"
const DisplayDateLayout = "Mon, 02 Jan 2006"

var inputDateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate разбирает дату из запроса. Невозможные календарные даты
// (например 2024-02-30) отклоняются.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range inputDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

// FormatDate рендерит дату в DisplayDateLayout.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DisplayDateLayout)
}

// StartOfDay обрезает время до полуночи UTC.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
