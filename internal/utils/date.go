package utils

import (
	"fmt"
	"time"
)

const DayFormat = "2006-01-02"

// StartCurrentDay возвращает новую дату, где время установлено на 00:00, а таймзона остается прежней.
func StartCurrentDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseDay парсит календарную дату в формате "2006-01-02".
// Ключи кэша доступности строятся из этой строки, поэтому формат строгий.
func ParseDay(str string) (time.Time, error) {
	parsedDate, err := time.Parse(DayFormat, str)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse day: %v", err)
	}

	return parsedDate, nil
}

func FormatDay(t time.Time) string {
	return t.Format(DayFormat)
}
