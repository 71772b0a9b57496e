// utils/dates.go
package utils

import (
	"fmt"
	"time"
)

// DaysBetween counts calendar days from start to end, each read in its own location.
func DaysBetween(start, end time.Time) int {
	return int(civilDay(end).Sub(civilDay(start)).Hours() / 24)
}

func civilDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// RelativeDay labels a due day against today: "Hoje", "Amanhã", "em 3 dias", "há 2 dias".
func RelativeDay(today, day time.Time) string {
	n := DaysBetween(today, day)
	switch {
	case n == 0:
		return "Hoje"
	case n == 1:
		return "Amanhã"
	case n == -1:
		return "Ontem"
	case n > 1:
		return fmt.Sprintf("em %d dias", n)
	default:
		return fmt.Sprintf("há %d dias", -n)
	}
}
