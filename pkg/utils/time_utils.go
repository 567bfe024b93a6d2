package utils

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseClockRange reads "HH:MM-HH:MM" on the given day in loc. ok is false
// when the text is not a well-formed range or the end is not after the start.
func ParseClockRange(day time.Time, text string, loc *time.Location) (start, end time.Time, ok bool) {
	parts := strings.Split(strings.ReplaceAll(text, " ", ""), "-")
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, false
	}
	from, err := time.Parse("15:04", parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse("15:04", parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	y, m, d := day.Date()
	start = time.Date(y, m, d, from.Hour(), from.Minute(), 0, 0, loc)
	end = time.Date(y, m, d, to.Hour(), to.Minute(), 0, 0, loc)
	if !end.After(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// DayOf resolves a plan day: an explicit YYYY-MM-DD date wins, otherwise the
// plan's creation date offset by dayNumber-1.
func DayOf(date string, dayNumber int, createdAt time.Time, loc *time.Location) time.Time {
	if parsed, err := time.ParseInLocation(DateLayout, strings.TrimSpace(date), loc); err == nil {
		return parsed
	}
	if dayNumber < 1 {
		dayNumber = 1
	}
	base := createdAt.In(loc)
	y, m, d := base.Date()
	return time.Date(y, m, d+dayNumber-1, 0, 0, 0, 0, loc)
}
