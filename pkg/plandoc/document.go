package plandoc

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// Document is a read-only view over a plan document. Anything that is not a
// JSON object reads as empty, so every accessor falls through to its default.
type Document struct {
	root gjson.Result
}

func Parse(doc string) Document {
	if !gjson.Valid(doc) {
		return Document{}
	}
	root := gjson.Parse(doc)
	if !root.IsObject() {
		return Document{}
	}
	return Document{root: root}
}

// String returns a non-empty scalar at path. Numbers and booleans are
// rendered as their JSON text.
func (d Document) String(path string) (string, bool) {
	return scalarString(d.root.Get(path))
}

// Int returns the value at path only when it is a positive JSON integer
// literal within the 32-bit range.
func (d Document) Int(path string) (int, bool) {
	return integer(d.root.Get(path))
}

// Decimal returns the value at path only when it is a JSON number.
func (d Document) Decimal(path string) (decimal.Decimal, bool) {
	return number(d.root.Get(path))
}

type Activity struct {
	Name        string
	Time        string
	Budget      decimal.Decimal
	HasBudget   bool
	Description string
}

type Day struct {
	Day        int
	Date       string
	Title      string
	Activities []Activity
}

// Days walks days[].activities[], skipping entries that are not objects.
func (d Document) Days() []Day {
	var days []Day
	d.root.Get("days").ForEach(func(_, day gjson.Result) bool {
		if !day.IsObject() {
			return true
		}
		entry := Day{}
		entry.Day, _ = integer(day.Get("day"))
		entry.Date, _ = scalarString(day.Get("date"))
		entry.Title, _ = scalarString(day.Get("title"))
		day.Get("activities").ForEach(func(_, act gjson.Result) bool {
			if !act.IsObject() {
				return true
			}
			a := Activity{}
			a.Name, _ = scalarString(act.Get("name"))
			a.Time, _ = scalarString(act.Get("time"))
			a.Description, _ = scalarString(act.Get("description"))
			a.Budget, a.HasBudget = number(act.Get("budget"))
			entry.Activities = append(entry.Activities, a)
			return true
		})
		days = append(days, entry)
		return true
	})
	return days
}

func scalarString(r gjson.Result) (string, bool) {
	switch r.Type {
	case gjson.String:
		if strings.TrimSpace(r.Str) == "" {
			return "", false
		}
		return r.Str, true
	case gjson.Number, gjson.True, gjson.False:
		return r.Raw, true
	default:
		return "", false
	}
}

// integer accepts only positive integer literals that fit in 32 bits.
func integer(r gjson.Result) (int, bool) {
	if r.Type != gjson.Number {
		return 0, false
	}
	v, err := strconv.ParseInt(r.Raw, 10, 32)
	if err != nil || v < 1 {
		return 0, false
	}
	return int(v), true
}

func number(r gjson.Result) (decimal.Decimal, bool) {
	if r.Type != gjson.Number {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(r.Raw)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
