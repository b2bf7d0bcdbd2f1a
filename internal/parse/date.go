package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DateOrder says how the two leading numeric fields of a header date are read.
type DateOrder string

const (
	DayFirst   DateOrder = "dmy"
	MonthFirst DateOrder = "mdy"
	// Auto picks per date: a leading field above 12 must be a day, a
	// middle field above 12 means month-first, anything else is day-first.
	Auto DateOrder = "auto"
)

// ParseDateOrder maps a config value to a DateOrder, defaulting to DayFirst.
func ParseDateOrder(s string) (DateOrder, error) {
	switch DateOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", DayFirst:
		return DayFirst, nil
	case MonthFirst:
		return MonthFirst, nil
	case Auto:
		return Auto, nil
	default:
		return DayFirst, fmt.Errorf("unknown date order %q", s)
	}
}

var dateSepRe = regexp.MustCompile(`[/\-.]`)

// NormalizeDate rewrites a three-field numeric date as YYYY-MM-DD. Anything
// else is returned unchanged. Values are not range-checked.
func NormalizeDate(raw string, order DateOrder) string {
	parts := dateSepRe.Split(raw, -1)
	if len(parts) != 3 {
		return raw
	}

	day, month, year := parts[0], parts[1], parts[2]
	switch order {
	case MonthFirst:
		day, month = month, day
	case Auto:
		first, err1 := strconv.Atoi(parts[0])
		second, err2 := strconv.Atoi(parts[1])
		if err1 == nil && err2 == nil && first <= 12 && second > 12 {
			day, month = month, day
		}
	}

	if len(year) == 2 {
		year = "20" + year
	}
	return year + "-" + padTwo(month) + "-" + padTwo(day)
}

func padTwo(s string) string {
	if len(s) < 2 {
		return strings.Repeat("0", 2-len(s)) + s
	}
	return s
}

var hourRe = regexp.MustCompile(`(\d{1,2}):`)

// Hour extracts the hour of day (0-23) from a header time such as "9:05",
// "21:40" or "9:05 pm". Unparseable input yields 0.
func Hour(t string) int {
	m := hourRe.FindStringSubmatch(t)
	if m == nil {
		return 0
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}

	lower := strings.ToLower(t)
	if strings.Contains(lower, "pm") && hour < 12 {
		hour += 12
	}
	if strings.Contains(lower, "am") && hour == 12 {
		hour = 0
	}
	return hour
}
