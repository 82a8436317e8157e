package domain

import (
	"fmt"
	"strings"
	"time"
)

// Weekday canonical day of week used to key recurring weekly hours
// The zero value is not a valid day
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// AllWeekdays Monday..Sunday in calendar order
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayNames = map[Weekday]struct {
	short string
	long  string
}{
	Monday:    {short: "mon", long: "Monday"},
	Tuesday:   {short: "tue", long: "Tuesday"},
	Wednesday: {short: "wed", long: "Wednesday"},
	Thursday:  {short: "thu", long: "Thursday"},
	Friday:    {short: "fri", long: "Friday"},
	Saturday:  {short: "sat", long: "Saturday"},
	Sunday:    {short: "sun", long: "Sunday"},
}

// IsValid reports whether d is one of the seven days
func (d Weekday) IsValid() bool {
	return d >= Monday && d <= Sunday
}

// ShortKey three-letter lowercase English key (mon..sun)
func (d Weekday) ShortKey() string {
	return weekdayNames[d].short
}

// LongKey capitalized English name (Monday..Sunday)
func (d Weekday) LongKey() string {
	return weekdayNames[d].long
}

func (d Weekday) String() string {
	if !d.IsValid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return strings.ToLower(weekdayNames[d].long)
}

// ParseWeekday accepts short (mon) and long (Monday) English keys, case-insensitive
func ParseWeekday(key string) (Weekday, error) {
	normalized := strings.ToLower(strings.TrimSpace(key))
	for _, d := range AllWeekdays {
		if normalized == d.ShortKey() || normalized == strings.ToLower(d.LongKey()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown weekday %q", ErrFormat, key)
}

// WeekdayOf returns the canonical weekday of t in t's own location
func WeekdayOf(t time.Time) Weekday {
	if t.Weekday() == time.Sunday {
		return Sunday
	}
	return Weekday(t.Weekday())
}
