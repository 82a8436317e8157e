package domain

import (
	"errors"
	"fmt"
	"sort"
)

// WeeklyAvailability one employee's recurring weekly open hours
// A day with no periods is closed. The whole week is persisted at once, never per day.
type WeeklyAvailability struct {
	EmployeeID int64
	days       map[Weekday][]TimeRange
}

// NewWeeklyAvailability returns a week with every day closed
func NewWeeklyAvailability(employeeID int64) *WeeklyAvailability {
	return &WeeklyAvailability{
		EmployeeID: employeeID,
		days:       make(map[Weekday][]TimeRange, len(AllWeekdays)),
	}
}

// Periods returns a copy of the day's periods
func (w *WeeklyAvailability) Periods(day Weekday) []TimeRange {
	periods := w.days[day]
	out := make([]TimeRange, len(periods))
	copy(out, periods)
	return out
}

// IsClosed reports whether the day has no periods
func (w *WeeklyAvailability) IsClosed(day Weekday) bool {
	return len(w.days[day]) == 0
}

// SetDayPeriods replaces the day's periods after validating them
// Every violation is returned, not just the first. On any violation the day keeps its previous periods.
// Stored periods are sorted chronologically.
func (w *WeeklyAvailability) SetDayPeriods(day Weekday, periods []TimeRange) ValidationErrors {
	if !day.IsValid() {
		return ValidationErrors{{
			Day:     0,
			Index:   -1,
			Kind:    ErrFormat,
			Message: fmt.Sprintf("unknown weekday %d", int(day)),
		}}
	}

	if errs := validateDayPeriods(day, periods); len(errs) > 0 {
		return errs
	}

	w.setDay(day, periods)
	return nil
}

// AddPeriod appends the default 09:00-17:00 period
// Siblings are not validated until save: the user may be mid-edit
func (w *WeeklyAvailability) AddPeriod(day Weekday) {
	if !day.IsValid() {
		return
	}
	w.ensureDays()
	w.days[day] = append(w.days[day], TimeRange{Start: DefaultPeriodStart, End: DefaultPeriodEnd})
}

// RemovePeriod removes one period; an out-of-range index is a no-op
func (w *WeeklyAvailability) RemovePeriod(day Weekday, index int) {
	periods := w.days[day]
	if index < 0 || index >= len(periods) {
		return
	}
	updated := make([]TimeRange, 0, len(periods)-1)
	updated = append(updated, periods[:index]...)
	updated = append(updated, periods[index+1:]...)
	w.days[day] = updated
}

// Validate checks the whole week and returns every violation across all days
func (w *WeeklyAvailability) Validate() ValidationErrors {
	var errs ValidationErrors
	for _, day := range AllWeekdays {
		errs = append(errs, validateDayPeriods(day, w.days[day])...)
	}
	return errs
}

// Clone returns a deep copy
func (w *WeeklyAvailability) Clone() *WeeklyAvailability {
	clone := NewWeeklyAvailability(w.EmployeeID)
	for day, periods := range w.days {
		clone.days[day] = append([]TimeRange(nil), periods...)
	}
	return clone
}

// Equal compares employee and periods day by day; a nil and an empty day are equal
func (w *WeeklyAvailability) Equal(other *WeeklyAvailability) bool {
	if w == nil || other == nil {
		return w == other
	}
	if w.EmployeeID != other.EmployeeID {
		return false
	}
	for _, day := range AllWeekdays {
		a, b := w.days[day], other.days[day]
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
	}
	return true
}

// setDay stores a chronologically sorted copy without validation
func (w *WeeklyAvailability) setDay(day Weekday, periods []TimeRange) {
	sorted := append([]TimeRange(nil), periods...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Minutes() < sorted[j].Start.Minutes()
	})
	w.ensureDays()
	w.days[day] = sorted
}

// ensureDays lets the zero value be used as a closed week
func (w *WeeklyAvailability) ensureDays() {
	if w.days == nil {
		w.days = make(map[Weekday][]TimeRange, len(AllWeekdays))
	}
}

// validateDayPeriods validates every period, then checks the valid ones for overlaps
// After sorting by start, each period is compared with the earlier period reaching furthest,
// so a long period covering several short ones is reported against each of them
func validateDayPeriods(day Weekday, periods []TimeRange) ValidationErrors {
	var errs ValidationErrors

	valid := make([]int, 0, len(periods))
	for i, p := range periods {
		if err := p.Validate(); err != nil {
			errs = append(errs, ValidationError{
				Day:     day,
				Index:   i,
				Kind:    kindOf(err),
				Message: p.String(),
			})
			continue
		}
		valid = append(valid, i)
	}

	sort.SliceStable(valid, func(a, b int) bool {
		return periods[valid[a]].Start.Minutes() < periods[valid[b]].Start.Minutes()
	})

	reach := -1
	for _, idx := range valid {
		current := periods[idx]
		if reach >= 0 && periods[reach].ConflictsWith(current) {
			errs = append(errs, ValidationError{
				Day:     day,
				Index:   idx,
				Kind:    ErrConflict,
				Message: fmt.Sprintf("%s overlaps %s", current, periods[reach]),
			})
		}
		if reach < 0 || current.End.IsAfter(periods[reach].End) {
			reach = idx
		}
	}

	return errs
}

func kindOf(err error) error {
	if errors.Is(err, ErrOrder) {
		return ErrOrder
	}
	return ErrFormat
}
