package domain

import (
	"sort"
	"time"
)

// AvailabilitySlot a bookable interval produced by the salon API slot generator
type AvailabilitySlot struct {
	Start time.Time
	End   time.Time
}

// DayGroup slots of one calendar day, ascending by start
type DayGroup struct {
	Date  time.Time
	Label string
	Items []AvailabilitySlot
}

// GroupByDay groups slots by the calendar date of Start in the slot's own location
// Days are ordered by their first slot; empty input yields an empty list
func GroupByDay(slots []AvailabilitySlot) []DayGroup {
	if len(slots) == 0 {
		return []DayGroup{}
	}

	sorted := append([]AvailabilitySlot(nil), slots...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	groups := make([]DayGroup, 0)
	index := make(map[string]int)

	for _, slot := range sorted {
		label := slot.Start.Format(DateFormat)
		pos, ok := index[label]
		if !ok {
			y, m, d := slot.Start.Date()
			groups = append(groups, DayGroup{
				Date:  time.Date(y, m, d, 0, 0, 0, 0, slot.Start.Location()),
				Label: label,
			})
			pos = len(groups) - 1
			index[label] = pos
		}
		groups[pos].Items = append(groups[pos].Items, slot)
	}

	return groups
}

// ContainsStart reports whether a slot starting exactly at start is offered
func ContainsStart(slots []AvailabilitySlot, start time.Time) bool {
	for _, slot := range slots {
		if slot.Start.Equal(start) {
			return true
		}
	}
	return false
}
