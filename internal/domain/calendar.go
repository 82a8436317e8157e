package domain

import "time"

// CalendarDay one date of an employee's overview
type CalendarDay struct {
	Date    time.Time
	Weekday Weekday
	// Hours weekly periods of the date's weekday
	Hours []TimeRange
	// OnTimeOff an approved request covers the date
	OnTimeOff bool
	Slots     int
}

// BuildCalendar lays weekly hours, approved time off and slot groups over [from, to]
// Pending and rejected requests do not mark a date. The range is capped at MaxSlotQueryDays.
func BuildCalendar(week *WeeklyAvailability, timeOff []TimeOffRequest, groups []DayGroup, from, to time.Time) []CalendarDay {
	slotsByDate := make(map[string]int, len(groups))
	for _, g := range groups {
		slotsByDate[g.Label] += len(g.Items)
	}

	days := make([]CalendarDay, 0)
	last := dateOnly(to)
	for date := dateOnly(from); !date.After(last) && len(days) <= MaxSlotQueryDays; date = date.AddDate(0, 0, 1) {
		day := CalendarDay{
			Date:    date,
			Weekday: WeekdayOf(date),
			Hours:   []TimeRange{},
			Slots:   slotsByDate[date.Format(DateFormat)],
		}
		if week != nil {
			day.Hours = week.Periods(day.Weekday)
		}
		for i := range timeOff {
			if timeOff[i].Status == TimeOffApproved && timeOff[i].Covers(date) {
				day.OnTimeOff = true
				break
			}
		}
		days = append(days, day)
	}
	return days
}
