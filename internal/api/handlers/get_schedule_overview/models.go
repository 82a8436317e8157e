package get_schedule_overview

import (
	"github.com/m04kA/SMC-SalonScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	getScheduleOverview "github.com/m04kA/SMC-SalonScheduling/internal/usecase/get_schedule_overview"
)

// OverviewResponse HTTP response model
type OverviewResponse struct {
	Week     *handlers.WeekResponse      `json:"week"`
	TimeOff  []handlers.TimeOffResponse  `json:"timeOff"`
	Slots    []handlers.DayGroupResponse `json:"slots"`
	Calendar []CalendarDayResponse       `json:"calendar"`
}

// CalendarDayResponse одна дата сводки
type CalendarDayResponse struct {
	Date      string                    `json:"date"`
	Weekday   string                    `json:"weekday"`
	Hours     []handlers.PeriodResponse `json:"hours"`
	OnTimeOff bool                      `json:"onTimeOff"`
	Slots     int                       `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getScheduleOverview.Response) *OverviewResponse {
	return &OverviewResponse{
		Week:     handlers.ToWeekResponse(resp.Week.Week, resp.Week.Violations, resp.Week.ChangedSinceLastSeen),
		TimeOff:  handlers.ToTimeOffList(resp.TimeOff),
		Slots:    handlers.ToDayGroups(resp.Slots),
		Calendar: toCalendar(resp.Calendar),
	}
}

func toCalendar(days []domain.CalendarDay) []CalendarDayResponse {
	out := make([]CalendarDayResponse, 0, len(days))
	for _, d := range days {
		hours := make([]handlers.PeriodResponse, 0, len(d.Hours))
		for _, p := range d.Hours {
			hours = append(hours, handlers.PeriodResponse{Start: p.Start.String(), End: p.End.String()})
		}
		out = append(out, CalendarDayResponse{
			Date:      d.Date.Format(domain.DateFormat),
			Weekday:   d.Weekday.String(),
			Hours:     hours,
			OnTimeOff: d.OnTimeOff,
			Slots:     d.Slots,
		})
	}
	return out
}
