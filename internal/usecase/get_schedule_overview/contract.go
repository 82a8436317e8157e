package get_schedule_overview

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/availability"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/slots"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/timeoff"
)

// AvailabilityService недельный график
type AvailabilityService interface {
	Load(ctx context.Context, actor domain.Actor, employeeID int64) (*availability.WeekResult, error)
}

// TimeOffService заявки на отсутствие
type TimeOffService interface {
	List(ctx context.Context, actor domain.Actor, filter timeoff.ListFilter) ([]domain.TimeOffRequest, error)
}

// SlotService слоты по дням
type SlotService interface {
	Available(ctx context.Context, actor domain.Actor, q slots.Query) ([]domain.DayGroup, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
