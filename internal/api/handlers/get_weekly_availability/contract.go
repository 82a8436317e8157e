package get_weekly_availability

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/availability"
)

type AvailabilityService interface {
	Load(ctx context.Context, actor domain.Actor, employeeID int64) (*availability.WeekResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
