package save_weekly_availability

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/availability"
)

type AvailabilityService interface {
	Save(ctx context.Context, actor domain.Actor, week *domain.WeeklyAvailability) (*availability.WeekResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
