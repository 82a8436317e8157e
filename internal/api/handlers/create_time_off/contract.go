package create_time_off

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/timeoff"
)

type TimeOffService interface {
	Create(ctx context.Context, actor domain.Actor, input timeoff.CreateInput) (*domain.TimeOffRequest, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
