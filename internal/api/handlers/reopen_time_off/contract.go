package reopen_time_off

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/timeoff"
)

type TimeOffService interface {
	Reopen(ctx context.Context, actor domain.Actor, id int64, input timeoff.ReopenInput) (*domain.TimeOffRequest, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
