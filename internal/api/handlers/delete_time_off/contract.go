package delete_time_off

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

type TimeOffService interface {
	Delete(ctx context.Context, actor domain.Actor, id int64) (*domain.TimeOffRequest, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
