package get_schedule_overview

import (
	"context"

	getScheduleOverview "github.com/m04kA/SMC-SalonScheduling/internal/usecase/get_schedule_overview"
)

type GetScheduleOverviewUseCase interface {
	Execute(ctx context.Context, req *getScheduleOverview.Request) (*getScheduleOverview.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
