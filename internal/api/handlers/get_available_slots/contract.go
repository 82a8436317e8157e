package get_available_slots

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/slots"
)

type SlotService interface {
	Available(ctx context.Context, actor domain.Actor, q slots.Query) ([]domain.DayGroup, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
