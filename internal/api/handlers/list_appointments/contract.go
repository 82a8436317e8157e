package list_appointments

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

type AppointmentService interface {
	List(ctx context.Context, actor domain.Actor, scope domain.AppointmentScope) ([]domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
