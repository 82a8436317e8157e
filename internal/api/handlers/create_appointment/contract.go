package create_appointment

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

type AppointmentService interface {
	Create(ctx context.Context, actor domain.Actor, input domain.NewAppointment) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
