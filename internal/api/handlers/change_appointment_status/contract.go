package change_appointment_status

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

type AppointmentService interface {
	Transition(ctx context.Context, actor domain.Actor, id int64, action domain.AppointmentAction) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
