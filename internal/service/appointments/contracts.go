package appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

// SalonClient интерфейс клиента salon API для записей
type SalonClient interface {
	ListAppointments(ctx context.Context, actor domain.Actor, scope domain.AppointmentScope) ([]domain.Appointment, error)
	GetAppointment(ctx context.Context, actor domain.Actor, id int64) (*domain.Appointment, error)
	CreateAppointment(ctx context.Context, actor domain.Actor, input domain.NewAppointment) (*domain.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, actor domain.Actor, id int64, status domain.AppointmentStatus) (*domain.Appointment, error)
	CancelAppointment(ctx context.Context, actor domain.Actor, id int64, reason *string) (*domain.Appointment, error)
}

// Locker неблокирующая блокировка по ключу
type Locker interface {
	TryLock(key string) (func(), bool)
}

// Metrics учет переходов и локальных отказов
type Metrics interface {
	IncTransition(from, to, role string)
	IncRejection(operation, kind string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
