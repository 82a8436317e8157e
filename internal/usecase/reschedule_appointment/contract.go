package reschedule_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/internal/integrations/salonapi"
)

// SalonClient интерфейс клиента salon API, нужный для переноса записи
type SalonClient interface {
	GetAppointment(ctx context.Context, actor domain.Actor, id int64) (*domain.Appointment, error)
	GetSlots(ctx context.Context, actor domain.Actor, q salonapi.SlotQuery) ([]domain.AvailabilitySlot, error)
	RescheduleAppointment(ctx context.Context, actor domain.Actor, id int64, newStart time.Time) (*domain.Appointment, error)
}

// Locker неблокирующая блокировка по ключу
type Locker interface {
	TryLock(key string) (func(), bool)
}

// Metrics учет локальных отказов
type Metrics interface {
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

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
