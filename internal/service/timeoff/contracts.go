package timeoff

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/internal/integrations/salonapi"
)

// SalonClient интерфейс клиента salon API для заявок на отсутствие
type SalonClient interface {
	ListTimeOff(ctx context.Context, actor domain.Actor, filter salonapi.TimeOffFilter) ([]domain.TimeOffRequest, error)
	GetTimeOff(ctx context.Context, actor domain.Actor, id int64) (*domain.TimeOffRequest, error)
	CreateTimeOff(ctx context.Context, actor domain.Actor, input salonapi.CreateTimeOffInput) (*domain.TimeOffRequest, error)
	UpdateTimeOff(ctx context.Context, actor domain.Actor, id int64, input salonapi.UpdateTimeOffInput) (*domain.TimeOffRequest, error)
	DeleteTimeOff(ctx context.Context, actor domain.Actor, id int64) error
}

// Locker неблокирующая блокировка по ключу
type Locker interface {
	TryLock(key string) (func(), bool)
}

// Metrics учет локальных отказов
type Metrics interface {
	IncRejection(operation, kind string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
