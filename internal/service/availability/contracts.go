package availability

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/snapshot"
)

// SalonClient интерфейс клиента salon API для недельного графика
type SalonClient interface {
	GetSchedule(ctx context.Context, actor domain.Actor, employeeID int64) (*domain.WeeklyAvailability, domain.ValidationErrors, error)
	ReplaceSchedule(ctx context.Context, actor domain.Actor, week *domain.WeeklyAvailability) (*domain.WeeklyAvailability, domain.ValidationErrors, error)
}

// SnapshotRepository хранилище последней авторитетной недели
type SnapshotRepository interface {
	Get(ctx context.Context, employeeID int64) (*snapshot.Snapshot, error)
	Save(ctx context.Context, week *domain.WeeklyAvailability) error
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
