package slots

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/internal/integrations/salonapi"
)

// SalonClient интерфейс клиента salon API для слотов
type SalonClient interface {
	GetSlots(ctx context.Context, actor domain.Actor, q salonapi.SlotQuery) ([]domain.AvailabilitySlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
