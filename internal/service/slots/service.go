package slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/internal/integrations/salonapi"
)

// Query параметры выборки слотов
type Query struct {
	EmployeeID    int64
	ServiceID     int64
	DateFrom      time.Time
	DateTo        time.Time
	IgnoreTimeOff bool
}

// Service представление слотов по дням
type Service struct {
	client SalonClient
	logger Logger
}

// NewService создает новый экземпляр сервиса
func NewService(client SalonClient, logger Logger) *Service {
	return &Service{client: client, logger: logger}
}

// Available возвращает слоты, сгруппированные по дням
// Ошибка возвращается только для некорректного запроса: сбой salon API дает пустой список
func (s *Service) Available(ctx context.Context, actor domain.Actor, q Query) ([]domain.DayGroup, error) {
	if err := validateQuery(actor, q); err != nil {
		return nil, err
	}

	slots, err := s.client.GetSlots(ctx, actor, salonapi.SlotQuery{
		EmployeeID:    q.EmployeeID,
		ServiceID:     q.ServiceID,
		DateFrom:      q.DateFrom,
		DateTo:        q.DateTo,
		IgnoreTimeOff: q.IgnoreTimeOff,
	})
	if err != nil {
		s.logger.Error("Available: failed to get slots for employee=%d service=%d, showing none: %v", q.EmployeeID, q.ServiceID, err)
		return []domain.DayGroup{}, nil
	}

	if len(slots) == 0 {
		s.logger.Info("Available: no slots for employee=%d service=%d %s..%s",
			q.EmployeeID, q.ServiceID, q.DateFrom.Format(domain.DateFormat), q.DateTo.Format(domain.DateFormat))
	}

	return domain.GroupByDay(slots), nil
}

func validateQuery(actor domain.Actor, q Query) error {
	if q.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID is required", domain.ErrInvalidInput)
	}
	if q.DateFrom.IsZero() || q.DateTo.IsZero() {
		return fmt.Errorf("%w: dateFrom and dateTo are required", domain.ErrFormat)
	}
	if q.DateFrom.After(q.DateTo) {
		return fmt.Errorf("%w: dateFrom is after dateTo", domain.ErrOrder)
	}
	if q.DateTo.Sub(q.DateFrom) > domain.MaxSlotQueryDays*24*time.Hour {
		return fmt.Errorf("%w: range exceeds %d days", domain.ErrInvalidInput, domain.MaxSlotQueryDays)
	}
	if q.IgnoreTimeOff && !actor.IsManager() {
		return fmt.Errorf("%w: only a manager may ignore time off", domain.ErrAccessDenied)
	}
	return nil
}
