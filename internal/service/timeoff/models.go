package timeoff

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

// ListFilter фильтр списка заявок
type ListFilter struct {
	EmployeeID *int64
	Status     *domain.TimeOffStatus
}

// CreateInput новая заявка
type CreateInput struct {
	EmployeeID int64
	DateFrom   time.Time
	DateTo     time.Time
	Reason     *string
}

// ReopenInput правка рассмотренной заявки менеджером, возвращающая её в pending
type ReopenInput struct {
	DateFrom time.Time
	DateTo   time.Time
	Reason   *string
}
