package create_time_off

import (
	"fmt"

	"github.com/m04kA/SMC-SalonScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/timeoff"
)

// CreateTimeOffRequest HTTP request model
type CreateTimeOffRequest struct {
	EmployeeID int64   `json:"employeeId"`
	DateFrom   string  `json:"dateFrom"` // "2026-05-01"
	DateTo     string  `json:"dateTo"`
	Reason     *string `json:"reason,omitempty"`
}

// ToServiceInput конвертирует HTTP запрос в модель сервиса
// Для сотрудника без employeeId заявка создается на него самого
func (r *CreateTimeOffRequest) ToServiceInput(actor domain.Actor) (timeoff.CreateInput, error) {
	dateFrom, err := handlers.ParseDate(r.DateFrom)
	if err != nil {
		return timeoff.CreateInput{}, fmt.Errorf("%w: dateFrom %q", domain.ErrFormat, r.DateFrom)
	}
	dateTo, err := handlers.ParseDate(r.DateTo)
	if err != nil {
		return timeoff.CreateInput{}, fmt.Errorf("%w: dateTo %q", domain.ErrFormat, r.DateTo)
	}

	employeeID := r.EmployeeID
	if employeeID == 0 && actor.Role == domain.RoleEmployee {
		employeeID = actor.ID
	}

	return timeoff.CreateInput{
		EmployeeID: employeeID,
		DateFrom:   dateFrom,
		DateTo:     dateTo,
		Reason:     r.Reason,
	}, nil
}
