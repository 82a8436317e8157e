package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	EmployeeID    int64   `json:"employeeId"`
	ServiceID     int64   `json:"serviceId"`
	ClientID      int64   `json:"clientId,omitempty"`
	Start         string  `json:"start"` // RFC3339, "2026-05-04T10:00:00+03:00"
	InternalNotes *string `json:"internalNotes,omitempty"`
}

// ToDomain конвертирует HTTP запрос в доменную модель
// Клиент записывается на себя, clientId можно не передавать
func (r *CreateAppointmentRequest) ToDomain(actor domain.Actor) (domain.NewAppointment, error) {
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return domain.NewAppointment{}, fmt.Errorf("%w: start %q", domain.ErrFormat, r.Start)
	}

	clientID := r.ClientID
	if clientID == 0 && actor.Role == domain.RoleClient {
		clientID = actor.ID
	}

	// Клиент не оставляет служебных заметок
	notes := r.InternalNotes
	if actor.Role == domain.RoleClient {
		notes = nil
	}

	return domain.NewAppointment{
		EmployeeID:    r.EmployeeID,
		ServiceID:     r.ServiceID,
		ClientID:      clientID,
		Start:         start,
		InternalNotes: notes,
	}, nil
}
