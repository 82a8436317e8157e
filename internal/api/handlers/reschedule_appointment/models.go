package reschedule_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	rescheduleAppointment "github.com/m04kA/SMC-SalonScheduling/internal/usecase/reschedule_appointment"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	Start string `json:"start"` // RFC3339
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(actor domain.Actor, appointmentID int64) (*rescheduleAppointment.Request, error) {
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return nil, fmt.Errorf("%w: start %q", domain.ErrFormat, r.Start)
	}
	return &rescheduleAppointment.Request{
		Actor:         actor,
		AppointmentID: appointmentID,
		NewStart:      start,
	}, nil
}
