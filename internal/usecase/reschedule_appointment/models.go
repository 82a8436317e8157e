package reschedule_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

// Request модель запроса на перенос записи
type Request struct {
	Actor         domain.Actor
	AppointmentID int64
	NewStart      time.Time
}
