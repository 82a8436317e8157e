package get_schedule_overview

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/availability"
)

// Request модель запроса сводки по сотруднику
type Request struct {
	Actor      domain.Actor
	EmployeeID int64
	ServiceID  int64 // 0 - без привязки к услуге
	DateFrom   time.Time
	DateTo     time.Time
}

// Response недельный график, заявки на отсутствие и слоты одним ответом
type Response struct {
	Week    *availability.WeekResult
	TimeOff []domain.TimeOffRequest
	Slots   []domain.DayGroup
	// Calendar по дню на каждую дату запроса
	Calendar []domain.CalendarDay
}
