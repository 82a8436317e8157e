package reopen_time_off

import (
	"fmt"

	"github.com/m04kA/SMC-SalonScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/timeoff"
)

// ReopenTimeOffRequest HTTP request model
type ReopenTimeOffRequest struct {
	DateFrom string  `json:"dateFrom"`
	DateTo   string  `json:"dateTo"`
	Reason   *string `json:"reason,omitempty"`
}

// ToServiceInput конвертирует HTTP запрос в модель сервиса
func (r *ReopenTimeOffRequest) ToServiceInput() (timeoff.ReopenInput, error) {
	dateFrom, err := handlers.ParseDate(r.DateFrom)
	if err != nil {
		return timeoff.ReopenInput{}, fmt.Errorf("%w: dateFrom %q", domain.ErrFormat, r.DateFrom)
	}
	dateTo, err := handlers.ParseDate(r.DateTo)
	if err != nil {
		return timeoff.ReopenInput{}, fmt.Errorf("%w: dateTo %q", domain.ErrFormat, r.DateTo)
	}
	return timeoff.ReopenInput{DateFrom: dateFrom, DateTo: dateTo, Reason: r.Reason}, nil
}
