package salonapi

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

// TimeOffDTO заявка на отсутствие в формате salon API
type TimeOffDTO struct {
	ID         int64      `json:"id"`
	EmployeeID int64      `json:"employee_id"`
	DateFrom   string     `json:"date_from"`
	DateTo     string     `json:"date_to"`
	Reason     *string    `json:"reason,omitempty"`
	Status     string     `json:"status"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

// ToDomain конвертирует DTO в доменную модель
func (d TimeOffDTO) ToDomain() (domain.TimeOffRequest, error) {
	from, err := time.Parse(domain.DateFormat, d.DateFrom)
	if err != nil {
		return domain.TimeOffRequest{}, fmt.Errorf("%w: time-off %d date_from %q", ErrInvalidResponse, d.ID, d.DateFrom)
	}
	to, err := time.Parse(domain.DateFormat, d.DateTo)
	if err != nil {
		return domain.TimeOffRequest{}, fmt.Errorf("%w: time-off %d date_to %q", ErrInvalidResponse, d.ID, d.DateTo)
	}
	status, err := domain.ParseTimeOffStatus(d.Status)
	if err != nil {
		return domain.TimeOffRequest{}, fmt.Errorf("%w: time-off %d: %v", ErrInvalidResponse, d.ID, err)
	}

	req := domain.TimeOffRequest{
		ID:         d.ID,
		EmployeeID: d.EmployeeID,
		DateFrom:   from,
		DateTo:     to,
		Reason:     d.Reason,
		Status:     status,
	}
	if d.CreatedAt != nil {
		req.CreatedAt = *d.CreatedAt
	}
	return req, nil
}

// TimeOffFilter фильтр списка заявок
type TimeOffFilter struct {
	EmployeeID *int64
	Status     *domain.TimeOffStatus
}

// CreateTimeOffInput тело POST /time-off
type CreateTimeOffInput struct {
	EmployeeID int64   `json:"employee_id"`
	DateFrom   string  `json:"date_from"`
	DateTo     string  `json:"date_to"`
	Reason     *string `json:"reason,omitempty"`
}

// UpdateTimeOffInput тело PATCH /time-off/{id}, передаются только заполненные поля
type UpdateTimeOffInput struct {
	Status   *string `json:"status,omitempty"`
	DateFrom *string `json:"date_from,omitempty"`
	DateTo   *string `json:"date_to,omitempty"`
	Reason   *string `json:"reason,omitempty"`
}

// SlotDTO слот в формате salon API
type SlotDTO struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// SlotsResponse ответ GET /availability/slots
type SlotsResponse struct {
	Slots []SlotDTO `json:"slots"`
}

// SlotQuery параметры запроса слотов
type SlotQuery struct {
	EmployeeID    int64
	ServiceID     int64
	DateFrom      time.Time
	DateTo        time.Time
	IgnoreTimeOff bool
}

// AppointmentDTO запись в формате salon API
type AppointmentDTO struct {
	ID                 int64      `json:"id"`
	EmployeeID         int64      `json:"employee_id"`
	ServiceID          int64      `json:"service_id"`
	ClientID           int64      `json:"client_id"`
	Start              time.Time  `json:"start"`
	End                time.Time  `json:"end"`
	Status             string     `json:"status"`
	InternalNotes      *string    `json:"internal_notes,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CreatedAt          *time.Time `json:"created_at,omitempty"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}

// ToDomain конвертирует DTO в доменную модель
func (d AppointmentDTO) ToDomain() (domain.Appointment, error) {
	status := domain.AppointmentStatus(d.Status)
	if !status.IsValid() {
		return domain.Appointment{}, fmt.Errorf("%w: appointment %d has unknown status %q", ErrInvalidResponse, d.ID, d.Status)
	}

	appt := domain.Appointment{
		ID:                 d.ID,
		EmployeeID:         d.EmployeeID,
		ServiceID:          d.ServiceID,
		ClientID:           d.ClientID,
		Start:              d.Start,
		End:                d.End,
		Status:             status,
		InternalNotes:      d.InternalNotes,
		CancellationReason: d.CancellationReason,
	}
	if d.CreatedAt != nil {
		appt.CreatedAt = *d.CreatedAt
	}
	if d.UpdatedAt != nil {
		appt.UpdatedAt = *d.UpdatedAt
	}
	return appt, nil
}

// CreateAppointmentInput тело POST /appointments
type CreateAppointmentInput struct {
	EmployeeID    int64     `json:"employee_id"`
	ServiceID     int64     `json:"service_id"`
	ClientID      int64     `json:"client_id"`
	Start         time.Time `json:"start"`
	InternalNotes *string   `json:"internal_notes,omitempty"`
}

type statusInput struct {
	Status string `json:"status"`
}

type rescheduleInput struct {
	Start time.Time `json:"start"`
}

type cancelInput struct {
	Reason *string `json:"reason,omitempty"`
}

// decodeItems принимает как голый массив, так и обертку {"items": [...]}
func decodeItems[T any](body []byte) ([]T, error) {
	var items []T
	if err := json.Unmarshal(body, &items); err == nil {
		return items, nil
	}

	var wrapped struct {
		Items []T `json:"items"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return wrapped.Items, nil
}
