package handlers

import (
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

// PeriodResponse период рабочего времени
type PeriodResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// WeekResponse недельный график; все семь дней присутствуют, закрытый день - пустой массив
type WeekResponse struct {
	EmployeeID           int64                       `json:"employeeId"`
	Days                 map[string][]PeriodResponse `json:"days"`
	Violations           []ViolationResponse         `json:"violations"`
	ChangedSinceLastSeen bool                        `json:"changedSinceLastSeen"`
}

// WeekRequest тело PUT недельного графика, ключи дней mon..sun или Monday..Sunday
type WeekRequest struct {
	Days map[string]json.RawMessage `json:"days"`
}

// TimeOffResponse заявка на отсутствие
type TimeOffResponse struct {
	ID         int64   `json:"id"`
	EmployeeID int64   `json:"employeeId"`
	DateFrom   string  `json:"dateFrom"`
	DateTo     string  `json:"dateTo"`
	Reason     *string `json:"reason,omitempty"`
	Status     string  `json:"status"`
	CreatedAt  *string `json:"createdAt,omitempty"`
}

// AppointmentResponse запись
type AppointmentResponse struct {
	ID                 int64   `json:"id"`
	EmployeeID         int64   `json:"employeeId"`
	ServiceID          int64   `json:"serviceId"`
	ClientID           int64   `json:"clientId"`
	Start              string  `json:"start"`
	End                string  `json:"end"`
	Status             string  `json:"status"`
	InternalNotes      *string `json:"internalNotes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// SlotResponse слот
type SlotResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayGroupResponse слоты одного дня
type DayGroupResponse struct {
	Date  string         `json:"date"`
	Items []SlotResponse `json:"items"`
}

// ToWeekResponse конвертирует неделю в HTTP модель
func ToWeekResponse(week *domain.WeeklyAvailability, violations domain.ValidationErrors, changed bool) *WeekResponse {
	days := make(map[string][]PeriodResponse, len(domain.AllWeekdays))
	for _, day := range domain.AllWeekdays {
		periods := week.Periods(day)
		items := make([]PeriodResponse, 0, len(periods))
		for _, p := range periods {
			items = append(items, PeriodResponse{Start: p.Start.String(), End: p.End.String()})
		}
		days[day.String()] = items
	}

	return &WeekResponse{
		EmployeeID:           week.EmployeeID,
		Days:                 days,
		Violations:           ToViolations(violations),
		ChangedSinceLastSeen: changed,
	}
}

// ToTimeOffResponse конвертирует заявку в HTTP модель
func ToTimeOffResponse(req *domain.TimeOffRequest) TimeOffResponse {
	resp := TimeOffResponse{
		ID:         req.ID,
		EmployeeID: req.EmployeeID,
		DateFrom:   req.DateFrom.Format(domain.DateFormat),
		DateTo:     req.DateTo.Format(domain.DateFormat),
		Reason:     req.Reason,
		Status:     string(req.Status),
	}
	if !req.CreatedAt.IsZero() {
		createdAt := req.CreatedAt.Format(time.RFC3339)
		resp.CreatedAt = &createdAt
	}
	return resp
}

// ToTimeOffList конвертирует список заявок
func ToTimeOffList(list []domain.TimeOffRequest) []TimeOffResponse {
	out := make([]TimeOffResponse, 0, len(list))
	for i := range list {
		out = append(out, ToTimeOffResponse(&list[i]))
	}
	return out
}

// ToAppointmentResponse конвертирует запись в HTTP модель
// Внутренние заметки клиенту не отдаются
func ToAppointmentResponse(appt *domain.Appointment, viewer domain.Actor) AppointmentResponse {
	resp := AppointmentResponse{
		ID:                 appt.ID,
		EmployeeID:         appt.EmployeeID,
		ServiceID:          appt.ServiceID,
		ClientID:           appt.ClientID,
		Start:              appt.Start.Format(time.RFC3339),
		End:                appt.End.Format(time.RFC3339),
		Status:             string(appt.Status),
		CancellationReason: appt.CancellationReason,
	}
	if viewer.Role != domain.RoleClient {
		resp.InternalNotes = appt.InternalNotes
	}
	return resp
}

// ToAppointmentList конвертирует список записей
func ToAppointmentList(list []domain.Appointment, viewer domain.Actor) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(list))
	for i := range list {
		out = append(out, ToAppointmentResponse(&list[i], viewer))
	}
	return out
}

// CurrentAppointment запись, перечитанная после сбоя, для тела ошибки; nil, если её нет
func CurrentAppointment(appt *domain.Appointment, viewer domain.Actor) interface{} {
	if appt == nil {
		return nil
	}
	return ToAppointmentResponse(appt, viewer)
}

// CurrentTimeOff заявка, перечитанная после сбоя, для тела ошибки; nil, если её нет
func CurrentTimeOff(req *domain.TimeOffRequest) interface{} {
	if req == nil {
		return nil
	}
	return ToTimeOffResponse(req)
}

// ToDayGroups конвертирует сгруппированные слоты
func ToDayGroups(groups []domain.DayGroup) []DayGroupResponse {
	out := make([]DayGroupResponse, 0, len(groups))
	for _, g := range groups {
		items := make([]SlotResponse, 0, len(g.Items))
		for _, s := range g.Items {
			items = append(items, SlotResponse{Start: s.Start.Format(time.RFC3339), End: s.End.Format(time.RFC3339)})
		}
		out = append(out, DayGroupResponse{Date: g.Label, Items: items})
	}
	return out
}

// ParseDate разбирает дату YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateFormat, s)
}
