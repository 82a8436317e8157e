package api

import (
	"net/http"

	"github.com/gorilla/mux"

	cancelAppointmentHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/cancel_appointment"
	changeAppointmentStatusHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/change_appointment_status"
	createAppointmentHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/create_appointment"
	createTimeOffHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/create_time_off"
	deleteTimeOffHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/delete_time_off"
	getAppointmentHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/get_available_slots"
	getScheduleOverviewHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/get_schedule_overview"
	getWeeklyAvailabilityHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/get_weekly_availability"
	listAppointmentsHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/list_appointments"
	listTimeOffHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/list_time_off"
	reopenTimeOffHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/reopen_time_off"
	rescheduleAppointmentHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/reschedule_appointment"
	reviewTimeOffHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/review_time_off"
	saveWeeklyAvailabilityHandler "github.com/m04kA/SMC-SalonScheduling/internal/api/handlers/save_weekly_availability"
	"github.com/m04kA/SMC-SalonScheduling/internal/api/middleware"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/appointments"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/availability"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/slots"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/timeoff"
	getScheduleOverviewUC "github.com/m04kA/SMC-SalonScheduling/internal/usecase/get_schedule_overview"
	rescheduleAppointmentUC "github.com/m04kA/SMC-SalonScheduling/internal/usecase/reschedule_appointment"
)

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics HTTP метрики и эндпоинт для их выдачи
type Metrics interface {
	middleware.HTTPMetrics
	Handler() http.Handler
}

// Dependencies собранные сервисы и use cases
type Dependencies struct {
	Availability *availability.Service
	TimeOff      *timeoff.Service
	Appointments *appointments.Service
	Slots        *slots.Service
	Overview     *getScheduleOverviewUC.UseCase
	Reschedule   *rescheduleAppointmentUC.UseCase

	Logger Logger

	// Metrics nil отключает /metrics и HTTP метрики
	Metrics     Metrics
	MetricsPath string
}

// NewRouter собирает handlers и маршруты
func NewRouter(deps Dependencies) *mux.Router {
	log := deps.Logger

	// Инициализируем handlers
	getWeeklyAvailability := getWeeklyAvailabilityHandler.NewHandler(deps.Availability, log)
	saveWeeklyAvailability := saveWeeklyAvailabilityHandler.NewHandler(deps.Availability, log)
	getScheduleOverview := getScheduleOverviewHandler.NewHandler(deps.Overview, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(deps.Slots, log)

	listTimeOff := listTimeOffHandler.NewHandler(deps.TimeOff, log)
	createTimeOff := createTimeOffHandler.NewHandler(deps.TimeOff, log)
	reviewTimeOff := reviewTimeOffHandler.NewHandler(deps.TimeOff, log)
	reopenTimeOff := reopenTimeOffHandler.NewHandler(deps.TimeOff, log)
	deleteTimeOff := deleteTimeOffHandler.NewHandler(deps.TimeOff, log)

	listAppointments := listAppointmentsHandler.NewHandler(deps.Appointments, log)
	getAppointment := getAppointmentHandler.NewHandler(deps.Appointments, log)
	createAppointment := createAppointmentHandler.NewHandler(deps.Appointments, log)
	changeAppointmentStatus := changeAppointmentStatusHandler.NewHandler(deps.Appointments, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(deps.Appointments, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(deps.Reschedule, log)

	r := mux.NewRouter()
	r.Use(middleware.Logging(log))

	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, deps.Metrics.Handler()).Methods(http.MethodGet)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// Все маршруты API требуют X-User-ID и X-User-Role
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// --- Расписание сотрудника ---
	api.HandleFunc("/employees/{employeeId}/weekly-availability", getWeeklyAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/employees/{employeeId}/weekly-availability", saveWeeklyAvailability.Handle).Methods(http.MethodPut)
	api.HandleFunc("/employees/{employeeId}/schedule-overview", getScheduleOverview.Handle).Methods(http.MethodGet)
	api.HandleFunc("/employees/{employeeId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Отгулы ---
	api.HandleFunc("/time-off", listTimeOff.Handle).Methods(http.MethodGet)
	api.HandleFunc("/time-off", createTimeOff.Handle).Methods(http.MethodPost)
	api.HandleFunc("/time-off/{requestId}/reopen", reopenTimeOff.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/time-off/{requestId}/{decision:approve|reject}", reviewTimeOff.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/time-off/{requestId}", deleteTimeOff.Handle).Methods(http.MethodDelete)

	// --- Записи ---
	api.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}/status", changeAppointmentStatus.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	return r
}
