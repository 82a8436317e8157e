package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/internal/integrations/salonapi"
	"github.com/m04kA/SMC-SalonScheduling/internal/integrations/salonapi/salonapitest"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/appointments"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/availability"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/slots"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/timeoff"
	getScheduleOverviewUC "github.com/m04kA/SMC-SalonScheduling/internal/usecase/get_schedule_overview"
	rescheduleAppointmentUC "github.com/m04kA/SMC-SalonScheduling/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-SalonScheduling/pkg/keylock"
	"github.com/m04kA/SMC-SalonScheduling/pkg/logger"
	"github.com/m04kA/SMC-SalonScheduling/pkg/metrics"
)

const (
	managerID  = 1
	employeeID = 7
	clientID   = 42
)

var (
	manager  = domain.Actor{Role: domain.RoleManager, ID: managerID}
	employee = domain.Actor{Role: domain.RoleEmployee, ID: employeeID}
	client   = domain.Actor{Role: domain.RoleClient, ID: clientID}
)

type env struct {
	t       *testing.T
	salon   *salonapitest.Server
	metrics *metrics.Metrics
	router  http.Handler
}

func newEnv(t *testing.T) *env {
	t.Helper()

	salon := salonapitest.New()
	t.Cleanup(salon.Close)

	log := logger.NewNop()
	m := metrics.New("test")
	locks := keylock.New()

	salonClient := salonapi.NewClient(salonapi.Config{
		BaseURL: salon.URL,
		Timeout: 2 * time.Second,
		Format:  domain.WireFormat{Keys: domain.WeekdayKeysShort},
	}, log, m)

	availabilitySvc := availability.NewService(salonClient, nil, locks, m, log)
	timeOffSvc := timeoff.NewService(salonClient, locks, m, log)
	slotSvc := slots.NewService(salonClient, log)
	appointmentSvc := appointments.NewService(salonClient, locks, m, &rescheduleAppointmentUC.RealTimeProvider{}, log)

	router := NewRouter(Dependencies{
		Availability: availabilitySvc,
		TimeOff:      timeOffSvc,
		Appointments: appointmentSvc,
		Slots:        slotSvc,
		Overview:     getScheduleOverviewUC.NewUseCase(availabilitySvc, timeOffSvc, slotSvc, log),
		Reschedule:   rescheduleAppointmentUC.NewUseCase(salonClient, locks, m, log),
		Logger:       log,
		Metrics:      m,
	})

	return &env{t: t, salon: salon, metrics: m, router: router}
}

func (e *env) do(actor *domain.Actor, method, path string, body interface{}) *httptest.ResponseRecorder {
	e.t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(e.t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if actor != nil {
		req.Header.Set("X-User-ID", fmt.Sprint(actor.ID))
		req.Header.Set("X-User-Role", string(actor.Role))
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func futureSlot(hoursAhead int) salonapi.SlotDTO {
	start := time.Now().UTC().Add(time.Duration(hoursAhead) * time.Hour).Truncate(time.Hour)
	return salonapi.SlotDTO{Start: start, End: start.Add(salonapitest.AppointmentDuration)}
}

func TestRouter_Health(t *testing.T) {
	e := newEnv(t)

	rec := e.do(nil, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRouter_RequiresActor(t *testing.T) {
	e := newEnv(t)

	rec := e.do(nil, http.MethodGet, "/api/v1/appointments", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_WeekRoundTrip(t *testing.T) {
	e := newEnv(t)
	path := fmt.Sprintf("/api/v1/employees/%d/weekly-availability", employeeID)

	rec := e.do(&manager, http.MethodPut, path, `{"days":{
		"mon":[{"start":"09:00","end":"13:00"},{"start":"14:00","end":"18:00"}],
		"tue":[]
	}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Неделя уходит целиком, все семь дней
	var stored map[string][]domain.WirePeriod
	require.NoError(t, json.Unmarshal(e.salon.Schedule(employeeID), &stored))
	assert.Len(t, stored, 7)
	assert.Empty(t, stored["sun"])

	rec = e.do(&employee, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	week := decode[handlers.WeekResponse](t, rec)
	assert.Equal(t, []handlers.PeriodResponse{
		{Start: "09:00", End: "13:00"},
		{Start: "14:00", End: "18:00"},
	}, week.Days["monday"])
	assert.Empty(t, week.Days["tuesday"])
	assert.Len(t, week.Days, 7)
	assert.Empty(t, week.Violations)
}

func TestRouter_WeekValidation(t *testing.T) {
	e := newEnv(t)
	path := fmt.Sprintf("/api/v1/employees/%d/weekly-availability", employeeID)

	rec := e.do(&manager, http.MethodPut, path, `{"days":{
		"mon":[{"start":"09:00","end":"13:00"},{"start":"12:00","end":"15:00"}],
		"wed":[{"start":"18:00","end":"10:00"}],
		"funday":[]
	}}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	resp := decode[handlers.ErrorResponse](t, rec)
	kinds := make([]string, 0, len(resp.Errors))
	for _, v := range resp.Errors {
		kinds = append(kinds, v.Kind)
	}
	assert.ElementsMatch(t, []string{"format", "conflict", "order"}, kinds)
	assert.Zero(t, e.salon.Calls("PATCH /employees/{id}/schedule"))
}

func TestRouter_WeekMalformedPeriodRejected(t *testing.T) {
	e := newEnv(t)
	path := fmt.Sprintf("/api/v1/employees/%d/weekly-availability", employeeID)

	rec := e.do(&manager, http.MethodPut, path, `{"days":{"mon":[{"start":"09:00","end":"13:00"}]}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	before := e.salon.Schedule(employeeID)

	// Один элемент с числом вместо строки не должен закрыть весь день
	rec = e.do(&manager, http.MethodPut, path, `{"days":{
		"mon":[{"start":"09:00","end":"12:00"},{"start":9,"end":"13:00"}]
	}}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

	resp := decode[handlers.ErrorResponse](t, rec)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "monday", resp.Errors[0].Day)
	require.NotNil(t, resp.Errors[0].Index)
	assert.Equal(t, 1, *resp.Errors[0].Index)
	assert.Equal(t, "format", resp.Errors[0].Kind)

	assert.Equal(t, 1, e.salon.Calls("PATCH /employees/{id}/schedule"))
	assert.JSONEq(t, string(before), string(e.salon.Schedule(employeeID)))
}

func TestRouter_WeekSaveFailureReturnsCurrentWeek(t *testing.T) {
	e := newEnv(t)
	path := fmt.Sprintf("/api/v1/employees/%d/weekly-availability", employeeID)

	rec := e.do(&manager, http.MethodPut, path, `{"days":{"mon":[{"start":"09:00","end":"13:00"}]}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	e.salon.Fail("PATCH /employees/{id}/schedule", http.StatusInternalServerError, `{"detail":"storage unavailable"}`)
	rec = e.do(&manager, http.MethodPut, path, `{"days":{"tue":[{"start":"10:00","end":"18:00"}]}}`)
	require.Equal(t, http.StatusBadGateway, rec.Code, rec.Body.String())

	resp := decode[struct {
		Retry    bool                  `json:"retry"`
		Upstream json.RawMessage       `json:"upstream"`
		Current  handlers.WeekResponse `json:"current"`
	}](t, rec)
	assert.True(t, resp.Retry)
	assert.JSONEq(t, `{"detail":"storage unavailable"}`, string(resp.Upstream))
	assert.Equal(t, []handlers.PeriodResponse{{Start: "09:00", End: "13:00"}}, resp.Current.Days["monday"])
	assert.Empty(t, resp.Current.Days["tuesday"])
}

func TestRouter_UpstreamFailuresCarryCurrentState(t *testing.T) {
	e := newEnv(t)
	slot := futureSlot(24)
	e.salon.SetSlots(employeeID, slot)

	rec := e.do(&client, http.MethodPost, "/api/v1/appointments", map[string]interface{}{
		"employeeId": employeeID,
		"serviceId":  3,
		"start":      slot.Start.Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[handlers.AppointmentResponse](t, rec)

	// 200 с неразборчивым телом: тоже сбой salon API, а не 500
	e.salon.Fail("PATCH /appointments/{id}/status", http.StatusOK, `<html>maintenance</html>`)
	rec = e.do(&employee, http.MethodPatch, fmt.Sprintf("/api/v1/appointments/%d/status", created.ID),
		map[string]string{"action": "confirm"})
	require.Equal(t, http.StatusBadGateway, rec.Code, rec.Body.String())

	appt := decode[struct {
		Upstream json.RawMessage              `json:"upstream"`
		Current  handlers.AppointmentResponse `json:"current"`
	}](t, rec)
	assert.JSONEq(t, `"<html>maintenance</html>"`, string(appt.Upstream))
	assert.Equal(t, created.ID, appt.Current.ID)
	assert.Equal(t, "pending", appt.Current.Status)

	rec = e.do(&employee, http.MethodPost, "/api/v1/time-off", map[string]string{
		"dateFrom": "2026-05-04",
		"dateTo":   "2026-05-08",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	request := decode[handlers.TimeOffResponse](t, rec)

	e.salon.Fail("DELETE /time-off/{id}", http.StatusConflict, `{"error":"locked by payroll"}`)
	rec = e.do(&employee, http.MethodDelete, fmt.Sprintf("/api/v1/time-off/%d", request.ID), nil)
	require.Equal(t, http.StatusBadGateway, rec.Code, rec.Body.String())

	timeOff := decode[struct {
		Current handlers.TimeOffResponse `json:"current"`
	}](t, rec)
	assert.Equal(t, request.ID, timeOff.Current.ID)
	assert.Equal(t, "pending", timeOff.Current.Status)
}

func TestRouter_WeekForeignEmployeeDenied(t *testing.T) {
	e := newEnv(t)
	path := fmt.Sprintf("/api/v1/employees/%d/weekly-availability", employeeID+1)

	rec := e.do(&employee, http.MethodPut, path, `{"days":{"mon":[]}}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_AppointmentLifecycle(t *testing.T) {
	e := newEnv(t)
	slot := futureSlot(48)
	e.salon.SetSlots(employeeID, slot)

	rec := e.do(&client, http.MethodPost, "/api/v1/appointments", map[string]interface{}{
		"employeeId": employeeID,
		"serviceId":  3,
		"start":      slot.Start.Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[handlers.AppointmentResponse](t, rec)
	assert.Equal(t, int64(clientID), created.ClientID)
	assert.Equal(t, "pending", created.Status)

	statusPath := fmt.Sprintf("/api/v1/appointments/%d/status", created.ID)
	for _, step := range []struct{ action, status string }{
		{"confirm", "confirmed"},
		{"start", "in_progress"},
		{"complete", "completed"},
	} {
		rec = e.do(&employee, http.MethodPatch, statusPath, map[string]string{"action": step.action})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, step.status, decode[handlers.AppointmentResponse](t, rec).Status)
	}

	rec = e.do(&client, http.MethodPatch, fmt.Sprintf("/api/v1/appointments/%d/cancel", created.ID), nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Zero(t, e.salon.Calls("POST /appointments/{id}/cancel"))

	rejections, err := testutil.GatherAndCount(e.metrics.Registry(), "test_local_rejections_total")
	require.NoError(t, err)
	assert.Equal(t, 1, rejections)
}

func TestRouter_ClientCannotConfirm(t *testing.T) {
	e := newEnv(t)
	slot := futureSlot(24)
	e.salon.SetSlots(employeeID, slot)

	rec := e.do(&client, http.MethodPost, "/api/v1/appointments", map[string]interface{}{
		"employeeId": employeeID,
		"serviceId":  3,
		"start":      slot.Start.Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[handlers.AppointmentResponse](t, rec)

	rec = e.do(&client, http.MethodPatch, fmt.Sprintf("/api/v1/appointments/%d/status", created.ID),
		map[string]string{"action": "confirm"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = e.do(&domain.Actor{Role: domain.RoleClient, ID: clientID + 1}, http.MethodGet,
		fmt.Sprintf("/api/v1/appointments/%d", created.ID), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_RescheduleToTakenSlot(t *testing.T) {
	e := newEnv(t)
	first, second := futureSlot(24), futureSlot(26)
	e.salon.SetSlots(employeeID, first, second)

	rec := e.do(&client, http.MethodPost, "/api/v1/appointments", map[string]interface{}{
		"employeeId": employeeID,
		"serviceId":  3,
		"start":      first.Start.Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[handlers.AppointmentResponse](t, rec)
	reschedulePath := fmt.Sprintf("/api/v1/appointments/%d/reschedule", created.ID)

	// Клиент переносить не может, только отменить и записаться заново
	rec = e.do(&client, http.MethodPatch, reschedulePath, map[string]string{"start": second.Start.Format(time.RFC3339)})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, decode[handlers.ErrorResponse](t, rec).Retry)
	assert.Zero(t, e.salon.Calls("GET /availability/slots"))

	// Слот first уже занят этой же записью
	rec = e.do(&employee, http.MethodPatch, reschedulePath, map[string]string{"start": first.Start.Format(time.RFC3339)})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.True(t, decode[handlers.ErrorResponse](t, rec).Retry)

	rec = e.do(&employee, http.MethodPatch, reschedulePath, map[string]string{"start": second.Start.Format(time.RFC3339)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	moved := decode[handlers.AppointmentResponse](t, rec)
	assert.Equal(t, second.Start.Format(time.RFC3339), moved.Start)
}

func TestRouter_TimeOffLifecycle(t *testing.T) {
	e := newEnv(t)

	rec := e.do(&employee, http.MethodPost, "/api/v1/time-off", map[string]string{
		"dateFrom": "2026-05-04",
		"dateTo":   "2026-05-08",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[handlers.TimeOffResponse](t, rec)
	assert.Equal(t, int64(employeeID), created.EmployeeID)
	assert.Equal(t, "pending", created.Status)

	rec = e.do(&employee, http.MethodPatch, fmt.Sprintf("/api/v1/time-off/%d/approve", created.ID), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = e.do(&manager, http.MethodPatch, fmt.Sprintf("/api/v1/time-off/%d/approve", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "approved", decode[handlers.TimeOffResponse](t, rec).Status)

	// Рассмотренную заявку удалить нельзя ни сотруднику, ни менеджеру
	for _, actor := range []domain.Actor{employee, manager} {
		actor := actor
		rec = e.do(&actor, http.MethodDelete, fmt.Sprintf("/api/v1/time-off/%d", created.ID), nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	}
	assert.Zero(t, e.salon.Calls("DELETE /time-off/{id}"))

	rec = e.do(&manager, http.MethodPatch, fmt.Sprintf("/api/v1/time-off/%d/reopen", created.ID), map[string]string{
		"dateFrom": "2026-05-05",
		"dateTo":   "2026-05-06",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	reopened := decode[handlers.TimeOffResponse](t, rec)
	assert.Equal(t, "pending", reopened.Status)
	assert.Equal(t, "2026-05-05", reopened.DateFrom)

	rec = e.do(&employee, http.MethodDelete, fmt.Sprintf("/api/v1/time-off/%d", created.ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = e.do(&manager, http.MethodGet, "/api/v1/time-off?status=pending", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]handlers.TimeOffResponse](t, rec))
}

func TestRouter_TimeOffReversedDates(t *testing.T) {
	e := newEnv(t)

	rec := e.do(&employee, http.MethodPost, "/api/v1/time-off", map[string]string{
		"dateFrom": "2026-05-08",
		"dateTo":   "2026-05-04",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Zero(t, e.salon.Calls("POST /time-off"))
}

func TestRouter_AvailableSlotsGroupedByDay(t *testing.T) {
	e := newEnv(t)
	first, second := futureSlot(24), futureSlot(25)
	e.salon.SetSlots(employeeID, first, second)

	path := fmt.Sprintf("/api/v1/employees/%d/available-slots?dateFrom=%s&dateTo=%s", employeeID,
		first.Start.Format(domain.DateFormat), first.Start.AddDate(0, 0, 7).Format(domain.DateFormat))
	rec := e.do(&client, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, first.Start.Format(time.RFC3339)))

	rec = e.do(&client, http.MethodGet, path+"&ignoreTimeOff=true", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	e := newEnv(t)

	e.do(nil, http.MethodGet, "/health", nil)

	rec := e.do(nil, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test_http_requests_total")
}
