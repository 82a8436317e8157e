// Package salonapitest in-memory salon API поверх httptest для тестов клиента и сквозных сценариев
package salonapitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/internal/integrations/salonapi"
)

// AppointmentDuration длительность любой услуги в фейке
const AppointmentDuration = time.Hour

// Server фейковый salon API
// Хранит недели как присланные байты, статусы записей проверяет так же строго, как настоящий сервер
type Server struct {
	*httptest.Server

	mu           sync.Mutex
	schedules    map[int64]json.RawMessage
	timeOff      map[int64]*salonapi.TimeOffDTO
	appointments map[int64]*salonapi.AppointmentDTO
	slots        map[int64][]salonapi.SlotDTO
	nextID       int64
	calls        map[string]int
	failures     map[string]failure
}

// failure подмененный ответ на следующий запрос по ключу
type failure struct {
	status int
	body   string
}

// New запускает сервер, остановка через t.Cleanup(srv.Close)
func New() *Server {
	s := &Server{
		schedules:    make(map[int64]json.RawMessage),
		timeOff:      make(map[int64]*salonapi.TimeOffDTO),
		appointments: make(map[int64]*salonapi.AppointmentDTO),
		slots:        make(map[int64][]salonapi.SlotDTO),
		calls:        make(map[string]int),
		failures:     make(map[string]failure),
	}

	r := mux.NewRouter()
	r.Use(s.count)
	r.HandleFunc("/employees/{id}/schedule", s.getSchedule).Methods(http.MethodGet)
	r.HandleFunc("/employees/{id}/schedule", s.replaceSchedule).Methods(http.MethodPatch)
	r.HandleFunc("/time-off", s.listTimeOff).Methods(http.MethodGet)
	r.HandleFunc("/time-off", s.createTimeOff).Methods(http.MethodPost)
	r.HandleFunc("/time-off/{id}", s.getTimeOff).Methods(http.MethodGet)
	r.HandleFunc("/time-off/{id}", s.updateTimeOff).Methods(http.MethodPatch)
	r.HandleFunc("/time-off/{id}", s.deleteTimeOff).Methods(http.MethodDelete)
	r.HandleFunc("/availability/slots", s.getSlots).Methods(http.MethodGet)
	r.HandleFunc("/appointments", s.listAppointments).Methods(http.MethodGet)
	r.HandleFunc("/appointments", s.createAppointment).Methods(http.MethodPost)
	r.HandleFunc("/appointments/{id}", s.getAppointment).Methods(http.MethodGet)
	r.HandleFunc("/appointments/{id}/status", s.updateStatus).Methods(http.MethodPatch)
	r.HandleFunc("/appointments/{id}/reschedule", s.reschedule).Methods(http.MethodPatch)
	r.HandleFunc("/appointments/{id}/cancel", s.cancel).Methods(http.MethodPost)

	s.Server = httptest.NewServer(r)
	return s
}

// SetSlots задает свободные слоты сотрудника
func (s *Server) SetSlots(employeeID int64, slots ...salonapi.SlotDTO) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[employeeID] = slots
}

// SetSchedule кладет неделю в хранилище как есть
func (s *Server) SetSchedule(employeeID int64, raw json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedules[employeeID] = raw
}

// Schedule последняя сохраненная неделя в том виде, в каком ее прислали
func (s *Server) Schedule(employeeID int64) json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.schedules[employeeID]
}

// Calls количество запросов по ключу "METHOD /route/template"
func (s *Server) Calls(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[key]
}

// Fail следующий запрос по ключу "METHOD /route/template" получит status и body вместо обработки
// Статус 2xx с неразборчивым телом тоже допустим.
func (s *Server) Fail(key string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[key] = failure{status: status, body: body}
}

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				key := r.Method + " " + tpl

				s.mu.Lock()
				s.calls[key]++
				f, failing := s.failures[key]
				delete(s.failures, key)
				s.mu.Unlock()

				if failing {
					writeRaw(w, f.status, json.RawMessage(f.body))
					return
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) getSchedule(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.mu.Lock()
	raw, ok := s.schedules[id]
	s.mu.Unlock()
	if !ok {
		raw = json.RawMessage(`{}`)
	}
	writeRaw(w, http.StatusOK, raw)
}

func (s *Server) replaceSchedule(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid json"})
		return
	}
	s.SetSchedule(pathID(r), raw)
	writeRaw(w, http.StatusOK, raw)
}

func (s *Server) listTimeOff(w http.ResponseWriter, r *http.Request) {
	employee := r.URL.Query().Get("employee")
	status := r.URL.Query().Get("status")

	s.mu.Lock()
	items := make([]salonapi.TimeOffDTO, 0, len(s.timeOff))
	for _, t := range s.timeOff {
		if employee != "" && strconv.FormatInt(t.EmployeeID, 10) != employee {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		items = append(items, *t)
	}
	s.mu.Unlock()

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (s *Server) createTimeOff(w http.ResponseWriter, r *http.Request) {
	var in salonapi.CreateTimeOffInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid json"})
		return
	}

	s.mu.Lock()
	s.nextID++
	created := &salonapi.TimeOffDTO{
		ID:         s.nextID,
		EmployeeID: in.EmployeeID,
		DateFrom:   in.DateFrom,
		DateTo:     in.DateTo,
		Reason:     in.Reason,
		Status:     string(domain.TimeOffPending),
	}
	s.timeOff[created.ID] = created
	out := *created
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) getTimeOff(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	t, ok := s.timeOff[pathID(r)]
	var out salonapi.TimeOffDTO
	if ok {
		out = *t
	}
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) updateTimeOff(w http.ResponseWriter, r *http.Request) {
	var in salonapi.UpdateTimeOffInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid json"})
		return
	}

	s.mu.Lock()
	t, ok := s.timeOff[pathID(r)]
	if ok {
		if in.Status != nil {
			t.Status = *in.Status
		}
		if in.DateFrom != nil {
			t.DateFrom = *in.DateFrom
		}
		if in.DateTo != nil {
			t.DateTo = *in.DateTo
		}
		if in.Reason != nil {
			t.Reason = in.Reason
		}
	}
	var out salonapi.TimeOffDTO
	if ok {
		out = *t
	}
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deleteTimeOff(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)

	s.mu.Lock()
	t, ok := s.timeOff[id]
	pending := ok && t.Status == string(domain.TimeOffPending)
	if pending {
		delete(s.timeOff, id)
	}
	s.mu.Unlock()

	switch {
	case !ok:
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "not found"})
	case !pending:
		writeJSON(w, http.StatusConflict, map[string]string{"detail": "only pending requests can be deleted"})
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) getSlots(w http.ResponseWriter, r *http.Request) {
	employeeID, _ := strconv.ParseInt(r.URL.Query().Get("employee"), 10, 64)

	s.mu.Lock()
	slots := append([]salonapi.SlotDTO(nil), s.slots[employeeID]...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, salonapi.SlotsResponse{Slots: slots})
}

func (s *Server) listAppointments(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	items := make([]salonapi.AppointmentDTO, 0, len(s.appointments))
	for _, a := range s.appointments {
		items = append(items, *a)
	}
	s.mu.Unlock()

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) createAppointment(w http.ResponseWriter, r *http.Request) {
	var in salonapi.CreateAppointmentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid json"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.takeSlot(in.EmployeeID, in.Start) {
		writeJSON(w, http.StatusConflict, map[string]string{"detail": "slot is not available"})
		return
	}

	s.nextID++
	created := &salonapi.AppointmentDTO{
		ID:            s.nextID,
		EmployeeID:    in.EmployeeID,
		ServiceID:     in.ServiceID,
		ClientID:      in.ClientID,
		Start:         in.Start,
		End:           in.Start.Add(AppointmentDuration),
		Status:        string(domain.StatusPending),
		InternalNotes: in.InternalNotes,
	}
	s.appointments[created.ID] = created
	writeJSON(w, http.StatusCreated, *created)
}

func (s *Server) getAppointment(w http.ResponseWriter, r *http.Request) {
	s.withAppointment(w, r, func(a *salonapi.AppointmentDTO) (int, interface{}) {
		return http.StatusOK, *a
	})
}

func (s *Server) updateStatus(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid json"})
		return
	}

	s.withAppointment(w, r, func(a *salonapi.AppointmentDTO) (int, interface{}) {
		if domain.AppointmentStatus(a.Status).IsTerminal() {
			return http.StatusConflict, map[string]string{"detail": "appointment is closed"}
		}
		a.Status = in.Status
		return http.StatusOK, *a
	})
}

func (s *Server) reschedule(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Start time.Time `json:"start"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid json"})
		return
	}

	s.withAppointment(w, r, func(a *salonapi.AppointmentDTO) (int, interface{}) {
		if !s.takeSlot(a.EmployeeID, in.Start) {
			return http.StatusConflict, map[string]string{"detail": "slot is not available"}
		}
		a.Start = in.Start
		a.End = in.Start.Add(AppointmentDuration)
		return http.StatusOK, *a
	})
}

func (s *Server) cancel(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Reason *string `json:"reason"`
	}
	_ = json.NewDecoder(r.Body).Decode(&in)

	s.withAppointment(w, r, func(a *salonapi.AppointmentDTO) (int, interface{}) {
		if domain.AppointmentStatus(a.Status).IsTerminal() {
			return http.StatusConflict, map[string]string{"detail": "appointment is closed"}
		}
		a.Status = string(domain.StatusCancelled)
		a.CancellationReason = in.Reason
		return http.StatusOK, *a
	})
}

func (s *Server) withAppointment(w http.ResponseWriter, r *http.Request, fn func(a *salonapi.AppointmentDTO) (int, interface{})) {
	s.mu.Lock()
	a, ok := s.appointments[pathID(r)]
	if !ok {
		s.mu.Unlock()
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "not found"})
		return
	}
	status, body := fn(a)
	s.mu.Unlock()

	writeJSON(w, status, body)
}

// takeSlot убирает слот с указанным началом, вызывается под s.mu
func (s *Server) takeSlot(employeeID int64, start time.Time) bool {
	slots := s.slots[employeeID]
	for i, slot := range slots {
		if slot.Start.Equal(start) {
			s.slots[employeeID] = append(slots[:i:i], slots[i+1:]...)
			return true
		}
	}
	return false
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeRaw(w http.ResponseWriter, status int, raw json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(raw)
}
