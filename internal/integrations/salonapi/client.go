package salonapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

const (
	headerRequestID = "X-Request-ID"
	headerUserID    = "X-User-ID"
	headerUserRole  = "X-User-Role"

	// maxBodySize ограничение на размер читаемого ответа
	maxBodySize = 1 << 20
)

// Config параметры клиента salon API
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	// RateLimit запросов в секунду, 0 - без ограничения
	RateLimit float64
	Burst     int
	Format    domain.WireFormat
}

// Client клиент для работы с salon API
type Client struct {
	baseURL    string
	token      string
	format     domain.WireFormat
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    Metrics
	log        Logger
}

// NewClient создает новый экземпляр клиента salon API
func NewClient(cfg Config, log Logger, metrics Metrics) *Client {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		format:  cfg.Format,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: limiter,
		metrics: metrics,
		log:     log,
	}
}

// GetSchedule получает недельный график сотрудника
// Ответ сервера авторитетен: неделя возвращается даже с нарушениями, они отдаются отдельно
func (c *Client) GetSchedule(ctx context.Context, actor domain.Actor, employeeID int64) (*domain.WeeklyAvailability, domain.ValidationErrors, error) {
	const op = "get_schedule"

	resp, err := c.do(ctx, op, actor, http.MethodGet, fmt.Sprintf("/employees/%d/schedule", employeeID), nil, nil)
	if err != nil {
		return nil, nil, err
	}
	return decodeWeek(op, employeeID, resp)
}

// ReplaceSchedule отправляет всю неделю целиком и возвращает неделю из ответа сервера
func (c *Client) ReplaceSchedule(ctx context.Context, actor domain.Actor, week *domain.WeeklyAvailability) (*domain.WeeklyAvailability, domain.ValidationErrors, error) {
	const op = "replace_schedule"
	path := fmt.Sprintf("/employees/%d/schedule", week.EmployeeID)

	resp, err := c.do(ctx, op, actor, http.MethodPatch, path, nil, week.ToWire(c.format))
	if err != nil {
		return nil, nil, err
	}

	// Сервер может ответить без тела, тогда канонической считаем неделю из GET
	if len(bytes.TrimSpace(resp.body)) == 0 {
		return c.GetSchedule(ctx, actor, week.EmployeeID)
	}
	return decodeWeek(op, week.EmployeeID, resp)
}

// ListTimeOff получает список заявок на отсутствие
func (c *Client) ListTimeOff(ctx context.Context, actor domain.Actor, filter TimeOffFilter) ([]domain.TimeOffRequest, error) {
	const op = "list_time_off"

	query := url.Values{}
	if filter.EmployeeID != nil {
		query.Set("employee", strconv.FormatInt(*filter.EmployeeID, 10))
	}
	if filter.Status != nil {
		query.Set("status", string(*filter.Status))
	}

	resp, err := c.do(ctx, op, actor, http.MethodGet, "/time-off", query, nil)
	if err != nil {
		return nil, err
	}

	dtos, err := decodeItems[TimeOffDTO](resp.body)
	if err != nil {
		return nil, resp.invalid(op, err)
	}

	requests := make([]domain.TimeOffRequest, 0, len(dtos))
	for _, dto := range dtos {
		req, err := dto.ToDomain()
		if err != nil {
			return nil, resp.invalid(op, err)
		}
		requests = append(requests, req)
	}
	return requests, nil
}

// GetTimeOff получает заявку по ID
func (c *Client) GetTimeOff(ctx context.Context, actor domain.Actor, id int64) (*domain.TimeOffRequest, error) {
	const op = "get_time_off"

	resp, err := c.do(ctx, op, actor, http.MethodGet, fmt.Sprintf("/time-off/%d", id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeTimeOff(op, resp)
}

// CreateTimeOff создает заявку, сервер выставляет статус pending
func (c *Client) CreateTimeOff(ctx context.Context, actor domain.Actor, input CreateTimeOffInput) (*domain.TimeOffRequest, error) {
	const op = "create_time_off"

	resp, err := c.do(ctx, op, actor, http.MethodPost, "/time-off", nil, input)
	if err != nil {
		return nil, err
	}
	return decodeTimeOff(op, resp)
}

// UpdateTimeOff меняет статус или поля заявки
func (c *Client) UpdateTimeOff(ctx context.Context, actor domain.Actor, id int64, input UpdateTimeOffInput) (*domain.TimeOffRequest, error) {
	const op = "update_time_off"

	resp, err := c.do(ctx, op, actor, http.MethodPatch, fmt.Sprintf("/time-off/%d", id), nil, input)
	if err != nil {
		return nil, err
	}
	return decodeTimeOff(op, resp)
}

// DeleteTimeOff удаляет заявку
func (c *Client) DeleteTimeOff(ctx context.Context, actor domain.Actor, id int64) error {
	_, err := c.do(ctx, "delete_time_off", actor, http.MethodDelete, fmt.Sprintf("/time-off/%d", id), nil, nil)
	return err
}

// GetSlots получает слоты, рассчитанные сервером
func (c *Client) GetSlots(ctx context.Context, actor domain.Actor, q SlotQuery) ([]domain.AvailabilitySlot, error) {
	const op = "get_slots"

	query := url.Values{}
	query.Set("employee", strconv.FormatInt(q.EmployeeID, 10))
	if q.ServiceID > 0 {
		query.Set("service", strconv.FormatInt(q.ServiceID, 10))
	}
	query.Set("date_from", q.DateFrom.Format(domain.DateFormat))
	query.Set("date_to", q.DateTo.Format(domain.DateFormat))
	if q.IgnoreTimeOff {
		query.Set("ignore_timeoff", "true")
	}

	resp, err := c.do(ctx, op, actor, http.MethodGet, "/availability/slots", query, nil)
	if err != nil {
		return nil, err
	}

	var decoded SlotsResponse
	if err := json.Unmarshal(resp.body, &decoded); err != nil {
		return nil, resp.invalid(op, fmt.Errorf("%w: failed to decode slots: %v", ErrInvalidResponse, err))
	}

	slots := make([]domain.AvailabilitySlot, 0, len(decoded.Slots))
	for _, s := range decoded.Slots {
		slots = append(slots, domain.AvailabilitySlot{Start: s.Start, End: s.End})
	}
	return slots, nil
}

// ListAppointments получает записи в заданном срезе
func (c *Client) ListAppointments(ctx context.Context, actor domain.Actor, scope domain.AppointmentScope) ([]domain.Appointment, error) {
	const op = "list_appointments"

	query := url.Values{}
	query.Set("scope", string(scope))

	resp, err := c.do(ctx, op, actor, http.MethodGet, "/appointments", query, nil)
	if err != nil {
		return nil, err
	}

	dtos, err := decodeItems[AppointmentDTO](resp.body)
	if err != nil {
		return nil, resp.invalid(op, err)
	}

	appointments := make([]domain.Appointment, 0, len(dtos))
	for _, dto := range dtos {
		appt, err := dto.ToDomain()
		if err != nil {
			return nil, resp.invalid(op, err)
		}
		appointments = append(appointments, appt)
	}
	return appointments, nil
}

// GetAppointment получает запись по ID
func (c *Client) GetAppointment(ctx context.Context, actor domain.Actor, id int64) (*domain.Appointment, error) {
	const op = "get_appointment"

	resp, err := c.do(ctx, op, actor, http.MethodGet, fmt.Sprintf("/appointments/%d", id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeAppointment(op, resp)
}

// CreateAppointment создает запись
func (c *Client) CreateAppointment(ctx context.Context, actor domain.Actor, input domain.NewAppointment) (*domain.Appointment, error) {
	const op = "create_appointment"

	payload := CreateAppointmentInput{
		EmployeeID:    input.EmployeeID,
		ServiceID:     input.ServiceID,
		ClientID:      input.ClientID,
		Start:         input.Start,
		InternalNotes: input.InternalNotes,
	}

	resp, err := c.do(ctx, op, actor, http.MethodPost, "/appointments", nil, payload)
	if err != nil {
		return nil, err
	}
	return decodeAppointment(op, resp)
}

// UpdateAppointmentStatus переводит запись в новый статус
func (c *Client) UpdateAppointmentStatus(ctx context.Context, actor domain.Actor, id int64, status domain.AppointmentStatus) (*domain.Appointment, error) {
	const op = "update_appointment_status"

	path := fmt.Sprintf("/appointments/%d/status", id)
	resp, err := c.do(ctx, op, actor, http.MethodPatch, path, nil, statusInput{Status: string(status)})
	if err != nil {
		return nil, err
	}
	return decodeAppointment(op, resp)
}

// RescheduleAppointment переносит запись на новое время
func (c *Client) RescheduleAppointment(ctx context.Context, actor domain.Actor, id int64, newStart time.Time) (*domain.Appointment, error) {
	const op = "reschedule_appointment"

	path := fmt.Sprintf("/appointments/%d/reschedule", id)
	resp, err := c.do(ctx, op, actor, http.MethodPatch, path, nil, rescheduleInput{Start: newStart})
	if err != nil {
		return nil, err
	}
	return decodeAppointment(op, resp)
}

// CancelAppointment отменяет запись с указанием причины
func (c *Client) CancelAppointment(ctx context.Context, actor domain.Actor, id int64, reason *string) (*domain.Appointment, error) {
	const op = "cancel_appointment"

	path := fmt.Sprintf("/appointments/%d/cancel", id)
	resp, err := c.do(ctx, op, actor, http.MethodPost, path, nil, cancelInput{Reason: reason})
	if err != nil {
		return nil, err
	}
	return decodeAppointment(op, resp)
}

// reply успешный ответ salon API
type reply struct {
	status int
	body   []byte
}

// invalid тело 2xx не удалось разобрать: для вызывающего это такой же сбой salon API, с телом ответа
func (r reply) invalid(operation string, err error) error {
	return &domain.RemoteError{Operation: operation, StatusCode: r.status, Payload: r.body, Err: err}
}

// do выполняет запрос и возвращает успешный ответ
// 404 -> ErrNotFound, любой другой не-2xx статус и ошибки транспорта -> *domain.RemoteError
func (c *Client) do(ctx context.Context, operation string, actor domain.Actor, method, path string, query url.Values, payload interface{}) (resp reply, err error) {
	started := time.Now()
	defer func() {
		if c.metrics != nil {
			c.metrics.ObserveUpstreamCall(operation, err, time.Since(started))
		}
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		return reply{}, &domain.RemoteError{Operation: operation, Err: transportError(err)}
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return reply{}, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return reply{}, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, requestID)
	req.Header.Set(headerUserID, strconv.FormatInt(actor.ID, 10))
	req.Header.Set(headerUserRole, string(actor.Role))
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("salon api %s %s failed, request_id=%s: %v", method, path, requestID, err)
		return reply{}, &domain.RemoteError{Operation: operation, Err: transportError(err)}
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodySize))
	if err != nil {
		return reply{}, &domain.RemoteError{Operation: operation, StatusCode: httpResp.StatusCode, Err: transportError(err)}
	}

	// Обработка статус-кодов
	switch {
	case httpResp.StatusCode >= 200 && httpResp.StatusCode < 300:
		return reply{status: httpResp.StatusCode, body: body}, nil
	case httpResp.StatusCode == http.StatusNotFound:
		return reply{}, fmt.Errorf("%w: %s %s", ErrNotFound, method, path)
	default:
		c.log.Warn("salon api %s %s returned %d, request_id=%s", method, path, httpResp.StatusCode, requestID)
		return reply{}, &domain.RemoteError{Operation: operation, StatusCode: httpResp.StatusCode, Payload: body}
	}
}

// transportError помечает истечение дедлайна как ErrTimeout
func transportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	return err
}

func decodeTimeOff(operation string, r reply) (*domain.TimeOffRequest, error) {
	var dto TimeOffDTO
	if err := json.Unmarshal(r.body, &dto); err != nil {
		return nil, r.invalid(operation, fmt.Errorf("%w: failed to decode time-off: %v", ErrInvalidResponse, err))
	}
	req, err := dto.ToDomain()
	if err != nil {
		return nil, r.invalid(operation, err)
	}
	return &req, nil
}

func decodeAppointment(operation string, r reply) (*domain.Appointment, error) {
	var dto AppointmentDTO
	if err := json.Unmarshal(r.body, &dto); err != nil {
		return nil, r.invalid(operation, fmt.Errorf("%w: failed to decode appointment: %v", ErrInvalidResponse, err))
	}
	appt, err := dto.ToDomain()
	if err != nil {
		return nil, r.invalid(operation, err)
	}
	return &appt, nil
}

// decodeWeek тело должно быть объектом с ключами дней; разбор самих дней терпим к ошибкам
func decodeWeek(operation string, employeeID int64, r reply) (*domain.WeeklyAvailability, domain.ValidationErrors, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(r.body, &raw); err != nil {
		return nil, nil, r.invalid(operation, fmt.Errorf("%w: failed to decode schedule: %v", ErrInvalidResponse, err))
	}
	week, violations := domain.FromWire(employeeID, raw)
	return week, violations, nil
}
