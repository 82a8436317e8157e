package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

const (
	msgInternalError     = "внутренняя ошибка сервера"
	msgValidationFailed  = "данные не прошли проверку"
	msgInvalidTransition = "действие недоступно в текущем статусе"
	msgStaleSlot         = "выбранное время уже недоступно, обновите список слотов"
	msgBusy              = "операция над этой сущностью уже выполняется"
	msgNotFound          = "не найдено"
	msgForbidden         = "доступ запрещен"
	msgRemoteFailed      = "salon API отклонил запрос"
	msgRemoteTimeout     = "salon API не ответил вовремя"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	// Retry клиенту имеет смысл повторить запрос
	Retry bool `json:"retry,omitempty"`
	// Errors все нарушения валидации сразу
	Errors []ViolationResponse `json:"errors,omitempty"`
	// Upstream тело ответа salon API без изменений
	Upstream json.RawMessage `json:"upstream,omitempty"`
	// Current состояние сущности, перечитанное после сбоя; заменяет копию клиента
	Current interface{} `json:"current,omitempty"`
}

// ViolationResponse одно нарушение валидации
type ViolationResponse struct {
	Day     string `json:"day,omitempty"`
	Index   *int   `json:"index,omitempty"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// RespondJSON пишет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// RespondError пишет ошибку с указанным статусом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondValidation 422 со всеми нарушениями
func RespondValidation(w http.ResponseWriter, violations domain.ValidationErrors) {
	RespondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
		Code:    http.StatusUnprocessableEntity,
		Message: msgValidationFailed,
		Errors:  ToViolations(violations),
	})
}

// RespondRemote 502 (504 при таймауте) с телом ответа salon API без изменений
func RespondRemote(w http.ResponseWriter, remote *domain.RemoteError) {
	respondRemote(w, remote, nil)
}

func respondRemote(w http.ResponseWriter, remote *domain.RemoteError, current interface{}) {
	status, message := http.StatusBadGateway, msgRemoteFailed
	if errors.Is(remote, domain.ErrTimeout) {
		status, message = http.StatusGatewayTimeout, msgRemoteTimeout
	}

	resp := ErrorResponse{Code: status, Message: message, Retry: remote.Retryable(), Current: current}
	if len(remote.Payload) > 0 {
		if json.Valid(remote.Payload) {
			resp.Upstream = json.RawMessage(remote.Payload)
		} else {
			quoted, _ := json.Marshal(string(remote.Payload))
			resp.Upstream = quoted
		}
	}
	RespondJSON(w, status, resp)
}

// RespondDomainError сопоставляет доменную ошибку HTTP статусу
// Возвращает false, если ошибка неизвестна и записан ответ 500
func RespondDomainError(w http.ResponseWriter, err error) bool {
	var (
		violations domain.ValidationErrors
		remote     *domain.RemoteError
	)

	switch {
	case errors.As(err, &violations):
		RespondValidation(w, violations)
	case errors.As(err, &remote):
		RespondRemote(w, remote)
	case errors.Is(err, domain.ErrFormat), errors.Is(err, domain.ErrOrder), errors.Is(err, domain.ErrConflict):
		RespondValidation(w, domain.ValidationErrors{{Index: -1, Kind: kindOf(err), Message: err.Error()}})
	case errors.Is(err, domain.ErrInvalidInput):
		RespondBadRequest(w, err.Error())
	case errors.Is(err, domain.ErrAccessDenied):
		RespondForbidden(w, msgForbidden)
	case errors.Is(err, domain.ErrNotFound):
		RespondNotFound(w, msgNotFound)
	case errors.Is(err, domain.ErrStaleSlot):
		RespondJSON(w, http.StatusConflict, ErrorResponse{Code: http.StatusConflict, Message: msgStaleSlot, Retry: true})
	case errors.Is(err, domain.ErrBusy):
		RespondJSON(w, http.StatusConflict, ErrorResponse{Code: http.StatusConflict, Message: msgBusy, Retry: true})
	case errors.Is(err, domain.ErrInvalidTransition):
		RespondConflict(w, msgInvalidTransition+": "+err.Error())
	default:
		RespondInternalError(w)
		return false
	}
	return true
}

// RespondDomainErrorWithCurrent как RespondDomainError, но к ответу о сбое salon API
// прикладывает перечитанное после сбоя состояние сущности. current == nil - не перечитано.
func RespondDomainErrorWithCurrent(w http.ResponseWriter, err error, current interface{}) bool {
	var remote *domain.RemoteError
	if current != nil && errors.As(err, &remote) {
		respondRemote(w, remote, current)
		return true
	}
	return RespondDomainError(w, err)
}

// ToViolations конвертирует нарушения в HTTP модель
func ToViolations(violations domain.ValidationErrors) []ViolationResponse {
	out := make([]ViolationResponse, 0, len(violations))
	for _, v := range violations {
		item := ViolationResponse{Kind: domain.KindName(v.Kind), Message: v.Message}
		if v.Day.IsValid() {
			item.Day = v.Day.String()
		}
		if v.Index >= 0 {
			index := v.Index
			item.Index = &index
		}
		out = append(out, item)
	}
	return out
}

// DecodeJSON декодирует тело запроса
func DecodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// PathInt64 извлекает положительный int64 из переменной пути
func PathInt64(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}

func kindOf(err error) error {
	switch {
	case errors.Is(err, domain.ErrOrder):
		return domain.ErrOrder
	case errors.Is(err, domain.ErrConflict):
		return domain.ErrConflict
	default:
		return domain.ErrFormat
	}
}
