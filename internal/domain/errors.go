package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFormat malformed time string, date or weekday key
	ErrFormat = errors.New("invalid format")

	// ErrOrder start >= end, or dateFrom > dateTo
	ErrOrder = errors.New("start must be before end")

	// ErrConflict overlapping time ranges within a day
	ErrConflict = errors.New("time ranges overlap")

	// ErrInvalidTransition transition not allowed from the current status or for the actor's role
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrStaleSlot a previously offered slot is no longer valid at commit time
	ErrStaleSlot = errors.New("slot is no longer available")

	// ErrInvalidInput obviously malformed request (missing ids, non-future start)
	ErrInvalidInput = errors.New("invalid input")

	// ErrAccessDenied actor may not act on behalf of another employee or client
	ErrAccessDenied = errors.New("access denied")

	// ErrRemote the salon API rejected the call or could not be reached
	ErrRemote = errors.New("salon api call failed")

	// ErrTimeout the salon API call exceeded its deadline; retryable
	ErrTimeout = errors.New("salon api call timed out")

	// ErrNotFound the salon API has no such entity
	ErrNotFound = errors.New("not found")

	// ErrBusy another mutation of the same entity is still in flight
	ErrBusy = errors.New("entity is being modified, try again")
)

// KindName short label of a validation kind (metrics, API payloads)
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrFormat):
		return "format"
	case errors.Is(err, ErrOrder):
		return "order"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrStaleSlot):
		return "stale_slot"
	case errors.Is(err, ErrAccessDenied):
		return "access_denied"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrBusy):
		return "busy"
	default:
		return "other"
	}
}

// ValidationError a single local validation violation
// Day is zero when the violation is not bound to a weekday, Index is -1 when not bound to a period
type ValidationError struct {
	Day     Weekday
	Index   int
	Kind    error
	Message string
}

func (e ValidationError) Error() string {
	var b strings.Builder
	if e.Day.IsValid() {
		b.WriteString(e.Day.String())
		if e.Index >= 0 {
			fmt.Fprintf(&b, "[%d]", e.Index)
		}
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.Error())
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

func (e ValidationError) Unwrap() error {
	return e.Kind
}

// ValidationErrors every violation found, in discovery order
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

func (errs ValidationErrors) Unwrap() []error {
	out := make([]error, len(errs))
	for i, e := range errs {
		out[i] = e
	}
	return out
}

// Err возвращает nil для пустого списка, чтобы не получить типизированный nil в error
func (errs ValidationErrors) Err() error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// RemoteError the salon API rejected the call or failed in transport
// Payload is the raw response body, passed to the caller verbatim
type RemoteError struct {
	Operation  string
	StatusCode int
	Payload    []byte
	Err        error
}

func (e *RemoteError) Error() string {
	var b strings.Builder
	b.WriteString("salon api: ")
	b.WriteString(e.Operation)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if len(e.Payload) > 0 {
		b.WriteString(": ")
		b.Write(e.Payload)
	}
	return b.String()
}

func (e *RemoteError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrRemote}
	}
	return []error{ErrRemote, e.Err}
}

// Retryable true for transport failures, timeouts and 5xx responses
func (e *RemoteError) Retryable() bool {
	return e.StatusCode == 0 || e.StatusCode >= 500 || errors.Is(e.Err, ErrTimeout)
}
