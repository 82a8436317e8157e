package types

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeFormat возвращается, когда строка не соответствует формату HH:MM
var ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")

const (
	layoutMinutes = "15:04"
	layoutSeconds = "15:04:05"
)

// TimeString время суток в формате HH:MM (24ч, с ведущими нулями)
// Пустая строка - нулевое значение
type TimeString string

// NewTimeString создает TimeString из time.Time (секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(layoutMinutes))
}

// NewTimeStringFromString создает TimeString из строки строго формата HH:MM
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NormalizeTimeString принимает HH:MM или HH:MM:SS и приводит к HH:MM
// Секунды отбрасываются
func NormalizeTimeString(s string) (TimeString, error) {
	switch len(s) {
	case len(layoutMinutes):
		return NewTimeStringFromString(s)
	case len(layoutSeconds):
		t, err := time.Parse(layoutSeconds, s)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
		return NewTimeString(t), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
}

// Validate проверяет формат HH:MM
// time.Parse допускает однозначные часы, поэтому длина проверяется отдельно
func (t TimeString) Validate() error {
	if len(t) != len(layoutMinutes) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	if _, err := time.Parse(layoutMinutes, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	return nil
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// WithSeconds возвращает представление HH:MM:SS
func (t TimeString) WithSeconds() string {
	return string(t) + ":00"
}

// Minutes возвращает количество минут от полуночи
// Для невалидного значения возвращает -1
func (t TimeString) Minutes() int {
	parsed, err := time.Parse(layoutMinutes, string(t))
	if err != nil || len(t) != len(layoutMinutes) {
		return -1
	}
	return parsed.Hour()*60 + parsed.Minute()
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}
