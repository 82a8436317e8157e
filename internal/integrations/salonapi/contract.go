package salonapi

import "time"

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics учет исходящих вызовов
type Metrics interface {
	ObserveUpstreamCall(operation string, err error, duration time.Duration)
}
