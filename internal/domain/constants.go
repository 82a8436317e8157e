package domain

import "github.com/m04kA/SMC-SalonScheduling/pkg/types"

// Default period appended by AddPeriod
const (
	DefaultPeriodStart types.TimeString = "09:00"
	DefaultPeriodEnd   types.TimeString = "17:00"
)

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxTimeOffReasonLength      = 500
	MaxCancellationReasonLength = 500
	MaxSlotQueryDays            = 62
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
