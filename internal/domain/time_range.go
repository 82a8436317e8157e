package domain

import (
	"fmt"

	"github.com/m04kA/SMC-SalonScheduling/pkg/types"
)

// TimeRange a day-local [Start, End) interval with minute precision
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// NewTimeRange builds a TimeRange without validating it
func NewTimeRange(start, end types.TimeString) TimeRange {
	return TimeRange{Start: start, End: end}
}

// Validate fails with ErrFormat for a malformed bound and with ErrOrder when start >= end
func (r TimeRange) Validate() error {
	if err := r.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start %q is not HH:MM", ErrFormat, r.Start.String())
	}
	if err := r.End.Validate(); err != nil {
		return fmt.Errorf("%w: end %q is not HH:MM", ErrFormat, r.End.String())
	}
	if !r.Start.IsBefore(r.End) {
		return fmt.Errorf("%w: %s", ErrOrder, r)
	}
	return nil
}

// ConflictsWith reports whether the half-open intervals intersect
// Ranges sharing only a boundary (09:00-10:00 and 10:00-11:00) do not conflict
func (r TimeRange) ConflictsWith(other TimeRange) bool {
	return r.Start.IsBefore(other.End) && other.Start.IsBefore(r.End)
}

func (r TimeRange) String() string {
	return r.Start.String() + "-" + r.End.String()
}
