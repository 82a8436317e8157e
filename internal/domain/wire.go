package domain

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-SalonScheduling/pkg/types"
)

// WeekdayKeyStyle the weekday key flavour expected by the salon API
type WeekdayKeyStyle string

const (
	WeekdayKeysShort WeekdayKeyStyle = "short" // mon..sun
	WeekdayKeysLong  WeekdayKeyStyle = "long"  // Monday..Sunday
)

// WireFormat how weekly hours are rendered for the salon API
type WireFormat struct {
	Keys        WeekdayKeyStyle
	WithSeconds bool
}

// Key returns the wire key of a weekday in this format
func (f WireFormat) Key(day Weekday) string {
	if f.Keys == WeekdayKeysLong {
		return day.LongKey()
	}
	return day.ShortKey()
}

// WirePeriod {start,end} pair as the salon API represents it
type WirePeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// WireWeek day-keyed weekly hours record
type WireWeek map[string][]WirePeriod

// ToWire renders all seven days; a closed day is an empty array, never omitted
func (w *WeeklyAvailability) ToWire(format WireFormat) WireWeek {
	out := make(WireWeek, len(AllWeekdays))
	for _, day := range AllWeekdays {
		periods := w.days[day]
		wire := make([]WirePeriod, len(periods))
		for i, p := range periods {
			wire[i] = WirePeriod{Start: renderTime(p.Start, format), End: renderTime(p.End, format)}
		}
		out[format.Key(day)] = wire
	}
	return out
}

// FromWire parses the salon API representation into a WeeklyAvailability
// Missing days are closed, a non-array value is an empty day, HH:MM:SS is normalized to HH:MM.
// A malformed element is reported with ErrFormat at its index; the other periods of the day are kept.
// The server representation is authoritative: periods are stored even when invalid,
// and every violation is returned for reporting.
func FromWire(employeeID int64, raw map[string]json.RawMessage) (*WeeklyAvailability, ValidationErrors) {
	week := NewWeeklyAvailability(employeeID)
	collected := make(map[Weekday][]TimeRange, len(AllWeekdays))

	var errs ValidationErrors

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		day, err := ParseWeekday(key)
		if err != nil {
			errs = append(errs, ValidationError{
				Index:   -1,
				Kind:    ErrFormat,
				Message: fmt.Sprintf("unknown weekday key %q", key),
			})
			continue
		}

		collected[day] = append(collected[day], decodeWireDay(raw[key])...)
	}

	for _, day := range AllWeekdays {
		periods := collected[day]
		if len(periods) == 0 {
			continue
		}
		errs = append(errs, validateDayPeriods(day, periods)...)
		week.setDay(day, periods)
	}

	return week, errs
}

// decodeWireDay decodes each element on its own so that one malformed period
// neither hides its siblings nor closes the day. A malformed element keeps its
// position with the raw bound text, which then fails validation with ErrFormat.
// A value that is not an array is an empty day.
func decodeWireDay(raw json.RawMessage) []TimeRange {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil
	}

	periods := make([]TimeRange, 0, len(elems))
	for _, elem := range elems {
		var p struct {
			Start json.RawMessage `json:"start"`
			End   json.RawMessage `json:"end"`
		}
		if err := json.Unmarshal(elem, &p); err != nil {
			// не объект: обе границы пустые
			periods = append(periods, NewTimeRange("", ""))
			continue
		}
		periods = append(periods, NewTimeRange(wireBound(p.Start), wireBound(p.End)))
	}
	return periods
}

// wireBound a JSON string is normalized, any other JSON value is kept verbatim
func wireBound(raw json.RawMessage) types.TimeString {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return types.TimeString(raw)
	}
	return parseWireTime(s)
}

func renderTime(t types.TimeString, format WireFormat) string {
	if format.WithSeconds {
		return t.WithSeconds()
	}
	return t.String()
}

// parseWireTime keeps an unparseable value as-is so that validation can report it
func parseWireTime(s string) types.TimeString {
	if normalized, err := types.NormalizeTimeString(s); err == nil {
		return normalized
	}
	return types.TimeString(s)
}
