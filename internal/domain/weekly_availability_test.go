package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countKind(errs ValidationErrors, kind error) int {
	n := 0
	for _, e := range errs {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// decodeWireWeek разбирает тело ответа salon API так же, как клиент
func decodeWireWeek(t *testing.T, employeeID int64, body []byte) (*WeeklyAvailability, ValidationErrors) {
	t.Helper()
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &raw))
	return FromWire(employeeID, raw)
}

func TestSetDayPeriods_ReportsEveryConflictPrecisely(t *testing.T) {
	w := NewWeeklyAvailability(1)

	errs := w.SetDayPeriods(Monday, []TimeRange{tr("09:00", "12:00"), tr("11:00", "13:00")})
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrConflict)
	assert.Equal(t, Monday, errs[0].Day)
	assert.Equal(t, 1, errs[0].Index)

	errs = w.SetDayPeriods(Tuesday, []TimeRange{tr("09:00", "12:00"), tr("13:00", "15:00"), tr("14:00", "16:00")})
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrConflict)
	assert.Equal(t, 2, errs[0].Index)
}

func TestSetDayPeriods_CollectsAllKinds(t *testing.T) {
	w := NewWeeklyAvailability(1)

	errs := w.SetDayPeriods(Friday, []TimeRange{
		tr("9:00", "12:00"),
		tr("15:00", "14:00"),
		tr("10:00", "11:00"),
		tr("10:30", "12:00"),
	})

	require.Len(t, errs, 3)
	assert.Equal(t, 1, countKind(errs, ErrFormat))
	assert.Equal(t, 1, countKind(errs, ErrOrder))
	assert.Equal(t, 1, countKind(errs, ErrConflict))
	assert.ErrorIs(t, errs.Err(), ErrConflict)
	assert.True(t, w.IsClosed(Friday), "an invalid day must not be stored")
}

func TestSetDayPeriods_ContainedRangeConflictsWithEachSibling(t *testing.T) {
	w := NewWeeklyAvailability(1)

	errs := w.SetDayPeriods(Monday, []TimeRange{tr("09:00", "18:00"), tr("10:00", "11:00"), tr("12:00", "13:00")})
	assert.Len(t, errs, 2)
}

func TestSetDayPeriods_SortsChronologically(t *testing.T) {
	w := NewWeeklyAvailability(1)

	errs := w.SetDayPeriods(Wednesday, []TimeRange{tr("14:00", "18:00"), tr("09:00", "13:00")})
	require.Empty(t, errs)
	assert.Equal(t, []TimeRange{tr("09:00", "13:00"), tr("14:00", "18:00")}, w.Periods(Wednesday))

	errs = w.SetDayPeriods(Wednesday, []TimeRange{tr("09:00", "10:00"), tr("10:00", "11:00")})
	assert.Empty(t, errs, "adjacent periods sharing a boundary are valid")
}

func TestSetDayPeriods_InvalidDay(t *testing.T) {
	w := NewWeeklyAvailability(1)
	errs := w.SetDayPeriods(Weekday(0), nil)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrFormat)
}

func TestAddAndRemovePeriod(t *testing.T) {
	w := NewWeeklyAvailability(1)
	require.Empty(t, w.SetDayPeriods(Monday, []TimeRange{tr("09:00", "13:00")}))

	w.AddPeriod(Monday)
	assert.Equal(t, []TimeRange{tr("09:00", "13:00"), tr("09:00", "17:00")}, w.Periods(Monday))

	errs := w.Validate()
	require.Len(t, errs, 1, "edit-time leniency: conflict surfaces only on validate")
	assert.ErrorIs(t, errs[0], ErrConflict)

	w.RemovePeriod(Monday, 5)
	w.RemovePeriod(Monday, -1)
	assert.Len(t, w.Periods(Monday), 2)

	w.RemovePeriod(Monday, 0)
	assert.Equal(t, []TimeRange{tr("09:00", "17:00")}, w.Periods(Monday))
	assert.Empty(t, w.Validate())
}

func TestPeriods_ReturnsCopy(t *testing.T) {
	w := NewWeeklyAvailability(1)
	require.Empty(t, w.SetDayPeriods(Monday, []TimeRange{tr("09:00", "13:00")}))

	periods := w.Periods(Monday)
	periods[0] = tr("00:00", "23:00")
	assert.Equal(t, tr("09:00", "13:00"), w.Periods(Monday)[0])
}

func TestWire_RoundTrip(t *testing.T) {
	w := NewWeeklyAvailability(7)
	require.Empty(t, w.SetDayPeriods(Monday, []TimeRange{tr("09:00", "13:00"), tr("14:00", "18:00")}))
	require.Empty(t, w.SetDayPeriods(Saturday, []TimeRange{tr("10:00", "14:30")}))

	formats := []WireFormat{
		{Keys: WeekdayKeysShort},
		{Keys: WeekdayKeysLong},
		{Keys: WeekdayKeysShort, WithSeconds: true},
		{Keys: WeekdayKeysLong, WithSeconds: true},
	}

	for _, format := range formats {
		data, err := json.Marshal(w.ToWire(format))
		require.NoError(t, err)

		decoded, errs := decodeWireWeek(t, 7, data)
		require.Empty(t, errs)
		assert.True(t, w.Equal(decoded), "format %+v", format)
	}
}

func TestToWire_AllDaysPresent(t *testing.T) {
	w := NewWeeklyAvailability(1)
	require.Empty(t, w.SetDayPeriods(Monday, []TimeRange{tr("09:00", "13:00")}))

	wire := w.ToWire(WireFormat{Keys: WeekdayKeysShort, WithSeconds: true})
	require.Len(t, wire, 7)
	assert.Equal(t, []WirePeriod{{Start: "09:00:00", End: "13:00:00"}}, wire["mon"])
	assert.NotNil(t, wire["tue"])
	assert.Empty(t, wire["tue"])

	data, err := json.Marshal(wire)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tue":[]`)
}

func TestFromWire_Tolerance(t *testing.T) {
	body := []byte(`{
		"Monday": [{"start":"14:00:00","end":"18:00:00"},{"start":"09:00","end":"13:00"}],
		"tue": "closed",
		"wed": null,
		"fri": [{"start":"10:00","end":"09:00"}],
		"funday": []
	}`)

	w, errs := decodeWireWeek(t, 3, body)

	assert.Equal(t, int64(3), w.EmployeeID)
	assert.Equal(t, []TimeRange{tr("09:00", "13:00"), tr("14:00", "18:00")}, w.Periods(Monday))
	assert.True(t, w.IsClosed(Tuesday))
	assert.True(t, w.IsClosed(Wednesday))
	assert.True(t, w.IsClosed(Thursday))
	assert.True(t, w.IsClosed(Sunday))

	assert.Equal(t, []TimeRange{tr("10:00", "09:00")}, w.Periods(Friday), "server state is kept even when invalid")
	require.Len(t, errs, 2)
	assert.Equal(t, 1, countKind(errs, ErrFormat))
	assert.Equal(t, 1, countKind(errs, ErrOrder))
}

func TestFromWire_MalformedElementKeepsSiblings(t *testing.T) {
	body := []byte(`{
		"mon": [{"start":"09:00","end":"12:00"},{"start":9,"end":"13:00"},"x",{"start":"14:00","end":"18:00"}]
	}`)

	w, errs := decodeWireWeek(t, 3, body)

	require.Len(t, errs, 2)
	for i, want := range []int{1, 2} {
		assert.Equal(t, Monday, errs[i].Day)
		assert.Equal(t, want, errs[i].Index)
		assert.ErrorIs(t, errs[i], ErrFormat)
	}
	assert.Contains(t, errs[0].Message, "9")

	periods := w.Periods(Monday)
	require.Len(t, periods, 4, "a malformed element must not close the day")
	assert.Contains(t, periods, tr("09:00", "12:00"))
	assert.Contains(t, periods, tr("14:00", "18:00"))
}

func TestWeeklyAvailability_ZeroValueMutators(t *testing.T) {
	var w WeeklyAvailability

	w.RemovePeriod(Monday, 0)
	w.AddPeriod(Monday)
	assert.Equal(t, []TimeRange{tr("09:00", "17:00")}, w.Periods(Monday))

	require.Empty(t, w.SetDayPeriods(Tuesday, []TimeRange{tr("10:00", "12:00")}))
	assert.Equal(t, []TimeRange{tr("10:00", "12:00")}, w.Periods(Tuesday))
	assert.True(t, w.Clone().Equal(&w))
}

func TestParseWeekday(t *testing.T) {
	for _, day := range AllWeekdays {
		got, err := ParseWeekday(day.ShortKey())
		require.NoError(t, err)
		assert.Equal(t, day, got)

		got, err = ParseWeekday(day.LongKey())
		require.NoError(t, err)
		assert.Equal(t, day, got)
	}

	got, err := ParseWeekday(" SUNDAY ")
	require.NoError(t, err)
	assert.Equal(t, Sunday, got)

	_, err = ParseWeekday("lundi")
	assert.ErrorIs(t, err, ErrFormat)
}

func TestWeeklyAvailability_CloneEqual(t *testing.T) {
	w := NewWeeklyAvailability(1)
	require.Empty(t, w.SetDayPeriods(Monday, []TimeRange{tr("09:00", "13:00")}))

	clone := w.Clone()
	assert.True(t, w.Equal(clone))

	clone.AddPeriod(Monday)
	assert.False(t, w.Equal(clone))
	assert.False(t, w.Equal(NewWeeklyAvailability(2)))
}
