package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotAt(t time.Time) AvailabilitySlot {
	return AvailabilitySlot{Start: t, End: t.Add(30 * time.Minute)}
}

func TestGroupByDay_Empty(t *testing.T) {
	groups := GroupByDay(nil)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestGroupByDay_OrdersDaysAndItems(t *testing.T) {
	tue := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	mon := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	groups := GroupByDay([]AvailabilitySlot{
		slotAt(tue.Add(11 * time.Hour)),
		slotAt(mon.Add(15 * time.Hour)),
		slotAt(tue.Add(9 * time.Hour)),
		slotAt(mon.Add(10 * time.Hour)),
	})

	require.Len(t, groups, 2)
	assert.Equal(t, "2026-03-02", groups[0].Label)
	assert.Equal(t, "2026-03-03", groups[1].Label)
	assert.True(t, groups[0].Date.Equal(mon))

	require.Len(t, groups[0].Items, 2)
	assert.True(t, groups[0].Items[0].Start.Equal(mon.Add(10*time.Hour)))
	assert.True(t, groups[0].Items[1].Start.Equal(mon.Add(15*time.Hour)))
	require.Len(t, groups[1].Items, 2)
	assert.True(t, groups[1].Items[0].Start.Equal(tue.Add(9*time.Hour)))
}

func TestGroupByDay_UsesSlotLocation(t *testing.T) {
	zone := time.FixedZone("UTC+3", 3*60*60)
	// 23:30 UTC on the 2nd is 02:30 on the 3rd in UTC+3
	start := time.Date(2026, 3, 2, 23, 30, 0, 0, time.UTC).In(zone)

	groups := GroupByDay([]AvailabilitySlot{slotAt(start)})
	require.Len(t, groups, 1)
	assert.Equal(t, "2026-03-03", groups[0].Label)
}

func TestContainsStart(t *testing.T) {
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	slots := []AvailabilitySlot{slotAt(base), slotAt(base.Add(time.Hour))}

	assert.True(t, ContainsStart(slots, base.Add(time.Hour)))
	assert.True(t, ContainsStart(slots, base.In(time.FixedZone("X", 3600))))
	assert.False(t, ContainsStart(slots, base.Add(30*time.Minute)))
}

func TestWeekdayOf(t *testing.T) {
	assert.Equal(t, Monday, WeekdayOf(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Sunday, WeekdayOf(time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)))
}
