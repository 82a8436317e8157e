package snapshot

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

func TestBuildGetQuery(t *testing.T) {
	query, args, err := buildGetQuery(7)
	require.NoError(t, err)
	assert.Equal(t, "SELECT payload, updated_at FROM weekly_availability_snapshots WHERE employee_id = $1", query)
	assert.Equal(t, []interface{}{int64(7)}, args)
}

func TestBuildUpsertQuery(t *testing.T) {
	week := domain.NewWeeklyAvailability(7)
	require.Empty(t, week.SetDayPeriods(domain.Friday, []domain.TimeRange{{Start: "10:00", End: "14:00"}}))

	query, args, err := buildUpsertQuery(week)
	require.NoError(t, err)
	assert.Contains(t, query, "INSERT INTO weekly_availability_snapshots (employee_id,payload,updated_at) VALUES ($1,$2,NOW())")
	assert.Contains(t, query, "ON CONFLICT (employee_id) DO UPDATE")
	require.Len(t, args, 2)
	assert.Equal(t, int64(7), args[0])

	var stored domain.WireWeek
	require.NoError(t, json.Unmarshal(args[1].([]byte), &stored))
	assert.Len(t, stored, 7)
	assert.Equal(t, []domain.WirePeriod{{Start: "10:00", End: "14:00"}}, stored["fri"])
}

func TestDecodePayload(t *testing.T) {
	week, err := decodePayload(7, []byte(`{"fri":[{"start":"10:00","end":"14:00"}],"mon":[]}`))
	require.NoError(t, err)
	assert.Equal(t, []domain.TimeRange{{Start: "10:00", End: "14:00"}}, week.Periods(domain.Friday))
	assert.True(t, week.IsClosed(domain.Monday))

	_, err = decodePayload(7, []byte(`not json`))
	assert.ErrorIs(t, err, ErrPayload)
}
