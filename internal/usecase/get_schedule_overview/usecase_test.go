package get_schedule_overview

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/availability"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/slots"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/timeoff"
	"github.com/m04kA/SMC-SalonScheduling/pkg/logger"
)

type fakeAvailability struct {
	err error
}

func (f fakeAvailability) Load(_ context.Context, _ domain.Actor, employeeID int64) (*availability.WeekResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &availability.WeekResult{Week: domain.NewWeeklyAvailability(employeeID)}, nil
}

type fakeTimeOff struct {
	calls int
}

func (f *fakeTimeOff) List(_ context.Context, _ domain.Actor, filter timeoff.ListFilter) ([]domain.TimeOffRequest, error) {
	f.calls++
	return []domain.TimeOffRequest{{ID: 1, EmployeeID: *filter.EmployeeID, Status: domain.TimeOffPending}}, nil
}

type fakeSlots struct{}

func (fakeSlots) Available(_ context.Context, _ domain.Actor, q slots.Query) ([]domain.DayGroup, error) {
	return domain.GroupByDay([]domain.AvailabilitySlot{{Start: q.DateFrom.Add(9 * time.Hour), End: q.DateFrom.Add(10 * time.Hour)}}), nil
}

var from = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func TestExecute_LoadsAllParts(t *testing.T) {
	timeOff := &fakeTimeOff{}
	uc := NewUseCase(fakeAvailability{}, timeOff, fakeSlots{}, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:      domain.Actor{Role: domain.RoleEmployee, ID: 7},
		EmployeeID: 7,
		DateFrom:   from,
		DateTo:     from.AddDate(0, 0, 6),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Week)
	assert.Equal(t, int64(7), resp.Week.Week.EmployeeID)
	assert.Len(t, resp.TimeOff, 1)
	assert.Len(t, resp.Slots, 1)

	require.Len(t, resp.Calendar, 7)
	assert.Equal(t, 1, resp.Calendar[0].Slots)
	assert.False(t, resp.Calendar[0].OnTimeOff, "pending request")
}

func TestExecute_ClientSkipsTimeOff(t *testing.T) {
	timeOff := &fakeTimeOff{}
	uc := NewUseCase(fakeAvailability{}, timeOff, fakeSlots{}, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:      domain.Actor{Role: domain.RoleClient, ID: 20},
		EmployeeID: 7,
		DateFrom:   from,
		DateTo:     from,
	})
	require.NoError(t, err)
	assert.Zero(t, timeOff.calls)
	assert.NotNil(t, resp.TimeOff)
	assert.Empty(t, resp.TimeOff)
}

func TestExecute_AvailabilityFailure(t *testing.T) {
	remote := &domain.RemoteError{Operation: "get_schedule", StatusCode: 502}
	uc := NewUseCase(fakeAvailability{err: remote}, &fakeTimeOff{}, fakeSlots{}, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{
		Actor:      domain.Actor{Role: domain.RoleManager, ID: 1},
		EmployeeID: 7,
		DateFrom:   from,
		DateTo:     from,
	})
	assert.ErrorIs(t, err, domain.ErrRemote)
}
