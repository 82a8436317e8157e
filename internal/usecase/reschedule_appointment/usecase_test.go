package reschedule_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/internal/integrations/salonapi"
	"github.com/m04kA/SMC-SalonScheduling/pkg/keylock"
	"github.com/m04kA/SMC-SalonScheduling/pkg/logger"
)

type fakeClient struct {
	appt        domain.Appointment
	slots       []domain.AvailabilitySlot
	slotQueries []salonapi.SlotQuery
	rescheduled int
	moveErr     error
}

func (f *fakeClient) GetAppointment(_ context.Context, _ domain.Actor, id int64) (*domain.Appointment, error) {
	if id != f.appt.ID {
		return nil, salonapi.ErrNotFound
	}
	cp := f.appt
	return &cp, nil
}

func (f *fakeClient) GetSlots(_ context.Context, _ domain.Actor, q salonapi.SlotQuery) ([]domain.AvailabilitySlot, error) {
	f.slotQueries = append(f.slotQueries, q)
	return f.slots, nil
}

func (f *fakeClient) RescheduleAppointment(_ context.Context, _ domain.Actor, id int64, newStart time.Time) (*domain.Appointment, error) {
	f.rescheduled++
	if f.moveErr != nil {
		return nil, f.moveErr
	}
	f.appt.Start = newStart
	f.appt.End = newStart.Add(time.Hour)
	cp := f.appt
	return &cp, nil
}

type nopMetrics struct{}

func (nopMetrics) IncRejection(string, string) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var (
	now      = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	newStart = time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC)
	owner    = domain.Actor{Role: domain.RoleEmployee, ID: 10}
	booker   = domain.Actor{Role: domain.RoleClient, ID: 20}
)

func newUseCase(client *fakeClient) *UseCase {
	return NewUseCase(client, keylock.New(), nopMetrics{}, logger.NewNop()).WithTimeProvider(fixedTime{now: now})
}

func fixture(status domain.AppointmentStatus) *fakeClient {
	return &fakeClient{
		appt: domain.Appointment{ID: 1, EmployeeID: 10, ServiceID: 3, ClientID: 20, Status: status,
			Start: now.Add(24 * time.Hour), End: now.Add(25 * time.Hour)},
		slots: []domain.AvailabilitySlot{
			{Start: newStart.Add(-time.Hour), End: newStart},
			{Start: newStart, End: newStart.Add(time.Hour)},
		},
	}
}

func TestExecute_MovesToFreshSlot(t *testing.T) {
	client := fixture(domain.StatusConfirmed)

	updated, err := newUseCase(client).Execute(context.Background(), &Request{Actor: owner, AppointmentID: 1, NewStart: newStart})
	require.NoError(t, err)
	assert.True(t, updated.Start.Equal(newStart))
	assert.Equal(t, 1, client.rescheduled)

	require.Len(t, client.slotQueries, 1)
	q := client.slotQueries[0]
	assert.Equal(t, int64(10), q.EmployeeID)
	assert.Equal(t, int64(3), q.ServiceID)
	assert.Equal(t, "2026-03-04", q.DateFrom.Format(domain.DateFormat))
	assert.Equal(t, "2026-03-04", q.DateTo.Format(domain.DateFormat))
}

func TestExecute_StaleSlot(t *testing.T) {
	client := fixture(domain.StatusPending)
	client.slots = client.slots[:1] // выбранный слот успели занять

	_, err := newUseCase(client).Execute(context.Background(), &Request{Actor: owner, AppointmentID: 1, NewStart: newStart})
	assert.ErrorIs(t, err, domain.ErrStaleSlot)
	assert.Zero(t, client.rescheduled)
}

func TestExecute_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		status domain.AppointmentStatus
		actor  domain.Actor
		start  time.Time
		id     int64
		want   error
	}{
		{"in progress", domain.StatusInProgress, owner, newStart, 1, domain.ErrInvalidTransition},
		{"completed", domain.StatusCompleted, owner, newStart, 1, domain.ErrInvalidTransition},
		{"past start", domain.StatusPending, owner, now.Add(-time.Hour), 1, domain.ErrInvalidInput},
		{"foreign client", domain.StatusPending, domain.Actor{Role: domain.RoleClient, ID: 21}, newStart, 1, domain.ErrAccessDenied},
		{"own client", domain.StatusPending, booker, newStart, 1, domain.ErrInvalidTransition},
		{"other employee", domain.StatusPending, domain.Actor{Role: domain.RoleEmployee, ID: 11}, newStart, 1, domain.ErrAccessDenied},
		{"missing", domain.StatusPending, owner, newStart, 2, domain.ErrNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := fixture(tc.status)
			_, err := newUseCase(client).Execute(context.Background(), &Request{Actor: tc.actor, AppointmentID: tc.id, NewStart: tc.start})
			assert.ErrorIs(t, err, tc.want)
			assert.Empty(t, client.slotQueries)
			assert.Zero(t, client.rescheduled)
		})
	}
}

func TestExecute_Busy(t *testing.T) {
	locks := keylock.New()
	unlock, ok := locks.TryLock("appointment:1")
	require.True(t, ok)
	defer unlock()

	client := fixture(domain.StatusPending)
	uc := NewUseCase(client, locks, nopMetrics{}, logger.NewNop()).WithTimeProvider(fixedTime{now: now})

	_, err := uc.Execute(context.Background(), &Request{Actor: owner, AppointmentID: 1, NewStart: newStart})
	assert.ErrorIs(t, err, domain.ErrBusy)
}

func TestExecute_FailureReturnsCurrent(t *testing.T) {
	fake := fixture(domain.StatusConfirmed)
	fake.moveErr = &domain.RemoteError{Operation: "reschedule_appointment", StatusCode: 409, Payload: []byte(`{"error":"slot taken"}`)}
	original := fake.appt.Start

	current, err := newUseCase(fake).Execute(context.Background(), &Request{Actor: owner, AppointmentID: 1, NewStart: newStart})
	assert.ErrorIs(t, err, domain.ErrRemote)
	require.NotNil(t, current, "the re-read appointment comes back with the error")
	assert.True(t, current.Start.Equal(original))
}
