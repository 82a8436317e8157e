package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestValidateTimeOffDates(t *testing.T) {
	assert.NoError(t, ValidateTimeOffDates(date(2026, 5, 1), date(2026, 5, 1)))
	assert.NoError(t, ValidateTimeOffDates(date(2026, 5, 1), date(2026, 5, 3)))
	assert.ErrorIs(t, ValidateTimeOffDates(date(2026, 5, 4), date(2026, 5, 3)), ErrOrder)
	assert.ErrorIs(t, ValidateTimeOffDates(time.Time{}, date(2026, 5, 3)), ErrFormat)
}

func TestTimeOff_CheckDelete(t *testing.T) {
	owner := Actor{Role: RoleEmployee, ID: 5}
	manager := Actor{Role: RoleManager, ID: 1}
	stranger := Actor{Role: RoleEmployee, ID: 6}

	for _, status := range []TimeOffStatus{TimeOffApproved, TimeOffRejected} {
		req := &TimeOffRequest{ID: 1, EmployeeID: 5, Status: status}
		for _, actor := range []Actor{owner, manager, stranger} {
			assert.ErrorIs(t, req.CheckDelete(actor), ErrInvalidTransition, "%s deleting %s", actor, status)
		}
	}

	pending := &TimeOffRequest{ID: 1, EmployeeID: 5, Status: TimeOffPending}
	assert.NoError(t, pending.CheckDelete(owner))
	assert.NoError(t, pending.CheckDelete(manager))
	assert.ErrorIs(t, pending.CheckDelete(stranger), ErrInvalidTransition)
}

func TestTimeOff_CheckReview(t *testing.T) {
	manager := Actor{Role: RoleManager, ID: 1}
	owner := Actor{Role: RoleEmployee, ID: 5}

	pending := &TimeOffRequest{ID: 1, EmployeeID: 5, Status: TimeOffPending}
	assert.NoError(t, pending.CheckReview(manager, DecisionApprove))
	assert.NoError(t, pending.CheckReview(manager, DecisionReject))
	assert.ErrorIs(t, pending.CheckReview(owner, DecisionApprove), ErrInvalidTransition)
	assert.ErrorIs(t, pending.CheckReview(manager, TimeOffDecision("maybe")), ErrInvalidInput)

	approved := &TimeOffRequest{ID: 1, EmployeeID: 5, Status: TimeOffApproved}
	assert.ErrorIs(t, approved.CheckReview(manager, DecisionReject), ErrInvalidTransition)
	assert.ErrorIs(t, approved.CheckReview(manager, DecisionApprove), ErrInvalidTransition)
}

func TestTimeOff_CheckReopen(t *testing.T) {
	manager := Actor{Role: RoleManager, ID: 1}

	rejected := &TimeOffRequest{ID: 1, EmployeeID: 5, Status: TimeOffRejected}
	assert.NoError(t, rejected.CheckReopen(manager))
	assert.ErrorIs(t, rejected.CheckReopen(Actor{Role: RoleEmployee, ID: 5}), ErrInvalidTransition)

	pending := &TimeOffRequest{ID: 1, EmployeeID: 5, Status: TimeOffPending}
	assert.ErrorIs(t, pending.CheckReopen(manager), ErrInvalidTransition)
}

func TestCheckCreateTimeOff(t *testing.T) {
	assert.NoError(t, CheckCreateTimeOff(Actor{Role: RoleEmployee, ID: 5}, 5))
	assert.NoError(t, CheckCreateTimeOff(Actor{Role: RoleManager, ID: 1}, 5))
	assert.ErrorIs(t, CheckCreateTimeOff(Actor{Role: RoleEmployee, ID: 6}, 5), ErrAccessDenied)
	assert.ErrorIs(t, CheckCreateTimeOff(Actor{Role: RoleClient, ID: 5}, 5), ErrAccessDenied)
	assert.ErrorIs(t, CheckCreateTimeOff(Actor{Role: RoleManager, ID: 1}, 0), ErrInvalidInput)
}

func TestTimeOff_Covers(t *testing.T) {
	req := &TimeOffRequest{DateFrom: date(2026, 5, 1), DateTo: date(2026, 5, 3)}
	assert.True(t, req.Covers(time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)))
	assert.True(t, req.Covers(time.Date(2026, 5, 3, 23, 0, 0, 0, time.UTC)))
	assert.False(t, req.Covers(time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)))
}
