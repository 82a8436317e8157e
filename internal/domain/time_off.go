package domain

import (
	"fmt"
	"time"
)

// TimeOffStatus status of a time-off request
type TimeOffStatus string

const (
	TimeOffPending  TimeOffStatus = "pending"
	TimeOffApproved TimeOffStatus = "approved"
	TimeOffRejected TimeOffStatus = "rejected"
)

// ParseTimeOffStatus validates a status value
func ParseTimeOffStatus(s string) (TimeOffStatus, error) {
	switch TimeOffStatus(s) {
	case TimeOffPending, TimeOffApproved, TimeOffRejected:
		return TimeOffStatus(s), nil
	default:
		return "", fmt.Errorf("%w: unknown time-off status %q", ErrInvalidInput, s)
	}
}

// TimeOffDecision manager's review outcome
type TimeOffDecision string

const (
	DecisionApprove TimeOffDecision = "approve"
	DecisionReject  TimeOffDecision = "reject"
)

// Target status reached by the decision
func (d TimeOffDecision) Target() (TimeOffStatus, error) {
	switch d {
	case DecisionApprove:
		return TimeOffApproved, nil
	case DecisionReject:
		return TimeOffRejected, nil
	default:
		return "", fmt.Errorf("%w: unknown decision %q", ErrInvalidInput, string(d))
	}
}

// TimeOffRequest a dated absence request, inclusive on both ends
type TimeOffRequest struct {
	ID         int64
	EmployeeID int64
	DateFrom   time.Time
	DateTo     time.Time
	Reason     *string
	Status     TimeOffStatus
	CreatedAt  time.Time
}

// IsPending reports whether the request is still awaiting review
func (r *TimeOffRequest) IsPending() bool {
	return r.Status == TimeOffPending
}

// Covers reports whether the calendar date of t falls inside the request
func (r *TimeOffRequest) Covers(t time.Time) bool {
	day := dateOnly(t)
	return !day.Before(dateOnly(r.DateFrom)) && !day.After(dateOnly(r.DateTo))
}

// ValidateTimeOffDates fails with ErrFormat for a missing date and ErrOrder when dateFrom > dateTo
func ValidateTimeOffDates(dateFrom, dateTo time.Time) error {
	if dateFrom.IsZero() || dateTo.IsZero() {
		return fmt.Errorf("%w: dateFrom and dateTo are required", ErrFormat)
	}
	if dateOnly(dateFrom).After(dateOnly(dateTo)) {
		return fmt.Errorf("%w: dateFrom %s is after dateTo %s",
			ErrOrder, dateFrom.Format(DateFormat), dateTo.Format(DateFormat))
	}
	return nil
}

// CheckCreateTimeOff employees create requests only for themselves, managers for anyone
func CheckCreateTimeOff(actor Actor, employeeID int64) error {
	if employeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}
	if !actor.CanManageSchedule(employeeID) {
		return fmt.Errorf("%w: %s may not request time off for employee %d", ErrAccessDenied, actor, employeeID)
	}
	return nil
}

// CheckReview approve/reject is manager-only and only from pending
func (r *TimeOffRequest) CheckReview(actor Actor, decision TimeOffDecision) error {
	if _, err := decision.Target(); err != nil {
		return err
	}
	if !actor.IsManager() {
		return fmt.Errorf("%w: only a manager may %s time off", ErrInvalidTransition, decision)
	}
	if !r.IsPending() {
		return fmt.Errorf("%w: cannot %s time-off request %d in status %s", ErrInvalidTransition, decision, r.ID, r.Status)
	}
	return nil
}

// CheckDelete deletion is allowed only from pending, regardless of role,
// and only to the requesting employee or a manager
func (r *TimeOffRequest) CheckDelete(actor Actor) error {
	if !r.IsPending() {
		return fmt.Errorf("%w: time-off request %d is %s and can no longer be deleted", ErrInvalidTransition, r.ID, r.Status)
	}
	if !actor.CanManageSchedule(r.EmployeeID) {
		return fmt.Errorf("%w: %s may not delete time-off request %d", ErrInvalidTransition, actor, r.ID)
	}
	return nil
}

// CheckReopen a manager may move a reviewed request back to pending through an explicit edit
func (r *TimeOffRequest) CheckReopen(actor Actor) error {
	if !actor.IsManager() {
		return fmt.Errorf("%w: only a manager may reopen time off", ErrInvalidTransition)
	}
	if r.IsPending() {
		return fmt.Errorf("%w: time-off request %d is already pending", ErrInvalidTransition, r.ID)
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
