package domain

import (
	"fmt"
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no_show"
)

// IsTerminal completed, cancelled and no_show have no outgoing transitions
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// IsValid reports whether s is a known status
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// AppointmentAction a status-changing command
type AppointmentAction string

const (
	ActionConfirm  AppointmentAction = "confirm"
	ActionStart    AppointmentAction = "start"
	ActionComplete AppointmentAction = "complete"
	ActionNoShow   AppointmentAction = "no_show"
	ActionCancel   AppointmentAction = "cancel"
)

// actionTargets each action leads to exactly one status
var actionTargets = map[AppointmentAction]AppointmentStatus{
	ActionConfirm:  StatusConfirmed,
	ActionStart:    StatusInProgress,
	ActionComplete: StatusCompleted,
	ActionNoShow:   StatusNoShow,
	ActionCancel:   StatusCancelled,
}

// transitions allowed moves; anything absent is invalid
var transitions = map[AppointmentStatus]map[AppointmentAction]bool{
	StatusPending: {
		ActionConfirm: true,
		ActionCancel:  true,
	},
	StatusConfirmed: {
		ActionStart:  true,
		ActionCancel: true,
		ActionNoShow: true,
	},
	StatusInProgress: {
		ActionComplete: true,
		ActionNoShow:   true,
	},
}

// ParseAppointmentAction validates an action name
func ParseAppointmentAction(s string) (AppointmentAction, error) {
	action := AppointmentAction(s)
	if _, ok := actionTargets[action]; !ok {
		return "", fmt.Errorf("%w: unknown action %q", ErrInvalidInput, s)
	}
	return action, nil
}

// Target status reached by the action
func (a AppointmentAction) Target() AppointmentStatus {
	return actionTargets[a]
}

// AppointmentScope list filter understood by the salon API
type AppointmentScope string

const (
	ScopeMine     AppointmentScope = "mine"
	ScopeToday    AppointmentScope = "today"
	ScopeUpcoming AppointmentScope = "upcoming"
	ScopeAll      AppointmentScope = "all"
)

// ParseAppointmentScope defaults to mine for an empty value
func ParseAppointmentScope(s string) (AppointmentScope, error) {
	switch AppointmentScope(s) {
	case "":
		return ScopeMine, nil
	case ScopeMine, ScopeToday, ScopeUpcoming, ScopeAll:
		return AppointmentScope(s), nil
	default:
		return "", fmt.Errorf("%w: unknown scope %q", ErrInvalidInput, s)
	}
}

// Appointment a booked service for a client with an employee
// End is derived by the salon API from the service duration
type Appointment struct {
	ID                 int64
	EmployeeID         int64
	ServiceID          int64
	ClientID           int64
	Start              time.Time
	End                time.Time
	Status             AppointmentStatus
	InternalNotes      *string
	CancellationReason *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CanBeRescheduled returns true while the appointment is pending or confirmed
func (a *Appointment) CanBeRescheduled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanBeSeenBy clients see their own appointments, employees theirs, managers all
func (a *Appointment) CanBeSeenBy(actor Actor) bool {
	return actor.IsManager() || actor.IsEmployee(a.EmployeeID) || actor.IsClient(a.ClientID)
}

// CheckTransition decides whether actor may apply action
// Returns the target status and noop=true when the target already holds on a non-terminal appointment.
// Terminal appointments reject every action.
func (a *Appointment) CheckTransition(actor Actor, action AppointmentAction) (AppointmentStatus, bool, error) {
	target, ok := actionTargets[action]
	if !ok {
		return "", false, fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, string(action))
	}

	if a.Status.IsTerminal() {
		return "", false, fmt.Errorf("%w: appointment %d is %s, no further transitions", ErrInvalidTransition, a.ID, a.Status)
	}

	if !a.allows(actor, action) {
		return "", false, fmt.Errorf("%w: %s may not %s appointment %d", ErrInvalidTransition, actor, action, a.ID)
	}

	if a.Status == target {
		return target, true, nil
	}

	if !transitions[a.Status][action] {
		return "", false, fmt.Errorf("%w: cannot %s appointment %d in status %s", ErrInvalidTransition, action, a.ID, a.Status)
	}

	return target, false, nil
}

// CheckReschedule only pending/confirmed appointments move, only to a strictly future start
// Moving is done by the owning employee or a manager; a client cancels and books again.
func (a *Appointment) CheckReschedule(actor Actor, newStart, now time.Time) error {
	if !actor.IsManager() && !actor.IsEmployee(a.EmployeeID) {
		return fmt.Errorf("%w: %s may not reschedule appointment %d", ErrInvalidTransition, actor, a.ID)
	}
	if !a.CanBeRescheduled() {
		return fmt.Errorf("%w: appointment %d in status %s cannot be rescheduled", ErrInvalidTransition, a.ID, a.Status)
	}
	if newStart.IsZero() || !newStart.After(now) {
		return fmt.Errorf("%w: new start must be in the future", ErrInvalidInput)
	}
	return nil
}

// allows role gating: clients only cancel their own, employees act on their own, managers on any
func (a *Appointment) allows(actor Actor, action AppointmentAction) bool {
	switch actor.Role {
	case RoleManager:
		return true
	case RoleEmployee:
		return actor.ID == a.EmployeeID
	case RoleClient:
		return action == ActionCancel && actor.ID == a.ClientID
	default:
		return false
	}
}

// NewAppointment input for booking a slot
type NewAppointment struct {
	EmployeeID    int64
	ServiceID     int64
	ClientID      int64
	Start         time.Time
	InternalNotes *string
}

// Validate rejects obviously malformed input before the salon API is called
func (n NewAppointment) Validate(actor Actor, now time.Time) error {
	if n.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID is required", ErrInvalidInput)
	}
	if n.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}
	if n.ClientID <= 0 {
		return fmt.Errorf("%w: clientID is required", ErrInvalidInput)
	}
	if n.Start.IsZero() || !n.Start.After(now) {
		return fmt.Errorf("%w: start must be in the future", ErrInvalidInput)
	}
	if n.InternalNotes != nil && len(*n.InternalNotes) > MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, MaxNotesLength)
	}

	switch actor.Role {
	case RoleClient:
		if actor.ID != n.ClientID {
			return fmt.Errorf("%w: clients book only for themselves", ErrAccessDenied)
		}
	case RoleEmployee:
		if actor.ID != n.EmployeeID {
			return fmt.Errorf("%w: employees book only into their own calendar", ErrAccessDenied)
		}
	case RoleManager:
	default:
		return fmt.Errorf("%w: unknown role %q", ErrAccessDenied, actor.Role)
	}

	return nil
}
