package domain

import (
	"fmt"
	"strings"
)

// Role of the acting user
type Role string

const (
	RoleClient   Role = "client"
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
)

// ParseRole accepts client, employee or manager (case-insensitive)
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleClient:
		return RoleClient, nil
	case RoleEmployee:
		return RoleEmployee, nil
	case RoleManager:
		return RoleManager, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, s)
	}
}

// Actor the authenticated user performing an operation
// ID is the client id for clients and the employee id for employees
type Actor struct {
	Role Role
	ID   int64
}

func (a Actor) IsManager() bool {
	return a.Role == RoleManager
}

// IsEmployee reports whether the actor is the given employee
func (a Actor) IsEmployee(employeeID int64) bool {
	return a.Role == RoleEmployee && a.ID == employeeID
}

// IsClient reports whether the actor is the given client
func (a Actor) IsClient(clientID int64) bool {
	return a.Role == RoleClient && a.ID == clientID
}

// CanManageSchedule managers edit anyone's week, employees only their own
func (a Actor) CanManageSchedule(employeeID int64) bool {
	return a.IsManager() || a.IsEmployee(employeeID)
}

func (a Actor) String() string {
	return fmt.Sprintf("%s:%d", a.Role, a.ID)
}
