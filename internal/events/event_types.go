package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventDepartmentAdded        EventType = "department_added"
	EventDepartmentDeleted      EventType = "department_deleted"
	EventRoleAdded              EventType = "role_added"
	EventRoleDeleted            EventType = "role_deleted"
	EventEmployeeAdded          EventType = "employee_added"
	EventEmployeeRoleUpdated    EventType = "employee_role_updated"
	EventEmployeeManagerUpdated EventType = "employee_manager_updated"
	EventEmployeeDeleted        EventType = "employee_deleted"
)

// AllEventTypes lists every type the services emit.
var AllEventTypes = []EventType{
	EventDepartmentAdded,
	EventDepartmentDeleted,
	EventRoleAdded,
	EventRoleDeleted,
	EventEmployeeAdded,
	EventEmployeeRoleUpdated,
	EventEmployeeManagerUpdated,
	EventEmployeeDeleted,
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	EntityID  int64     `json:"entity_id"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// New stamps an event with a fresh id and the current UTC time.
func New(eventType EventType, entityID int64, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// DepartmentPayload payload.
type DepartmentPayload struct {
	Name string `json:"name"`
}

// RolePayload payload.
type RolePayload struct {
	Title        string  `json:"title"`
	Salary       float64 `json:"salary"`
	DepartmentID int64   `json:"department_id"`
}

// EmployeePayload payload.
type EmployeePayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	RoleID    int64  `json:"role_id"`
	ManagerID *int64 `json:"manager_id,omitempty"`
}

// EmployeeRoleUpdatedPayload payload.
type EmployeeRoleUpdatedPayload struct {
	RoleID int64 `json:"role_id"`
}

// EmployeeManagerUpdatedPayload payload. A nil ManagerID means cleared.
type EmployeeManagerUpdatedPayload struct {
	ManagerID *int64 `json:"manager_id"`
}
