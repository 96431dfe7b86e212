package events

import "time"

const LeaveDecisionTopic = "hr.leave.decision.v1"

// LeaveDecidedEvent is emitted when a request reaches a terminal
// status. Year is the calendar year of the leave's start date so
// consumers can bust balance caches without re-reading the record.
type LeaveDecidedEvent struct {
	EventType    string    `json:"event_type"`
	LeaveID      string    `json:"leave_id"`
	EmployeeID   string    `json:"employee_id"`
	DepartmentID string    `json:"department_id"`
	Status       string    `json:"status"`
	DecidedBy    string    `json:"decided_by"`
	Year         int       `json:"year"`
	OccurredAt   time.Time `json:"occurred_at"`
}
