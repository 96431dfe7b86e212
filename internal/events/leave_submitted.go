package events

import "time"

const LeaveSubmittedTopic = "hr.leave.submitted.v1"

type LeaveSubmittedEvent struct {
	EventType    string    `json:"event_type"`
	LeaveID      string    `json:"leave_id"`
	EmployeeID   string    `json:"employee_id"`
	DepartmentID string    `json:"department_id"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	TotalDays    int       `json:"total_days"`
	OccurredAt   time.Time `json:"occurred_at"`
}
