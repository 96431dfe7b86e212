package leave

import (
	"time"

	"github.com/google/uuid"
)

// LeaveRequest snapshots the requester's name and department at
// submission time. Reviews match against the snapshot department id,
// so a later transfer does not change who reviews an open request.
type LeaveRequest struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`

	EmployeeID     uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates;uniqueIndex:uq_leave_requests_span"`
	EmployeeName   string    `gorm:"size:255;not null"`
	DepartmentID   uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_department_status"`
	DepartmentName string    `gorm:"size:255;not null"`

	LeaveType string    `gorm:"type:varchar(30);not null;default:'ANNUAL'"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates;uniqueIndex:uq_leave_requests_span"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates;uniqueIndex:uq_leave_requests_span"`
	TotalDays int       `gorm:"type:int;not null;default:1"`
	Reason    string    `gorm:"type:text"`

	Status    string    `gorm:"type:varchar(30);not null;default:'PENDING';index:idx_leave_requests_department_status"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`

	DeptHeadComment    *string    `gorm:"type:text"`
	DeptHeadApprovedBy *uuid.UUID `gorm:"type:uuid"`
	DeptHeadApprovedAt *time.Time

	DecidedBy *uuid.UUID `gorm:"type:uuid"`
	DecidedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
