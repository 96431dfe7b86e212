package role

import (
	"time"

	"github.com/google/uuid"
)

// DepartmentHeadAssignment is the authoritative record of who reviews
// leave requests for a department. One head per department.
type DepartmentHeadAssignment struct {
	DepartmentID uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;index:idx_dept_head_employee"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (DepartmentHeadAssignment) TableName() string { return "department_head_assignments" }
