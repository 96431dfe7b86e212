package leave

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

type CreateLeaveRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	LeaveType  string `json:"leave_type" binding:"required,oneof=ANNUAL SICK UNPAID"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Reason     string `json:"reason"`
}

type DepartmentReviewRequest struct {
	Action  string `json:"action" binding:"required,oneof=approve reject"`
	Comment string `json:"comment"`
}

type AdminDecisionRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
}

type ListLeavesFilter struct {
	EmployeeID   string `form:"employee_id"`
	DepartmentID string `form:"department_id"`
	Status       string `form:"status"`
	Year         int    `form:"year"`
}

type LeaveResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	EmployeeName   string `json:"employee_name"`
	DepartmentID   string `json:"department_id"`
	DepartmentName string `json:"department_name"`
	LeaveType      string `json:"leave_type"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	TotalDays      int    `json:"total_days"`
	Reason         string `json:"reason"`
	Status         string `json:"status"`
	CreatedBy      string `json:"created_by"`
	CreatedAt      string `json:"created_at"`

	DeptHeadComment    *string `json:"dept_head_comment,omitempty"`
	DeptHeadApprovedBy *string `json:"dept_head_approved_by,omitempty"`
	DeptHeadApprovedAt *string `json:"dept_head_approved_at,omitempty"`
	DecidedBy          *string `json:"decided_by,omitempty"`
	DecidedAt          *string `json:"decided_at,omitempty"`

	// BalanceWarning is set on submission when the request would push
	// the employee past the annual cap and the policy is advisory.
	BalanceWarning *string `json:"balance_warning,omitempty"`
}
