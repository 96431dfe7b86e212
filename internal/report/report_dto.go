package report

const (
	GroupByYear       = "year"
	GroupByMonth      = "month"
	GroupByDepartment = "department"
	GroupByEmployee   = "employee"
)

type StatusTally struct {
	Total              int `json:"total"`
	Pending            int `json:"pending"`
	DepartmentApproved int `json:"department_approved"`
	Approved           int `json:"approved"`
	Rejected           int `json:"rejected"`
	ApprovedDays       int `json:"approved_days"`
}

// GroupSummary is one report bucket. Key is the grouping value (year,
// YYYY-MM, or a uuid); Label carries the human-readable name when the
// key alone is opaque.
type GroupSummary struct {
	Key   string `json:"key"`
	Label string `json:"label,omitempty"`
	StatusTally
}

type SummaryResponse struct {
	GroupBy string         `json:"group_by"`
	Groups  []GroupSummary `json:"groups"`
	Overall StatusTally    `json:"overall"`
}
