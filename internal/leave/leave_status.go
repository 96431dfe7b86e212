package leave

// Approval lifecycle:
//
//	PENDING ──► DEPARTMENT_APPROVED ──► APPROVED
//	    │               │
//	    └───────────────┴──► REJECTED
//
// APPROVED and REJECTED are terminal. The department head issues the
// first-stage recommendation for their own department; the admin
// renders the final decision and may only approve after that
// recommendation exists. Either actor may reject at their stage; an
// admin may additionally reject a request still in PENDING.
const (
	StatusPending            = "PENDING"
	StatusDepartmentApproved = "DEPARTMENT_APPROVED"
	StatusApproved           = "APPROVED"
	StatusRejected           = "REJECTED"
)

type ActorRole string

const (
	RoleDepartmentHead ActorRole = "DEPARTMENT_HEAD"
	RoleAdmin          ActorRole = "ADMIN"
)

// Actor is the authenticated identity attempting a transition, as
// extracted from the request context by the handler.
type Actor struct {
	EmployeeID string
	Role       ActorRole
}

// roleTransitions lists every allowed (actor, from → to) combination.
// Terminal states have no outgoing edges for anyone.
var roleTransitions = map[ActorRole]map[string][]string{
	RoleDepartmentHead: {
		StatusPending: {StatusDepartmentApproved, StatusRejected},
	},
	RoleAdmin: {
		StatusDepartmentApproved: {StatusApproved, StatusRejected},
		StatusPending:            {StatusRejected},
	},
}

func CanTransition(role ActorRole, from, to string) bool {
	byState, ok := roleTransitions[role]
	if !ok {
		return false
	}
	for _, allowed := range byState[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func IsTerminal(status string) bool {
	return status == StatusApproved || status == StatusRejected
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusDepartmentApproved, StatusApproved, StatusRejected:
		return true
	}
	return false
}
