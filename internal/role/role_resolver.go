package role

import (
	"context"
	"errors"
	"os"
	"strings"

	"go-leaveflow/internal/directory"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Scope is the authority a resolved actor carries: department heads
// may review requests from exactly one department.
type Scope struct {
	IsDepartmentHead bool
	DepartmentID     uuid.UUID
}

// defaultHeadTitleKeywords drives the title heuristic used to seed
// assignments. Override with HEAD_TITLE_KEYWORDS (comma separated).
var defaultHeadTitleKeywords = []string{"head", "dean", "principal", "chairman", "president"}

func HeadTitleKeywords() []string {
	raw := os.Getenv("HEAD_TITLE_KEYWORDS")
	if raw == "" {
		return defaultHeadTitleKeywords
	}

	parts := strings.Split(raw, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if kw := strings.TrimSpace(strings.ToLower(p)); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	if len(keywords) == 0 {
		return defaultHeadTitleKeywords
	}
	return keywords
}

// MatchesHeadTitle reports whether a position title looks like a
// department-head role. Kept only as a seeding aid for the assignment
// table; it is never consulted during authorization.
func MatchesHeadTitle(title string, keywords []string) bool {
	lowered := strings.ToLower(title)
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

//go:generate mockgen -source=role_resolver.go -destination=mock/role_resolver_mock.go -package=mock
type Resolver interface {
	Resolve(ctx context.Context, employeeID string) (Scope, error)
	ListAssignments(ctx context.Context) ([]DepartmentHeadAssignment, error)
	SyncFromTitles(ctx context.Context) (int, error)
}

type resolver struct {
	repo      Repository
	directory directory.Service
	logger    *zap.Logger
}

func NewResolver(repo Repository, dir directory.Service, logger ...*zap.Logger) Resolver {
	l := zap.L().Named("role.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("role.resolver")
	}
	return &resolver{repo: repo, directory: dir, logger: l}
}

func (r *resolver) Resolve(ctx context.Context, employeeID string) (Scope, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return Scope{}, err
	}

	assignment, err := r.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Scope{}, nil
		}
		return Scope{}, err
	}

	return Scope{
		IsDepartmentHead: true,
		DepartmentID:     assignment.DepartmentID,
	}, nil
}

func (r *resolver) ListAssignments(ctx context.Context) ([]DepartmentHeadAssignment, error) {
	return r.repo.ListAll(ctx)
}

// SyncFromTitles seeds the assignment table from the directory using
// the title keyword heuristic. Intended as a one-time migration aid
// when onboarding an institution without an explicit head roster.
func (r *resolver) SyncFromTitles(ctx context.Context) (int, error) {
	profiles, err := r.directory.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	keywords := HeadTitleKeywords()
	synced := 0

	for _, p := range profiles {
		if !MatchesHeadTitle(p.PositionTitle, keywords) {
			continue
		}

		assignment := &DepartmentHeadAssignment{
			DepartmentID: p.DepartmentID,
			EmployeeID:   p.EmployeeID,
		}
		if err := r.repo.Upsert(ctx, assignment); err != nil {
			r.logger.Error("assignment upsert failed",
				zap.String("employee_id", p.EmployeeID.String()),
				zap.String("department_id", p.DepartmentID.String()),
				zap.Error(err),
			)
			return synced, err
		}

		r.logger.Info("department head assigned from title",
			zap.String("employee_id", p.EmployeeID.String()),
			zap.String("department_id", p.DepartmentID.String()),
			zap.String("position_title", p.PositionTitle),
		)
		synced++
	}

	return synced, nil
}
