package report

import (
	"context"
	"fmt"
	"sort"

	"go-leaveflow/internal/leave"
	reporterrors "go-leaveflow/internal/report/errors"

	"go.uber.org/zap"
)

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	Summary(ctx context.Context, filter leave.ListLeavesFilter, groupBy string) (SummaryResponse, error)
}

type service struct {
	repo   leave.Repository
	logger *zap.Logger
}

func NewService(repo leave.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{repo: repo, logger: l}
}

// Summary tallies the filtered requests into one bucket per grouping
// key. A record lands in exactly one bucket; multi-month spans are
// attributed to the month the leave starts in.
func (s *service) Summary(ctx context.Context, filter leave.ListLeavesFilter, groupBy string) (SummaryResponse, error) {
	if groupBy == "" {
		groupBy = GroupByYear
	}
	keyOf, ok := groupKeyFuncs[groupBy]
	if !ok {
		return SummaryResponse{}, reporterrors.ErrInvalidGroupBy
	}

	leaves, err := s.repo.ListByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("report listing failed", zap.Error(err))
		return SummaryResponse{}, err
	}

	buckets := make(map[string]*GroupSummary)
	var overall StatusTally
	for i := range leaves {
		key, label := keyOf(&leaves[i])
		bucket, exists := buckets[key]
		if !exists {
			bucket = &GroupSummary{Key: key, Label: label}
			buckets[key] = bucket
		}
		tally(&bucket.StatusTally, &leaves[i])
		tally(&overall, &leaves[i])
	}

	groups := make([]GroupSummary, 0, len(buckets))
	for _, b := range buckets {
		groups = append(groups, *b)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })

	s.logger.Debug("report summary built",
		zap.String("group_by", groupBy),
		zap.Int("records", len(leaves)),
		zap.Int("groups", len(groups)),
	)

	return SummaryResponse{GroupBy: groupBy, Groups: groups, Overall: overall}, nil
}

var groupKeyFuncs = map[string]func(l *leave.LeaveRequest) (key, label string){
	GroupByYear: func(l *leave.LeaveRequest) (string, string) {
		return fmt.Sprintf("%d", l.StartDate.Year()), ""
	},
	GroupByMonth: func(l *leave.LeaveRequest) (string, string) {
		return l.StartDate.Format("2006-01"), ""
	},
	GroupByDepartment: func(l *leave.LeaveRequest) (string, string) {
		return l.DepartmentID.String(), l.DepartmentName
	},
	GroupByEmployee: func(l *leave.LeaveRequest) (string, string) {
		return l.EmployeeID.String(), l.EmployeeName
	},
}

func tally(t *StatusTally, l *leave.LeaveRequest) {
	t.Total++
	switch l.Status {
	case leave.StatusPending:
		t.Pending++
	case leave.StatusDepartmentApproved:
		t.DepartmentApproved++
	case leave.StatusApproved:
		t.Approved++
		t.ApprovedDays += l.TotalDays
	case leave.StatusRejected:
		t.Rejected++
	}
}
