package balance

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const usageCacheTTL = 10 * time.Minute

// Source supplies the approved leave ranges the calculator aggregates.
// Implemented by the leave repository.
type Source interface {
	ApprovedRanges(ctx context.Context, employeeID string, year int) ([]DateRange, error)
}

type Balance struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Used       int    `json:"used"`
	Remaining  int    `json:"remaining"`
	Cap        int    `json:"cap"`
}

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	Remaining(ctx context.Context, employeeID string, year int) (Balance, error)
	WouldExceed(ctx context.Context, employeeID string, year, proposedDays int) (bool, int, error)
	Invalidate(ctx context.Context, employeeID string, year int)
}

type service struct {
	source Source
	rdb    *redis.Client
	group  singleflight.Group
	cap    int
	logger *zap.Logger
}

// NewService builds the balance service. rdb may be nil, in which case
// usage is recomputed on every call.
func NewService(source Source, rdb *redis.Client, annualCap int, logger ...*zap.Logger) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	if annualCap <= 0 {
		annualCap = DefaultAnnualCap
	}
	return &service{source: source, rdb: rdb, cap: annualCap, logger: l}
}

func usageCacheKey(employeeID string, year int) string {
	return fmt.Sprintf("leave:usage:%s:%d", employeeID, year)
}

func (s *service) usage(ctx context.Context, employeeID string, year int) (int, error) {
	key := usageCacheKey(employeeID, year)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Int(); err == nil {
			return cached, nil
		}
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		ranges, err := s.source.ApprovedRanges(ctx, employeeID, year)
		if err != nil {
			return 0, err
		}

		used := YearlyUsage(ranges)

		if s.rdb != nil {
			if cacheErr := s.rdb.Set(ctx, key, used, usageCacheTTL).Err(); cacheErr != nil {
				s.logger.Warn("usage cache write failed", zap.String("key", key), zap.Error(cacheErr))
			}
		}

		return used, nil
	})
	if err != nil {
		return 0, err
	}

	return v.(int), nil
}

func (s *service) Remaining(ctx context.Context, employeeID string, year int) (Balance, error) {
	used, err := s.usage(ctx, employeeID, year)
	if err != nil {
		return Balance{}, err
	}

	remaining := Remaining(s.cap, used)
	if remaining < 0 {
		s.logger.Warn("employee over annual cap",
			zap.String("employee_id", employeeID),
			zap.Int("year", year),
			zap.Int("used", used),
			zap.Int("cap", s.cap),
		)
	}

	return Balance{
		EmployeeID: employeeID,
		Year:       year,
		Used:       used,
		Remaining:  remaining,
		Cap:        s.cap,
	}, nil
}

// WouldExceed reports whether approving proposedDays more would push
// the employee past the cap, along with the balance left afterwards.
func (s *service) WouldExceed(ctx context.Context, employeeID string, year, proposedDays int) (bool, int, error) {
	used, err := s.usage(ctx, employeeID, year)
	if err != nil {
		return false, 0, err
	}

	remainingAfter := Remaining(s.cap, used+proposedDays)
	return remainingAfter < 0, remainingAfter, nil
}

func (s *service) Invalidate(ctx context.Context, employeeID string, year int) {
	if s.rdb == nil {
		return
	}

	key := usageCacheKey(employeeID, year)
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		s.logger.Warn("usage cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}
