package directory

import (
	"context"
	"errors"

	directoryerrors "go-leaveflow/internal/directory/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=directory_service.go -destination=mock/directory_service_mock.go -package=mock
type Service interface {
	Lookup(ctx context.Context, employeeID string) (Profile, error)
	ListAll(ctx context.Context) ([]Profile, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("directory.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("directory.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Lookup(ctx context.Context, employeeID string) (Profile, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return Profile{}, directoryerrors.ErrInvalidEmployeeID
	}

	profile, err := s.repo.FindProfileByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Debug("employee not found", zap.String("employee_id", employeeID))
			return Profile{}, directoryerrors.ErrEmployeeNotFound
		}
		s.logger.Error("profile lookup failed", zap.String("employee_id", employeeID), zap.Error(err))
		return Profile{}, err
	}

	return *profile, nil
}

func (s *service) ListAll(ctx context.Context) ([]Profile, error) {
	return s.repo.ListProfiles(ctx)
}
