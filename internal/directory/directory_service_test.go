package directory_test

import (
	"context"
	"errors"
	"testing"

	"go-leaveflow/internal/directory"
	directoryerrors "go-leaveflow/internal/directory/errors"
	"go-leaveflow/internal/directory/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func TestDirectoryService_Lookup(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockRepository(ctrl)
		svc := directory.NewService(repo)

		employeeID := uuid.New()
		departmentID := uuid.New()
		repo.EXPECT().
			FindProfileByID(gomock.Any(), employeeID.String()).
			Return(&directory.Profile{
				EmployeeID:     employeeID,
				FullName:       "Maria Santos",
				DepartmentID:   departmentID,
				DepartmentName: "Registrar",
				PositionTitle:  "Records Officer",
			}, nil)

		profile, err := svc.Lookup(ctx, employeeID.String())
		assert.NoError(t, err)
		assert.Equal(t, "Maria Santos", profile.FullName)
		assert.Equal(t, departmentID, profile.DepartmentID)
		assert.Equal(t, "Registrar", profile.DepartmentName)
	})

	t.Run("invalid id rejected before hitting the repo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockRepository(ctrl)
		svc := directory.NewService(repo)

		_, err := svc.Lookup(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, directoryerrors.ErrInvalidEmployeeID)
	})

	t.Run("unknown employee maps to not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockRepository(ctrl)
		svc := directory.NewService(repo)

		employeeID := uuid.New().String()
		repo.EXPECT().
			FindProfileByID(gomock.Any(), employeeID).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Lookup(ctx, employeeID)
		assert.ErrorIs(t, err, directoryerrors.ErrEmployeeNotFound)
	})

	t.Run("infra errors pass through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockRepository(ctrl)
		svc := directory.NewService(repo)

		employeeID := uuid.New().String()
		dbErr := errors.New("connection reset")
		repo.EXPECT().
			FindProfileByID(gomock.Any(), employeeID).
			Return(nil, dbErr)

		_, err := svc.Lookup(ctx, employeeID)
		assert.ErrorIs(t, err, dbErr)
	})
}
