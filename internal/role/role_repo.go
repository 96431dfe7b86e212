package role

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=role_repo.go -destination=mock/role_repo_mock.go -package=mock
type Repository interface {
	FindByEmployee(ctx context.Context, employeeID string) (*DepartmentHeadAssignment, error)
	ListAll(ctx context.Context) ([]DepartmentHeadAssignment, error)
	Upsert(ctx context.Context, assignment *DepartmentHeadAssignment) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) (*DepartmentHeadAssignment, error) {
	var a DepartmentHeadAssignment
	err := r.db.WithContext(ctx).
		First(&a, "employee_id = ?", employeeID).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) ListAll(ctx context.Context) ([]DepartmentHeadAssignment, error) {
	var assignments []DepartmentHeadAssignment
	err := r.db.WithContext(ctx).
		Order("department_id ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *repository) Upsert(ctx context.Context, assignment *DepartmentHeadAssignment) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "department_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"employee_id", "updated_at"}),
		}).
		Create(assignment).Error
}
