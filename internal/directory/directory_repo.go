package directory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=directory_repo.go -destination=mock/directory_repo_mock.go -package=mock
type Repository interface {
	FindProfileByID(ctx context.Context, id string) (*Profile, error)
	ListProfiles(ctx context.Context) ([]Profile, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type profileRow struct {
	EmployeeID     uuid.UUID
	FullName       string
	DepartmentID   uuid.UUID
	DepartmentName string
	PositionTitle  string
}

const profileSelect = `
	e.id AS employee_id,
	e.full_name,
	d.id AS department_id,
	d.name AS department_name,
	COALESCE(p.title, '') AS position_title
`

func (r *repository) FindProfileByID(ctx context.Context, id string) (*Profile, error) {
	var row profileRow
	err := r.db.WithContext(ctx).
		Table("employees AS e").
		Select(profileSelect).
		Joins("JOIN departments d ON d.id = e.department_id AND d.deleted_at IS NULL").
		Joins("LEFT JOIN positions p ON p.id = e.position_id AND p.deleted_at IS NULL").
		Where("e.id = ?", id).
		Where("e.deleted_at IS NULL").
		Take(&row).Error
	if err != nil {
		return nil, err
	}

	return rowToProfile(row), nil
}

func (r *repository) ListProfiles(ctx context.Context) ([]Profile, error) {
	var rows []profileRow
	err := r.db.WithContext(ctx).
		Table("employees AS e").
		Select(profileSelect).
		Joins("JOIN departments d ON d.id = e.department_id AND d.deleted_at IS NULL").
		Joins("LEFT JOIN positions p ON p.id = e.position_id AND p.deleted_at IS NULL").
		Where("e.deleted_at IS NULL").
		Order("e.full_name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	profiles := make([]Profile, len(rows))
	for i, row := range rows {
		profiles[i] = *rowToProfile(row)
	}
	return profiles, nil
}

func rowToProfile(row profileRow) *Profile {
	return &Profile{
		EmployeeID:     row.EmployeeID,
		FullName:       row.FullName,
		DepartmentID:   row.DepartmentID,
		DepartmentName: row.DepartmentName,
		PositionTitle:  row.PositionTitle,
	}
}
