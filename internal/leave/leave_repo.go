package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-leaveflow/internal/balance"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ErrStatusChanged is returned by ApplyTransition when the record's
// status no longer matches the expected value at write time, meaning
// another actor processed the request first.
var ErrStatusChanged = errors.New("leave request status changed concurrently")

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	ListByFilter(ctx context.Context, filter ListLeavesFilter) ([]LeaveRequest, error)
	ApplyTransition(ctx context.Context, id, expectedStatus string, changes map[string]any) (*LeaveRequest, error)
	ApprovedRanges(ctx context.Context, employeeID string, year int) ([]balance.DateRange, error)
}

type repository struct {
	db    *gorm.DB
	txErr error
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the repository onto the caller's transaction, so
// writes here commit or roll back together with whatever else the
// caller does on that tx (the outbox insert, in particular).
func (r *repository) WithTx(tx *sql.Tx) Repository {
	txDB, err := gorm.Open(postgres.New(postgres.Config{Conn: tx}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return &repository{db: r.db, txErr: err}
	}
	return &repository{db: txDB}
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	if r.txErr != nil {
		return r.txErr
	}
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) ListByFilter(ctx context.Context, filter ListLeavesFilter) ([]LeaveRequest, error) {
	db := r.db.WithContext(ctx).Model(&LeaveRequest{})

	if filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.DepartmentID != "" {
		db = db.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Year != 0 {
		db = db.Where("EXTRACT(YEAR FROM start_date) = ?", filter.Year)
	}

	var leaves []LeaveRequest
	err := db.Order("start_date DESC").Find(&leaves).Error
	return leaves, err
}

// ApplyTransition performs the compare-and-swap the state machine
// relies on: a single conditional UPDATE keyed on (id, status). When
// zero rows match, the record either vanished or was processed by a
// concurrent actor; the two cases are told apart with a follow-up read.
func (r *repository) ApplyTransition(ctx context.Context, id, expectedStatus string, changes map[string]any) (*LeaveRequest, error) {
	if r.txErr != nil {
		return nil, r.txErr
	}
	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ? AND status = ?", id, expectedStatus).
		Updates(changes)
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		var current LeaveRequest
		err := r.db.WithContext(ctx).First(&current, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, gorm.ErrRecordNotFound
			}
			return nil, err
		}
		return nil, ErrStatusChanged
	}

	var updated LeaveRequest
	if err := r.db.WithContext(ctx).First(&updated, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *repository) ApprovedRanges(ctx context.Context, employeeID string, year int) ([]balance.DateRange, error) {
	var rows []struct {
		StartDate time.Time
		EndDate   time.Time
	}
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Select("start_date", "end_date").
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusApproved).
		Where("EXTRACT(YEAR FROM start_date) = ?", year).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	ranges := make([]balance.DateRange, len(rows))
	for i, row := range rows {
		ranges[i] = balance.DateRange{Start: row.StartDate, End: row.EndDate}
	}
	return ranges, nil
}
